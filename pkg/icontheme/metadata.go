package icontheme

import (
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const iconThemeSection = "Icon Theme"

// Directory is a size bucket declared by a theme's Directories key.
type Directory struct {
	// Name is the directory path relative to the theme root (e.g. "48x48/apps").
	Name string

	// Size is the nominal icon size. Zero when missing or unparseable.
	Size int

	// Scale is the HiDPI scale factor. One when missing or unparseable.
	Scale int

	// Context, Type, MinSize, MaxSize and Threshold are informational and
	// never take part in matching.
	Context   string
	Type      string
	MinSize   int
	MaxSize   int
	Threshold int
}

// Metadata is the parsed content of a theme's index.theme.
// The zero value is a valid, empty descriptor.
type Metadata struct {
	DisplayName string
	Comment     string
	Example     string
	Hidden      bool

	// Inherits lists parent theme names in declared order.
	Inherits []string

	// Directories lists the declared size buckets in declared order.
	Directories []Directory

	defaultSize    int
	hasDefaultSize bool
}

// DefaultSize returns the theme's DesktopDefault size, if declared.
func (m Metadata) DefaultSize() (int, bool) {
	return m.defaultSize, m.hasDefaultSize
}

// LoadMetadata parses <root>/index.theme. Unreadable or malformed
// descriptors yield empty metadata.
func LoadMetadata(root string) Metadata {
	m, _ := readMetadata(root)
	return m
}

// readMetadata parses the descriptor and reports why it could not be read.
// The returned Metadata is always usable.
func readMetadata(root string) (Metadata, error) {
	path := filepath.Join(root, DescriptorName)

	cfg, err := loadINI(path)
	if err != nil {
		return Metadata{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	sec, err := cfg.GetSection(iconThemeSection)
	if err != nil {
		return Metadata{}, fmt.Errorf("%s has no [%s] section", path, iconThemeSection)
	}

	m := Metadata{
		DisplayName: sec.Key("Name").String(),
		Comment:     sec.Key("Comment").String(),
		Example:     sec.Key("Example").String(),
		Hidden:      sec.Key("Hidden").MustBool(false),
		Inherits:    splitList(sec.Key("Inherits").String()),
	}

	if sec.HasKey("DesktopDefault") {
		if size, err := sec.Key("DesktopDefault").Int(); err == nil && size >= 0 {
			m.defaultSize = size
			m.hasDefaultSize = true
		}
	}

	for _, name := range splitList(sec.Key("Directories").String()) {
		m.Directories = append(m.Directories, readDirectory(cfg, name))
	}

	return m, nil
}

// readDirectory reads the per-directory section. A missing section still
// produces an entry with the default size and scale.
func readDirectory(cfg *ini.File, name string) Directory {
	d := Directory{
		Name:      name,
		Scale:     1,
		Type:      "Threshold",
		Threshold: 2,
	}

	sec, err := cfg.GetSection(name)
	if err != nil {
		return d
	}

	d.Size = intKey(sec, "Size", 0)
	d.Scale = intKey(sec, "Scale", 1)
	d.Context = sec.Key("Context").String()
	if t := sec.Key("Type").String(); t != "" {
		d.Type = t
	}
	d.MinSize = intKey(sec, "MinSize", d.Size)
	d.MaxSize = intKey(sec, "MaxSize", d.Size)
	d.Threshold = intKey(sec, "Threshold", 2)

	return d
}

// intKey reads a non-negative integer key, returning def when the key is
// missing or does not parse.
func intKey(sec *ini.Section, key string, def int) int {
	if !sec.HasKey(key) {
		return def
	}
	v, err := sec.Key(key).Int()
	if err != nil || v < 0 {
		return def
	}
	return v
}

// splitList splits a comma separated value, dropping empty entries.
func splitList(value string) []string {
	var out []string
	for part := range strings.SplitSeq(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// loadINI parses a freedesktop style key file.
func loadINI(path string) (*ini.File, error) {
	return ini.LoadSources(ini.LoadOptions{
		IgnoreInlineComment: true,
		KeyValueDelimiters:  "=",
	}, path)
}
