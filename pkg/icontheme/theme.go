package icontheme

import (
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
)

// Theme is an installed icon theme.
// Metadata is read once when the theme is located.
type Theme struct {
	// Name is the theme's directory name, which identifies it.
	Name string

	// Path is the canonical root: the first directory in search order
	// containing this theme's index.theme.
	Path string

	Metadata

	r *Resolver
}

// ThemeByName locates a theme by name. The personal icon directory is
// checked first, then each data directory in order. A theme that is not
// installed is reported as not found.
func (r *Resolver) ThemeByName(name string) (*Theme, bool) {
	root, ok := r.locate(name)
	if !ok {
		return nil, false
	}

	m, err := readMetadata(root)
	if err != nil {
		r.logger.Debug("unusable theme descriptor, treating as empty", "theme", name, "error", err)
	}

	return &Theme{
		Name:     name,
		Path:     root,
		Metadata: m,
		r:        r,
	}, true
}

// locate returns the canonical root of a theme.
func (r *Resolver) locate(name string) (string, bool) {
	if !validName(name) {
		return "", false
	}

	for _, base := range r.iconRoots() {
		root := filepath.Join(base, name)
		if isDir(root) && isFile(filepath.Join(root, DescriptorName)) {
			r.logger.Trace("located theme", "theme", name, "path", root)
			return root, true
		}
	}

	r.logger.Trace("theme not installed", "theme", name)
	return "", false
}

// iconRoots returns every directory that may contain themes, in
// precedence order: the personal icon directory, then <data-dir>/icons.
func (r *Resolver) iconRoots() []string {
	roots := make([]string, 0, len(r.dirs.DataDirs)+1)
	if home := r.dirs.IconsHome(); home != "" {
		roots = append(roots, home)
	}
	for _, dir := range r.dirs.DataDirs {
		roots = append(roots, filepath.Join(dir, "icons"))
	}
	return roots
}

// Themes returns every installed theme sorted by name. When a theme is
// installed in several places only its canonical location is reported.
func (r *Resolver) Themes() []*Theme {
	seen := make(map[string]struct{})
	var names []string

	for _, base := range r.iconRoots() {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if _, ok := seen[name]; ok {
				continue
			}
			if !isFile(filepath.Join(base, name, DescriptorName)) {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}

	sort.Strings(names)

	themes := make([]*Theme, 0, len(names))
	for _, name := range names {
		if t, ok := r.ThemeByName(name); ok {
			themes = append(themes, t)
		}
	}
	return themes
}

// ResolutionOrder returns the theme followed by its ancestors in search
// order. Parents are visited depth-first in declared order and each name
// is visited at most once, so cycles and diamonds terminate. Parents that
// are not installed are skipped.
func (t *Theme) ResolutionOrder() []*Theme {
	seen := map[string]struct{}{t.Name: {}}
	order := []*Theme{t}

	stack := reversed(t.Inherits)
	for len(stack) > 0 {
		name := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}

		parent, ok := t.r.ThemeByName(name)
		if !ok {
			t.r.logger.Debug("skipping inherited theme that is not installed", "theme", t.Name, "parent", name)
			continue
		}

		stack = append(stack, reversed(parent.Inherits)...)
		order = append(order, parent)
	}

	return order
}

// reversed returns a reversed copy so pushing it onto a stack pops the
// first element first.
func reversed(names []string) []string {
	out := slices.Clone(names)
	slices.Reverse(out)
	return out
}

// validName rejects names that would escape the directory they are joined to.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsRune(name, filepath.Separator)
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
