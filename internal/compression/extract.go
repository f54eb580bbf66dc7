// Package compression extracts icon theme archives into an icon directory.
package compression

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/galister/freedesktop/internal/security"
)

// DefaultMaxBytes caps the total extracted size of an archive.
const DefaultMaxBytes = 1 << 30

// Format is an archive container and compression combination.
type Format string

// Supported archive formats.
const (
	FormatTarGz  Format = "tar.gz"
	FormatTarXz  Format = "tar.xz"
	FormatTarBz2 Format = "tar.bz2"
	FormatTar    Format = "tar"
	FormatZip    Format = "zip"
)

// archiveExtensions maps filename suffixes to formats. Longer suffixes first.
var archiveExtensions = []struct {
	suffix string
	format Format
}{
	{".tar.gz", FormatTarGz},
	{".tgz", FormatTarGz},
	{".tar.xz", FormatTarXz},
	{".txz", FormatTarXz},
	{".tar.bz2", FormatTarBz2},
	{".tbz2", FormatTarBz2},
	{".tbz", FormatTarBz2},
	{".tar", FormatTar},
	{".zip", FormatZip},
}

// Options configures theme extraction.
type Options struct {
	// Force replaces themes that are already installed.
	Force bool

	// MaxBytes caps the total extracted size. If zero, DefaultMaxBytes is used.
	MaxBytes int64

	// Logger receives extraction progress. If nil, nothing is logged.
	Logger hclog.Logger
}

// ExtractResult describes the themes installed from an archive.
type ExtractResult struct {
	// Themes holds the installed theme names, in archive order.
	Themes []string

	// Paths holds the installed theme roots, parallel to Themes.
	Paths []string

	// Files is the number of regular files extracted.
	Files int
}

// ExtractThemes unpacks an icon theme archive into destDir.
// Every directory in the archive that contains an index.theme is installed
// as destDir/<directory name>. An archive whose index.theme sits at the top
// level is installed under the archive's base name.
//
// Entries are first unpacked into a staging directory inside destDir, so a
// rejected archive leaves destDir untouched.
func ExtractThemes(data []byte, filename, destDir string, opts Options) (*ExtractResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	maxBytes := opts.MaxBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBytes
	}

	format, err := DetectFormat(filename, data)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil { // #nosec G301 - icon directories need standard permissions
		return nil, fmt.Errorf("failed to create icon directory: %w", err)
	}

	staging, err := os.MkdirTemp(destDir, ".install-")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(staging)

	logger.Debug("unpacking archive", "file", filename, "format", string(format), "staging", staging)

	stage, err := os.OpenRoot(staging)
	if err != nil {
		return nil, fmt.Errorf("failed to open staging directory: %w", err)
	}
	defer stage.Close()

	budget := security.NewLimitedReader(nil, maxBytes)
	files, err := unpack(format, data, stage, budget)
	if err != nil {
		return nil, err
	}

	roots, err := findThemeRoots(staging)
	if err != nil {
		return nil, fmt.Errorf("failed to scan archive contents: %w", err)
	}
	if len(roots) == 0 {
		return nil, fmt.Errorf("archive does not contain an icon theme (no index.theme found)")
	}

	// Resolve every destination before moving anything.
	names := make([]string, len(roots))
	for i, root := range roots {
		name := filepath.Base(root)
		if root == staging {
			name = ArchiveBaseName(filename)
		}
		if name == "" || strings.HasPrefix(name, ".") {
			return nil, fmt.Errorf("cannot determine a theme name for %s", filename)
		}
		if err := checkThemeLinks(root); err != nil {
			return nil, fmt.Errorf("theme %q: %w", name, err)
		}

		dest := filepath.Join(destDir, name)
		if _, err := os.Lstat(dest); err == nil && !opts.Force {
			return nil, fmt.Errorf("icon theme %q is already installed at %s (use --force to overwrite)", name, dest)
		}
		names[i] = name
	}

	result := &ExtractResult{Files: files}
	for i, root := range roots {
		dest := filepath.Join(destDir, names[i])
		if err := os.RemoveAll(dest); err != nil {
			return result, fmt.Errorf("failed to remove existing theme %q: %w", names[i], err)
		}
		if err := os.Rename(root, dest); err != nil {
			return result, fmt.Errorf("failed to install theme %q: %w", names[i], err)
		}

		logger.Info("installed icon theme", "theme", names[i], "path", dest)
		result.Themes = append(result.Themes, names[i])
		result.Paths = append(result.Paths, dest)
	}

	return result, nil
}

// DetectFormat determines the archive format from the filename, falling
// back to the leading magic bytes.
func DetectFormat(filename string, data []byte) (Format, error) {
	lower := strings.ToLower(filename)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext.suffix) {
			return ext.format, nil
		}
	}

	switch {
	case bytes.HasPrefix(data, []byte{0x1f, 0x8b}):
		return FormatTarGz, nil
	case bytes.HasPrefix(data, []byte{0xfd, '7', 'z', 'X', 'Z', 0x00}):
		return FormatTarXz, nil
	case bytes.HasPrefix(data, []byte("BZh")):
		return FormatTarBz2, nil
	case bytes.HasPrefix(data, []byte("PK\x03\x04")):
		return FormatZip, nil
	case len(data) > 262 && string(data[257:262]) == "ustar":
		return FormatTar, nil
	}

	return "", fmt.Errorf("unsupported archive format: %s", filename)
}

// ArchiveBaseName strips the archive extension from a filename.
// For example: "Papirus-Dark.tar.xz" -> "Papirus-Dark".
func ArchiveBaseName(filename string) string {
	base := filepath.Base(filename)
	lower := strings.ToLower(base)
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(lower, ext.suffix) {
			return base[:len(base)-len(ext.suffix)]
		}
	}
	return base
}
