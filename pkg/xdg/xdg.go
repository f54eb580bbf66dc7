// Package xdg provides the XDG base directories consumed by the icon theme engine.
// Values are read from the environment and defaulted according to the
// XDG Base Directory Specification.
package xdg

import (
	"fmt"
	"path/filepath"

	"github.com/caarlos0/env/v11"
)

// DefaultDataDirs is used when XDG_DATA_DIRS is unset or empty.
var DefaultDataDirs = []string{"/usr/local/share", "/usr/share"}

// Dirs holds the base directories used for icon, pixmap and settings lookups.
type Dirs struct {
	// Home is the user's home directory.
	Home string `env:"HOME"`

	// DataHome is the personal data directory (default: ~/.local/share).
	DataHome string `env:"XDG_DATA_HOME"`

	// DataDirs is the ordered list of system data directories.
	// The first directory containing a theme is its canonical location.
	DataDirs []string `env:"XDG_DATA_DIRS" envSeparator:":"`

	// ConfigHome is the personal configuration directory (default: ~/.config).
	ConfigHome string `env:"XDG_CONFIG_HOME"`

	// CacheHome is the personal cache directory (default: ~/.cache).
	CacheHome string `env:"XDG_CACHE_HOME"`

	// CurrentDesktop lists the desktop environment names, most specific first.
	CurrentDesktop []string `env:"XDG_CURRENT_DESKTOP" envSeparator:":"`

	// DesktopSession is the legacy session name some display managers export.
	DesktopSession string `env:"DESKTOP_SESSION"`
}

// FromEnv loads Dirs from the process environment.
func FromEnv() (Dirs, error) {
	var d Dirs
	if err := env.Parse(&d); err != nil {
		return Dirs{}, fmt.Errorf("parse xdg environment: %w", err)
	}
	d.applyDefaults()
	return d, nil
}

// FromEnviron loads Dirs from the given variables instead of the process
// environment.
func FromEnviron(environ map[string]string) (Dirs, error) {
	var d Dirs
	if err := env.ParseWithOptions(&d, env.Options{Environment: environ}); err != nil {
		return Dirs{}, fmt.Errorf("parse xdg environment: %w", err)
	}
	d.applyDefaults()
	return d, nil
}

// applyDefaults fills unset directories. Relative paths are invalid per the
// base directory specification and are ignored.
func (d *Dirs) applyDefaults() {
	if !filepath.IsAbs(d.DataHome) {
		d.DataHome = ""
		if d.Home != "" {
			d.DataHome = filepath.Join(d.Home, ".local", "share")
		}
	}

	if !filepath.IsAbs(d.ConfigHome) {
		d.ConfigHome = ""
		if d.Home != "" {
			d.ConfigHome = filepath.Join(d.Home, ".config")
		}
	}

	if !filepath.IsAbs(d.CacheHome) {
		d.CacheHome = ""
		if d.Home != "" {
			d.CacheHome = filepath.Join(d.Home, ".cache")
		}
	}

	dataDirs := make([]string, 0, len(d.DataDirs))
	for _, dir := range d.DataDirs {
		if filepath.IsAbs(dir) {
			dataDirs = append(dataDirs, filepath.Clean(dir))
		}
	}
	if len(dataDirs) == 0 {
		dataDirs = append(dataDirs, DefaultDataDirs...)
	}
	d.DataDirs = dataDirs
}

// BaseDirectories returns the system data directories followed by the
// personal data directory.
func (d Dirs) BaseDirectories() []string {
	dirs := make([]string, 0, len(d.DataDirs)+1)
	dirs = append(dirs, d.DataDirs...)
	if d.DataHome != "" {
		dirs = append(dirs, d.DataHome)
	}
	return dirs
}

// IconsHome returns the personal icon theme directory (~/.local/share/icons).
func (d Dirs) IconsHome() string {
	if d.DataHome == "" {
		return ""
	}
	return filepath.Join(d.DataHome, "icons")
}
