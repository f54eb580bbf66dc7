// Package icontheme resolves symbolic icon names to files on disk following
// the freedesktop.org Icon Theme Specification.
//
// A Resolver locates themes in the XDG data directories, walks their
// inheritance graph and probes the size/scale matched directories of each
// theme before falling back to the legacy pixmap directories.
package icontheme

import (
	"errors"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/galister/freedesktop/internal/desktop"
	"github.com/galister/freedesktop/pkg/xdg"
)

const (
	// FallbackTheme is the theme every implementation must provide.
	FallbackTheme = "hicolor"

	// DefaultIconSize is used when neither the caller nor the theme
	// specifies a size.
	DefaultIconSize = 48

	// DescriptorName is the theme descriptor file inside a theme root.
	DescriptorName = "index.theme"
)

// ErrFallbackThemeMissing is returned when the hicolor baseline theme is not
// installed. No lookup can succeed reliably without it.
var ErrFallbackThemeMissing = errors.New("fallback icon theme is not installed")

// Builder provides a fluent interface for constructing a Resolver.
type Builder struct {
	dirs       xdg.Dirs
	useEnv     bool
	logger     hclog.Logger
	desktop    desktop.Desktop
	detect     bool
	hasDesktop bool
}

// NewBuilder creates a new Resolver builder with default settings.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithDirs sets the base directories explicitly.
func (b *Builder) WithDirs(dirs xdg.Dirs) *Builder {
	b.dirs = dirs
	b.useEnv = false
	return b
}

// WithEnvConfig loads the base directories from XDG environment variables.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLogger sets the logger used for lookup diagnostics.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	b.logger = logger
	return b
}

// WithDesktop sets the desktop environment by its XDG_CURRENT_DESKTOP name.
// The desktop decides which settings files are read by Current.
func (b *Builder) WithDesktop(name string) *Builder {
	b.desktop = desktop.Parse(name)
	b.hasDesktop = true
	return b
}

// WithDesktopDetection detects the desktop environment when Build is called.
// An explicit WithDesktop takes precedence.
func (b *Builder) WithDesktopDetection() *Builder {
	b.detect = true
	return b
}

// Build constructs the Resolver with the configured settings.
func (b *Builder) Build() *Resolver {
	logger := b.logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	logger = logger.Named("icontheme")

	dirs := b.dirs
	if b.useEnv {
		envDirs, err := xdg.FromEnv()
		if err != nil {
			logger.Warn("failed to read XDG environment, using defaults", "error", err)
			envDirs, _ = xdg.FromEnviron(map[string]string{})
		}
		dirs = envDirs
	}

	de := b.desktop
	if !b.hasDesktop && b.detect {
		de = desktop.Detect(dirs)
	}

	r := &Resolver{
		dirs:    dirs,
		desktop: de,
		logger:  logger,
	}
	r.current = sync.OnceValues(r.resolveCurrent)

	logger.Debug("resolver configured",
		"data_home", dirs.DataHome,
		"data_dirs", dirs.DataDirs,
		"desktop", string(de))

	return r
}

// Resolver locates icon themes and resolves icons within them.
// A Resolver is immutable once built and safe for concurrent use.
type Resolver struct {
	dirs    xdg.Dirs
	desktop desktop.Desktop
	logger  hclog.Logger

	// current memoizes the active theme for the Resolver's lifetime.
	current func() (*Theme, error)
}

// Dirs returns the base directories the Resolver searches.
func (r *Resolver) Dirs() xdg.Dirs {
	return r.dirs
}

// Desktop returns the desktop environment name used to select settings
// files, or an empty string when unknown.
func (r *Resolver) Desktop() string {
	return string(r.desktop)
}
