package icontheme

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/galister/freedesktop/internal/desktop"
)

// settingsSource is a settings file holding the active icon theme name.
type settingsSource struct {
	path    string
	section string
	key     string
}

// Current returns the active icon theme. The theme named by the first
// settings file that exists, parses and has the icon theme key is used;
// otherwise, or when that theme is not installed, the hicolor theme is used.
// ErrFallbackThemeMissing is returned when hicolor itself is not installed.
//
// The result is computed once; later calls return the same value even if
// the settings files change.
func (r *Resolver) Current() (*Theme, error) {
	return r.current()
}

func (r *Resolver) resolveCurrent() (*Theme, error) {
	for _, src := range r.settingsSources() {
		name, ok := src.read()
		if !ok {
			continue
		}

		if theme, ok := r.ThemeByName(name); ok {
			r.logger.Debug("using configured icon theme", "theme", name, "settings", src.path)
			return theme, nil
		}

		r.logger.Warn("configured icon theme is not installed, using fallback",
			"theme", name, "settings", src.path, "fallback", FallbackTheme)
		break
	}

	theme, ok := r.ThemeByName(FallbackTheme)
	if !ok {
		return nil, fmt.Errorf("%w: %s not found in %v", ErrFallbackThemeMissing, FallbackTheme, r.iconRoots())
	}
	return theme, nil
}

// settingsSources lists the settings files in priority order: KDE's
// kdeglobals on a KDE desktop, then GTK 4 before GTK 3 in the config
// directory and then in the home directory.
func (r *Resolver) settingsSources() []settingsSource {
	var sources []settingsSource

	configHome := r.dirs.ConfigHome
	if r.desktop == desktop.KDE && configHome != "" {
		sources = append(sources, settingsSource{
			path:    filepath.Join(configHome, "kdeglobals"),
			section: "Icons",
			key:     "Theme",
		})
	}

	var roots []string
	if configHome != "" {
		roots = append(roots, configHome)
	}
	if r.dirs.Home != "" {
		roots = append(roots, r.dirs.Home)
	}

	for _, root := range roots {
		for _, gtk := range []string{"gtk-4.0", "gtk-3.0"} {
			sources = append(sources, settingsSource{
				path:    filepath.Join(root, gtk, "settings.ini"),
				section: "Settings",
				key:     "gtk-icon-theme-name",
			})
		}
	}

	return sources
}

// read returns the configured theme name, if the file provides one.
func (s settingsSource) read() (string, bool) {
	if !isFile(s.path) {
		return "", false
	}

	cfg, err := loadINI(s.path)
	if err != nil {
		return "", false
	}

	sec, err := cfg.GetSection(s.section)
	if err != nil || !sec.HasKey(s.key) {
		return "", false
	}

	name := strings.TrimSpace(sec.Key(s.key).String())
	return name, name != ""
}
