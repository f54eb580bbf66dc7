package icontheme

import (
	"path/filepath"
)

// Extensions are the icon formats probed, in order of preference.
var Extensions = []string{"svg", "png", "xpm"}

// DirectoriesFor returns the theme directories declared for exactly the
// given size and scale, in declaration order. When the user has a
// same-named directory under their personal copy of this theme
// (<data-home>/icons/<theme>/<dir>) it is returned before the installed one.
func (t *Theme) DirectoriesFor(size, scale int) []string {
	overlayRoot := ""
	if home := t.r.dirs.IconsHome(); home != "" {
		overlayRoot = filepath.Join(home, t.Name)
	}

	var dirs []string
	for _, d := range t.Directories {
		if d.Size != size || d.Scale != scale {
			continue
		}

		system := filepath.Join(t.Path, d.Name)
		if overlayRoot != "" {
			overlay := filepath.Join(overlayRoot, d.Name)
			if overlay != system && isDir(overlay) {
				dirs = append(dirs, overlay)
			}
		}
		dirs = append(dirs, system)
	}

	return dirs
}

// SearchSize is the size Get looks up: the theme's declared default size,
// or DefaultIconSize.
func (t *Theme) SearchSize() int {
	if size, ok := t.DefaultSize(); ok {
		return size
	}
	return DefaultIconSize
}

// Get looks up an icon at the theme's default size.
// See GetWithSize.
func (t *Theme) Get(icon string) (string, bool) {
	return t.lookup(icon, t.SearchSize(), 1)
}

// GetWithSize looks up an icon at the given size. The theme and its
// ancestors are searched in ResolutionOrder, probing SVG, PNG and then XPM
// in each matching directory. When no theme provides the icon the pixmap
// directories are searched. A missing icon is reported as not found.
func (t *Theme) GetWithSize(icon string, size int) (string, bool) {
	return t.lookup(icon, size, 1)
}

func (t *Theme) lookup(icon string, size, scale int) (string, bool) {
	if !validName(icon) {
		return "", false
	}

	for _, theme := range t.ResolutionOrder() {
		for _, dir := range theme.DirectoriesFor(size, scale) {
			if path, ok := t.r.probe(dir, icon); ok {
				t.r.logger.Debug("icon found", "icon", icon, "theme", theme.Name, "path", path)
				return path, true
			}
		}
	}

	if path, ok := t.r.Pixmap(icon); ok {
		return path, true
	}

	t.r.logger.Debug("icon not found", "icon", icon, "theme", t.Name, "size", size, "scale", scale)
	return "", false
}

// Pixmap looks up an icon in the legacy <data-dir>/pixmaps directories,
// which hold unsized icons.
func (r *Resolver) Pixmap(icon string) (string, bool) {
	if !validName(icon) {
		return "", false
	}

	for _, base := range r.dirs.BaseDirectories() {
		dir := filepath.Join(base, "pixmaps")
		if !isDir(dir) {
			continue
		}
		if path, ok := r.probe(dir, icon); ok {
			r.logger.Debug("icon found in pixmaps", "icon", icon, "path", path)
			return path, true
		}
	}

	return "", false
}

// probe returns the first existing <dir>/<icon>.<ext>.
func (r *Resolver) probe(dir, icon string) (string, bool) {
	for _, ext := range Extensions {
		path := filepath.Join(dir, icon+"."+ext)
		r.logger.Trace("probing", "path", path)
		if isFile(path) {
			return path, true
		}
	}
	return "", false
}
