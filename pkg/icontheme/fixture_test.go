package icontheme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/galister/freedesktop/pkg/xdg"
)

// fixture is a fake filesystem layout with a home directory and two
// system data directories.
type fixture struct {
	t    *testing.T
	dirs xdg.Dirs
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	root := t.TempDir()
	home := filepath.Join(root, "home")

	return &fixture{
		t: t,
		dirs: xdg.Dirs{
			Home:       home,
			DataHome:   filepath.Join(home, ".local", "share"),
			ConfigHome: filepath.Join(home, ".config"),
			DataDirs: []string{
				filepath.Join(root, "usr", "local", "share"),
				filepath.Join(root, "usr", "share"),
			},
		},
	}
}

func (f *fixture) resolver() *Resolver {
	return NewBuilder().WithDirs(f.dirs).Build()
}

// system returns the n-th system data directory.
func (f *fixture) system(n int) string {
	return f.dirs.DataDirs[n]
}

// writeTheme writes <base>/icons/<name>/index.theme and returns the theme root.
func (f *fixture) writeTheme(base, name, descriptor string) string {
	f.t.Helper()
	root := filepath.Join(base, "icons", name)
	f.write(filepath.Join(root, DescriptorName), descriptor)
	return root
}

// touch creates an empty file, creating parent directories as needed.
func (f *fixture) touch(parts ...string) string {
	f.t.Helper()
	path := filepath.Join(parts...)
	f.write(path, "")
	return path
}

func (f *fixture) mkdir(parts ...string) string {
	f.t.Helper()
	path := filepath.Join(parts...)
	if err := os.MkdirAll(path, 0o755); err != nil {
		f.t.Fatalf("failed to create %s: %v", path, err)
	}
	return path
}

func (f *fixture) write(path, content string) {
	f.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		f.t.Fatalf("failed to create dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		f.t.Fatalf("failed to write %s: %v", path, err)
	}
}

// hicolorDescriptor declares the usual 48x48 and 32x32 application buckets.
const hicolorDescriptor = `[Icon Theme]
Name=Hicolor
Comment=Fallback icon theme
Hidden=true
Directories=48x48/apps,32x32/apps,48x48@2/apps

[48x48/apps]
Size=48
Context=Applications
Type=Threshold

[32x32/apps]
Size=32
Context=Applications
Type=Threshold

[48x48@2/apps]
Size=48
Scale=2
Context=Applications
Type=Threshold
`

// inheritingDescriptor returns a descriptor with the given Inherits value
// and a single 48x48/apps bucket.
func inheritingDescriptor(inherits string) string {
	return `[Icon Theme]
Name=Test
Inherits=` + inherits + `
Directories=48x48/apps

[48x48/apps]
Size=48
`
}

func themeNames(themes []*Theme) []string {
	names := make([]string, 0, len(themes))
	for _, t := range themes {
		names = append(names, t.Name)
	}
	return names
}
