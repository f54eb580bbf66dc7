package icontheme

import (
	"slices"
	"testing"
)

func TestLoadMetadata(t *testing.T) {
	f := newFixture(t)

	t.Run("parses all fields", func(t *testing.T) {
		root := f.writeTheme(f.system(0), "Full", `[Icon Theme]
Name=Full Theme
Comment=Everything declared
Inherits=Adwaita, hicolor,
DesktopDefault=32
Directories=16x16/apps,32x32/apps,32x32@2/apps,scalable/apps,orphan

[16x16/apps]
Size=16
Context=Applications

[32x32/apps]
Size=32
Type=Fixed

[32x32@2/apps]
Size=32
Scale=2

[scalable/apps]
Size=64
MinSize=8
MaxSize=512
Type=Scalable
`)

		m := LoadMetadata(root)

		if m.DisplayName != "Full Theme" {
			t.Errorf("DisplayName = %q", m.DisplayName)
		}
		if want := []string{"Adwaita", "hicolor"}; !slices.Equal(m.Inherits, want) {
			t.Errorf("Inherits = %v, want %v", m.Inherits, want)
		}
		if size, ok := m.DefaultSize(); !ok || size != 32 {
			t.Errorf("DefaultSize() = %d, %v; want 32, true", size, ok)
		}

		want := []struct {
			name  string
			size  int
			scale int
		}{
			{"16x16/apps", 16, 1},
			{"32x32/apps", 32, 1},
			{"32x32@2/apps", 32, 2},
			{"scalable/apps", 64, 1},
			{"orphan", 0, 1},
		}
		if len(m.Directories) != len(want) {
			t.Fatalf("got %d directories, want %d", len(m.Directories), len(want))
		}
		for i, w := range want {
			d := m.Directories[i]
			if d.Name != w.name || d.Size != w.size || d.Scale != w.scale {
				t.Errorf("Directories[%d] = %s %d@%d, want %s %d@%d", i, d.Name, d.Size, d.Scale, w.name, w.size, w.scale)
			}
		}

		scalable := m.Directories[3]
		if scalable.Type != "Scalable" || scalable.MinSize != 8 || scalable.MaxSize != 512 {
			t.Errorf("scalable directory = %+v", scalable)
		}
		if m.Directories[0].Context != "Applications" {
			t.Errorf("Context = %q", m.Directories[0].Context)
		}
	})

	t.Run("unparseable integers use defaults", func(t *testing.T) {
		root := f.writeTheme(f.system(0), "Broken", `[Icon Theme]
DesktopDefault=large
Directories=48x48/apps

[48x48/apps]
Size=forty-eight
Scale=double
`)

		m := LoadMetadata(root)

		if _, ok := m.DefaultSize(); ok {
			t.Error("expected no default size for unparseable DesktopDefault")
		}
		if len(m.Directories) != 1 {
			t.Fatalf("got %d directories, want 1", len(m.Directories))
		}
		if d := m.Directories[0]; d.Size != 0 || d.Scale != 1 {
			t.Errorf("directory = %d@%d, want 0@1", d.Size, d.Scale)
		}
	})

	t.Run("zero desktop default is present", func(t *testing.T) {
		zero := LoadMetadata(f.writeTheme(f.system(0), "Zero", "[Icon Theme]\nDesktopDefault=0\n"))
		if size, ok := zero.DefaultSize(); !ok || size != 0 {
			t.Errorf("DefaultSize() = %d, %v; want 0, true", size, ok)
		}

		negative := LoadMetadata(f.writeTheme(f.system(0), "Negative", "[Icon Theme]\nDesktopDefault=-16\n"))
		if _, ok := negative.DefaultSize(); ok {
			t.Error("expected no default size for a negative DesktopDefault")
		}
	})

	t.Run("leaf theme has no inheritance", func(t *testing.T) {
		root := f.writeTheme(f.system(0), "Leaf", "[Icon Theme]\nName=Leaf\n")

		m := LoadMetadata(root)

		if len(m.Inherits) != 0 {
			t.Errorf("Inherits = %v, want none", m.Inherits)
		}
		if len(m.Directories) != 0 {
			t.Errorf("Directories = %v, want none", m.Directories)
		}
		if _, ok := m.DefaultSize(); ok {
			t.Error("expected no default size")
		}
	})

	t.Run("malformed descriptor is empty", func(t *testing.T) {
		root := f.writeTheme(f.system(0), "Malformed", "[Icon Theme\nInherits=hicolor\n")

		m := LoadMetadata(root)

		if len(m.Inherits) != 0 || len(m.Directories) != 0 || m.DisplayName != "" {
			t.Errorf("expected empty metadata, got %+v", m)
		}
	})

	t.Run("missing section is empty", func(t *testing.T) {
		root := f.writeTheme(f.system(0), "NoSection", "[Something Else]\nInherits=hicolor\n")

		if m := LoadMetadata(root); len(m.Inherits) != 0 {
			t.Errorf("expected empty metadata, got %+v", m)
		}
	})

	t.Run("missing descriptor is empty", func(t *testing.T) {
		m := LoadMetadata(f.mkdir(f.system(1), "icons", "Nothing"))

		if len(m.Inherits) != 0 || len(m.Directories) != 0 {
			t.Errorf("expected empty metadata, got %+v", m)
		}
	})
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"hicolor", []string{"hicolor"}},
		{"a,b,c", []string{"a", "b", "c"}},
		{" a , ,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		if got := splitList(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitList(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
