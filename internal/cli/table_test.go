package cli

import (
	"bytes"
	"slices"
	"strings"
	"testing"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable("THEME", "PATH")

	table.AddRow("hicolor", "/usr/share/icons/hicolor")
	table.AddRow("Papirus")
	table.AddRow("Adwaita", "/usr/share/icons/Adwaita", "extra")

	if table.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", table.Len())
	}
	if got := table.rows[1]; !slices.Equal(got, []string{"Papirus", ""}) {
		t.Errorf("short row = %q, want padded", got)
	}
	if got := table.rows[2]; len(got) != 2 {
		t.Errorf("long row has %d cells, want 2", len(got))
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable("THEME", "SIZE")
	table.AddRow("hicolor", "48")
	table.AddRow("Papirus-Dark", "24")

	want := strings.Join([]string{
		"THEME         SIZE",
		"------------  ----",
		"hicolor       48",
		"Papirus-Dark  24",
		"",
	}, "\n")

	if got := table.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableRenderPlain(t *testing.T) {
	table := NewTable("THEME", "PATH")
	table.AddRow("hicolor", "/usr/share/icons/hicolor")
	table.AddRow("Papirus", "/home/user/.local/share/icons/Papirus")
	table.Plain = true

	var buf bytes.Buffer
	if _, err := table.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo() error = %v", err)
	}

	want := "hicolor\t/usr/share/icons/hicolor\nPapirus\t/home/user/.local/share/icons/Papirus\n"
	if buf.String() != want {
		t.Errorf("plain output = %q, want %q", buf.String(), want)
	}
}

func TestTableRenderWrapsColumns(t *testing.T) {
	table := NewTable("THEME", "COMMENT")
	table.SetColumnMaxWidth(1, 10)
	table.AddRow("Breeze", "Default KDE icon theme")

	lines := strings.Split(strings.TrimSuffix(table.Render(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5:\n%s", len(lines), strings.Join(lines, "\n"))
	}
	for _, line := range lines[2:] {
		if len(line) > len("THEME   ")+10 {
			t.Errorf("line %q exceeds the wrapped width", line)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"anything goes", 0, []string{"anything goes"}},
		{"Default KDE icon theme", 10, []string{"Default", "KDE icon", "theme"}},
		{"abcdefghijkl", 5, []string{"abcde", "fghij", "kl"}},
	}

	for _, tt := range tests {
		if got := wrapText(tt.text, tt.width); !slices.Equal(got, tt.want) {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
