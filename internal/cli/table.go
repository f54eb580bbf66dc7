package cli

import (
	"io"
	"strings"
)

const columnGap = "  "

// Table renders rows either aligned for a terminal or tab-separated for
// scripts.
type Table struct {
	headers   []string
	rows      [][]string
	maxWidths map[int]int

	// Plain renders rows as tab-separated values without a header.
	Plain bool
}

// NewTable creates a new table with the given headers.
func NewTable(headers ...string) *Table {
	return &Table{
		headers:   headers,
		maxWidths: make(map[int]int),
	}
}

// SetColumnMaxWidth wraps cells of a column at word boundaries.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AddRow adds a row, padding or truncating it to the header count.
func (t *Table) AddRow(cells ...string) {
	row := make([]string, len(t.headers))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Render formats the table as a string.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	var b strings.Builder
	if t.Plain {
		for _, row := range t.rows {
			b.WriteString(strings.Join(row, "\t"))
			b.WriteByte('\n')
		}
		return b.String()
	}

	cells := make([][][]string, len(t.rows))
	for i, row := range t.rows {
		cells[i] = make([][]string, len(row))
		for col, cell := range row {
			cells[i][col] = wrapText(cell, t.maxWidths[col])
		}
	}

	widths := make([]int, len(t.headers))
	for col, h := range t.headers {
		widths[col] = len(h)
	}
	for _, row := range cells {
		for col, lines := range row {
			for _, line := range lines {
				widths[col] = max(widths[col], len(line))
			}
		}
	}

	writeLine := func(parts []string) {
		padded := make([]string, len(parts))
		for col, p := range parts {
			padded[col] = padRight(p, widths[col])
		}
		b.WriteString(strings.TrimRight(strings.Join(padded, columnGap), " "))
		b.WriteByte('\n')
	}

	writeLine(t.headers)
	rule := make([]string, len(widths))
	for col, w := range widths {
		rule[col] = strings.Repeat("-", w)
	}
	writeLine(rule)

	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for n := range height {
			parts := make([]string, len(row))
			for col, lines := range row {
				if n < len(lines) {
					parts[col] = lines[n]
				}
			}
			writeLine(parts)
		}
	}

	return b.String()
}

// WriteTo writes the rendered table to w.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Render())
	return int64(n), err
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// wrapText breaks text at word boundaries so no line exceeds width. Words
// longer than width are split. A width of zero disables wrapping.
func wrapText(text string, width int) []string {
	if width <= 0 || len(text) <= width {
		return []string{text}
	}

	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		for len(word) > width {
			if line != "" {
				lines = append(lines, line)
				line = ""
			}
			lines = append(lines, word[:width])
			word = word[width:]
		}

		switch {
		case line == "":
			line = word
		case len(line)+1+len(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}

	return lines
}
