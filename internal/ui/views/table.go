package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"gridpick/internal/domain"
	"gridpick/internal/selection"
)

const maxColumnWidth = 28

// Row is everything the table needs to draw one resource
type Row struct {
	Resource domain.Resource
	Selected bool
	Eligible bool
	Cursor   bool
	InVisual bool
}

// TableRenderer draws resources as aligned columns
type TableRenderer struct {
	styles  *Styles
	columns []string
	widths  []int
}

// NewTableRenderer sizes columns from the full resource list so widths stay
// stable while paging
func NewTableRenderer(styles *Styles, columns []string, resources []domain.Resource) *TableRenderer {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = lipgloss.Width(col)
		for _, r := range resources {
			v, _ := r.FieldString(col)
			if w := lipgloss.Width(v); w > widths[i] {
				widths[i] = w
			}
		}
		widths[i] = min(widths[i], maxColumnWidth)
	}
	return &TableRenderer{styles: styles, columns: columns, widths: widths}
}

// Checkbox renders a bulk or row checkbox
func Checkbox(state selection.BulkState) string {
	switch state {
	case selection.Checked:
		return "[x]"
	case selection.Indeterminate:
		return "[-]"
	default:
		return "[ ]"
	}
}

// RenderHeader renders the column titles
func (t *TableRenderer) RenderHeader() string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = t.cell(strings.ToUpper(col), i)
	}
	return t.styles.Header.Render("      " + strings.Join(cells, "  "))
}

// RenderRow renders a single resource line
func (t *TableRenderer) RenderRow(row Row) string {
	marker := "  "
	if row.Cursor {
		marker = "> "
	}

	box := Checkbox(selection.Unchecked)
	if row.Selected {
		box = t.styles.Checked.Render(Checkbox(selection.Checked))
	}
	if !row.Eligible {
		box = "   "
	}

	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		v, _ := row.Resource.FieldString(col)
		cells[i] = t.cell(v, i)
	}

	line := marker + box + " " + strings.Join(cells, "  ")
	switch {
	case !row.Eligible:
		line = t.styles.Dim.Render(line)
	case row.Cursor:
		line = t.styles.Cursor.Render(line)
	case row.InVisual:
		line = t.styles.Visual.Render(line)
	}
	return line
}

func (t *TableRenderer) cell(text string, col int) string {
	w := t.widths[col]
	if lipgloss.Width(text) > w {
		runes := []rune(text)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > w {
			runes = runes[:len(runes)-1]
		}
		text = string(runes) + "…"
	}
	return lipgloss.NewStyle().Width(w).Render(text)
}
