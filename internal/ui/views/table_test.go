package views

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"gridpick/internal/domain"
	"gridpick/internal/selection"
)

func TestCheckbox(t *testing.T) {
	assert.Equal(t, "[x]", Checkbox(selection.Checked))
	assert.Equal(t, "[-]", Checkbox(selection.Indeterminate))
	assert.Equal(t, "[ ]", Checkbox(selection.Unchecked))
}

func TestRenderRowShowsCursorAndSelection(t *testing.T) {
	resources := []domain.Resource{{"id": "a", "title": "Alpha"}}
	r := NewTableRenderer(NewStyles(), []string{"id", "title"}, resources)

	line := r.RenderRow(Row{Resource: resources[0], Selected: true, Eligible: true, Cursor: true})

	assert.True(t, strings.Contains(line, "> "))
	assert.Contains(t, line, "[x]")
	assert.Contains(t, line, "Alpha")
}

func TestRenderRowHidesCheckboxForIneligibleRows(t *testing.T) {
	resources := []domain.Resource{{"id": "a"}}
	r := NewTableRenderer(NewStyles(), []string{"id"}, resources)

	line := r.RenderRow(Row{Resource: resources[0], Eligible: false})

	assert.NotContains(t, line, "[")
}

func TestLongCellsAreTruncated(t *testing.T) {
	long := strings.Repeat("x", 60)
	resources := []domain.Resource{{"id": long}}
	r := NewTableRenderer(NewStyles(), []string{"id"}, resources)

	line := r.RenderRow(Row{Resource: resources[0], Eligible: true})

	assert.Contains(t, line, "…")
	assert.NotContains(t, line, long)
}
