package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	orders := ResourceName{Singular: "order", Plural: "orders"}

	tests := []struct {
		name  string
		in    SummaryInput
		state BulkState
		label string
		a11y  string
		text  string
	}{
		{
			name:  "nothing selected",
			in:    SummaryInput{ItemCount: 5},
			state: Unchecked,
			label: "0 selected",
			a11y:  "Select all Items",
		},
		{
			name:  "partial selection",
			in:    SummaryInput{SelectedCount: 2, ItemCount: 5, ResourceName: orders},
			state: Indeterminate,
			label: "2 selected",
			a11y:  "Select all orders",
		},
		{
			name:  "every row selected",
			in:    SummaryInput{SelectedCount: 5, ItemCount: 5, ResourceName: orders},
			state: Checked,
			label: "5 selected",
			a11y:  "Deselect all orders",
		},
		{
			name:  "single item",
			in:    SummaryInput{SelectedCount: 1, ItemCount: 1, ResourceName: orders},
			state: Checked,
			label: "1 selected",
			a11y:  "Deselect order",
		},
		{
			name:  "single item unselected",
			in:    SummaryInput{ItemCount: 1, ResourceName: orders},
			state: Unchecked,
			label: "0 selected",
			a11y:  "Select order",
		},
		{
			name:  "all selected across pages",
			in:    SummaryInput{SelectedCount: 3, AllSelected: true, ItemCount: 50, HasMoreItems: true, ResourceName: orders},
			state: Checked,
			label: "50+ selected",
			a11y:  "Select all orders",
			text:  "All 50+ orders are selected",
		},
		{
			name:  "custom paginated text",
			in:    SummaryInput{AllSelected: true, ItemCount: 50, HasMoreItems: true, PaginatedSelectAllText: "Everything"},
			state: Checked,
			label: "50+ selected",
			a11y:  "Select all Items",
			text:  "Everything",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Summarize(tt.in)
			assert.Equal(t, tt.state, got.BulkState)
			assert.Equal(t, tt.label, got.ActionsLabel)
			assert.Equal(t, tt.a11y, got.AccessibilityLabel)
			assert.Equal(t, tt.text, got.PaginatedSelectAllText)
		})
	}
}
