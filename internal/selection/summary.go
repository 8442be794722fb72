package selection

import "fmt"

// BulkState is the tri-state of a select-all checkbox
type BulkState int

const (
	Unchecked BulkState = iota
	Indeterminate
	Checked
)

func (b BulkState) String() string {
	switch b {
	case Checked:
		return "checked"
	case Indeterminate:
		return "indeterminate"
	default:
		return "unchecked"
	}
}

// ResourceName is the singular/plural noun used in labels
type ResourceName struct {
	Singular string
	Plural   string
}

// DefaultResourceName is used when no name is configured
var DefaultResourceName = ResourceName{Singular: "Item", Plural: "Items"}

// SummaryInput describes the selection as seen by a bulk-actions header
type SummaryInput struct {
	SelectedCount int
	AllSelected   bool
	ItemCount     int
	// HasMoreItems is set when the loaded page is only part of the collection.
	HasMoreItems           bool
	ResourceName           ResourceName
	PaginatedSelectAllText string
}

// Summary holds the derived labels and checkbox state
type Summary struct {
	Selectable             bool
	SelectMode             bool
	BulkState              BulkState
	ActionsLabel           string
	AccessibilityLabel     string
	PaginatedSelectAllText string
	ResourceName           ResourceName
}

// Summarize derives header labels from a selection
func Summarize(in SummaryInput) Summary {
	name := in.ResourceName
	if name.Singular == "" || name.Plural == "" {
		name = DefaultResourceName
	}

	selected := in.AllSelected || in.SelectedCount > 0
	out := Summary{
		Selectable:   selected,
		SelectMode:   selected,
		ResourceName: name,
	}

	switch {
	case !selected:
		out.BulkState = Unchecked
	case in.AllSelected || in.SelectedCount == in.ItemCount:
		out.BulkState = Checked
	default:
		out.BulkState = Indeterminate
	}

	count := fmt.Sprintf("%d", in.SelectedCount)
	if in.AllSelected && in.HasMoreItems {
		count = fmt.Sprintf("%d+", in.ItemCount)
	}
	out.ActionsLabel = count + " selected"

	allChecked := in.SelectedCount == in.ItemCount
	switch {
	case in.ItemCount == 1 && allChecked:
		out.AccessibilityLabel = "Deselect " + name.Singular
	case in.ItemCount == 1:
		out.AccessibilityLabel = "Select " + name.Singular
	case allChecked:
		out.AccessibilityLabel = "Deselect all " + name.Plural
	default:
		out.AccessibilityLabel = "Select all " + name.Plural
	}

	if selected && in.HasMoreItems && in.AllSelected {
		if in.PaginatedSelectAllText != "" {
			out.PaginatedSelectAllText = in.PaginatedSelectAllText
		} else {
			out.PaginatedSelectAllText = fmt.Sprintf("All %d+ %s are selected", in.ItemCount, name.Plural)
		}
	}

	return out
}

// Summary derives header labels for the controller's current state
func (c *Controller[T]) Summary(name ResourceName, hasMore bool, paginatedText string) Summary {
	snap := c.Snapshot()
	return Summarize(SummaryInput{
		SelectedCount:          snap.Count(),
		AllSelected:            snap.AllSelected,
		ItemCount:              c.EligibleCount(),
		HasMoreItems:           hasMore,
		ResourceName:           name,
		PaginatedSelectAllText: paginatedText,
	})
}
