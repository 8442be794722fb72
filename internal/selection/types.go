package selection

import (
	"fmt"
	"strings"
)

// Kind identifies the gesture that produced a selection change
type Kind int

const (
	Single Kind = iota + 1
	Multi
	Page
	All
	Range
)

var kindNames = map[Kind]string{
	Single: "single",
	Multi:  "multi",
	Page:   "page",
	All:    "all",
	Range:  "range",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// ParseKind maps a gesture name such as "multi" to its Kind
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Span is an inclusive index range. Start is never greater than End when
// produced by the bulk handler, but callers may pass any pair.
type Span struct {
	Start int
	End   int
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

type targetKind uint8

const (
	targetNone targetKind = iota
	targetID
	targetSpan
)

// Target is the payload of a gesture: nothing, a single resource id, or an
// index span. The variant is fixed when the target is built.
type Target struct {
	kind targetKind
	id   string
	span Span
}

// None is the empty payload used by Page and All gestures
func None() Target { return Target{} }

// ID targets a single resource
func ID(id string) Target { return Target{kind: targetID, id: id} }

// Over targets the inclusive index span [start, end]
func Over(start, end int) Target {
	return Target{kind: targetSpan, span: Span{Start: start, End: end}}
}

// AsID returns the resource id carried by the target
func (t Target) AsID() (string, bool) {
	return t.id, t.kind == targetID
}

// AsSpan returns the index span carried by the target
func (t Target) AsSpan() (Span, bool) {
	return t.span, t.kind == targetSpan
}

// IsNone reports whether the target carries no payload
func (t Target) IsNone() bool { return t.kind == targetNone }

func (t Target) String() string {
	switch t.kind {
	case targetID:
		return t.id
	case targetSpan:
		return t.span.String()
	default:
		return "-"
	}
}

// Snapshot is an immutable copy of the selection state
type Snapshot struct {
	SelectedIDs []string
	AllSelected bool
}

// Count returns the number of selected ids
func (s Snapshot) Count() int { return len(s.SelectedIDs) }

// Has reports whether id is selected
func (s Snapshot) Has(id string) bool {
	for _, selected := range s.SelectedIDs {
		if selected == id {
			return true
		}
	}
	return false
}

// Op names the store operation behind a Change
type Op string

const (
	OpApply  Op = "apply"
	OpClear  Op = "clear"
	OpRemove Op = "remove"
)

// Change is delivered to subscribers after every successful mutation
type Change struct {
	Op     Op
	Kind   Kind // only set for OpApply
	Before Snapshot
	After  Snapshot
}

// Diff returns the ids added and removed between Before and After
func (c Change) Diff() (added, removed []string) {
	before := make(map[string]struct{}, len(c.Before.SelectedIDs))
	for _, id := range c.Before.SelectedIDs {
		before[id] = struct{}{}
	}
	after := make(map[string]struct{}, len(c.After.SelectedIDs))
	for _, id := range c.After.SelectedIDs {
		after[id] = struct{}{}
		if _, ok := before[id]; !ok {
			added = append(added, id)
		}
	}
	for _, id := range c.Before.SelectedIDs {
		if _, ok := after[id]; !ok {
			removed = append(removed, id)
		}
	}
	return added, removed
}
