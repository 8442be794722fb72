package selection

// Applier receives normalized selection instructions
type Applier interface {
	Apply(kind Kind, selecting bool, target Target) error
}

// Gesture is a raw selection action coming from the UI
type Gesture struct {
	Kind      Kind
	Selecting bool
	Target    Target
	// SortOrder is the row index that triggered the gesture. It only
	// matters for Multi gestures and is ignored unless HasSortOrder is set.
	SortOrder    int
	HasSortOrder bool
}

// At returns a copy of the gesture triggered from row
func (g Gesture) At(row int) Gesture {
	g.SortOrder = row
	g.HasSortOrder = true
	return g
}

// Instruction is a gesture after range resolution
type Instruction struct {
	Kind      Kind
	Selecting bool
	Target    Target
}

// BulkHandler turns shift-click style gestures into contiguous ranges. It
// remembers the row of the last Multi gesture as the anchor for the next one.
// A BulkHandler is meant to be driven from a single goroutine.
type BulkHandler struct {
	next      Applier
	anchor    int
	hasAnchor bool
}

// NewBulkHandler creates a handler forwarding to next
func NewBulkHandler(next Applier) *BulkHandler {
	if next == nil {
		panic("selection: BulkHandler requires an Applier")
	}
	return &BulkHandler{next: next}
}

// Anchor returns the last Multi row, if any
func (h *BulkHandler) Anchor() (int, bool) {
	return h.anchor, h.hasAnchor
}

// Normalize resolves g into an instruction and updates the anchor. The
// second result is false for gestures of unknown kind.
func (h *BulkHandler) Normalize(g Gesture) (Instruction, bool) {
	prev, hadPrev := h.anchor, h.hasAnchor

	if g.Kind == Multi && g.HasSortOrder {
		h.anchor = g.SortOrder
		h.hasAnchor = true
	}

	switch {
	case g.Kind == Single || (g.Kind == Multi && (!hadPrev || !g.HasSortOrder)):
		return Instruction{Kind: Single, Selecting: g.Selecting, Target: g.Target}, true
	case g.Kind == Multi:
		lo, hi := min(prev, g.SortOrder), max(prev, g.SortOrder)
		return Instruction{Kind: Multi, Selecting: g.Selecting, Target: Over(lo, hi)}, true
	case g.Kind == Page || g.Kind == All:
		return Instruction{Kind: g.Kind, Selecting: g.Selecting, Target: None()}, true
	case g.Kind == Range:
		return Instruction{Kind: Range, Selecting: g.Selecting, Target: g.Target}, true
	}
	return Instruction{}, false
}

// Handle normalizes g and forwards the result
func (h *BulkHandler) Handle(g Gesture) error {
	in, ok := h.Normalize(g)
	if !ok {
		return nil
	}
	return h.next.Apply(in.Kind, in.Selecting, in.Target)
}
