package selection

// Controller is the handle a list view holds: a BulkHandler in front of a
// Store.
type Controller[T any] struct {
	*Store[T]
	bulk *BulkHandler
}

// New creates a controller over resources
func New[T any](resources []T, opts ...Option[T]) *Controller[T] {
	store := NewStore(resources, opts...)
	return &Controller[T]{
		Store: store,
		bulk:  NewBulkHandler(store),
	}
}

// Handle applies a raw gesture
func (c *Controller[T]) Handle(g Gesture) error {
	return c.bulk.Handle(g)
}

// Select is shorthand for a gesture without a sort order
func (c *Controller[T]) Select(kind Kind, selecting bool, target Target) error {
	return c.Handle(Gesture{Kind: kind, Selecting: selecting, Target: target})
}

// Anchor returns the row of the last Multi gesture
func (c *Controller[T]) Anchor() (int, bool) {
	return c.bulk.Anchor()
}
