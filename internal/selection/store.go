package selection

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
)

// Identifiable is implemented by resources that know their own id
type Identifiable interface {
	ResourceID() (string, bool)
}

// IDResolver extracts the id of a resource
type IDResolver[T any] func(resource T) (string, error)

// Filter decides whether the resource at index is eligible for selection
type Filter[T any] func(resource T, index int) bool

// DefaultIDResolver reads the id of Identifiable resources and of plain maps
// keyed by "id". Anything else yields an IdentityError.
func DefaultIDResolver[T any](resource T) (string, error) {
	switch r := any(resource).(type) {
	case Identifiable:
		if id, ok := r.ResourceID(); ok {
			return id, nil
		}
	case map[string]any:
		if v, ok := r["id"]; ok && v != nil {
			return fmt.Sprint(v), nil
		}
	case map[string]string:
		if v, ok := r["id"]; ok {
			return v, nil
		}
	}
	return "", &IdentityError{Resource: resource}
}

// Option configures a Store
type Option[T any] func(*Store[T])

// WithSelected seeds the store with an initial selection
func WithSelected[T any](ids ...string) Option[T] {
	return func(s *Store[T]) {
		for _, id := range ids {
			s.add(id)
		}
	}
}

// WithAllSelected seeds the all-selected flag
func WithAllSelected[T any](all bool) Option[T] {
	return func(s *Store[T]) {
		s.allSelected = all
	}
}

// WithIDResolver replaces DefaultIDResolver
func WithIDResolver[T any](resolver IDResolver[T]) Option[T] {
	return func(s *Store[T]) {
		if resolver != nil {
			s.resolve = resolver
		}
	}
}

// WithFilter restricts which resources are eligible for selection
func WithFilter[T any](filter Filter[T]) Option[T] {
	return func(s *Store[T]) {
		s.filter = filter
	}
}

// Store owns the selected ids and the all-selected flag for one list of
// resources. It is mutated only through Apply, ClearSelection and
// RemoveSelectedResources.
type Store[T any] struct {
	mu          sync.RWMutex
	resources   []T
	resolve     IDResolver[T]
	filter      Filter[T]
	ids         []string
	index       map[string]struct{}
	allSelected bool

	listeners map[int]func(Change)
	nextID    int
}

// NewStore creates a store over resources
func NewStore[T any](resources []T, opts ...Option[T]) *Store[T] {
	s := &Store[T]{
		resources: resources,
		resolve:   DefaultIDResolver[T],
		index:     make(map[string]struct{}),
		listeners: make(map[int]func(Change)),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Subscribe registers fn to run after every successful mutation.
// Returns an unsubscribe function.
func (s *Store[T]) Subscribe(fn func(Change)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.listeners[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// Apply applies a normalized instruction to the selection
func (s *Store[T]) Apply(kind Kind, selecting bool, target Target) error {
	s.mu.Lock()
	before := s.snapshotLocked()

	allSelected := s.allSelected
	if kind == All {
		allSelected = selecting
	} else if allSelected {
		allSelected = false
	}

	next, err := s.nextSelection(kind, selecting, target)
	if err != nil {
		s.mu.Unlock()
		return err
	}

	s.allSelected = allSelected
	if next != nil {
		s.replace(next)
	}
	change := Change{Op: OpApply, Kind: kind, Before: before, After: s.snapshotLocked()}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, change)
	return nil
}

// nextSelection computes the selection an instruction produces. A nil result
// with a nil error means the selected ids stay as they are.
func (s *Store[T]) nextSelection(kind Kind, selecting bool, target Target) ([]string, error) {
	switch kind {
	case Single:
		id, ok := target.AsID()
		if !ok {
			return nil, nil
		}
		if selecting {
			if s.has(id) {
				return nil, nil
			}
			return append(s.copyIDs(), id), nil
		}
		return s.without(map[string]struct{}{id: {}}), nil

	case All, Page:
		if !selecting {
			return []string{}, nil
		}
		ids := make([]string, 0, len(s.resources))
		for _, e := range s.eligible() {
			id, err := s.resolveAt(e.resource, e.index)
			if err != nil {
				return nil, err
			}
			ids = append(ids, id)
		}
		return dedupe(ids), nil

	case Multi:
		span, ok := target.AsSpan()
		if !ok {
			return nil, nil
		}
		var considered []string
		for i := span.Start; i <= span.End; i++ {
			if i < 0 || i >= len(s.resources) {
				continue
			}
			resource := s.resources[i]
			if s.filter != nil && !s.filter(resource, i) {
				continue
			}
			id, err := s.resolveAt(resource, i)
			if err != nil {
				return nil, err
			}
			considered = append(considered, id)
		}
		return s.merge(considered, selecting), nil

	case Range:
		span, ok := target.AsSpan()
		if !ok {
			return nil, nil
		}
		eligible := s.eligible()
		start := max(0, span.Start)
		end := min(len(eligible)-1, span.End)

		var inRange []string
		for i := start; i <= end; i++ {
			id, err := s.resolveAt(eligible[i].resource, eligible[i].index)
			if err != nil {
				return nil, err
			}
			inRange = append(inRange, id)
		}

		if selecting {
			return s.merge(inRange, true), nil
		}
		// Any overlap with the current selection clears the whole range.
		for _, id := range inRange {
			if s.has(id) {
				return s.merge(inRange, false), nil
			}
		}
		return nil, nil
	}
	return nil, nil
}

// ClearSelection empties the selection and resets the all-selected flag
func (s *Store[T]) ClearSelection() {
	s.mu.Lock()
	before := s.snapshotLocked()
	s.replace(nil)
	s.allSelected = false
	change := Change{Op: OpClear, Before: before, After: s.snapshotLocked()}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, change)
}

// RemoveSelectedResources drops ids from the selection, e.g. after the
// resources were deleted. The all-selected flag is cleared once the
// selection no longer covers every eligible resource.
func (s *Store[T]) RemoveSelectedResources(ids []string) {
	s.mu.Lock()
	before := s.snapshotLocked()

	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	s.replace(s.without(drop))
	if s.allSelected && len(s.ids) < len(s.eligible()) {
		s.allSelected = false
	}

	change := Change{Op: OpRemove, Before: before, After: s.snapshotLocked()}
	listeners := s.listenersLocked()
	s.mu.Unlock()

	notify(listeners, change)
}

// SelectedIDs returns the selected ids in insertion order
func (s *Store[T]) SelectedIDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyIDs()
}

// AllSelected reports whether the whole eligible collection is selected
func (s *Store[T]) AllSelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.allSelected
}

// IsSelected checks if id is selected
func (s *Store[T]) IsSelected(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.has(id)
}

// Snapshot returns a copy of the current state
func (s *Store[T]) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Resources returns the collection the store was built with
func (s *Store[T]) Resources() []T {
	return s.resources
}

// Eligible reports whether the resource at index passes the filter
func (s *Store[T]) Eligible(index int) bool {
	if index < 0 || index >= len(s.resources) {
		return false
	}
	return s.filter == nil || s.filter(s.resources[index], index)
}

// EligibleCount returns the number of resources passing the filter
func (s *Store[T]) EligibleCount() int {
	return len(s.eligible())
}

// EligibleSelected reports whether every eligible resource is selected.
// Selected ids that match no loaded resource do not count. It is false when
// no resource is eligible or an id cannot be resolved.
func (s *Store[T]) EligibleSelected() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	eligible := s.eligible()
	if len(eligible) == 0 {
		return false
	}
	for _, e := range eligible {
		id, err := s.resolveAt(e.resource, e.index)
		if err != nil || !s.has(id) {
			return false
		}
	}
	return true
}

// EligibleIndex maps a raw index to its position in the eligible
// collection. Returns -1 for ineligible rows.
func (s *Store[T]) EligibleIndex(index int) int {
	if !s.Eligible(index) {
		return -1
	}
	pos := 0
	for _, e := range s.eligible() {
		if e.index == index {
			return pos
		}
		pos++
	}
	return -1
}

// ResolveID resolves the id of the resource at index
func (s *Store[T]) ResolveID(index int) (string, error) {
	if index < 0 || index >= len(s.resources) {
		return "", errors.Errorf("selection: index %d out of range", index)
	}
	return s.resolveAt(s.resources[index], index)
}

type indexed[T any] struct {
	index    int
	resource T
}

func (s *Store[T]) eligible() []indexed[T] {
	out := make([]indexed[T], 0, len(s.resources))
	for i, r := range s.resources {
		if s.filter != nil && !s.filter(r, i) {
			continue
		}
		out = append(out, indexed[T]{index: i, resource: r})
	}
	return out
}

func (s *Store[T]) resolveAt(resource T, index int) (string, error) {
	id, err := s.resolve(resource)
	if err != nil {
		var identityErr *IdentityError
		if errors.As(err, &identityErr) {
			e := *identityErr
			e.Index = index
			return "", &e
		}
		return "", &IdentityError{Index: index, Resource: resource, Reason: err.Error()}
	}
	return id, nil
}

func (s *Store[T]) has(id string) bool {
	_, ok := s.index[id]
	return ok
}

func (s *Store[T]) add(id string) {
	if s.has(id) {
		return
	}
	s.index[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *Store[T]) replace(ids []string) {
	s.ids = nil
	s.index = make(map[string]struct{}, len(ids))
	for _, id := range ids {
		s.add(id)
	}
}

func (s *Store[T]) copyIDs() []string {
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}

func (s *Store[T]) without(drop map[string]struct{}) []string {
	out := make([]string, 0, len(s.ids))
	for _, id := range s.ids {
		if _, ok := drop[id]; !ok {
			out = append(out, id)
		}
	}
	return out
}

// merge adds ids when selecting and removes them otherwise
func (s *Store[T]) merge(ids []string, selecting bool) []string {
	if !selecting {
		drop := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			drop[id] = struct{}{}
		}
		return s.without(drop)
	}
	out := s.copyIDs()
	for _, id := range ids {
		if !s.has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (s *Store[T]) snapshotLocked() Snapshot {
	return Snapshot{SelectedIDs: s.copyIDs(), AllSelected: s.allSelected}
}

func (s *Store[T]) listenersLocked() []func(Change) {
	out := make([]func(Change), 0, len(s.listeners))
	for i := 0; i < s.nextID; i++ {
		if fn, ok := s.listeners[i]; ok {
			out = append(out, fn)
		}
	}
	return out
}

func notify(listeners []func(Change), change Change) {
	for _, fn := range listeners {
		fn(change)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
