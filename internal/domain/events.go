package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSelectionChanged EventType = "SelectionChanged"
	EventSelectionCleared EventType = "SelectionCleared"
	EventResourcesRemoved EventType = "ResourcesRemoved"
	EventResourcesLoaded  EventType = "ResourcesLoaded"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
	EventError            EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SelectionChangedEvent is emitted after a gesture changed the selection
type SelectionChangedEvent struct {
	Gesture     string
	Added       []string
	Removed     []string
	Total       int
	AllSelected bool
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// SelectionClearedEvent is emitted when the selection is reset
type SelectionClearedEvent struct{}

func (e SelectionClearedEvent) Type() EventType { return EventSelectionCleared }

// ResourcesRemovedEvent is emitted when resources are dropped from the table
type ResourcesRemovedEvent struct {
	IDs []string
}

func (e ResourcesRemovedEvent) Type() EventType { return EventResourcesRemoved }

// ResourcesLoadedEvent is emitted once a resource file has been read
type ResourcesLoadedEvent struct {
	Source string
	Count  int
}

func (e ResourcesLoadedEvent) Type() EventType { return EventResourcesLoaded }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
