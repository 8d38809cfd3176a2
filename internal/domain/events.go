package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventFavoritesChanged EventType = "FavoritesChanged"
	EventThemeChanged     EventType = "ThemeChanged"
	EventLookupFailed     EventType = "LookupFailed"
	EventConfigLoaded     EventType = "ConfigLoaded"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// FavoritesChangedEvent is emitted after the persisted favorites set was written
type FavoritesChangedEvent struct {
	ProductID string
	Added     bool
	Count     int
}

func (e FavoritesChangedEvent) Type() EventType { return EventFavoritesChanged }

// ThemeChangedEvent is emitted when the color theme preference changes
type ThemeChangedEvent struct {
	Theme string
}

func (e ThemeChangedEvent) Type() EventType { return EventThemeChanged }

// LookupFailedEvent is emitted when a catalog lookup fails and was recovered locally
type LookupFailedEvent struct {
	Kind  string // "Search" or "Product"
	Query string
	Err   error
}

func (e LookupFailedEvent) Type() EventType { return EventLookupFailed }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
