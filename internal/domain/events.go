package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchSubmitted EventType = "SearchSubmitted"
	EventPageChanged     EventType = "PageChanged"
	EventFetchStarted    EventType = "FetchStarted"
	EventFetchSucceeded  EventType = "FetchSucceeded"
	EventFetchFailed     EventType = "FetchFailed"
	EventMovieSelected   EventType = "MovieSelected"
	EventOverlayClosed   EventType = "OverlayClosed"
	EventNotification    EventType = "Notification"
	EventConfigLoaded    EventType = "ConfigLoaded"
	EventConfigSaved     EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchSubmittedEvent is emitted when the user submits a query
type SearchSubmittedEvent struct {
	Query string
}

func (e SearchSubmittedEvent) Type() EventType { return EventSearchSubmitted }

// PageChangedEvent is emitted when the pagination control selects a page
type PageChangedEvent struct {
	Query string
	Page  int
}

func (e PageChangedEvent) Type() EventType { return EventPageChanged }

// FetchStartedEvent is emitted when a key transitions into pending
type FetchStartedEvent struct {
	Key SearchKey
}

func (e FetchStartedEvent) Type() EventType { return EventFetchStarted }

// FetchSucceededEvent is emitted when a key transitions into success
type FetchSucceededEvent struct {
	Key     SearchKey
	Seq     uint64
	Results int
	Pages   int
}

func (e FetchSucceededEvent) Type() EventType { return EventFetchSucceeded }

// FetchFailedEvent is emitted when a key transitions into error
type FetchFailedEvent struct {
	Key SearchKey
	Seq uint64
	Err error
}

func (e FetchFailedEvent) Type() EventType { return EventFetchFailed }

// MovieSelectedEvent is emitted when a movie is opened in the detail overlay
type MovieSelectedEvent struct {
	MovieID int
	Title   string
}

func (e MovieSelectedEvent) Type() EventType { return EventMovieSelected }

// OverlayClosedEvent is emitted when the detail overlay is dismissed
type OverlayClosedEvent struct{}

func (e OverlayClosedEvent) Type() EventType { return EventOverlayClosed }

// NotificationEvent carries a transient message for the toast area
type NotificationEvent struct {
	ID      uint64
	Message string
}

func (e NotificationEvent) Type() EventType { return EventNotification }

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
