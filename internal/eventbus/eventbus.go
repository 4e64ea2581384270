package eventbus

import (
	"runtime/debug"
	"sync"

	"github.com/rs/zerolog"

	"moviegrip/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventSearchSubmitted = domain.EventSearchSubmitted
	EventPageChanged     = domain.EventPageChanged
	EventFetchStarted    = domain.EventFetchStarted
	EventFetchSucceeded  = domain.EventFetchSucceeded
	EventFetchFailed     = domain.EventFetchFailed
	EventMovieSelected   = domain.EventMovieSelected
	EventOverlayClosed   = domain.EventOverlayClosed
	EventNotification    = domain.EventNotification
	EventConfigLoaded    = domain.EventConfigLoaded
	EventConfigSaved     = domain.EventConfigSaved
)

// Re-export domain event types
type SearchSubmittedEvent = domain.SearchSubmittedEvent
type PageChangedEvent = domain.PageChangedEvent
type FetchStartedEvent = domain.FetchStartedEvent
type FetchSucceededEvent = domain.FetchSucceededEvent
type FetchFailedEvent = domain.FetchFailedEvent
type MovieSelectedEvent = domain.MovieSelectedEvent
type OverlayClosedEvent = domain.OverlayClosedEvent
type NotificationEvent = domain.NotificationEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the concrete implementation of EventBus
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]subscription
	nextID   uint64
	events   chan DomainEvent
	quit     chan struct{}
	once     sync.Once
	wg       sync.WaitGroup

	logMu  sync.RWMutex
	logger zerolog.Logger
}

// New creates a new event bus
func New(logger zerolog.Logger) *Bus {
	b := &Bus{
		handlers: make(map[EventType][]subscription),
		events:   make(chan DomainEvent, 256),
		quit:     make(chan struct{}),
		logger:   logger.With().Str("component", "eventbus").Logger(),
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// SetLogger replaces the bus logger. Startup creates the bus before the
// configured logger exists.
func (b *Bus) SetLogger(logger zerolog.Logger) {
	b.logMu.Lock()
	defer b.logMu.Unlock()
	b.logger = logger.With().Str("component", "eventbus").Logger()
}

func (b *Bus) log() *zerolog.Logger {
	b.logMu.RLock()
	defer b.logMu.RUnlock()
	l := b.logger
	return &l
}

// Publish queues an event for delivery to all subscribers of its type
func (b *Bus) Publish(event DomainEvent) {
	b.log().Debug().Str("event", string(event.Type())).Msg("Publishing event")

	select {
	case b.events <- event:
	case <-b.quit:
	default:
		b.log().Warn().Str("event", string(event.Type())).Msg("Event bus channel full, dropping event")
	}
}

// Subscribe registers handler for eventType.
// Returns an unsubscribe function
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Events still queued are discarded.
func (b *Bus) Close() {
	b.once.Do(func() {
		close(b.quit)
	})
	b.wg.Wait()
}

// dispatch delivers events in publish order; each handler runs on the dispatcher goroutine
func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.events:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.deliver(s.handler, event)
			}

		case <-b.quit:
			return
		}
	}
}

func (b *Bus) deliver(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.log().Error().
				Str("event", string(event.Type())).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("Event handler panic")
		}
	}()
	h(event)
}
