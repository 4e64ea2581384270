package handlers

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"moviegrip/internal/eventbus"
	"moviegrip/internal/tmdb"
	"moviegrip/internal/ui/state"
)

// Credential hints shown in the status bar
const (
	MissingCredentialsMessage  = "No TMDB credentials: set tmdb.api_key or TMDB_API_KEY"
	RejectedCredentialsMessage = "TMDB rejected the configured credentials"
	RateLimitedMessage         = "TMDB rate limit reached, try again shortly"
)

// ToastExpiredMsg dismisses the toast it names
type ToastExpiredMsg struct {
	ID uint64
}

// EventHandler handles domain events and updates state
type EventHandler struct {
	state         *state.AppState
	toastDuration time.Duration
	logger        zerolog.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, toastDuration time.Duration, logger zerolog.Logger) *EventHandler {
	return &EventHandler{
		state:         appState,
		toastDuration: toastDuration,
		logger:        logger.With().Str("component", "ui-events").Logger(),
	}
}

// HandleEvent processes domain events and returns any necessary commands
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.NotificationEvent:
		h.state.ShowToast(e.ID, e.Message)
		if h.toastDuration <= 0 {
			return nil
		}
		id := e.ID
		return tea.Tick(h.toastDuration, func(time.Time) tea.Msg {
			return ToastExpiredMsg{ID: id}
		})

	case eventbus.FetchFailedEvent:
		// Only failures for the key on screen say anything about the current setup
		if e.Key != h.state.Key() {
			return nil
		}
		switch {
		case errors.Is(e.Err, tmdb.ErrAPIKeyMissing):
			h.state.StatusMessage = MissingCredentialsMessage
		case errors.Is(e.Err, tmdb.ErrUnauthorized):
			h.state.StatusMessage = RejectedCredentialsMessage
		case errors.Is(e.Err, tmdb.ErrRateLimited):
			h.state.StatusMessage = RateLimitedMessage
		}
		h.logger.Debug().Err(e.Err).Str("key", e.Key.String()).Msg("Current key failed")

	case eventbus.FetchSucceededEvent:
		if e.Key == h.state.Key() {
			h.state.StatusMessage = ""
		}
	}

	return nil
}

// HandleToastExpired clears the toast if msg still refers to it
func (h *EventHandler) HandleToastExpired(msg ToastExpiredMsg) {
	h.state.DismissToast(msg.ID)
}
