package state

import (
	"moviegrip/internal/domain"
)

// AppState contains all the application state
type AppState struct {
	// Search state
	Query string // last submitted query; empty disables fetching
	Page  int    // one-based page of Query

	// Selection state
	Cursor   int           // index of the focused card in the current page
	Selected *domain.Movie // movie shown in the detail overlay, nil when closed

	// UI state
	ShowHelp         bool
	HelpScrollOffset int    // scroll offset for help popup
	InputHint        string // message shown under the search input
	Toast            string // transient notification text
	ToastID          uint64 // identifies Toast so stale dismiss ticks are ignored
	StatusMessage    string // status bar message
	GridColumns      int    // cards per row, derived from terminal width
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{
		Page:        1,
		GridColumns: 1,
	}
}

// Key returns the cache key for the current query and page
func (s *AppState) Key() domain.SearchKey {
	return domain.SearchKey{Query: s.Query, Page: s.Page}
}

// Search operations

// Submit sets the query and restarts pagination, even for a repeated query
func (s *AppState) Submit(query string) {
	s.Query = query
	s.Page = 1
	s.Cursor = 0
}

// ChangePage moves to page without touching the query. Pages below 1 clamp to 1.
func (s *AppState) ChangePage(page int) {
	if page < 1 {
		page = 1
	}
	if page != s.Page {
		s.Cursor = 0
	}
	s.Page = page
}

// Selection operations

// Select opens movie in the detail overlay
func (s *AppState) Select(movie *domain.Movie) {
	s.Selected = movie
}

// CloseOverlay clears the selection
func (s *AppState) CloseOverlay() {
	s.Selected = nil
}

// OverlayOpen reports whether a movie is selected
func (s *AppState) OverlayOpen() bool {
	return s.Selected != nil
}

// MoveCursor moves the card cursor by delta, keeping it within [0, total)
func (s *AppState) MoveCursor(delta, total int) {
	if total <= 0 {
		s.Cursor = 0
		return
	}
	s.Cursor += delta
	if s.Cursor < 0 {
		s.Cursor = 0
	}
	if s.Cursor >= total {
		s.Cursor = total - 1
	}
}

// ClampCursor keeps the cursor valid after the visible page changes size
func (s *AppState) ClampCursor(total int) {
	s.MoveCursor(0, total)
}

// Notification operations

// ShowToast replaces the current toast
func (s *AppState) ShowToast(id uint64, message string) {
	s.ToastID = id
	s.Toast = message
}

// DismissToast clears the toast if it is still the one identified by id
func (s *AppState) DismissToast(id uint64) {
	if s.ToastID == id {
		s.Toast = ""
	}
}
