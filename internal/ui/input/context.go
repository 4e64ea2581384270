package input

import (
	"moviegrip/internal/moviequery"
	"moviegrip/internal/ui/state"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	State  *state.AppState
	Result moviequery.Result // result currently on screen
}

// CurrentIndex returns the focused card index
func (c *ModelContext) CurrentIndex() int {
	return c.State.Cursor
}

// TotalItems returns the number of cards on screen
func (c *ModelContext) TotalItems() int {
	if c.Result.Data == nil {
		return 0
	}
	return len(c.Result.Data.Results)
}

// Columns returns the number of cards per grid row
func (c *ModelContext) Columns() int {
	if c.State.GridColumns < 1 {
		return 1
	}
	return c.State.GridColumns
}

// Query returns the submitted query
func (c *ModelContext) Query() string {
	return c.State.Query
}

// CurrentPage returns the one-based current page
func (c *ModelContext) CurrentPage() int {
	return c.State.Page
}

// TotalPages returns the page count of the result on screen
func (c *ModelContext) TotalPages() int {
	if c.Result.Data == nil {
		return 0
	}
	return c.Result.Data.TotalPages
}

// HasSelection reports whether the detail overlay is open
func (c *ModelContext) HasSelection() bool {
	return c.State.OverlayOpen()
}
