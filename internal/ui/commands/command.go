package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"moviegrip/internal/domain"
	"moviegrip/internal/eventbus"
	"moviegrip/internal/moviequery"
	"moviegrip/internal/ui/state"
)

// Command represents an executable action
type Command interface {
	Execute() tea.Cmd
}

// Fetcher is the part of the result fetcher commands drive
type Fetcher interface {
	Begin(key domain.SearchKey) bool
	Fetch(ctx context.Context, key domain.SearchKey) moviequery.Result
	Invalidate(key domain.SearchKey)
}

// CommandContext provides context for command execution
type CommandContext struct {
	Ctx     context.Context
	State   *state.AppState
	Bus     eventbus.EventBus
	Fetcher Fetcher
	Logger  zerolog.Logger
}

func (c *CommandContext) publish(event eventbus.DomainEvent) {
	if c.Bus != nil {
		c.Bus.Publish(event)
	}
}

// FetchResultMsg reports a settled fetch back to the update loop
type FetchResultMsg struct {
	Key    domain.SearchKey
	Result moviequery.Result
}

// FetchCommand issues a request for a key unless the fetcher already has it
type FetchCommand struct {
	ctx *CommandContext
	key domain.SearchKey
}

// NewFetchCommand creates a new fetch command
func NewFetchCommand(ctx *CommandContext, key domain.SearchKey) *FetchCommand {
	return &FetchCommand{ctx: ctx, key: key}
}

// Execute marks the key pending and returns the command that resolves it
func (c *FetchCommand) Execute() tea.Cmd {
	if c.ctx.Fetcher == nil || !c.ctx.Fetcher.Begin(c.key) {
		return nil
	}

	ctx := c.ctx.Ctx
	if ctx == nil {
		ctx = context.Background()
	}
	fetcher := c.ctx.Fetcher
	key := c.key

	return func() tea.Msg {
		return FetchResultMsg{Key: key, Result: fetcher.Fetch(ctx, key)}
	}
}

// SubmitCommand applies a submitted query
type SubmitCommand struct {
	ctx   *CommandContext
	query string
}

// NewSubmitCommand creates a new submit command
func NewSubmitCommand(ctx *CommandContext, query string) *SubmitCommand {
	return &SubmitCommand{ctx: ctx, query: query}
}

// Execute resets pagination to the first page of the query and fetches it
func (c *SubmitCommand) Execute() tea.Cmd {
	c.ctx.State.Submit(c.query)
	c.ctx.Logger.Info().Str("query", c.query).Msg("Search submitted")
	c.ctx.publish(eventbus.SearchSubmittedEvent{Query: c.query})
	return NewFetchCommand(c.ctx, c.ctx.State.Key()).Execute()
}

// ChangePageCommand moves to another page of the current query
type ChangePageCommand struct {
	ctx  *CommandContext
	page int
}

// NewChangePageCommand creates a new change page command. page is one-based.
func NewChangePageCommand(ctx *CommandContext, page int) *ChangePageCommand {
	return &ChangePageCommand{ctx: ctx, page: page}
}

// Execute updates the page and fetches it
func (c *ChangePageCommand) Execute() tea.Cmd {
	c.ctx.State.ChangePage(c.page)
	c.ctx.Logger.Debug().Str("query", c.ctx.State.Query).Int("page", c.ctx.State.Page).Msg("Page changed")
	c.ctx.publish(eventbus.PageChangedEvent{Query: c.ctx.State.Query, Page: c.ctx.State.Page})
	return NewFetchCommand(c.ctx, c.ctx.State.Key()).Execute()
}

// RefreshCommand drops the cached current page and fetches it again
type RefreshCommand struct {
	ctx *CommandContext
}

// NewRefreshCommand creates a new refresh command
func NewRefreshCommand(ctx *CommandContext) *RefreshCommand {
	return &RefreshCommand{ctx: ctx}
}

// Execute performs the refresh
func (c *RefreshCommand) Execute() tea.Cmd {
	key := c.ctx.State.Key()
	if !key.Enabled() || c.ctx.Fetcher == nil {
		return nil
	}
	c.ctx.Fetcher.Invalidate(key)
	return NewFetchCommand(c.ctx, key).Execute()
}

// SelectCommand opens a movie in the detail overlay
type SelectCommand struct {
	ctx   *CommandContext
	movie *domain.Movie
}

// NewSelectCommand creates a new select command
func NewSelectCommand(ctx *CommandContext, movie *domain.Movie) *SelectCommand {
	return &SelectCommand{ctx: ctx, movie: movie}
}

// Execute selects the movie
func (c *SelectCommand) Execute() tea.Cmd {
	if c.movie == nil {
		return nil
	}
	c.ctx.State.Select(c.movie)
	c.ctx.publish(eventbus.MovieSelectedEvent{MovieID: c.movie.ID, Title: c.movie.Title})
	return nil
}

// CloseOverlayCommand closes the detail overlay
type CloseOverlayCommand struct {
	ctx *CommandContext
}

// NewCloseOverlayCommand creates a new close overlay command
func NewCloseOverlayCommand(ctx *CommandContext) *CloseOverlayCommand {
	return &CloseOverlayCommand{ctx: ctx}
}

// Execute clears the selection
func (c *CloseOverlayCommand) Execute() tea.Cmd {
	if !c.ctx.State.OverlayOpen() {
		return nil
	}
	c.ctx.State.CloseOverlay()
	c.ctx.publish(eventbus.OverlayClosedEvent{})
	return nil
}
