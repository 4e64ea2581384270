package commands

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"moviegrip/internal/domain"
	"moviegrip/internal/eventbus"
	"moviegrip/internal/ui/state"
)

// Executor handles command execution
type Executor struct {
	ctx *CommandContext
}

// NewExecutor creates a new command executor
func NewExecutor(ctx context.Context, state *state.AppState, bus eventbus.EventBus, fetcher Fetcher, logger zerolog.Logger) *Executor {
	return &Executor{
		ctx: &CommandContext{
			Ctx:     ctx,
			State:   state,
			Bus:     bus,
			Fetcher: fetcher,
			Logger:  logger.With().Str("component", "commands").Logger(),
		},
	}
}

// ExecuteSubmit creates and executes a submit command
func (e *Executor) ExecuteSubmit(query string) tea.Cmd {
	return NewSubmitCommand(e.ctx, query).Execute()
}

// ExecuteChangePage creates and executes a change page command
func (e *Executor) ExecuteChangePage(page int) tea.Cmd {
	return NewChangePageCommand(e.ctx, page).Execute()
}

// ExecuteRefresh creates and executes a refresh command
func (e *Executor) ExecuteRefresh() tea.Cmd {
	return NewRefreshCommand(e.ctx).Execute()
}

// ExecuteSelect creates and executes a select command
func (e *Executor) ExecuteSelect(movie *domain.Movie) tea.Cmd {
	return NewSelectCommand(e.ctx, movie).Execute()
}

// ExecuteCloseOverlay creates and executes a close overlay command
func (e *Executor) ExecuteCloseOverlay() tea.Cmd {
	return NewCloseOverlayCommand(e.ctx).Execute()
}
