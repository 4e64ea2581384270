package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"moviegrip/internal/config"
	"moviegrip/internal/domain"
	"moviegrip/internal/eventbus"
	"moviegrip/internal/moviequery"
	"moviegrip/internal/tmdb"
	"moviegrip/internal/ui/commands"
	"moviegrip/internal/ui/handlers"
	"moviegrip/internal/ui/input"
	inputtypes "moviegrip/internal/ui/input/types"
	"moviegrip/internal/ui/pagination"
	"moviegrip/internal/ui/state"
	"moviegrip/internal/ui/viewmodels"
	"moviegrip/internal/ui/views"
)

// EmptyQueryHint is shown under the input when an empty query is submitted
const EmptyQueryHint = "Please enter your search query."

// ResultFetcher is the result fetcher as seen by the UI
type ResultFetcher interface {
	commands.Fetcher
	Observe(key domain.SearchKey) moviequery.Result
}

// Notifier observes settled results for the key on screen
type Notifier interface {
	Observe(r moviequery.Result) bool
}

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState // centralized state
	logger zerolog.Logger

	fetcher  ResultFetcher
	notifier Notifier
	imageURL viewmodels.ImageURLFunc

	// UI-specific state not in AppState
	width        int
	height       int
	help         help.Model
	spinner      spinner.Model
	pager        pagination.Model
	inPagerMode  bool // tracks if we're currently in pager mode
	initialQuery string

	// Handlers
	renderer     *views.Renderer
	eventHandler *handlers.EventHandler
	viewModel    *viewmodels.ViewModel
	cmdExecutor  *commands.Executor
	inputHandler *input.Handler
	pagerOps     *PagerOps

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, fetcher ResultFetcher, notifier Notifier, imageURL viewmodels.ImageURLFunc, logger zerolog.Logger) *Model {
	appState := state.NewAppState()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	m := &Model{
		bus:          bus,
		config:       cfg,
		state:        appState,
		logger:       logger.With().Str("component", "ui").Logger(),
		fetcher:      fetcher,
		notifier:     notifier,
		imageURL:     imageURL,
		help:         help.New(),
		spinner:      sp,
		pager:        pagination.New(cfg.UI.PageRange, cfg.UI.MarginPages),
		renderer:     views.NewRenderer(),
		inputHandler: input.New(),
		pagerOps:     NewPagerOps(),
	}

	m.eventHandler = handlers.NewEventHandler(appState, cfg.UI.ToastDuration(), logger)
	m.cmdExecutor = commands.NewExecutor(context.Background(), appState, bus, fetcher, logger)

	// Placeholder text input; the live one belongs to the input handler
	m.viewModel = viewmodels.NewViewModel(appState, &m.pager, imageURL, textinput.New())
	m.viewModel.SetHelp(m.help)

	return m
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
	if m.pagerOps != nil {
		m.pagerOps.SetProgram(p)
	}
}

// SetInitialQuery submits query when the program starts
func (m *Model) SetInitialQuery(query string) {
	m.initialQuery = strings.TrimSpace(query)
}

// State exposes the application state
func (m *Model) State() *state.AppState {
	return m.state
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.initialQuery != "" {
		cmds = append(cmds, m.cmdExecutor.ExecuteSubmit(m.initialQuery))
	}
	return tea.Batch(cmds...)
}

// current returns the observed state of the key on screen
func (m *Model) current() moviequery.Result {
	return m.fetcher.Observe(m.state.Key())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.viewModel.SetHelp(m.help)
		m.state.GridColumns = views.GridColumns(msg.Width)
		return m, nil

	case tea.KeyMsg:
		// The help popup captures keys while it is open
		if m.state.ShowHelp {
			return m, m.handleHelpKey(msg)
		}

		ctx := &input.ModelContext{
			State:  m.state,
			Result: m.current(),
		}

		actions, cmd := m.inputHandler.HandleKey(msg, ctx)

		cmds := []tea.Cmd{}
		if cmd != nil {
			cmds = append(cmds, cmd)
		}

		for _, action := range actions {
			if actionCmd := m.processAction(action, ctx); actionCmd != nil {
				cmds = append(cmds, actionCmd)
			}
		}

		if ti := m.inputHandler.TextInput(); ti != nil {
			m.viewModel.UpdateTextInput(*ti)
		}

		return m, tea.Batch(cmds...)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// handleHelpKey scrolls or closes the help popup
func (m *Model) handleHelpKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc", "?", "q":
		m.state.ShowHelp = false
		m.state.HelpScrollOffset = 0
	case "j", "down":
		m.state.HelpScrollOffset++
	case "k", "up":
		if m.state.HelpScrollOffset > 0 {
			m.state.HelpScrollOffset--
		}
	case "g", "home":
		m.state.HelpScrollOffset = 0
	}
	return nil
}

// View renders the UI
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	m.viewModel.SetDimensions(m.width, m.height)
	m.viewModel.SetSpinner(m.spinner.View())

	switch m.inputHandler.CurrentMode() {
	case inputtypes.ModeSearch:
		m.viewModel.SetInputMode(viewmodels.InputModeSearch)
		m.viewModel.SetPrompt(m.inputHandler.Prompt())
	case inputtypes.ModeOverlay:
		m.viewModel.SetInputMode(viewmodels.InputModeOverlay)
	default:
		m.viewModel.SetInputMode(viewmodels.InputModeNormal)
	}
	if ti := m.inputHandler.TextInput(); ti != nil {
		m.viewModel.UpdateTextInput(*ti)
	}

	return m.renderer.Render(m.viewModel.BuildViewState(m.current()))
}

// processAction processes an action from the input handler
func (m *Model) processAction(action inputtypes.Action, ctx *input.ModelContext) tea.Cmd {
	m.logger.Trace().Str("action", action.Type()).Msg("Processing action")

	switch a := action.(type) {
	case inputtypes.NavigateAction:
		return m.navigate(a.Direction, ctx)

	case inputtypes.PageAction:
		return m.turnPage(a.Direction, ctx)

	case inputtypes.SelectAction:
		index := a.Index
		if index < 0 {
			index = m.state.Cursor
		}
		movie := movieAt(ctx.Result, index)
		if movie == nil {
			return nil
		}
		m.cmdExecutor.ExecuteSelect(movie)
		return m.inputHandler.ChangeMode(inputtypes.ModeOverlay, "", ctx)

	case inputtypes.CloseOverlayAction:
		return m.cmdExecutor.ExecuteCloseOverlay()

	case inputtypes.OpenOverviewAction:
		if m.state.Selected == nil {
			return nil
		}
		return m.openOverviewPager(m.state.Selected)

	case inputtypes.SubmitTextAction:
		if a.Mode != inputtypes.ModeSearch {
			return nil
		}
		query := strings.TrimSpace(a.Text)
		if query == "" {
			m.state.InputHint = EmptyQueryHint
		} else {
			m.state.InputHint = ""
		}
		cmd := m.cmdExecutor.ExecuteSubmit(query)
		m.observeCurrent()
		return cmd

	case inputtypes.UpdateTextAction:
		if strings.TrimSpace(a.Text) != "" {
			m.state.InputHint = ""
		}

	case inputtypes.CancelTextAction:
		m.state.InputHint = ""

	case inputtypes.RefreshAction:
		return m.cmdExecutor.ExecuteRefresh()

	case inputtypes.ToggleHelpAction:
		m.state.ShowHelp = !m.state.ShowHelp
		m.state.HelpScrollOffset = 0

	case inputtypes.OpenHelpPagerAction:
		return m.openHelpPager()

	case inputtypes.QuitAction:
		return tea.Quit
	}

	return nil
}

// navigate moves the card cursor. Moving right off the last card of the
// page turns to the next page.
func (m *Model) navigate(direction string, ctx *input.ModelContext) tea.Cmd {
	total := ctx.TotalItems()
	cols := ctx.Columns()

	switch direction {
	case "up":
		if m.state.Cursor-cols >= 0 {
			m.state.MoveCursor(-cols, total)
		}
	case "down":
		if m.state.Cursor+cols < total {
			m.state.MoveCursor(cols, total)
		}
	case "left":
		m.state.MoveCursor(-1, total)
	case "right":
		if total > 0 && m.state.Cursor >= total-1 {
			return m.turnPage("next", ctx)
		}
		m.state.MoveCursor(1, total)
	case "home":
		m.state.Cursor = 0
	case "end":
		m.state.MoveCursor(total, total)
	}
	return nil
}

// turnPage asks the pagination control for the target page and fetches it
func (m *Model) turnPage(direction string, ctx *input.ModelContext) tea.Cmd {
	m.pager.ForcePage(m.state.Page, ctx.TotalPages())
	if !m.pager.Visible() {
		return nil
	}

	var (
		page int
		ok   bool
	)
	switch direction {
	case "next":
		page, ok = m.pager.Next()
	case "prev":
		page, ok = m.pager.Previous()
	case "first":
		page, ok = m.pager.First()
	case "last":
		page, ok = m.pager.Last()
	}
	if !ok {
		return nil
	}

	cmd := m.cmdExecutor.ExecuteChangePage(page)
	m.observeCurrent()
	return cmd
}

// observeCurrent hands the result now on screen to the notifier. A key
// served from cache never comes back as a FetchResultMsg.
func (m *Model) observeCurrent() {
	if m.notifier != nil {
		m.notifier.Observe(m.current())
	}
}

// openOverviewPager shows the movie's full overview in ov
func (m *Model) openOverviewPager(movie *domain.Movie) tea.Cmd {
	if m.program == nil {
		m.state.StatusMessage = "Pager unavailable"
		return nil
	}

	content := views.RenderOverviewDocument(
		movie,
		m.imageURL(movie.PosterPath, tmdb.PosterSizeLarge),
		m.imageURL(movie.BackdropPath, tmdb.BackdropSize),
	)
	id := movie.ID

	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pagerOps.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return overviewPagerMsg{movieID: id, err: err}
	}
}

// openHelpPager shows the key reference in ov
func (m *Model) openHelpPager() tea.Cmd {
	if m.program == nil {
		m.state.ShowHelp = true
		return nil
	}

	content := views.HelpContent(m.renderer.Keys())
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := m.pagerOps.ShowInPager(content)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// handleNonKeyboardMsg handles non-keyboard messages
func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case commands.FetchResultMsg:
		// Late results for keys no longer on screen only refresh the cache
		if msg.Key != m.state.Key() {
			m.logger.Debug().Str("key", msg.Key.String()).Msg("Result for superseded key")
			return m, nil
		}
		r := m.current()
		if r.Data != nil && !r.IsPlaceholderData {
			m.state.ClampCursor(len(r.Data.Results))
		}
		m.observeCurrent()
		return m, nil

	case EventMsg:
		return m, m.eventHandler.HandleEvent(msg.Event)

	case handlers.ToastExpiredMsg:
		m.eventHandler.HandleToastExpired(msg)
		return m, nil

	case spinner.TickMsg:
		// Don't continue the tick loop while the pager owns the terminal
		if m.inPagerMode {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case overviewPagerMsg:
		if msg.err != nil {
			m.logger.Error().Err(msg.err).Int("movie_id", msg.movieID).Msg("Overview pager failed")
			m.state.StatusMessage = fmt.Sprintf("Pager failed: %v", msg.err)
		}
		return m, nil

	case helpPagerMsg:
		if msg.err != nil {
			// Fall back to the popup
			m.logger.Error().Err(msg.err).Msg("Help pager failed")
			m.state.ShowHelp = true
		}
		return m, nil

	case pauseRenderingMsg:
		m.inPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.inPagerMode = false
		return m, m.spinner.Tick

	default:
		// Cursor blink and other text input messages
		return m, m.inputHandler.Update(msg)
	}
}

func movieAt(r moviequery.Result, index int) *domain.Movie {
	if r.Data == nil || index < 0 || index >= len(r.Data.Results) {
		return nil
	}
	return r.Data.Results[index]
}
