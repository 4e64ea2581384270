package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"moviegrip/internal/domain"
)

// ErrorMessage is shown in place of the grid when the current page failed
const ErrorMessage = "There was an error, please try again..."

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width  int
	Height int

	// Search bar
	Query       string
	InputMode   string // "search" while the query input is focused
	InputPrompt string
	TextInput   string // rendered text input
	InputHint   string

	// Result state for the current key
	Movies        []*domain.Movie
	Page          int
	TotalPages    int
	TotalResults  int
	Loading       bool // pending with nothing to show
	Fetching      bool // a request for the current key is in flight
	Placeholder   bool // Movies belong to the previous key
	Error         bool
	Spinner       string
	Pagination    string // rendered pagination control, empty when hidden
	Cursor        int
	Columns       int
	StatusMessage string

	// Overlays
	Selected         *domain.Movie
	PosterURL        string
	ShowHelp         bool
	HelpScrollOffset int
	Toast            string
	HelpModel        help.Model
}

// Renderer handles all view rendering
type Renderer struct {
	styles       *Styles
	keys         KeyMap
	gridRender   *GridRenderer
	detailRender *DetailRenderer
	popupRender  *PopupRenderer
}

// NewRenderer creates a new renderer
func NewRenderer() *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles:       styles,
		keys:         DefaultKeyMap(),
		gridRender:   NewGridRenderer(styles),
		detailRender: NewDetailRenderer(styles),
		popupRender:  NewPopupRenderer(styles),
	}
}

// Keys returns the key map shown in help
func (r *Renderer) Keys() KeyMap {
	return r.keys
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitleLine(state))
	content.WriteString("\n\n")

	// Search bar
	if state.InputMode == "search" {
		content.WriteString(r.styles.Prompt.Render(state.InputPrompt))
		content.WriteString(state.TextInput)
	} else if state.Query != "" {
		content.WriteString(r.styles.Dim.Render("Results for: "))
		content.WriteString(state.Query)
	} else {
		content.WriteString(r.styles.Dim.Render("Press / to search movies"))
	}
	content.WriteString("\n")
	if state.InputHint != "" {
		content.WriteString(r.styles.Hint.Render(state.InputHint))
		content.WriteString("\n")
	}
	content.WriteString("\n")

	// Main content
	switch {
	case state.Loading:
		content.WriteString(r.styles.StatusLoading.Render(fmt.Sprintf("%s Loading movies...", state.Spinner)))
		content.WriteString("\n")
	case state.Error:
		content.WriteString(r.styles.StatusError.Render(ErrorMessage))
		content.WriteString("\n")
		// The last good page of a failed revalidation stays visible
		if len(state.Movies) > 0 {
			content.WriteString("\n")
			r.renderResults(content, state)
		}
	case len(state.Movies) > 0:
		r.renderResults(content, state)
	}

	footer := r.renderFooter(state)

	// Push the footer to the bottom
	currentLines := strings.Count(content.String(), "\n") + 1
	availableLines := state.Height - 2
	if availableLines <= 0 {
		availableLines = 22
	}
	footerLines := strings.Count(footer, "\n") + 1
	if paddingNeeded := availableLines - currentLines - footerLines; paddingNeeded > 0 {
		content.WriteString(strings.Repeat("\n", paddingNeeded))
	}
	content.WriteString(footer)

	mainStyle := r.styles.Main.MaxHeight(state.Height)
	finalContent := mainStyle.Render(content.String())

	// Overlay popups on top of main content
	if state.Selected != nil {
		detail := r.detailRender.RenderDetail(state.Selected, state.PosterURL, state.Width-12)
		return r.popupRender.RenderPopupOverlay(finalContent, detail, state.Height, state.Width, r.styles.DetailBox)
	}

	if state.ShowHelp {
		helpContent := r.renderHelpContent(state.Height, state.HelpScrollOffset)
		return r.popupRender.RenderPopupOverlay(finalContent, helpContent, state.Height, state.Width, r.styles.InfoBox)
	}

	return finalContent
}

func (r *Renderer) renderResults(content *strings.Builder, state ViewState) {
	if state.Pagination != "" {
		content.WriteString(state.Pagination)
		content.WriteString("\n\n")
	}
	usedLines := strings.Count(content.String(), "\n") + 1
	content.WriteString(r.gridRender.RenderGrid(state.Movies, state.Cursor, state.Columns, r.gridRows(state, usedLines)))
	content.WriteString("\n")
}

func (r *Renderer) renderTitleLine(state ViewState) string {
	logo := r.styles.Title.Render("moviegrip")

	var indicators []string
	if state.Fetching && !state.Loading {
		if state.Placeholder {
			indicators = append(indicators, fmt.Sprintf("%s Loading page %d", state.Spinner, state.Page))
		} else {
			indicators = append(indicators, fmt.Sprintf("%s Refreshing", state.Spinner))
		}
	}
	if state.TotalPages > 0 && len(state.Movies) > 0 && !state.Placeholder {
		indicators = append(indicators, fmt.Sprintf("page %d of %d • %d results", state.Page, state.TotalPages, state.TotalResults))
	}
	if len(indicators) == 0 {
		return logo
	}

	rightContent := r.styles.Dim.Render(strings.Join(indicators, " | "))

	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	availableWidth := termWidth - 4 // Account for main container padding
	paddingWidth := availableWidth - lipgloss.Width(logo) - lipgloss.Width(rightContent)
	if paddingWidth > 0 {
		return logo + strings.Repeat(" ", paddingWidth) + rightContent
	}
	return logo + "  " + rightContent
}

func (r *Renderer) renderFooter(state ViewState) string {
	var lines []string

	if state.Toast != "" {
		toast := r.styles.Toast.Render(state.Toast)
		pad := state.Width - 4 - lipgloss.Width(toast)
		if pad < 0 {
			pad = 0
		}
		lines = append(lines, strings.Repeat(" ", pad)+toast)
	}

	if state.StatusMessage != "" {
		lines = append(lines, r.styles.Dim.Render(state.StatusMessage))
	}

	if !state.ShowHelp && state.Selected == nil {
		lines = append(lines, state.HelpModel.View(r.keys))
	}

	return strings.Join(lines, "\n")
}

// gridRows returns how many card rows fit below the header
func (r *Renderer) gridRows(state ViewState, usedLines int) int {
	if state.Height <= 0 {
		return 0
	}
	// Container padding plus footer lines
	free := state.Height - 2 - usedLines - 3
	rows := free / CardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}
