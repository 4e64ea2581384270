package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"moviegrip/internal/domain"
)

const (
	// CardWidth is the outer width of a movie card including border
	CardWidth = 30
	// CardHeight is the outer height of a movie card including border
	CardHeight = 4
	cardGap    = 1
)

// GridColumns returns how many cards fit in a row of the given width
func GridColumns(width int) int {
	// Account for main container padding
	usable := width - 4
	cols := (usable + cardGap) / (CardWidth + cardGap)
	if cols < 1 {
		return 1
	}
	return cols
}

// GridRenderer handles rendering of the result grid
type GridRenderer struct {
	styles *Styles
}

// NewGridRenderer creates a new grid renderer
func NewGridRenderer(styles *Styles) *GridRenderer {
	return &GridRenderer{styles: styles}
}

// RenderGrid lays movies out in rows of columns cards, keeping the row of
// the focused card within maxRows. An empty page renders nothing.
func (g *GridRenderer) RenderGrid(movies []*domain.Movie, cursor, columns, maxRows int) string {
	if len(movies) == 0 {
		return ""
	}
	if columns < 1 {
		columns = 1
	}

	var rows []string
	for start := 0; start < len(movies); start += columns {
		end := start + columns
		if end > len(movies) {
			end = len(movies)
		}
		cards := make([]string, 0, columns*2)
		for i := start; i < end; i++ {
			if i > start {
				cards = append(cards, strings.Repeat(" ", cardGap))
			}
			cards = append(cards, g.RenderCard(movies[i], i == cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if maxRows <= 0 || len(rows) <= maxRows {
		return strings.Join(rows, "\n")
	}

	// Scroll so the focused row stays visible
	visible := maxRows
	cursorRow := cursor / columns
	offset := 0
	if cursorRow >= visible {
		offset = cursorRow - visible + 1
	}
	end := offset + visible
	if end > len(rows) {
		end = len(rows)
	}

	var lines []string
	if offset > 0 {
		lines = append(lines, g.styles.Scroll.Render(fmt.Sprintf("↑ %d more above ↑", offset*columns)))
	}
	lines = append(lines, rows[offset:end]...)
	if end < len(rows) {
		below := len(movies) - end*columns
		lines = append(lines, g.styles.Scroll.Render(fmt.Sprintf("↓ %d more below ↓", below)))
	}
	return strings.Join(lines, "\n")
}

// RenderCard renders a single movie card
func (g *GridRenderer) RenderCard(movie *domain.Movie, focused bool) string {
	inner := CardWidth - 4 // border and padding
	style := g.styles.Card
	if focused {
		style = g.styles.CardFocused
	}

	title := runewidth.Truncate(movie.Title, inner, "…")
	titleStyle := g.styles.CardTitle
	if focused {
		titleStyle = titleStyle.Foreground(lipgloss.Color("99"))
	}

	return style.Width(CardWidth - 2).Render(
		titleStyle.Render(title) + "\n" + g.renderMeta(movie),
	)
}

func (g *GridRenderer) renderMeta(movie *domain.Movie) string {
	year := "----"
	if y := movie.Year(); y > 0 {
		year = fmt.Sprintf("%d", y)
	}
	rating := lipgloss.NewStyle().
		Foreground(lipgloss.Color(RatingColor(movie.VoteAverage))).
		Render(FormatRating(movie.VoteAverage))
	return g.styles.CardMeta.Render(year+" · ") + rating
}

// FormatRating formats a vote average, or "unrated" when there is none
func FormatRating(vote float64) string {
	if vote <= 0 {
		return "unrated"
	}
	return fmt.Sprintf("★ %.1f", vote)
}
