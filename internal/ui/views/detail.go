package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"moviegrip/internal/domain"
)

// DetailRenderer renders the movie detail overlay
type DetailRenderer struct {
	styles *Styles
}

// NewDetailRenderer creates a new detail renderer
func NewDetailRenderer(styles *Styles) *DetailRenderer {
	return &DetailRenderer{styles: styles}
}

// MaxOverviewLines bounds the overview inside the overlay; the pager shows the rest
const MaxOverviewLines = 8

// RenderDetail renders the overlay body for movie within the given width
func (d *DetailRenderer) RenderDetail(movie *domain.Movie, posterURL string, width int) string {
	if movie == nil {
		return ""
	}
	if width > 80 {
		width = 80
	}
	if width < 20 {
		width = 20
	}

	var b strings.Builder

	b.WriteString(d.styles.DetailTitle.Render(movie.Title))
	b.WriteString("\n\n")

	release := movie.ReleaseDate
	if release == "" {
		release = "unknown"
	}
	b.WriteString(fmt.Sprintf("%s %s\n", d.styles.DetailLabel.Render("Release date:"), release))
	rating := lipgloss.NewStyle().
		Foreground(lipgloss.Color(RatingColor(movie.VoteAverage))).
		Render(FormatRating(movie.VoteAverage))
	b.WriteString(fmt.Sprintf("%s %s\n", d.styles.DetailLabel.Render("Rating:"), rating))
	if posterURL != "" {
		b.WriteString(fmt.Sprintf("%s %s\n", d.styles.DetailLabel.Render("Poster:"), posterURL))
	}
	b.WriteString("\n")

	overview := movie.Overview
	if overview == "" {
		overview = "No overview available."
	}
	wrapped := strings.Split(lipgloss.NewStyle().Width(width).Render(overview), "\n")
	if len(wrapped) > MaxOverviewLines {
		wrapped = append(wrapped[:MaxOverviewLines], d.styles.Scroll.Render("… press o to read more"))
	}
	b.WriteString(strings.Join(wrapped, "\n"))
	b.WriteString("\n\n")

	b.WriteString(d.styles.Help.Render("esc/q close • o full overview"))

	return b.String()
}

// RenderOverviewDocument renders the plain document shown in the pager
func RenderOverviewDocument(movie *domain.Movie, posterURL, backdropURL string) string {
	if movie == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(movie.Title)
	if y := movie.Year(); y > 0 {
		b.WriteString(fmt.Sprintf(" (%d)", y))
	}
	b.WriteString("\n\n")
	if movie.ReleaseDate != "" {
		b.WriteString("Release date: " + movie.ReleaseDate + "\n")
	}
	b.WriteString("Rating:       " + FormatRating(movie.VoteAverage) + "\n")
	if posterURL != "" {
		b.WriteString("Poster:       " + posterURL + "\n")
	}
	if backdropURL != "" {
		b.WriteString("Backdrop:     " + backdropURL + "\n")
	}
	b.WriteString("\n")
	if movie.Overview != "" {
		b.WriteString(lipgloss.NewStyle().Width(78).Render(movie.Overview))
	} else {
		b.WriteString("No overview available.")
	}
	b.WriteString("\n")
	return b.String()
}
