package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"moviegrip/internal/domain"
)

func baseState() ViewState {
	return ViewState{
		Width:     100,
		Height:    40,
		Columns:   GridColumns(100),
		Page:      1,
		HelpModel: help.New(),
	}
}

func movies() []*domain.Movie {
	return []*domain.Movie{
		{ID: 1, Title: "Inception", ReleaseDate: "2010-07-15", VoteAverage: 8.4, Overview: "A thief who steals corporate secrets."},
		{ID: 2, Title: "Inception: The Cobol Job", ReleaseDate: "2010-12-07"},
	}
}

func TestGridColumns(t *testing.T) {
	assert.Equal(t, 1, GridColumns(10))
	assert.Equal(t, 2, GridColumns(80))
	assert.Equal(t, 3, GridColumns(100))
}

func TestFormatRating(t *testing.T) {
	assert.Equal(t, "★ 8.4", FormatRating(8.43))
	assert.Equal(t, "unrated", FormatRating(0))
}

func TestRenderer_EmptyState(t *testing.T) {
	out := NewRenderer().Render(baseState())
	assert.Contains(t, out, "moviegrip")
	assert.Contains(t, out, "Press / to search movies")
	assert.NotContains(t, out, ErrorMessage)
}

func TestRenderer_Loading(t *testing.T) {
	s := baseState()
	s.Query = "inception"
	s.Loading = true
	s.Fetching = true
	s.Spinner = "*"

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Loading movies...")
	assert.Contains(t, out, "Results for: inception")
}

func TestRenderer_Error(t *testing.T) {
	s := baseState()
	s.Query = "inception"
	s.Error = true

	out := NewRenderer().Render(s)
	assert.Contains(t, out, ErrorMessage)
	assert.NotContains(t, out, "Loading movies...")
}

func TestRenderer_ErrorKeepsLastGoodPage(t *testing.T) {
	s := baseState()
	s.Query = "inception"
	s.Error = true
	s.Movies = movies()

	out := NewRenderer().Render(s)
	assert.Contains(t, out, ErrorMessage)
	assert.Contains(t, out, "Inception")
}

func TestRenderer_Grid(t *testing.T) {
	s := baseState()
	s.Query = "inception"
	s.Movies = movies()
	s.TotalPages = 2
	s.TotalResults = 25
	s.Pagination = "<pages>"

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Inception")
	assert.Contains(t, out, "2010")
	assert.Contains(t, out, "★ 8.4")
	assert.Contains(t, out, "unrated")
	assert.Contains(t, out, "<pages>")
	assert.Contains(t, out, "page 1 of 2")
}

func TestRenderer_PlaceholderIndicator(t *testing.T) {
	s := baseState()
	s.Query = "inception"
	s.Movies = movies()
	s.Page = 2
	s.TotalPages = 2
	s.Fetching = true
	s.Placeholder = true
	s.Spinner = "*"

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Loading page 2")
	assert.Contains(t, out, "Inception")
}

func TestRenderer_SearchInput(t *testing.T) {
	s := baseState()
	s.InputMode = "search"
	s.InputPrompt = "Search movies: "
	s.TextInput = "alie"
	s.InputHint = "Please enter your search query."

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Search movies: alie")
	assert.Contains(t, out, "Please enter your search query.")
}

func TestRenderer_DetailOverlay(t *testing.T) {
	s := baseState()
	s.Movies = movies()
	s.Selected = s.Movies[0]
	s.PosterURL = "https://image.tmdb.org/t/p/w500/x.jpg"

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "Release date: 2010-07-15")
	assert.Contains(t, out, "A thief who steals corporate secrets.")
	assert.Contains(t, out, "w500/x.jpg")
	assert.Contains(t, out, "esc/q close")
}

func TestRenderer_Toast(t *testing.T) {
	s := baseState()
	s.Toast = "No movies found for your request."

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "No movies found for your request.")
}

func TestRenderer_HelpPopup(t *testing.T) {
	s := baseState()
	s.ShowHelp = true

	out := NewRenderer().Render(s)
	assert.Contains(t, out, "moviegrip Help")
	assert.Contains(t, out, "next page")
}

func TestGridRenderer_EmptyRendersNothing(t *testing.T) {
	g := NewGridRenderer(NewStyles())
	assert.Empty(t, g.RenderGrid(nil, 0, 3, 5))
}

func TestGridRenderer_ScrollsToCursor(t *testing.T) {
	g := NewGridRenderer(NewStyles())
	var ms []*domain.Movie
	for i := 0; i < 10; i++ {
		ms = append(ms, &domain.Movie{ID: i, Title: strings.Repeat("x", i+1)})
	}

	out := g.RenderGrid(ms, 9, 1, 3)
	assert.Contains(t, out, "more above")
	assert.NotContains(t, out, "more below")
	assert.Contains(t, out, "xxxxxxxxxx")
}

func TestPopupRenderer_KeepsHeight(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())
	base := strings.Repeat("background line\n", 9) + "background line"

	out := pr.RenderPopupOverlay(base, "popup", 10, 40, lipgloss.NewStyle())
	lines := strings.Split(out, "\n")
	assert.Len(t, lines, 10)
	assert.Contains(t, out, "popup")
}

func TestRenderOverviewDocument(t *testing.T) {
	doc := RenderOverviewDocument(movies()[0], "poster-url", "")
	assert.Contains(t, doc, "Inception (2010)")
	assert.Contains(t, doc, "Poster:       poster-url")
	assert.NotContains(t, doc, "Backdrop")
}
