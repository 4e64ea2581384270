package domain

import (
	"fmt"
	"strconv"
)

// Movie is a single catalog entry as delivered by the search endpoint
type Movie struct {
	ID           int
	Title        string
	ReleaseDate  string // YYYY-MM-DD, may be empty
	PosterPath   string // relative image path, may be empty
	BackdropPath string
	Overview     string
	VoteAverage  float64
}

// Year returns the release year or 0 when the release date is unknown
func (m *Movie) Year() int {
	if m == nil || len(m.ReleaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(m.ReleaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}

// ResultPage is one page of search results for a SearchKey
type ResultPage struct {
	Page         int
	Results      []*Movie
	TotalPages   int
	TotalResults int
}

// IsEmpty reports whether the page has no movies
func (p *ResultPage) IsEmpty() bool {
	return p == nil || len(p.Results) == 0
}

// SearchKey identifies a cached result page
type SearchKey struct {
	Query string
	Page  int
}

// Enabled reports whether a fetch may be issued for this key
func (k SearchKey) Enabled() bool {
	return k.Query != ""
}

func (k SearchKey) String() string {
	return fmt.Sprintf("movie:%q:%d", k.Query, k.Page)
}
