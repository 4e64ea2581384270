//go:build e2e && unix

package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
)

// FakeAPIKey is the only key the fake catalog accepts
const FakeAPIKey = "e2e-test-key"

type fakeMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  *string `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

type fakePage struct {
	Page         int         `json:"page"`
	Results      []fakeMovie `json:"results"`
	TotalPages   int         `json:"total_pages"`
	TotalResults int         `json:"total_results"`
}

// FakeCatalog serves /search/movie from canned pages
type FakeCatalog struct {
	server *httptest.Server

	mu       sync.Mutex
	pages    map[string]map[int]fakePage
	requests []string
}

// StartCatalog starts a fake TMDB for the app under test
func (tf *TUITestFramework) StartCatalog() *FakeCatalog {
	c := &FakeCatalog{pages: make(map[string]map[int]fakePage)}
	c.server = httptest.NewServer(http.HandlerFunc(c.serve))
	tf.catalog = c
	return c
}

// URL returns the base URL to configure as tmdb.base_url
func (c *FakeCatalog) URL() string {
	return c.server.URL
}

// Close stops the server
func (c *FakeCatalog) Close() {
	c.server.Close()
}

// AddPage registers one page of titles for query
func (c *FakeCatalog) AddPage(query string, page, totalPages int, titles ...string) {
	p := fakePage{Page: page, TotalPages: totalPages, TotalResults: totalPages * len(titles)}
	for i, title := range titles {
		p.Results = append(p.Results, fakeMovie{
			ID:          page*1000 + i,
			Title:       title,
			Overview:    fmt.Sprintf("Overview of %s.", title),
			ReleaseDate: "2010-07-16",
			VoteAverage: 7.5,
		})
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.pages[query] == nil {
		c.pages[query] = make(map[int]fakePage)
	}
	c.pages[query][page] = p
}

// Requests returns "query:page" for every search received
func (c *FakeCatalog) Requests() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.requests))
	copy(out, c.requests)
	return out
}

func (c *FakeCatalog) serve(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/search/movie" {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	q := r.URL.Query()
	if q.Get("api_key") != FakeAPIKey {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status_code":    7,
			"status_message": "Invalid API key: You must be granted a valid key.",
			"success":        false,
		})
		return
	}

	query := q.Get("query")
	page, _ := strconv.Atoi(q.Get("page"))

	c.mu.Lock()
	c.requests = append(c.requests, fmt.Sprintf("%s:%d", query, page))
	p, ok := c.pages[query][page]
	c.mu.Unlock()

	if !ok {
		p = fakePage{Page: page, Results: []fakeMovie{}}
	}
	_ = json.NewEncoder(w).Encode(p)
}

// CreateTestWorkspace creates a temporary HOME for the app
func (tf *TUITestFramework) CreateTestWorkspace() (string, error) {
	tmpDir := tf.t.TempDir()
	tf.workspace = tmpDir
	return tmpDir, nil
}
