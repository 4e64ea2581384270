// Package moviequery caches search result pages per (query, page) key and
// tracks each key through idle -> pending -> success|error.
//
// Callers ask Begin whether a request must be issued for a key, run Fetch
// off the UI goroutine, and read Observe for whatever key is current.
// Identical keys in flight share one upstream request.
package moviequery

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"moviegrip/internal/domain"
	"moviegrip/internal/eventbus"
)

// Status is the lifecycle state of a single key
type Status int

const (
	StatusIdle Status = iota
	StatusPending
	StatusSuccess
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusPending:
		return "pending"
	case StatusSuccess:
		return "success"
	case StatusError:
		return "error"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Source fetches one page from the catalog
type Source interface {
	SearchMovies(ctx context.Context, query string, page int) (*domain.ResultPage, error)
}

// Options tune caching behaviour
type Options struct {
	StaleTime        time.Duration // successes younger than this are served without refetching
	GCTime           time.Duration // entries older than this are dropped; 0 keeps them until evicted
	MaxEntries       int
	KeepPreviousData bool // serve the last successful page while a new key is pending
}

// DefaultOptions returns the options used when none are configured
func DefaultOptions() Options {
	return Options{
		StaleTime:        5 * time.Minute,
		GCTime:           30 * time.Minute,
		MaxEntries:       200,
		KeepPreviousData: true,
	}
}

// Result is a read-only view of a key's state
type Result struct {
	Key               domain.SearchKey
	Status            Status
	Data              *domain.ResultPage
	Err               error
	Seq               uint64 // occurrence number of the fetch that settled this key, 0 if none
	IsFetching        bool   // a request for Key is in flight
	IsPlaceholderData bool   // Data belongs to an earlier key
}

// IsLoading reports whether there is nothing to show yet for a pending key
func (r Result) IsLoading() bool {
	return r.Status == StatusPending && r.Data == nil
}

// IsError reports whether the key's last fetch failed
func (r Result) IsError() bool {
	return r.Status == StatusError
}

// HasResults reports whether Data holds at least one movie
func (r Result) HasResults() bool {
	return !r.Data.IsEmpty()
}

type entry struct {
	status    Status
	data      *domain.ResultPage
	err       error
	seq       uint64
	updatedAt time.Time
	fetching  bool
}

// Client is the result fetcher
type Client struct {
	source Source
	opts   Options
	bus    eventbus.EventBus
	logger zerolog.Logger
	now    func() time.Time

	group singleflight.Group

	mu       sync.Mutex
	entries  *expirable.LRU[domain.SearchKey, *entry]
	seq      uint64
	previous *domain.ResultPage
}

// New creates a fetcher over source. bus may be nil.
func New(source Source, opts Options, bus eventbus.EventBus, logger zerolog.Logger) *Client {
	if opts.MaxEntries <= 0 {
		opts.MaxEntries = DefaultOptions().MaxEntries
	}

	return &Client{
		source:  source,
		opts:    opts,
		bus:     bus,
		logger:  logger.With().Str("component", "moviequery").Logger(),
		now:     time.Now,
		entries: expirable.NewLRU[domain.SearchKey, *entry](opts.MaxEntries, nil, opts.GCTime),
	}
}

// Begin marks key as fetching and reports whether the caller must issue
// Fetch for it. It never starts anything for an empty query, for a key
// already in flight, or for a key holding a fresh success.
func (c *Client) Begin(key domain.SearchKey) bool {
	if !key.Enabled() {
		return false
	}

	c.mu.Lock()
	e, ok := c.entries.Get(key)
	if ok && e.fetching {
		c.mu.Unlock()
		return false
	}
	if ok && e.status == StatusSuccess && c.now().Sub(e.updatedAt) < c.opts.StaleTime {
		c.mu.Unlock()
		return false
	}
	if !ok {
		e = &entry{}
		c.entries.Add(key, e)
	}
	e.fetching = true
	// A stale success keeps serving its data while it revalidates
	if e.status != StatusSuccess {
		e.status = StatusPending
		e.err = nil
	}
	c.mu.Unlock()

	c.logger.Debug().Str("key", key.String()).Msg("Fetch started")
	c.publish(domain.FetchStartedEvent{Key: key})
	return true
}

// Fetch requests key from the source and settles its entry. Concurrent
// calls for the same key share one upstream request and one settlement.
func (c *Client) Fetch(ctx context.Context, key domain.SearchKey) Result {
	if !key.Enabled() {
		return Result{Key: key, Status: StatusIdle}
	}

	_, _, shared := c.group.Do(key.String(), func() (interface{}, error) {
		page, err := c.source.SearchMovies(ctx, key.Query, key.Page)
		c.settle(key, page, err)
		return nil, nil
	})
	if shared {
		c.logger.Debug().Str("key", key.String()).Msg("Fetch coalesced")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked(key)
}

// Observe returns the state of key for rendering. While key is pending and
// KeepPreviousData is set, the last successful page observed is returned as
// placeholder data.
func (c *Client) Observe(key domain.SearchKey) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	r := c.snapshotLocked(key)
	if r.Status == StatusSuccess && r.Data != nil {
		c.previous = r.Data
		return r
	}
	if r.Status == StatusPending && r.Data == nil && c.opts.KeepPreviousData && c.previous != nil {
		r.Data = c.previous
		r.IsPlaceholderData = true
	}
	return r
}

// Invalidate forgets key so the next Begin refetches it
func (c *Client) Invalidate(key domain.SearchKey) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries.Remove(key)
}

// Len returns the number of cached keys
func (c *Client) Len() int {
	return c.entries.Len()
}

func (c *Client) settle(key domain.SearchKey, page *domain.ResultPage, err error) {
	c.mu.Lock()
	e, ok := c.entries.Peek(key)
	if !ok {
		e = &entry{}
	}
	c.seq++
	e.seq = c.seq
	e.fetching = false
	e.updatedAt = c.now()
	if err != nil {
		// A failed revalidation keeps the last good page
		e.status = StatusError
		e.err = err
	} else {
		e.status = StatusSuccess
		e.err = nil
		e.data = page
	}
	// Add refreshes the entry's expiry
	c.entries.Add(key, e)
	seq := e.seq
	c.mu.Unlock()

	if err != nil {
		c.logger.Warn().Err(err).Str("key", key.String()).Uint64("seq", seq).Msg("Fetch failed")
		c.publish(domain.FetchFailedEvent{Key: key, Seq: seq, Err: err})
		return
	}

	results, pages := 0, 0
	if page != nil {
		results, pages = len(page.Results), page.TotalPages
	}
	c.logger.Debug().
		Str("key", key.String()).
		Uint64("seq", seq).
		Int("results", results).
		Int("total_pages", pages).
		Msg("Fetch succeeded")
	c.publish(domain.FetchSucceededEvent{Key: key, Seq: seq, Results: results, Pages: pages})
}

func (c *Client) snapshotLocked(key domain.SearchKey) Result {
	if !key.Enabled() {
		return Result{Key: key, Status: StatusIdle}
	}
	e, ok := c.entries.Peek(key)
	if !ok {
		return Result{Key: key, Status: StatusIdle}
	}
	return Result{
		Key:        key,
		Status:     e.status,
		Data:       e.data,
		Err:        e.err,
		Seq:        e.seq,
		IsFetching: e.fetching,
	}
}

func (c *Client) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}
