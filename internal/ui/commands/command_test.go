package commands

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviegrip/internal/domain"
	"moviegrip/internal/eventbus"
	"moviegrip/internal/moviequery"
	"moviegrip/internal/ui/state"
)

type fakeFetcher struct {
	begun       []domain.SearchKey
	fetched     []domain.SearchKey
	invalidated []domain.SearchKey
	inFlight    map[domain.SearchKey]bool
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{inFlight: make(map[domain.SearchKey]bool)}
}

func (f *fakeFetcher) Begin(key domain.SearchKey) bool {
	if !key.Enabled() || f.inFlight[key] {
		return false
	}
	f.inFlight[key] = true
	f.begun = append(f.begun, key)
	return true
}

func (f *fakeFetcher) Fetch(ctx context.Context, key domain.SearchKey) moviequery.Result {
	f.fetched = append(f.fetched, key)
	delete(f.inFlight, key)
	return moviequery.Result{Key: key, Status: moviequery.StatusSuccess, Seq: uint64(len(f.fetched))}
}

func (f *fakeFetcher) Invalidate(key domain.SearchKey) {
	f.invalidated = append(f.invalidated, key)
}

type recordingBus struct {
	events []eventbus.DomainEvent
}

func (b *recordingBus) Publish(e eventbus.DomainEvent) { b.events = append(b.events, e) }
func (b *recordingBus) Subscribe(eventbus.EventType, eventbus.EventHandler) func() {
	return func() {}
}

func newExecutor() (*Executor, *state.AppState, *fakeFetcher, *recordingBus) {
	s := state.NewAppState()
	f := newFakeFetcher()
	bus := &recordingBus{}
	return NewExecutor(context.Background(), s, bus, f, zerolog.Nop()), s, f, bus
}

func TestSubmit_FetchesFirstPage(t *testing.T) {
	e, s, f, bus := newExecutor()
	s.Page = 4

	cmd := e.ExecuteSubmit("inception")
	require.NotNil(t, cmd)
	assert.Equal(t, 1, s.Page)

	msg, ok := cmd().(FetchResultMsg)
	require.True(t, ok)
	assert.Equal(t, domain.SearchKey{Query: "inception", Page: 1}, msg.Key)
	assert.Equal(t, moviequery.StatusSuccess, msg.Result.Status)
	assert.Equal(t, []domain.SearchKey{{Query: "inception", Page: 1}}, f.fetched)

	require.NotEmpty(t, bus.events)
	assert.Equal(t, eventbus.SearchSubmittedEvent{Query: "inception"}, bus.events[0])
}

func TestSubmit_EmptyQueryNeverFetches(t *testing.T) {
	e, s, f, _ := newExecutor()

	cmd := e.ExecuteSubmit("")
	assert.Nil(t, cmd)
	assert.Equal(t, "", s.Query)
	assert.Empty(t, f.begun)
	assert.Empty(t, f.fetched)
}

func TestSubmit_InFlightKeyIsNotRefetched(t *testing.T) {
	e, _, f, _ := newExecutor()

	first := e.ExecuteSubmit("alien")
	second := e.ExecuteSubmit("alien")

	assert.NotNil(t, first)
	assert.Nil(t, second)
	assert.Len(t, f.begun, 1)
}

func TestChangePage(t *testing.T) {
	e, s, f, bus := newExecutor()
	e.ExecuteSubmit("inception")()

	cmd := e.ExecuteChangePage(2)
	require.NotNil(t, cmd)
	assert.Equal(t, 2, s.Page)
	assert.Equal(t, "inception", s.Query)

	cmd()
	assert.Equal(t, domain.SearchKey{Query: "inception", Page: 2}, f.fetched[len(f.fetched)-1])
	assert.Contains(t, bus.events, eventbus.PageChangedEvent{Query: "inception", Page: 2})
}

func TestRefresh(t *testing.T) {
	e, _, f, _ := newExecutor()
	assert.Nil(t, e.ExecuteRefresh(), "nothing to refresh without a query")

	e.ExecuteSubmit("alien")()
	cmd := e.ExecuteRefresh()
	require.NotNil(t, cmd)
	assert.Equal(t, []domain.SearchKey{{Query: "alien", Page: 1}}, f.invalidated)
}

func TestSelectAndClose(t *testing.T) {
	e, s, _, bus := newExecutor()
	movie := &domain.Movie{ID: 27205, Title: "Inception"}

	assert.Nil(t, e.ExecuteSelect(nil))
	assert.False(t, s.OverlayOpen())

	e.ExecuteSelect(movie)
	assert.Same(t, movie, s.Selected)

	e.ExecuteCloseOverlay()
	assert.Nil(t, s.Selected)

	assert.Equal(t, []eventbus.DomainEvent{
		eventbus.MovieSelectedEvent{MovieID: 27205, Title: "Inception"},
		eventbus.OverlayClosedEvent{},
	}, bus.events)

	e.ExecuteCloseOverlay()
	assert.Len(t, bus.events, 2, "closing twice publishes once")
}
