package notify

import (
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moviegrip/internal/domain"
	"moviegrip/internal/moviequery"
)

type capture struct {
	events []domain.DomainEvent
}

func (c *capture) Publish(e domain.DomainEvent) {
	c.events = append(c.events, e)
}

func emptySuccess(query string, page int, seq uint64) moviequery.Result {
	return moviequery.Result{
		Key:    domain.SearchKey{Query: query, Page: page},
		Status: moviequery.StatusSuccess,
		Data:   &domain.ResultPage{Page: page},
		Seq:    seq,
	}
}

func TestNotifier_FiresOncePerOccurrence(t *testing.T) {
	pub := &capture{}
	n := New(pub, zerolog.Nop())

	r := emptySuccess("qwertyuiop", 1, 4)
	assert.True(t, n.Observe(r))
	assert.False(t, n.Observe(r))
	assert.False(t, n.Observe(r))

	require.Len(t, pub.events, 1)
	ev, ok := pub.events[0].(domain.NotificationEvent)
	require.True(t, ok)
	assert.Equal(t, NoResultsMessage, ev.Message)
	assert.Equal(t, uint64(1), ev.ID)
}

func TestNotifier_NewOccurrenceFiresAgain(t *testing.T) {
	pub := &capture{}
	n := New(pub, zerolog.Nop())

	assert.True(t, n.Observe(emptySuccess("zzz", 1, 1)))
	assert.True(t, n.Observe(emptySuccess("zzz", 1, 2)), "a refetch is a new occurrence")
	assert.True(t, n.Observe(emptySuccess("zzz", 2, 3)))
	assert.Len(t, pub.events, 3)
}

func TestNotifier_Ignored(t *testing.T) {
	withResults := emptySuccess("alien", 1, 1)
	withResults.Data.Results = []*domain.Movie{{ID: 1, Title: "Alien"}}

	placeholder := emptySuccess("alien", 2, 1)
	placeholder.IsPlaceholderData = true

	tests := []struct {
		name string
		r    moviequery.Result
	}{
		{"empty query", emptySuccess("", 1, 1)},
		{"idle", moviequery.Result{Key: domain.SearchKey{Query: "x", Page: 1}}},
		{"pending", moviequery.Result{Key: domain.SearchKey{Query: "x", Page: 1}, Status: moviequery.StatusPending}},
		{"error", moviequery.Result{Key: domain.SearchKey{Query: "x", Page: 1}, Status: moviequery.StatusError, Err: errors.New("boom"), Seq: 1}},
		{"has results", withResults},
		{"placeholder", placeholder},
		{"never settled", emptySuccess("x", 1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &capture{}
			assert.False(t, New(pub, zerolog.Nop()).Observe(tt.r))
			assert.Empty(t, pub.events)
		})
	}
}

func TestNotifier_SeenIsBounded(t *testing.T) {
	pub := &capture{}
	n := New(pub, zerolog.Nop())

	for seq := uint64(1); seq <= seenLimit+10; seq++ {
		require.True(t, n.Observe(emptySuccess("zzz", 1, seq)))
	}
	assert.Equal(t, seenLimit, n.seen.Len())

	// The most recent occurrences are still remembered
	assert.False(t, n.Observe(emptySuccess("zzz", 1, seenLimit+10)))
	assert.Len(t, pub.events, seenLimit+10)
}
