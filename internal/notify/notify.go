// Package notify turns empty search results into transient notifications.
package notify

import (
	"sync"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rs/zerolog"

	"moviegrip/internal/domain"
	"moviegrip/internal/moviequery"
)

// NoResultsMessage is shown when a search succeeds with zero movies
const NoResultsMessage = "No movies found for your request."

// seenLimit bounds how many settled occurrences are remembered
const seenLimit = 256

// Publisher receives notifications
type Publisher interface {
	Publish(event domain.DomainEvent)
}

type occurrence struct {
	key domain.SearchKey
	seq uint64
}

// Notifier fires once for every fetch occurrence that settles into an
// empty success. Observing the same occurrence again is a no-op.
type Notifier struct {
	mu     sync.Mutex
	pub    Publisher
	logger zerolog.Logger
	seen   *expirable.LRU[occurrence, struct{}]
	nextID uint64
}

// New creates a notifier publishing to pub
func New(pub Publisher, logger zerolog.Logger) *Notifier {
	return &Notifier{
		pub:    pub,
		logger: logger.With().Str("component", "notify").Logger(),
		seen:   expirable.NewLRU[occurrence, struct{}](seenLimit, nil, 0),
	}
}

// Observe inspects r and publishes a NotificationEvent when it is a new
// empty success. It reports whether a notification was published.
func (n *Notifier) Observe(r moviequery.Result) bool {
	if !r.Key.Enabled() || r.Status != moviequery.StatusSuccess || r.IsPlaceholderData {
		return false
	}
	if r.Seq == 0 || r.HasResults() {
		return false
	}

	n.mu.Lock()
	occ := occurrence{key: r.Key, seq: r.Seq}
	if n.seen.Contains(occ) {
		n.mu.Unlock()
		return false
	}
	n.seen.Add(occ, struct{}{})
	n.nextID++
	id := n.nextID
	n.mu.Unlock()

	n.logger.Info().Str("query", r.Key.Query).Int("page", r.Key.Page).Uint64("seq", r.Seq).Msg("No results")
	n.pub.Publish(domain.NotificationEvent{ID: id, Message: NoResultsMessage})
	return true
}
