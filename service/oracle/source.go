package oracle

import (
	"context"
	"sync"

	"lendity/core"
)

// MemSource holds the latest published quote per feed in memory. The
// sandbox and tests publish into it directly; a production deployment
// swaps in a decoder over the real feed records.
type MemSource struct {
	mux    sync.RWMutex
	quotes map[string]*core.PriceQuote
}

// NewMemSource new in-memory feed source
func NewMemSource() *MemSource {
	return &MemSource{quotes: make(map[string]*core.PriceQuote)}
}

var _ core.IOracleFeedStore = (*MemSource)(nil)

// Publish replaces the feed's current quote
func (s *MemSource) Publish(quote *core.PriceQuote) {
	s.mux.Lock()
	defer s.mux.Unlock()

	s.quotes[quote.FeedID] = quote
}

func (s *MemSource) Save(ctx context.Context, quote *core.PriceQuote) error {
	s.Publish(quote)
	return nil
}

func (s *MemSource) Read(ctx context.Context, feedID string) (*core.PriceQuote, error) {
	s.mux.RLock()
	defer s.mux.RUnlock()

	quote, ok := s.quotes[feedID]
	if !ok {
		return nil, core.ErrOracleUnavailable
	}

	return quote, nil
}
