package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// PriceQuote is an externally published price. Ephemeral: consumed once
// per operation, never persisted.
type PriceQuote struct {
	FeedID      string          `json:"feed_id"`
	Price       decimal.Decimal `json:"price"`
	Exponent    int32           `json:"exponent"`
	Confidence  decimal.Decimal `json:"confidence"`
	PublishedAt time.Time       `json:"published_at"`
}

// IOracleFeedSource reads the raw record behind a feed id. Update
// cadence and publication trust live outside the engine.
type IOracleFeedSource interface {
	Read(ctx context.Context, feedID string) (*PriceQuote, error)
}

// IOracleFeedStore is a feed source whose records are published into
// the engine's own storage; Save replaces the feed's current quote.
type IOracleFeedStore interface {
	IOracleFeedSource
	Save(ctx context.Context, quote *PriceQuote) error
}

// IPriceOracleService price oracle adapter interface
type IPriceOracleService interface {
	// GetPrice returns a fresh quote or fails with ErrStaleOracle /
	// ErrOracleUnavailable. Side-effect free.
	GetPrice(ctx context.Context, feedID string) (*PriceQuote, error)
	// ScaledValue converts amount of the quoted asset to quote value,
	// amount * price * 10^exponent
	ScaledValue(quote *PriceQuote, amount decimal.Decimal) decimal.Decimal
	// AmountForValue inverse of ScaledValue
	AmountForValue(quote *PriceQuote, value decimal.Decimal) decimal.Decimal
}
