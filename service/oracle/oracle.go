package oracle

import (
	"context"
	"time"

	"lendity/core"
	"lendity/internal/lendity"
	"lendity/pkg/number"

	"github.com/shopspring/decimal"
)

// exponents outside this band carry no real-world price and would only
// blow up or vanish the scaled value
const maxExponent int32 = 18

type service struct {
	source core.IOracleFeedSource
	maxAge time.Duration
}

// New new price oracle service
func New(source core.IOracleFeedSource, maxAge time.Duration) core.IPriceOracleService {
	return &service{
		source: source,
		maxAge: maxAge,
	}
}

func (s *service) GetPrice(ctx context.Context, feedID string) (*core.PriceQuote, error) {
	quote, err := s.source.Read(ctx, feedID)
	if err != nil {
		return nil, core.ErrOracleUnavailable
	}

	if quote == nil || !quote.Price.IsPositive() {
		return nil, core.ErrInvalidPrice
	}

	if time.Since(quote.PublishedAt) > s.maxAge {
		return nil, core.ErrStaleOracle
	}

	return quote, nil
}

func (s *service) ScaledValue(quote *core.PriceQuote, amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(scaledPrice(quote)).Truncate(lendity.MaxPrecision)
}

func (s *service) AmountForValue(quote *core.PriceQuote, value decimal.Decimal) decimal.Decimal {
	price := scaledPrice(quote)
	if !price.IsPositive() {
		return decimal.Zero
	}

	return number.Floor(value.Div(price), lendity.MaxPrecision)
}

func scaledPrice(quote *core.PriceQuote) decimal.Decimal {
	exp := quote.Exponent
	if exp > maxExponent {
		exp = maxExponent
	} else if exp < -maxExponent {
		exp = -maxExponent
	}

	return quote.Price.Shift(exp)
}
