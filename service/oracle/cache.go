package oracle

import (
	"context"
	"fmt"
	"time"

	"lendity/core"

	"github.com/bluele/gcache"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a price oracle service with a short-lived quote cache so
// an operation touching two banks reads each feed at most once. The TTL
// must stay inside the staleness window.
func Cache(srv core.IPriceOracleService, exp time.Duration) core.IPriceOracleService {
	return &cacheOracleService{
		IPriceOracleService: srv,
		cache:               gcache.New(128).LRU().Build(),
		exp:                 exp,
		sf:                  &singleflight.Group{},
	}
}

type cacheOracleService struct {
	core.IPriceOracleService
	cache gcache.Cache
	exp   time.Duration
	sf    *singleflight.Group
}

func (s *cacheOracleService) GetPrice(ctx context.Context, feedID string) (*core.PriceQuote, error) {
	key := s.quoteKey(feedID)
	if v, err := s.cache.Get(key); err == nil {
		if quote, ok := v.(*core.PriceQuote); ok {
			return quote, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		quote, err := s.IPriceOracleService.GetPrice(ctx, feedID)
		if err != nil {
			return nil, err
		}

		s.cache.SetWithExpire(key, quote, s.exp)
		return quote, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.PriceQuote), nil
}

func (s *cacheOracleService) quoteKey(feedID string) string {
	return fmt.Sprintf("oracle:quote:%s", feedID)
}
