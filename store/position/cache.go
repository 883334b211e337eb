package position

import (
	"context"
	"fmt"
	"time"

	"lendity/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// Cache wraps a position store with a read cache for the hot Find path
// on the REST surface. Writes invalidate through.
func Cache(store core.IPositionStore, exp time.Duration) core.IPositionStore {
	return &cachePositionStore{
		IPositionStore: store,
		cache:          gcache.New(2048).LRU().Build(),
		exp:            exp,
		sf:             &singleflight.Group{},
	}
}

type cachePositionStore struct {
	core.IPositionStore
	cache gcache.Cache
	exp   time.Duration
	sf    *singleflight.Group
}

func (s *cachePositionStore) Create(ctx context.Context, tx *db.DB, position *core.UserPosition) error {
	if err := s.IPositionStore.Create(ctx, tx, position); err != nil {
		return err
	}
	s.cache.Remove(s.positionKey(position.UserID))
	return nil
}

func (s *cachePositionStore) Find(ctx context.Context, userID string) (*core.UserPosition, error) {
	key := s.positionKey(userID)
	if v, err := s.cache.Get(key); err == nil {
		if position, ok := v.(*core.UserPosition); ok {
			return position, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		position, err := s.IPositionStore.Find(ctx, userID)
		if err != nil {
			return nil, err
		}

		if position.ID > 0 {
			s.cache.SetWithExpire(key, position, s.exp)
		}
		return position, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*core.UserPosition), nil
}

func (s *cachePositionStore) Update(ctx context.Context, tx *db.DB, position *core.UserPosition) error {
	if err := s.IPositionStore.Update(ctx, tx, position); err != nil {
		return err
	}
	s.cache.Remove(s.positionKey(position.UserID))
	return nil
}

func (s *cachePositionStore) positionKey(userID string) string {
	return fmt.Sprintf("position:user:%s", userID)
}
