package quote

import (
	"context"
	"time"

	"lendity/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// Quote holds the latest published record per feed; Save replaces it in
// place, so the table never grows beyond the feed count.
type Quote struct {
	ID          uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	FeedID      string          `sql:"size:64;unique_index:feed_idx" json:"feed_id"`
	Price       decimal.Decimal `sql:"type:decimal(32,16)" json:"price"`
	Exponent    int32           `json:"exponent"`
	Confidence  decimal.Decimal `sql:"type:decimal(32,16)" json:"confidence"`
	PublishedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"published_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

type quoteStore struct {
	db *db.DB
}

// New new quote store
func New(db *db.DB) core.IOracleFeedStore {
	return &quoteStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(Quote{})
		if err := tx.AutoMigrate(Quote{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *quoteStore) Save(ctx context.Context, quote *core.PriceQuote) error {
	updated := s.db.Update().Model(Quote{}).Where("feed_id=?", quote.FeedID).Updates(map[string]interface{}{
		"price":        quote.Price,
		"exponent":     quote.Exponent,
		"confidence":   quote.Confidence,
		"published_at": quote.PublishedAt,
	})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return s.db.Update().Create(&Quote{
			FeedID:      quote.FeedID,
			Price:       quote.Price,
			Exponent:    quote.Exponent,
			Confidence:  quote.Confidence,
			PublishedAt: quote.PublishedAt,
		}).Error
	}

	return nil
}

func (s *quoteStore) Read(ctx context.Context, feedID string) (*core.PriceQuote, error) {
	var record Quote
	if err := s.db.View().Where("feed_id=?", feedID).First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrOracleUnavailable
		}

		return nil, err
	}

	return &core.PriceQuote{
		FeedID:      record.FeedID,
		Price:       record.Price,
		Exponent:    record.Exponent,
		Confidence:  record.Confidence,
		PublishedAt: record.PublishedAt,
	}, nil
}
