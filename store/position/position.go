package position

import (
	"context"

	"lendity/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type positionStore struct {
	db *db.DB
}

// New new position store
func New(db *db.DB) core.IPositionStore {
	return &positionStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.UserPosition{})
		if err := tx.AutoMigrate(core.UserPosition{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *positionStore) Create(ctx context.Context, tx *db.DB, position *core.UserPosition) error {
	return tx.Update().Create(position).Error
}

func (s *positionStore) Find(ctx context.Context, userID string) (*core.UserPosition, error) {
	var position core.UserPosition
	if err := s.db.View().Where("user_id=?", userID).First(&position).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.UserPosition{}, nil
		}

		return nil, err
	}

	return &position, nil
}

func (s *positionStore) All(ctx context.Context) ([]*core.UserPosition, error) {
	var positions []*core.UserPosition
	if err := s.db.View().Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

// Indebted positions holding any borrow shares
func (s *positionStore) Indebted(ctx context.Context) ([]*core.UserPosition, error) {
	var positions []*core.UserPosition
	if err := s.db.View().Where("borrow_shares > 0").Find(&positions).Error; err != nil {
		return nil, err
	}
	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, position *core.UserPosition) error {
	version := position.Version
	position.Version++
	updated := tx.Update().Model(core.UserPosition{}).Where("user_id=? and version=?", position.UserID, version).Update(position)
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrOperationForbidden
	}

	return nil
}
