package operation

import (
	"context"

	"lendity/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type operationStore struct {
	db *db.DB
}

// New new operation store
func New(db *db.DB) core.IOperationStore {
	return &operationStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Operation{})
		if err := tx.AutoMigrate(core.Operation{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *operationStore) Create(ctx context.Context, tx *db.DB, op *core.Operation) error {
	return tx.Update().Where("trace_id=?", op.TraceID).FirstOrCreate(op).Error
}

func (s *operationStore) Find(ctx context.Context, traceID string) (*core.Operation, error) {
	var op core.Operation
	if err := s.db.View().Where("trace_id=?", traceID).First(&op).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Operation{}, nil
		}

		return nil, err
	}

	return &op, nil
}

func (s *operationStore) FindByUser(ctx context.Context, userID string, limit int) ([]*core.Operation, error) {
	if limit <= 0 {
		limit = 100
	}

	var ops []*core.Operation
	if err := s.db.View().Where("user_id=?", userID).Order("id DESC").Limit(limit).Find(&ops).Error; err != nil {
		return nil, err
	}

	return ops, nil
}
