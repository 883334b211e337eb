package wallet

import (
	"context"
	"time"

	"lendity/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

// Balance one account's holding of one asset
type Balance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Account   string          `sql:"size:128;unique_index:account_asset_idx" json:"account"`
	AssetID   string          `sql:"size:36;unique_index:account_asset_idx" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount"`
	Version   int64           `json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Transfer a settled balance move, keyed by trace id for replay dedup
type Transfer struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:trace_idx" json:"trace_id"`
	Sender    string          `sql:"size:128" json:"sender"`
	Receiver  string          `sql:"size:128" json:"receiver"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,8)" json:"amount"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

type walletStore struct {
	db *db.DB
}

// New new wallet store
func New(db *db.DB) core.IWalletStore {
	return &walletStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(Balance{})
		if err := tx.AutoMigrate(Balance{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(Transfer{}).AutoMigrate(Transfer{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *walletStore) Transfer(ctx context.Context, traceID, from, to, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		var record Transfer
		if err := tx.Update().Where("trace_id=?", traceID).First(&record).Error; err != nil {
			if !gorm.IsRecordNotFoundError(err) {
				return err
			}
		} else {
			// settled already, replay is a no-op
			return nil
		}

		sender, err := findBalance(tx, from, assetID)
		if err != nil {
			return err
		}

		if sender.Amount.LessThan(amount) {
			return &core.LiquidityError{Required: amount, Available: sender.Amount}
		}

		if err := updateBalance(tx, sender, sender.Amount.Sub(amount)); err != nil {
			return err
		}

		receiver, err := findBalance(tx, to, assetID)
		if err != nil {
			return err
		}

		if err := updateBalance(tx, receiver, receiver.Amount.Add(amount)); err != nil {
			return err
		}

		return tx.Update().Create(&Transfer{
			TraceID:  traceID,
			Sender:   from,
			Receiver: to,
			AssetID:  assetID,
			Amount:   amount,
		}).Error
	})
}

func (s *walletStore) Balance(ctx context.Context, account, assetID string) (decimal.Decimal, error) {
	var record Balance
	if err := s.db.View().Where("account=? AND asset_id=?", account, assetID).First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return decimal.Zero, nil
		}

		return decimal.Zero, err
	}

	return record.Amount, nil
}

func (s *walletStore) Fund(ctx context.Context, account, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		balance, err := findBalance(tx, account, assetID)
		if err != nil {
			return err
		}

		return updateBalance(tx, balance, balance.Amount.Add(amount))
	})
}

func findBalance(tx *db.DB, account, assetID string) (*Balance, error) {
	var record Balance
	if err := tx.Update().Where("account=? AND asset_id=?", account, assetID).First(&record).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &Balance{Account: account, AssetID: assetID, Amount: decimal.Zero}, nil
		}

		return nil, err
	}

	return &record, nil
}

func updateBalance(tx *db.DB, balance *Balance, amount decimal.Decimal) error {
	if balance.ID == 0 {
		balance.Amount = amount
		balance.Version = 1
		return tx.Update().Create(balance).Error
	}

	version := balance.Version
	updated := tx.Update().Model(Balance{}).
		Where("id=? AND version=?", balance.ID, version).
		Updates(map[string]interface{}{
			"amount":  amount,
			"version": version + 1,
		})
	if updated.Error != nil {
		return updated.Error
	}

	if updated.RowsAffected == 0 {
		return core.ErrOperationForbidden
	}

	return nil
}
