package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// UserPosition is the per-user ledger record. A position holds shares in
// at most one deposit bank and one borrow bank at a time; a role with
// zero shares has no exposure in that role.
type UserPosition struct {
	ID     uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	UserID string `sql:"size:36;unique_index:user_idx" json:"user_id"`
	// 用户注册时指定的计价资产
	QuoteAssetID    string          `sql:"size:36" json:"quote_asset_id"`
	DepositAssetID  string          `sql:"size:36;index:deposit_asset_idx" json:"deposit_asset_id"`
	DepositShares   decimal.Decimal `sql:"type:decimal(32,16)" json:"deposit_shares"`
	BorrowedAssetID string          `sql:"size:36;index:borrowed_asset_idx" json:"borrowed_asset_id"`
	BorrowShares    decimal.Decimal `sql:"type:decimal(32,16)" json:"borrow_shares"`
	Version         int64           `sql:"default:0" json:"version"`
	CreatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// HasCollateral reports whether the position holds any deposit shares
func (p *UserPosition) HasCollateral() bool {
	return p.DepositAssetID != "" && p.DepositShares.IsPositive()
}

// HasDebt reports whether the position owes any borrow shares
func (p *UserPosition) HasDebt() bool {
	return p.BorrowedAssetID != "" && p.BorrowShares.IsPositive()
}

// IPositionStore user position store interface
type IPositionStore interface {
	Create(ctx context.Context, tx *db.DB, position *UserPosition) error
	Find(ctx context.Context, userID string) (*UserPosition, error)
	All(ctx context.Context) ([]*UserPosition, error)
	Indebted(ctx context.Context) ([]*UserPosition, error)
	Update(ctx context.Context, tx *db.DB, position *UserPosition) error
}
