package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// OpType operation type
type OpType int

const (
	// OpTypeInitUser initialize user position
	OpTypeInitUser OpType = iota + 1
	// OpTypeInitBank initialize bank
	OpTypeInitBank
	// OpTypeDeposit deposit
	OpTypeDeposit
	// OpTypeWithdraw withdraw
	OpTypeWithdraw
	// OpTypeBorrow borrow
	OpTypeBorrow
	// OpTypeRepay repay
	OpTypeRepay
	// OpTypeLiquidate liquidate
	OpTypeLiquidate
)

// Operation is the audit record every successful state transition leaves
// behind; its TraceID is the identifier returned to the caller.
type Operation struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:trace_idx" json:"trace_id"`
	Type      OpType          `json:"type"`
	UserID    string          `sql:"size:36;index:user_idx" json:"user_id"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Shares    decimal.Decimal `sql:"type:decimal(32,16)" json:"shares"`
	Health    decimal.Decimal `sql:"type:decimal(32,16)" json:"health"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// IOperationStore operation store interface
type IOperationStore interface {
	Create(ctx context.Context, tx *db.DB, op *Operation) error
	Find(ctx context.Context, traceID string) (*Operation, error)
	FindByUser(ctx context.Context, userID string, limit int) ([]*Operation, error)
}
