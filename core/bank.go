package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Bank is the pooled ledger for one asset. Deposits and borrows are
// tracked as share pools; the exchange rate between shares and the
// underlying amount moves only when interest accrues.
type Bank struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:symbol_idx" json:"symbol"`
	// 价格源 id, 对应 oracle feed
	PriceFeedID        string          `sql:"size:64" json:"price_feed_id"`
	TotalDeposits      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_deposits"`
	TotalDepositShares decimal.Decimal `sql:"type:decimal(32,16)" json:"total_deposit_shares"`
	TotalBorrows       decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrows"`
	TotalBorrowShares  decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrow_shares"`
	// 保留金
	Reserves decimal.Decimal `sql:"type:decimal(32,16)" json:"reserves"`
	// 平台保留金率 [0, 1), 默认为 0
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`
	// 触发清算的最大借贷价值比 (0, 1]
	LiquidationThreshold decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_threshold"`
	// 清算奖励因子 [0, 1)
	LiquidationBonus decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_bonus"`
	// 清算人单次最大可清算的债务比例 (0, 1], 0 表示全额清算
	CloseFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"close_factor"`
	// 基础利率 per year
	BaseRate decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	// The multiplier of utilization rate that gives the slope of the interest rate. per year
	Multiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"multiplier"`
	// The multiplier after hitting the optimal utilization point. per year
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"jump_multiplier"`
	// 最优资金利用率拐点
	Kink                decimal.Decimal `sql:"type:decimal(20,8)" json:"kink"`
	UtilizationRate     decimal.Decimal `sql:"type:decimal(20,16)" json:"utilization_rate"`
	BorrowRatePerSecond decimal.Decimal `sql:"type:decimal(20,16)" json:"borrow_rate_per_second"`
	SupplyRatePerSecond decimal.Decimal `sql:"type:decimal(20,16)" json:"supply_rate_per_second"`
	LastAccruedAt       time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"last_accrued_at"`
	Version             int64           `sql:"default:0" json:"version"`
	CreatedAt           time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt           time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IdleLiquidity underlying amount available for withdrawals and borrows
func (b *Bank) IdleLiquidity() decimal.Decimal {
	return b.TotalDeposits.Sub(b.TotalBorrows)
}

// IBankStore bank store interface
type IBankStore interface {
	Create(ctx context.Context, tx *db.DB, bank *Bank) error
	Find(ctx context.Context, assetID string) (*Bank, error)
	FindBySymbol(ctx context.Context, symbol string) (*Bank, error)
	All(ctx context.Context) ([]*Bank, error)
	AllAsMap(ctx context.Context) (map[string]*Bank, error)
	Update(ctx context.Context, tx *db.DB, bank *Bank) error
}

// IBankService bank service interface
type IBankService interface {
	CurUtilizationRate(ctx context.Context, bank *Bank) (decimal.Decimal, error)
	CurBorrowRate(ctx context.Context, bank *Bank) (decimal.Decimal, error)
	CurSupplyRate(ctx context.Context, bank *Bank) (decimal.Decimal, error)
	// AccrueInterest applies lazy interest to the bank totals for the
	// time elapsed since the last accrual. Share totals are untouched.
	// Idempotent when called twice with the same time.
	AccrueInterest(ctx context.Context, bank *Bank, at time.Time) error
}
