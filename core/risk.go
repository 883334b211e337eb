package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// IRiskService computes collateral value, debt value and health factor
// for a position and gates the mutating operations.
//
// The gate methods evaluate accrued, in-memory banks supplied by the
// caller so that a pending accrual is visible before it is persisted.
// HealthFactor loads the banks itself and serves the read-only surface.
type IRiskService interface {
	HealthFactor(ctx context.Context, position *UserPosition) (decimal.Decimal, error)

	CollateralValue(ctx context.Context, position *UserPosition, depositBank *Bank) (decimal.Decimal, error)
	DebtValue(ctx context.Context, position *UserPosition, borrowBank *Bank) (decimal.Decimal, error)

	// BorrowAllowed fails with HealthError unless the position keeps a
	// health factor >= 1 after borrowing amount from borrowBank.
	BorrowAllowed(ctx context.Context, position *UserPosition, depositBank, borrowBank *Bank, amount decimal.Decimal) error
	// WithdrawAllowed fails with HealthError unless the position keeps a
	// health factor >= 1 after withdrawing amount from depositBank.
	WithdrawAllowed(ctx context.Context, position *UserPosition, depositBank, borrowBank *Bank, amount decimal.Decimal) error
	// LiquidationEligible returns the current health factor; fails with
	// HealthError(ErrNotEligibleForLiquidation) when it is >= 1.
	LiquidationEligible(ctx context.Context, position *UserPosition, depositBank, borrowBank *Bank) (decimal.Decimal, error)
}
