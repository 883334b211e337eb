package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ILedgerService orchestrates the state transitions. Every mutating
// operation runs accrue -> gate -> mutate inside one database
// transaction; any failure rolls the whole operation back, accrual
// included. Each call returns the trace id of the recorded operation.
type ILedgerService interface {
	InitializeUser(ctx context.Context, userID, quoteAssetID string) (string, error)
	InitializeBank(ctx context.Context, bank *Bank) (string, error)
	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) (string, error)
	Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) (string, error)
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) (string, error)
	// Repay pays debt down by amount; with repayMax set the amount is
	// capped at the outstanding debt instead of failing above it.
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal, repayMax bool) (string, error)
	Liquidate(ctx context.Context, liquidatorID, targetUserID string) (string, error)
}
