package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Account names the holders the engine moves funds between. The bank
// vault account is derived from the bank's asset id.
const (
	// VaultAccountPrefix prefix of per-bank vault accounts
	VaultAccountPrefix = "vault:"
)

// VaultAccount account holding a bank's pooled funds
func VaultAccount(assetID string) string {
	return VaultAccountPrefix + assetID
}

// IWalletService is the external asset transfer collaborator: an exact,
// atomic balance move that fails the whole operation when the payer's
// balance is short. The engine calls it only after its own ledger
// mutation is decided.
type IWalletService interface {
	Transfer(ctx context.Context, traceID, from, to, assetID string, amount decimal.Decimal) error
	Balance(ctx context.Context, account, assetID string) (decimal.Decimal, error)
}

// IWalletStore is a wallet service whose balances live in the engine's
// own storage; Fund credits an account for seeding and sandbox use.
type IWalletStore interface {
	IWalletService
	Fund(ctx context.Context, account, assetID string, amount decimal.Decimal) error
}
