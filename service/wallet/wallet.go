package wallet

import (
	"context"
	"fmt"
	"sync"

	"lendity/core"

	"github.com/shopspring/decimal"
)

// Mem is a ledger-exact in-memory transfer service. It
// stands in for the host ledger's token transfers in tests and the
// local sandbox; a production deployment swaps in an adapter to the
// real transfer backend.
type Mem struct {
	mux      sync.Mutex
	balances map[string]decimal.Decimal
	seen     map[string]bool
}

// NewMem new in-memory wallet service
func NewMem() *Mem {
	return &Mem{
		balances: make(map[string]decimal.Decimal),
		seen:     make(map[string]bool),
	}
}

var _ core.IWalletStore = (*Mem)(nil)

// Fund credits an account out of thin air. Test and sandbox setup only.
func (s *Mem) Fund(ctx context.Context, account, assetID string, amount decimal.Decimal) error {
	s.mux.Lock()
	defer s.mux.Unlock()

	key := s.balanceKey(account, assetID)
	s.balances[key] = s.balances[key].Add(amount)
	return nil
}

// Transfer moves amount from one account to the other, atomically and
// exactly. Replays of an already applied trace id are no-ops.
func (s *Mem) Transfer(ctx context.Context, traceID, from, to, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if s.seen[traceID] {
		return nil
	}

	fromKey := s.balanceKey(from, assetID)
	if s.balances[fromKey].LessThan(amount) {
		return &core.LiquidityError{Required: amount, Available: s.balances[fromKey]}
	}

	toKey := s.balanceKey(to, assetID)
	s.balances[fromKey] = s.balances[fromKey].Sub(amount)
	s.balances[toKey] = s.balances[toKey].Add(amount)
	s.seen[traceID] = true

	return nil
}

func (s *Mem) Balance(ctx context.Context, account, assetID string) (decimal.Decimal, error) {
	s.mux.Lock()
	defer s.mux.Unlock()

	return s.balances[s.balanceKey(account, assetID)], nil
}

func (s *Mem) balanceKey(account, assetID string) string {
	return fmt.Sprintf("%s:%s", account, assetID)
}
