package ledger

import (
	"context"
	"time"

	"lendity/core"
	"lendity/internal/lendity"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// InitializeBank creates a zeroed bank for template.AssetID. Curve and
// close-factor fields left zero on the template take the configured
// defaults.
func (s *service) InitializeBank(ctx context.Context, template *core.Bank) (string, error) {
	log := logger.FromContext(ctx).WithField("operation", "initialize_bank")

	if template.AssetID == "" || template.PriceFeedID == "" {
		return "", core.ErrInvalidParameter
	}

	threshold := template.LiquidationThreshold
	if !threshold.IsPositive() || threshold.GreaterThan(one) {
		return "", core.ErrInvalidParameter
	}

	bonus := template.LiquidationBonus
	if bonus.IsNegative() || bonus.GreaterThan(lendity.LiquidationBonusMax) {
		return "", core.ErrInvalidParameter
	}

	bank := &core.Bank{
		AssetID:              template.AssetID,
		Symbol:               template.Symbol,
		PriceFeedID:          template.PriceFeedID,
		TotalDeposits:        decimal.Zero,
		TotalDepositShares:   decimal.Zero,
		TotalBorrows:         decimal.Zero,
		TotalBorrowShares:    decimal.Zero,
		Reserves:             decimal.Zero,
		LiquidationThreshold: threshold,
		LiquidationBonus:     bonus,
		CloseFactor:          template.CloseFactor,
		ReserveFactor:        template.ReserveFactor,
		BaseRate:             template.BaseRate,
		Multiplier:           template.Multiplier,
		JumpMultiplier:       template.JumpMultiplier,
		Kink:                 template.Kink,
		LastAccruedAt:        time.Now(),
	}

	if bank.CloseFactor.IsZero() {
		bank.CloseFactor = s.rates.CloseFactor
	}
	if bank.ReserveFactor.IsZero() {
		bank.ReserveFactor = s.rates.ReserveFactor
	}
	if bank.BaseRate.IsZero() {
		bank.BaseRate = s.rates.BaseRate
	}
	if bank.Multiplier.IsZero() {
		bank.Multiplier = s.rates.Multiplier
	}
	if bank.JumpMultiplier.IsZero() {
		bank.JumpMultiplier = s.rates.JumpMultiplier
	}
	if bank.Kink.IsZero() {
		bank.Kink = s.rates.Kink
	}

	if bank.CloseFactor.IsPositive() &&
		(bank.CloseFactor.LessThanOrEqual(lendity.CloseFactorMin) || bank.CloseFactor.GreaterThan(lendity.CloseFactorMax)) {
		return "", core.ErrInvalidParameter
	}

	trace := traceID()
	err := s.db.Tx(func(tx *db.DB) error {
		existing, e := s.bankStore.Find(ctx, bank.AssetID)
		if e != nil {
			return e
		}

		if existing.ID > 0 {
			return core.ErrDuplicateBank
		}

		if e := s.bankStore.Create(ctx, tx, bank); e != nil {
			log.WithError(e).Errorln("create bank error")
			return e
		}

		return s.opStore.Create(ctx, tx, &core.Operation{
			TraceID: trace,
			Type:    core.OpTypeInitBank,
			AssetID: bank.AssetID,
		})
	})
	if err != nil {
		return "", err
	}

	return trace, nil
}
