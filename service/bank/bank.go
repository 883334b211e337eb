package bank

import (
	"context"
	"time"

	"lendity/core"
	"lendity/internal/lendity"

	"github.com/shopspring/decimal"
)

type service struct{}

// New new bank service
func New() core.IBankService {
	return &service{}
}

func (s *service) CurUtilizationRate(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	return lendity.UtilizationRate(bank.TotalDeposits, bank.TotalBorrows), nil
}

// CurBorrowRate current borrow APY
func (s *service) CurBorrowRate(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	rate, e := s.curBorrowRatePerSecondInternal(ctx, bank)
	if e != nil {
		return decimal.Zero, e
	}

	return rate.Mul(lendity.SecondsPerYear).Truncate(lendity.MaxPrecision), nil
}

// CurSupplyRate current supply APY
func (s *service) CurSupplyRate(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	rate, e := s.curSupplyRatePerSecondInternal(ctx, bank)
	if e != nil {
		return decimal.Zero, e
	}

	return rate.Mul(lendity.SecondsPerYear).Truncate(lendity.MaxPrecision), nil
}

func (s *service) curBorrowRatePerSecondInternal(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	utilRate, e := s.CurUtilizationRate(ctx, bank)
	if e != nil {
		return decimal.Zero, e
	}

	return lendity.GetBorrowRatePerSecond(utilRate, bank.BaseRate, bank.Multiplier, bank.JumpMultiplier, bank.Kink), nil
}

func (s *service) curSupplyRatePerSecondInternal(ctx context.Context, bank *core.Bank) (decimal.Decimal, error) {
	utilRate, e := s.CurUtilizationRate(ctx, bank)
	if e != nil {
		return decimal.Zero, e
	}

	return lendity.GetSupplyRatePerSecond(utilRate, bank.BaseRate, bank.Multiplier, bank.JumpMultiplier, bank.Kink, bank.ReserveFactor), nil
}

// AccrueInterest applies lazy interest for the time elapsed since
// LastAccruedAt. Mutates the bank in memory only; persisting is the
// caller's job inside its own transaction so a failed gate later in the
// operation rolls the accrual back with everything else.
func (s *service) AccrueInterest(ctx context.Context, bank *core.Bank, at time.Time) error {
	delta := at.Unix() - bank.LastAccruedAt.Unix()
	if delta > 0 {
		borrowRate, e := s.curBorrowRatePerSecondInternal(ctx, bank)
		if e != nil {
			return e
		}

		deposits, borrows, reserves := lendity.Accrue(bank.TotalDeposits, bank.TotalBorrows, bank.Reserves, borrowRate, bank.ReserveFactor, delta)
		bank.TotalDeposits = deposits
		bank.TotalBorrows = borrows
		bank.Reserves = reserves
		bank.LastAccruedAt = at
	}

	uRate, e := s.CurUtilizationRate(ctx, bank)
	if e != nil {
		return e
	}

	borrowRate, e := s.curBorrowRatePerSecondInternal(ctx, bank)
	if e != nil {
		return e
	}

	supplyRate, e := s.curSupplyRatePerSecondInternal(ctx, bank)
	if e != nil {
		return e
	}

	bank.UtilizationRate = uRate
	bank.BorrowRatePerSecond = borrowRate
	bank.SupplyRatePerSecond = supplyRate

	return nil
}
