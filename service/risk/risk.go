package risk

import (
	"context"
	"time"

	"lendity/core"
	"lendity/internal/lendity"

	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

type service struct {
	bankStore core.IBankStore
	bankSrv   core.IBankService
	oracleSrv core.IPriceOracleService
}

// New new risk service
func New(
	bankStore core.IBankStore,
	bankSrv core.IBankService,
	oracleSrv core.IPriceOracleService,
) core.IRiskService {
	return &service{
		bankStore: bankStore,
		bankSrv:   bankSrv,
		oracleSrv: oracleSrv,
	}
}

// HealthFactor loads the position's banks, accrues them in memory up to
// now and reports the current ratio. Read-only: nothing is persisted.
func (s *service) HealthFactor(ctx context.Context, position *core.UserPosition) (decimal.Decimal, error) {
	if !position.HasDebt() {
		return lendity.MaxHealth, nil
	}

	now := time.Now()

	depositBank, e := s.loadAccrued(ctx, position.DepositAssetID, now)
	if e != nil {
		return decimal.Zero, e
	}

	borrowBank, e := s.loadAccrued(ctx, position.BorrowedAssetID, now)
	if e != nil {
		return decimal.Zero, e
	}

	collateralValue, e := s.CollateralValue(ctx, position, depositBank)
	if e != nil {
		return decimal.Zero, e
	}

	debtValue, e := s.DebtValue(ctx, position, borrowBank)
	if e != nil {
		return decimal.Zero, e
	}

	threshold := decimal.Zero
	if depositBank != nil {
		threshold = depositBank.LiquidationThreshold
	}

	return lendity.HealthFactor(collateralValue, threshold, debtValue), nil
}

func (s *service) CollateralValue(ctx context.Context, position *core.UserPosition, depositBank *core.Bank) (decimal.Decimal, error) {
	if !position.HasCollateral() || depositBank == nil {
		return decimal.Zero, nil
	}

	amount := lendity.AmountForShares(position.DepositShares, depositBank.TotalDepositShares, depositBank.TotalDeposits)

	quote, e := s.oracleSrv.GetPrice(ctx, depositBank.PriceFeedID)
	if e != nil {
		return decimal.Zero, e
	}

	return s.oracleSrv.ScaledValue(quote, amount), nil
}

func (s *service) DebtValue(ctx context.Context, position *core.UserPosition, borrowBank *core.Bank) (decimal.Decimal, error) {
	if !position.HasDebt() || borrowBank == nil {
		return decimal.Zero, nil
	}

	amount := lendity.AmountForShares(position.BorrowShares, borrowBank.TotalBorrowShares, borrowBank.TotalBorrows)

	quote, e := s.oracleSrv.GetPrice(ctx, borrowBank.PriceFeedID)
	if e != nil {
		return decimal.Zero, e
	}

	return s.oracleSrv.ScaledValue(quote, amount), nil
}

func (s *service) BorrowAllowed(ctx context.Context, position *core.UserPosition, depositBank, borrowBank *core.Bank, amount decimal.Decimal) error {
	collateralValue, e := s.CollateralValue(ctx, position, depositBank)
	if e != nil {
		return e
	}

	debtValue, e := s.DebtValue(ctx, position, borrowBank)
	if e != nil {
		return e
	}

	quote, e := s.oracleSrv.GetPrice(ctx, borrowBank.PriceFeedID)
	if e != nil {
		return e
	}

	newDebtValue := debtValue.Add(s.oracleSrv.ScaledValue(quote, amount))

	threshold := decimal.Zero
	if depositBank != nil {
		threshold = depositBank.LiquidationThreshold
	}

	health := lendity.HealthFactor(collateralValue, threshold, newDebtValue)
	if health.LessThan(one) {
		return &core.HealthError{Code: core.ErrHealthCheckFailed, Ratio: health}
	}

	return nil
}

func (s *service) WithdrawAllowed(ctx context.Context, position *core.UserPosition, depositBank, borrowBank *core.Bank, amount decimal.Decimal) error {
	if !position.HasDebt() {
		return nil
	}

	collateralValue, e := s.CollateralValue(ctx, position, depositBank)
	if e != nil {
		return e
	}

	debtValue, e := s.DebtValue(ctx, position, borrowBank)
	if e != nil {
		return e
	}

	quote, e := s.oracleSrv.GetPrice(ctx, depositBank.PriceFeedID)
	if e != nil {
		return e
	}

	remaining := collateralValue.Sub(s.oracleSrv.ScaledValue(quote, amount))
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	health := lendity.HealthFactor(remaining, depositBank.LiquidationThreshold, debtValue)
	if health.LessThan(one) {
		return &core.HealthError{Code: core.ErrHealthCheckFailed, Ratio: health}
	}

	return nil
}

func (s *service) LiquidationEligible(ctx context.Context, position *core.UserPosition, depositBank, borrowBank *core.Bank) (decimal.Decimal, error) {
	collateralValue, e := s.CollateralValue(ctx, position, depositBank)
	if e != nil {
		return decimal.Zero, e
	}

	debtValue, e := s.DebtValue(ctx, position, borrowBank)
	if e != nil {
		return decimal.Zero, e
	}

	threshold := decimal.Zero
	if depositBank != nil {
		threshold = depositBank.LiquidationThreshold
	}

	health := lendity.HealthFactor(collateralValue, threshold, debtValue)
	if health.GreaterThanOrEqual(one) {
		return health, &core.HealthError{Code: core.ErrNotEligibleForLiquidation, Ratio: health}
	}

	return health, nil
}

func (s *service) loadAccrued(ctx context.Context, assetID string, at time.Time) (*core.Bank, error) {
	if assetID == "" {
		return nil, nil
	}

	bank, e := s.bankStore.Find(ctx, assetID)
	if e != nil {
		return nil, e
	}

	if bank.ID == 0 {
		return nil, core.ErrBankNotFound
	}

	if e := s.bankSrv.AccrueInterest(ctx, bank, at); e != nil {
		return nil, e
	}

	return bank, nil
}
