package ledger

import (
	"context"
	"time"

	"lendity/core"
	"lendity/internal/lendity"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
)

// Liquidate lets liquidatorID repay a close-factor bounded slice of the
// target's debt in exchange for collateral worth the repaid value plus
// the liquidation bonus, capped at the target's whole collateral. When
// the collateral no longer covers the debt plus the bonus the whole
// debt is closed instead, so the target's health never worsens.
func (s *service) Liquidate(ctx context.Context, liquidatorID, targetUserID string) (string, error) {
	log := logger.FromContext(ctx).WithField("operation", "liquidate")

	if liquidatorID == "" || liquidatorID == targetUserID {
		return "", core.ErrOperationForbidden
	}

	trace := traceID()
	now := time.Now()

	err := s.db.Tx(func(tx *db.DB) error {
		position, e := s.loadPosition(ctx, targetUserID)
		if e != nil {
			return e
		}

		if !position.HasDebt() {
			return &core.HealthError{Code: core.ErrNotEligibleForLiquidation, Ratio: lendity.MaxHealth}
		}

		borrowBank, e := s.loadBank(ctx, position.BorrowedAssetID)
		if e != nil {
			return e
		}

		var collateralBank *core.Bank
		if position.HasCollateral() {
			if collateralBank, e = s.loadBank(ctx, position.DepositAssetID); e != nil {
				return e
			}
			if collateralBank.AssetID == borrowBank.AssetID {
				collateralBank = borrowBank
			}
		}

		if e := s.bankSrv.AccrueInterest(ctx, borrowBank, now); e != nil {
			return e
		}
		if collateralBank != nil && collateralBank != borrowBank {
			if e := s.bankSrv.AccrueInterest(ctx, collateralBank, now); e != nil {
				return e
			}
		}

		preHealth, e := s.riskSrv.LiquidationEligible(ctx, position, collateralBank, borrowBank)
		if e != nil {
			return e
		}

		debt := lendity.AmountForShares(position.BorrowShares, borrowBank.TotalBorrowShares, borrowBank.TotalBorrows)

		borrowQuote, e := s.oracleSrv.GetPrice(ctx, borrowBank.PriceFeedID)
		if e != nil {
			return e
		}

		debtValue := s.oracleSrv.ScaledValue(borrowQuote, debt)

		var collateralQuote *core.PriceQuote
		collateralValue := decimal.Zero
		if collateralBank != nil {
			if collateralQuote, e = s.oracleSrv.GetPrice(ctx, collateralBank.PriceFeedID); e != nil {
				return e
			}

			collateralAmount := lendity.AmountForShares(position.DepositShares, collateralBank.TotalDepositShares, collateralBank.TotalDeposits)
			collateralValue = s.oracleSrv.ScaledValue(collateralQuote, collateralAmount)
		}

		// A close-factor slice narrows the gap only while the collateral
		// still covers the debt plus the bonus; below that line a
		// bonus-bearing partial close lowers the ratio, so the whole
		// debt is closed and the seizure capped at the collateral left.
		repayAmount := debt
		if collateralBank != nil &&
			borrowBank.CloseFactor.IsPositive() &&
			collateralValue.GreaterThanOrEqual(debtValue.Mul(one.Add(collateralBank.LiquidationBonus))) {
			repayAmount = debt.Mul(borrowBank.CloseFactor).Truncate(AmountPrecision)
			if !repayAmount.IsPositive() {
				repayAmount = debt
			}
		}

		repayShares := lendity.SharesForAmountCeil(repayAmount, borrowBank.TotalBorrowShares, borrowBank.TotalBorrows)
		if repayShares.GreaterThan(position.BorrowShares) {
			repayShares = position.BorrowShares
		}

		repaidValue := s.oracleSrv.ScaledValue(borrowQuote, repayAmount)

		// seize collateral worth the repaid value plus the bonus
		seizeShares := decimal.Zero
		seizeAmount := decimal.Zero
		if collateralBank != nil {
			seizeValue := repaidValue.Mul(one.Add(collateralBank.LiquidationBonus))
			seizeAmount = s.oracleSrv.AmountForValue(collateralQuote, seizeValue).Truncate(AmountPrecision)

			seizeShares = lendity.SharesForAmountCeil(seizeAmount, collateralBank.TotalDepositShares, collateralBank.TotalDeposits)
			if seizeShares.GreaterThan(position.DepositShares) {
				seizeShares = position.DepositShares
				seizeAmount = lendity.AmountForShares(seizeShares, collateralBank.TotalDepositShares, collateralBank.TotalDeposits)
			}
		}

		borrowBank.TotalBorrows = borrowBank.TotalBorrows.Sub(repayAmount)
		if borrowBank.TotalBorrows.IsNegative() {
			borrowBank.TotalBorrows = decimal.Zero
		}
		borrowBank.TotalBorrowShares = borrowBank.TotalBorrowShares.Sub(repayShares)
		position.BorrowShares = position.BorrowShares.Sub(repayShares)

		if collateralBank != nil {
			collateralBank.TotalDeposits = collateralBank.TotalDeposits.Sub(seizeAmount)
			collateralBank.TotalDepositShares = collateralBank.TotalDepositShares.Sub(seizeShares)
			position.DepositShares = position.DepositShares.Sub(seizeShares)
		}

		if e := s.bankStore.Update(ctx, tx, borrowBank); e != nil {
			log.WithError(e).Errorln("update borrow bank error")
			return e
		}

		if collateralBank != nil && collateralBank != borrowBank {
			if e := s.bankStore.Update(ctx, tx, collateralBank); e != nil {
				log.WithError(e).Errorln("update collateral bank error")
				return e
			}
		}

		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			log.WithError(e).Errorln("update position error")
			return e
		}

		if e := s.opStore.Create(ctx, tx, &core.Operation{
			TraceID: trace,
			Type:    core.OpTypeLiquidate,
			UserID:  targetUserID,
			AssetID: borrowBank.AssetID,
			Amount:  repayAmount,
			Shares:  repayShares,
			Health:  preHealth,
		}); e != nil {
			return e
		}

		if e := s.walletSrv.Transfer(ctx, foxuuid.Modify(trace, "repay"), liquidatorID, core.VaultAccount(borrowBank.AssetID), borrowBank.AssetID, repayAmount); e != nil {
			return e
		}

		if collateralBank != nil && seizeAmount.IsPositive() {
			return s.walletSrv.Transfer(ctx, foxuuid.Modify(trace, "seize"), core.VaultAccount(collateralBank.AssetID), liquidatorID, collateralBank.AssetID, seizeAmount)
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return trace, nil
}
