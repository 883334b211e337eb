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

// Repay burns borrow shares for amount and returns the funds to the
// bank's pool. Amount above the outstanding debt fails unless repayMax
// is set, in which case it is capped at the debt.
func (s *service) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal, repayMax bool) (string, error) {
	log := logger.FromContext(ctx).WithField("operation", "repay")

	amount = amount.Truncate(AmountPrecision)
	if !amount.IsPositive() {
		return "", core.ErrInvalidAmount
	}

	trace := traceID()
	now := time.Now()

	err := s.db.Tx(func(tx *db.DB) error {
		bank, e := s.loadBank(ctx, assetID)
		if e != nil {
			return e
		}

		position, e := s.loadPosition(ctx, userID)
		if e != nil {
			return e
		}

		if !position.HasDebt() || position.BorrowedAssetID != bank.AssetID {
			return core.ErrDebtMismatch
		}

		if e := s.bankSrv.AccrueInterest(ctx, bank, now); e != nil {
			return e
		}

		debt := lendity.AmountForShares(position.BorrowShares, bank.TotalBorrowShares, bank.TotalBorrows)
		if amount.GreaterThan(debt) {
			if !repayMax {
				return core.ErrRepayExceedsDebt
			}
			amount = debt
		}

		if !amount.IsPositive() {
			return core.ErrInvalidAmount
		}

		shares := lendity.SharesForAmountCeil(amount, bank.TotalBorrowShares, bank.TotalBorrows)
		if shares.GreaterThan(position.BorrowShares) {
			shares = position.BorrowShares
		}

		bank.TotalBorrows = bank.TotalBorrows.Sub(amount)
		if bank.TotalBorrows.IsNegative() {
			bank.TotalBorrows = decimal.Zero
		}
		bank.TotalBorrowShares = bank.TotalBorrowShares.Sub(shares)

		position.BorrowShares = position.BorrowShares.Sub(shares)

		if e := s.bankStore.Update(ctx, tx, bank); e != nil {
			log.WithError(e).Errorln("update bank error")
			return e
		}

		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			log.WithError(e).Errorln("update position error")
			return e
		}

		health, e := s.health(ctx, position, nil, bank, now)
		if e != nil {
			return e
		}

		if e := s.opStore.Create(ctx, tx, &core.Operation{
			TraceID: trace,
			Type:    core.OpTypeRepay,
			UserID:  userID,
			AssetID: assetID,
			Amount:  amount,
			Shares:  shares,
			Health:  health,
		}); e != nil {
			return e
		}

		return s.walletSrv.Transfer(ctx, foxuuid.Modify(trace, "transfer"), userID, core.VaultAccount(assetID), assetID, amount)
	})
	if err != nil {
		return "", err
	}

	return trace, nil
}
