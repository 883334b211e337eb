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

// Borrow mints borrow shares for amount once the health gate passes and
// pays the user out of the bank's idle funds.
func (s *service) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) (string, error) {
	log := logger.FromContext(ctx).WithField("operation", "borrow")

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

		if position.HasDebt() && position.BorrowedAssetID != bank.AssetID {
			return core.ErrDebtMismatch
		}

		if e := s.bankSrv.AccrueInterest(ctx, bank, now); e != nil {
			return e
		}

		var depositBank *core.Bank
		if position.HasCollateral() {
			if depositBank, e = s.loadBank(ctx, position.DepositAssetID); e != nil {
				return e
			}
			if depositBank.AssetID == bank.AssetID {
				depositBank = bank
			} else if e = s.bankSrv.AccrueInterest(ctx, depositBank, now); e != nil {
				return e
			}
		}

		if amount.GreaterThan(bank.IdleLiquidity()) {
			return &core.LiquidityError{Required: amount, Available: bank.IdleLiquidity()}
		}

		if e := s.riskSrv.BorrowAllowed(ctx, position, depositBank, bank, amount); e != nil {
			log.Infoln("borrow not allowed:", e)
			return e
		}

		shares := lendity.SharesForAmount(amount, bank.TotalBorrowShares, bank.TotalBorrows)

		bank.TotalBorrows = bank.TotalBorrows.Add(amount)
		bank.TotalBorrowShares = bank.TotalBorrowShares.Add(shares)

		position.BorrowedAssetID = bank.AssetID
		position.BorrowShares = position.BorrowShares.Add(shares)

		if e := s.bankStore.Update(ctx, tx, bank); e != nil {
			log.WithError(e).Errorln("update bank error")
			return e
		}

		if depositBank != nil && depositBank != bank {
			if e := s.bankStore.Update(ctx, tx, depositBank); e != nil {
				return e
			}
		}

		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			log.WithError(e).Errorln("update position error")
			return e
		}

		health, e := s.health(ctx, position, depositBank, bank, now)
		if e != nil {
			return e
		}

		if e := s.opStore.Create(ctx, tx, &core.Operation{
			TraceID: trace,
			Type:    core.OpTypeBorrow,
			UserID:  userID,
			AssetID: assetID,
			Amount:  amount,
			Shares:  shares,
			Health:  health,
		}); e != nil {
			return e
		}

		return s.walletSrv.Transfer(ctx, foxuuid.Modify(trace, "transfer"), core.VaultAccount(assetID), userID, assetID, amount)
	})
	if err != nil {
		return "", err
	}

	return trace, nil
}
