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

// Withdraw burns deposit shares for amount after the post-withdrawal
// health gate passes and pays the user out of the bank's idle funds.
func (s *service) Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) (string, error) {
	log := logger.FromContext(ctx).WithField("operation", "withdraw")

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

		if !position.HasCollateral() || position.DepositAssetID != bank.AssetID {
			return core.ErrCollateralMismatch
		}

		if e := s.bankSrv.AccrueInterest(ctx, bank, now); e != nil {
			return e
		}

		var borrowBank *core.Bank
		if position.HasDebt() {
			if borrowBank, e = s.loadBank(ctx, position.BorrowedAssetID); e != nil {
				return e
			}
			if borrowBank.AssetID == bank.AssetID {
				borrowBank = bank
			} else if e = s.bankSrv.AccrueInterest(ctx, borrowBank, now); e != nil {
				return e
			}
		}

		balance := lendity.AmountForShares(position.DepositShares, bank.TotalDepositShares, bank.TotalDeposits)
		if amount.GreaterThan(balance) {
			return core.ErrInvalidAmount
		}

		if amount.GreaterThan(bank.IdleLiquidity()) {
			return &core.LiquidityError{Required: amount, Available: bank.IdleLiquidity()}
		}

		if e := s.riskSrv.WithdrawAllowed(ctx, position, bank, borrowBank, amount); e != nil {
			return e
		}

		shares := lendity.SharesForAmountCeil(amount, bank.TotalDepositShares, bank.TotalDeposits)
		if shares.GreaterThan(position.DepositShares) {
			shares = position.DepositShares
		}

		bank.TotalDeposits = bank.TotalDeposits.Sub(amount)
		bank.TotalDepositShares = bank.TotalDepositShares.Sub(shares)

		position.DepositShares = position.DepositShares.Sub(shares)

		if e := s.bankStore.Update(ctx, tx, bank); e != nil {
			log.WithError(e).Errorln("update bank error")
			return e
		}

		if borrowBank != nil && borrowBank != bank {
			if e := s.bankStore.Update(ctx, tx, borrowBank); e != nil {
				return e
			}
		}

		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			log.WithError(e).Errorln("update position error")
			return e
		}

		health, e := s.health(ctx, position, bank, borrowBank, now)
		if e != nil {
			return e
		}

		if e := s.opStore.Create(ctx, tx, &core.Operation{
			TraceID: trace,
			Type:    core.OpTypeWithdraw,
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
