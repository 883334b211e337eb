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

// Deposit mints deposit shares for amount against the bank's current
// exchange rate and credits the position.
func (s *service) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) (string, error) {
	log := logger.FromContext(ctx).WithField("operation", "deposit")

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

		if position.HasCollateral() && position.DepositAssetID != bank.AssetID {
			return core.ErrCollateralMismatch
		}

		if e := s.bankSrv.AccrueInterest(ctx, bank, now); e != nil {
			return e
		}

		shares := lendity.SharesForAmount(amount, bank.TotalDepositShares, bank.TotalDeposits)

		bank.TotalDeposits = bank.TotalDeposits.Add(amount)
		bank.TotalDepositShares = bank.TotalDepositShares.Add(shares)

		position.DepositAssetID = bank.AssetID
		position.DepositShares = position.DepositShares.Add(shares)

		if e := s.bankStore.Update(ctx, tx, bank); e != nil {
			log.WithError(e).Errorln("update bank error")
			return e
		}

		if e := s.positionStore.Update(ctx, tx, position); e != nil {
			log.WithError(e).Errorln("update position error")
			return e
		}

		health, e := s.health(ctx, position, bank, nil, now)
		if e != nil {
			return e
		}

		if e := s.opStore.Create(ctx, tx, &core.Operation{
			TraceID: trace,
			Type:    core.OpTypeDeposit,
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
