package ledger

import (
	"context"
	"time"

	"lendity/core"
	"lendity/internal/lendity"

	"github.com/fox-one/pkg/store/db"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// AmountPrecision asset amounts are truncated to 8 decimals on intake
const AmountPrecision int32 = 8

// txRunner is the slice of *db.DB the service needs; tests swap in a
// runner that hands the closure a nil tx.
type txRunner interface {
	Tx(fn func(tx *db.DB) error) error
}

type service struct {
	db            txRunner
	bankStore     core.IBankStore
	positionStore core.IPositionStore
	opStore       core.IOperationStore
	bankSrv       core.IBankService
	riskSrv       core.IRiskService
	oracleSrv     core.IPriceOracleService
	walletSrv     core.IWalletService
	rates         core.Rates
}

// New new ledger service
func New(
	database *db.DB,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	opStore core.IOperationStore,
	bankSrv core.IBankService,
	riskSrv core.IRiskService,
	oracleSrv core.IPriceOracleService,
	walletSrv core.IWalletService,
	rates core.Rates,
) core.ILedgerService {
	return &service{
		db:            database,
		bankStore:     bankStore,
		positionStore: positionStore,
		opStore:       opStore,
		bankSrv:       bankSrv,
		riskSrv:       riskSrv,
		oracleSrv:     oracleSrv,
		walletSrv:     walletSrv,
		rates:         rates,
	}
}

func traceID() string {
	return uuid.Must(uuid.NewV4()).String()
}

func (s *service) loadBank(ctx context.Context, assetID string) (*core.Bank, error) {
	bank, e := s.bankStore.Find(ctx, assetID)
	if e != nil {
		return nil, e
	}

	if bank.ID == 0 {
		return nil, core.ErrBankNotFound
	}

	return bank, nil
}

func (s *service) loadPosition(ctx context.Context, userID string) (*core.UserPosition, error) {
	position, e := s.positionStore.Find(ctx, userID)
	if e != nil {
		return nil, e
	}

	if position.ID == 0 {
		return nil, core.ErrPositionNotFound
	}

	return position, nil
}

// health evaluates the position against the supplied in-memory banks,
// loading and accruing whichever side the caller has not already
// touched. Used only to stamp the operation row.
func (s *service) health(ctx context.Context, position *core.UserPosition, depositBank, borrowBank *core.Bank, at time.Time) (decimal.Decimal, error) {
	if !position.HasDebt() {
		return lendity.MaxHealth, nil
	}

	var e error
	if depositBank == nil && position.HasCollateral() {
		if depositBank, e = s.loadBank(ctx, position.DepositAssetID); e != nil {
			return decimal.Zero, e
		}
		if e = s.bankSrv.AccrueInterest(ctx, depositBank, at); e != nil {
			return decimal.Zero, e
		}
	}

	if borrowBank == nil {
		if borrowBank, e = s.loadBank(ctx, position.BorrowedAssetID); e != nil {
			return decimal.Zero, e
		}
		if e = s.bankSrv.AccrueInterest(ctx, borrowBank, at); e != nil {
			return decimal.Zero, e
		}
	}

	collateralValue, e := s.riskSrv.CollateralValue(ctx, position, depositBank)
	if e != nil {
		return decimal.Zero, e
	}

	debtValue, e := s.riskSrv.DebtValue(ctx, position, borrowBank)
	if e != nil {
		return decimal.Zero, e
	}

	threshold := decimal.Zero
	if depositBank != nil {
		threshold = depositBank.LiquidationThreshold
	}

	return lendity.HealthFactor(collateralValue, threshold, debtValue), nil
}
