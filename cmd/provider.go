package cmd

import (
	"time"

	"lendity/core"
	bankservice "lendity/service/bank"
	"lendity/service/ledger"
	"lendity/service/oracle"
	"lendity/service/risk"
	bankstore "lendity/store/bank"
	"lendity/store/operation"
	"lendity/store/position"
	"lendity/store/quote"
	walletstore "lendity/store/wallet"

	"github.com/fox-one/pkg/store/db"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideBankStore(db *db.DB) core.IBankStore {
	return bankstore.New(db)
}

func providePositionStore(db *db.DB) core.IPositionStore {
	return position.New(db)
}

func provideCachedPositionStore(db *db.DB) core.IPositionStore {
	return position.Cache(position.New(db), 5*time.Second)
}

func provideOperationStore(db *db.DB) core.IOperationStore {
	return operation.New(db)
}

func provideFeedStore(db *db.DB) core.IOracleFeedStore {
	return quote.New(db)
}

func provideOracleService(source core.IOracleFeedSource) core.IPriceOracleService {
	maxAge := cfg.Oracle.MaxAge()
	return oracle.Cache(oracle.New(source, maxAge), maxAge/2)
}

func provideBankService() core.IBankService {
	return bankservice.New()
}

func provideRiskService(bankStore core.IBankStore, bankSrv core.IBankService, oracleSrv core.IPriceOracleService) core.IRiskService {
	return risk.New(bankStore, bankSrv, oracleSrv)
}

func provideWalletStore(db *db.DB) core.IWalletStore {
	return walletstore.New(db)
}

// provideLedger builds the full operation stack for the one-shot CLI
// commands. The returned closer releases the database handle.
func provideLedger() (core.ILedgerService, func()) {
	database := provideDatabase()

	bankStore := provideBankStore(database)
	positionStore := providePositionStore(database)
	opStore := provideOperationStore(database)

	bankSrv := provideBankService()
	oracleSrv := provideOracleService(provideFeedStore(database))
	riskSrv := provideRiskService(bankStore, bankSrv, oracleSrv)
	walletSrv := provideWalletStore(database)

	ledgerSrv := provideLedgerService(database, bankStore, positionStore, opStore, bankSrv, riskSrv, oracleSrv, walletSrv)
	return ledgerSrv, func() { database.Close() }
}

func provideLedgerService(
	database *db.DB,
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	opStore core.IOperationStore,
	bankSrv core.IBankService,
	riskSrv core.IRiskService,
	oracleSrv core.IPriceOracleService,
	walletSrv core.IWalletService,
) core.ILedgerService {
	return ledger.New(database, bankStore, positionStore, opStore, bankSrv, riskSrv, oracleSrv, walletSrv, cfg.Rates)
}
