package rest

import (
	"errors"
	"net/http"

	"lendity/core"
	"lendity/handler/render"

	"github.com/go-chi/chi"
)

// Handle handle rest api request
func Handle(
	bankStore core.IBankStore,
	positionStore core.IPositionStore,
	opStore core.IOperationStore,
	bankService core.IBankService,
	riskService core.IRiskService,
	ledgerService core.ILedgerService,
	feedStore core.IOracleFeedStore,
	walletStore core.IWalletStore,
) http.Handler {
	router := chi.NewRouter()

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		render.NotFoundRequest(w, errors.New("not found"))
	})

	router.Get("/banks", banksHandler(bankStore, bankService))
	router.Get("/banks/{asset}", bankHandler(bankStore, bankService))
	router.Get("/positions/{user}", positionHandler(positionStore, riskService))
	router.Get("/operations", operationsHandler(opStore))
	router.Get("/balances/{account}/{asset}", balanceHandler(walletStore))

	router.Post("/users", initUserHandler(ledgerService))
	router.Post("/banks", initBankHandler(ledgerService))
	router.Post("/deposits", depositHandler(ledgerService))
	router.Post("/withdrawals", withdrawHandler(ledgerService))
	router.Post("/borrows", borrowHandler(ledgerService))
	router.Post("/repayments", repayHandler(ledgerService))
	router.Post("/liquidations", liquidateHandler(ledgerService))
	router.Post("/quotes", publishQuoteHandler(feedStore))
	router.Post("/funds", fundHandler(walletStore))

	return router
}

// fail maps engine errors onto the response envelope, keeping the
// taxonomy code and any carried context visible to the caller
func fail(w http.ResponseWriter, err error) {
	var healthErr *core.HealthError
	if errors.As(err, &healthErr) {
		render.Error(w, http.StatusBadRequest, int(healthErr.Code), err)
		return
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		render.Error(w, http.StatusBadRequest, int(code), err)
		return
	}

	var liqErr *core.LiquidityError
	if errors.As(err, &liqErr) {
		render.Error(w, http.StatusBadRequest, int(core.ErrInsufficientLiquidity), err)
		return
	}

	render.Error(w, http.StatusInternalServerError, int(core.ErrUnknown), err)
}
