package rest

import (
	"encoding/json"
	"net/http"

	"lendity/core"
	"lendity/handler/render"

	"github.com/shopspring/decimal"
)

func operationsHandler(opStore core.IOperationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Query().Get("user")
		if userID == "" {
			fail(w, core.ErrInvalidParameter)
			return
		}

		ops, e := opStore.FindByUser(r.Context(), userID, 100)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, ops)
	}
}

type amountParams struct {
	UserID  string          `json:"user_id"`
	AssetID string          `json:"asset_id"`
	Amount  decimal.Decimal `json:"amount"`
}

func depositHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		trace, e := ledgerSrv.Deposit(r.Context(), params.UserID, params.AssetID, params.Amount)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"trace_id": trace})
	}
}

func withdrawHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		trace, e := ledgerSrv.Withdraw(r.Context(), params.UserID, params.AssetID, params.Amount)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"trace_id": trace})
	}
}

func borrowHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params amountParams
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		trace, e := ledgerSrv.Borrow(r.Context(), params.UserID, params.AssetID, params.Amount)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"trace_id": trace})
	}
}

func repayHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			amountParams
			RepayMax bool `json:"repay_max"`
		}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		trace, e := ledgerSrv.Repay(r.Context(), params.UserID, params.AssetID, params.Amount, params.RepayMax)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"trace_id": trace})
	}
}

func liquidateHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			LiquidatorID string `json:"liquidator_id"`
			UserID       string `json:"user_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		trace, e := ledgerSrv.Liquidate(r.Context(), params.LiquidatorID, params.UserID)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"trace_id": trace})
	}
}
