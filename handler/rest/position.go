package rest

import (
	"encoding/json"
	"net/http"

	"lendity/core"
	"lendity/handler/render"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

type positionView struct {
	*core.UserPosition
	HealthFactor decimal.Decimal `json:"health_factor"`
}

func positionHandler(positionStore core.IPositionStore, riskSrv core.IRiskService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		position, e := positionStore.Find(ctx, chi.URLParam(r, "user"))
		if e != nil {
			fail(w, e)
			return
		}

		if position.ID == 0 {
			fail(w, core.ErrPositionNotFound)
			return
		}

		health, e := riskSrv.HealthFactor(ctx, position)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, &positionView{UserPosition: position, HealthFactor: health})
	}
}

func initUserHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			UserID       string `json:"user_id"`
			QuoteAssetID string `json:"quote_asset_id"`
		}

		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		trace, e := ledgerSrv.InitializeUser(r.Context(), params.UserID, params.QuoteAssetID)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"trace_id": trace})
	}
}
