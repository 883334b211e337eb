package rest

import (
	"encoding/json"
	"net/http"
	"time"

	"lendity/core"
	"lendity/handler/render"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

func publishQuoteHandler(feedStore core.IOracleFeedStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			FeedID      string          `json:"feed_id"`
			Price       decimal.Decimal `json:"price"`
			Exponent    int32           `json:"exponent"`
			Confidence  decimal.Decimal `json:"confidence"`
			PublishedAt time.Time       `json:"published_at"`
		}

		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.FeedID == "" || !params.Price.IsPositive() {
			fail(w, core.ErrInvalidPrice)
			return
		}

		if params.PublishedAt.IsZero() {
			params.PublishedAt = time.Now()
		}

		if e := feedStore.Save(r.Context(), &core.PriceQuote{
			FeedID:      params.FeedID,
			Price:       params.Price,
			Exponent:    params.Exponent,
			Confidence:  params.Confidence,
			PublishedAt: params.PublishedAt,
		}); e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"feed_id": params.FeedID})
	}
}

func fundHandler(walletStore core.IWalletStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			Account string          `json:"account"`
			AssetID string          `json:"asset_id"`
			Amount  decimal.Decimal `json:"amount"`
		}

		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		if params.Account == "" || params.AssetID == "" || !params.Amount.IsPositive() {
			fail(w, core.ErrInvalidParameter)
			return
		}

		if e := walletStore.Fund(r.Context(), params.Account, params.AssetID, params.Amount); e != nil {
			fail(w, e)
			return
		}

		balance, e := walletStore.Balance(r.Context(), params.Account, params.AssetID)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"balance": balance})
	}
}

func balanceHandler(walletStore core.IWalletStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		balance, e := walletStore.Balance(r.Context(), chi.URLParam(r, "account"), chi.URLParam(r, "asset"))
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"balance": balance})
	}
}
