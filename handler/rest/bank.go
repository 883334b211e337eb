package rest

import (
	"encoding/json"
	"net/http"

	"lendity/core"
	"lendity/handler/render"

	"github.com/go-chi/chi"
	"github.com/shopspring/decimal"
)

type bankView struct {
	*core.Bank
	BorrowRate decimal.Decimal `json:"borrow_rate"`
	SupplyRate decimal.Decimal `json:"supply_rate"`
}

func banksHandler(bankStore core.IBankStore, bankSrv core.IBankService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		banks, e := bankStore.All(ctx)
		if e != nil {
			fail(w, e)
			return
		}

		views := make([]*bankView, 0, len(banks))
		for _, b := range banks {
			borrowRate, e := bankSrv.CurBorrowRate(ctx, b)
			if e != nil {
				continue
			}

			supplyRate, e := bankSrv.CurSupplyRate(ctx, b)
			if e != nil {
				continue
			}

			views = append(views, &bankView{Bank: b, BorrowRate: borrowRate, SupplyRate: supplyRate})
		}

		render.JSON(w, views)
	}
}

func bankHandler(bankStore core.IBankStore, bankSrv core.IBankService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		bank, e := bankStore.Find(ctx, chi.URLParam(r, "asset"))
		if e != nil {
			fail(w, e)
			return
		}

		if bank.ID == 0 {
			fail(w, core.ErrBankNotFound)
			return
		}

		borrowRate, e := bankSrv.CurBorrowRate(ctx, bank)
		if e != nil {
			fail(w, e)
			return
		}

		supplyRate, e := bankSrv.CurSupplyRate(ctx, bank)
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, &bankView{Bank: bank, BorrowRate: borrowRate, SupplyRate: supplyRate})
	}
}

func initBankHandler(ledgerSrv core.ILedgerService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params struct {
			AssetID              string          `json:"asset_id"`
			Symbol               string          `json:"symbol"`
			PriceFeedID          string          `json:"price_feed_id"`
			LiquidationThreshold decimal.Decimal `json:"liquidation_threshold"`
			LiquidationBonus     decimal.Decimal `json:"liquidation_bonus"`
		}

		if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
			render.BadRequest(w, err)
			return
		}

		trace, e := ledgerSrv.InitializeBank(r.Context(), &core.Bank{
			AssetID:              params.AssetID,
			Symbol:               params.Symbol,
			PriceFeedID:          params.PriceFeedID,
			LiquidationThreshold: params.LiquidationThreshold,
			LiquidationBonus:     params.LiquidationBonus,
		})
		if e != nil {
			fail(w, e)
			return
		}

		render.JSON(w, render.H{"trace_id": trace})
	}
}
