package sentry

import (
	"context"
	"time"

	"lendity/core"
	"lendity/worker"

	"github.com/fox-one/pkg/logger"
	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

var one = decimal.NewFromInt(1)

// Worker scans indebted positions and liquidates the underwater ones on
// behalf of the configured sentry account. It is an ordinary caller of
// the liquidate operation; interest accrual stays lazy inside the
// operation itself.
type Worker struct {
	worker.BaseJob
	Liquidator    string
	PositionStore core.IPositionStore
	RiskService   core.IRiskService
	LedgerService core.ILedgerService
}

// New new sentry worker
func New(
	location string,
	liquidator string,
	positionStore core.IPositionStore,
	riskService core.IRiskService,
	ledgerService core.ILedgerService,
) *Worker {
	job := Worker{
		Liquidator:    liquidator,
		PositionStore: positionStore,
		RiskService:   riskService,
		LedgerService: ledgerService,
	}

	l, _ := time.LoadLocation(location)
	job.Cron = cron.New(cron.WithLocation(l))
	spec := "@every 10s"
	job.Cron.AddFunc(spec, job.Run)
	job.OnWork = func() error {
		return job.onWork(context.Background())
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "sentry")

	positions, e := w.PositionStore.Indebted(ctx)
	if e != nil {
		log.WithError(e).Errorln("list indebted positions error")
		return e
	}

	for _, position := range positions {
		health, e := w.RiskService.HealthFactor(ctx, position)
		if e != nil {
			log.WithError(e).Errorln("health factor error, user:", position.UserID)
			continue
		}

		if health.GreaterThanOrEqual(one) {
			continue
		}

		log.Infoln("liquidating, user:", position.UserID, "health:", health)
		trace, e := w.LedgerService.Liquidate(ctx, w.Liquidator, position.UserID)
		if e != nil {
			log.WithError(e).Errorln("liquidate error, user:", position.UserID)
			continue
		}

		log.Infoln("liquidated, user:", position.UserID, "trace:", trace)
	}

	return nil
}
