package cmd

import (
	"lendity/worker"
	"lendity/worker/sentry"

	"github.com/drone/signal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "run lendity background workers",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		bankStore := provideBankStore(database)
		positionStore := providePositionStore(database)
		opStore := provideOperationStore(database)

		bankSrv := provideBankService()
		oracleSrv := provideOracleService(provideFeedStore(database))
		riskSrv := provideRiskService(bankStore, bankSrv, oracleSrv)
		walletSrv := provideWalletStore(database)
		ledgerSrv := provideLedgerService(database, bankStore, positionStore, opStore, bankSrv, riskSrv, oracleSrv, walletSrv)

		liquidator, _ := cmd.Flags().GetString("liquidator")

		jobs := []worker.IJob{
			sentry.New(cfg.App.Location, liquidator, positionStore, riskSrv, ledgerSrv),
		}

		ctx = signal.WithContext(ctx)

		var g errgroup.Group
		for _, job := range jobs {
			job := job
			g.Go(job.Start)
		}

		if err := g.Wait(); err != nil {
			logrus.WithError(err).Fatal("start workers failed")
		}

		<-ctx.Done()

		for _, job := range jobs {
			job.Stop()
		}
	},
}

func init() {
	workerCmd.Flags().String("liquidator", "sentry", "account liquidations are executed as")
	rootCmd.AddCommand(workerCmd)
}
