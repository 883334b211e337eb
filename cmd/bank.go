package cmd

import (
	"lendity/core"
	"lendity/pkg/number"

	"github.com/spf13/cobra"
)

var initBankCmd = &cobra.Command{
	Use:   "init-bank",
	Short: "initialize a bank for an asset",
	Run: func(cmd *cobra.Command, args []string) {
		assetID, _ := cmd.Flags().GetString("asset")
		symbol, _ := cmd.Flags().GetString("symbol")
		feedID, _ := cmd.Flags().GetString("feed")
		threshold, _ := cmd.Flags().GetString("threshold")
		bonus, _ := cmd.Flags().GetString("bonus")

		// fall back on the configured feed registry
		if feedID == "" {
			feedID = cfg.Oracle.Feeds[assetID]
		}

		ledgerSrv, closer := provideLedger()
		defer closer()

		trace, err := ledgerSrv.InitializeBank(cmd.Context(), &core.Bank{
			AssetID:              assetID,
			Symbol:               symbol,
			PriceFeedID:          feedID,
			LiquidationThreshold: number.Decimal(threshold),
			LiquidationBonus:     number.Decimal(bonus),
		})
		if err != nil {
			cmd.PrintErrln("initialize bank error:", err)
			return
		}

		cmd.Println("trace:", trace)
	},
}

func init() {
	initBankCmd.Flags().String("asset", "", "asset id")
	initBankCmd.Flags().String("symbol", "", "asset symbol")
	initBankCmd.Flags().String("feed", "", "oracle price feed id")
	initBankCmd.Flags().String("threshold", "0.8", "liquidation threshold (0, 1]")
	initBankCmd.Flags().String("bonus", "0.1", "liquidation bonus [0, 0.9]")
	rootCmd.AddCommand(initBankCmd)
}
