package cmd

import (
	"lendity/pkg/number"

	"github.com/spf13/cobra"
)

var depositCmd = &cobra.Command{
	Use:   "deposit",
	Short: "deposit collateral into a bank",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")

		ledgerSrv, closer := provideLedger()
		defer closer()

		trace, err := ledgerSrv.Deposit(cmd.Context(), userID, assetID, number.Decimal(amount))
		if err != nil {
			cmd.PrintErrln("deposit error:", err)
			return
		}

		cmd.Println("trace:", trace)
	},
}

func init() {
	depositCmd.Flags().String("user", "", "user id")
	depositCmd.Flags().String("asset", "", "asset id")
	depositCmd.Flags().String("amount", "", "amount to deposit")
	rootCmd.AddCommand(depositCmd)
}
