package cmd

import (
	"lendity/pkg/number"

	"github.com/spf13/cobra"
)

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "withdraw deposited collateral",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")

		ledgerSrv, closer := provideLedger()
		defer closer()

		trace, err := ledgerSrv.Withdraw(cmd.Context(), userID, assetID, number.Decimal(amount))
		if err != nil {
			cmd.PrintErrln("withdraw error:", err)
			return
		}

		cmd.Println("trace:", trace)
	},
}

func init() {
	withdrawCmd.Flags().String("user", "", "user id")
	withdrawCmd.Flags().String("asset", "", "asset id")
	withdrawCmd.Flags().String("amount", "", "amount to withdraw")
	rootCmd.AddCommand(withdrawCmd)
}
