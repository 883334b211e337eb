package cmd

import (
	"lendity/pkg/number"

	"github.com/spf13/cobra"
)

var borrowCmd = &cobra.Command{
	Use:   "borrow",
	Short: "borrow against deposited collateral",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")

		ledgerSrv, closer := provideLedger()
		defer closer()

		trace, err := ledgerSrv.Borrow(cmd.Context(), userID, assetID, number.Decimal(amount))
		if err != nil {
			cmd.PrintErrln("borrow error:", err)
			return
		}

		cmd.Println("trace:", trace)
	},
}

func init() {
	borrowCmd.Flags().String("user", "", "user id")
	borrowCmd.Flags().String("asset", "", "asset id")
	borrowCmd.Flags().String("amount", "", "amount to borrow")
	rootCmd.AddCommand(borrowCmd)
}
