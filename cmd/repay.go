package cmd

import (
	"lendity/pkg/number"

	"github.com/spf13/cobra"
)

var repayCmd = &cobra.Command{
	Use:   "repay",
	Short: "repay outstanding debt",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")
		repayMax, _ := cmd.Flags().GetBool("max")

		ledgerSrv, closer := provideLedger()
		defer closer()

		trace, err := ledgerSrv.Repay(cmd.Context(), userID, assetID, number.Decimal(amount), repayMax)
		if err != nil {
			cmd.PrintErrln("repay error:", err)
			return
		}

		cmd.Println("trace:", trace)
	},
}

func init() {
	repayCmd.Flags().String("user", "", "user id")
	repayCmd.Flags().String("asset", "", "asset id")
	repayCmd.Flags().String("amount", "", "amount to repay")
	repayCmd.Flags().Bool("max", false, "cap the amount at the outstanding debt")
	rootCmd.AddCommand(repayCmd)
}
