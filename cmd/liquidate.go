package cmd

import (
	"github.com/spf13/cobra"
)

var liquidateCmd = &cobra.Command{
	Use:   "liquidate",
	Short: "liquidate an unhealthy position",
	Run: func(cmd *cobra.Command, args []string) {
		liquidatorID, _ := cmd.Flags().GetString("liquidator")
		userID, _ := cmd.Flags().GetString("user")

		ledgerSrv, closer := provideLedger()
		defer closer()

		trace, err := ledgerSrv.Liquidate(cmd.Context(), liquidatorID, userID)
		if err != nil {
			cmd.PrintErrln("liquidate error:", err)
			return
		}

		cmd.Println("trace:", trace)
	},
}

func init() {
	liquidateCmd.Flags().String("liquidator", "", "liquidator user id")
	liquidateCmd.Flags().String("user", "", "target user id")
	rootCmd.AddCommand(liquidateCmd)
}
