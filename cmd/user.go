package cmd

import (
	"github.com/spf13/cobra"
)

var initUserCmd = &cobra.Command{
	Use:   "init-user",
	Short: "initialize a user position",
	Run: func(cmd *cobra.Command, args []string) {
		userID, _ := cmd.Flags().GetString("user")
		quoteAssetID, _ := cmd.Flags().GetString("quote")

		ledgerSrv, closer := provideLedger()
		defer closer()

		trace, err := ledgerSrv.InitializeUser(cmd.Context(), userID, quoteAssetID)
		if err != nil {
			cmd.PrintErrln("initialize user error:", err)
			return
		}

		cmd.Println("trace:", trace)
	},
}

func init() {
	initUserCmd.Flags().String("user", "", "user id")
	initUserCmd.Flags().String("quote", "", "quote asset id the position is registered against")
	rootCmd.AddCommand(initUserCmd)
}
