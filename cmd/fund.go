package cmd

import (
	"lendity/pkg/number"

	"github.com/spf13/cobra"
)

var fundCmd = &cobra.Command{
	Use:   "fund",
	Short: "credit an account's wallet balance",
	Run: func(cmd *cobra.Command, args []string) {
		account, _ := cmd.Flags().GetString("account")
		assetID, _ := cmd.Flags().GetString("asset")
		amount, _ := cmd.Flags().GetString("amount")

		database := provideDatabase()
		defer database.Close()

		walletStore := provideWalletStore(database)
		if err := walletStore.Fund(cmd.Context(), account, assetID, number.Decimal(amount)); err != nil {
			cmd.PrintErrln("fund error:", err)
			return
		}

		balance, err := walletStore.Balance(cmd.Context(), account, assetID)
		if err != nil {
			cmd.PrintErrln("fund error:", err)
			return
		}

		cmd.Println("balance:", balance)
	},
}

func init() {
	fundCmd.Flags().String("account", "", "account id")
	fundCmd.Flags().String("asset", "", "asset id")
	fundCmd.Flags().String("amount", "", "amount to credit")
	rootCmd.AddCommand(fundCmd)
}
