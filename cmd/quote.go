package cmd

import (
	"time"

	"lendity/core"
	"lendity/pkg/number"

	"github.com/spf13/cobra"
)

var quoteCmd = &cobra.Command{
	Use:   "publish-quote",
	Short: "publish a price quote for a feed",
	Run: func(cmd *cobra.Command, args []string) {
		feedID, _ := cmd.Flags().GetString("feed")
		price, _ := cmd.Flags().GetString("price")
		exponent, _ := cmd.Flags().GetInt32("exponent")
		confidence, _ := cmd.Flags().GetString("confidence")

		database := provideDatabase()
		defer database.Close()

		quote := &core.PriceQuote{
			FeedID:      feedID,
			Price:       number.Decimal(price),
			Exponent:    exponent,
			Confidence:  number.Decimal(confidence),
			PublishedAt: time.Now(),
		}

		if feedID == "" || !quote.Price.IsPositive() {
			cmd.PrintErrln("publish error:", core.ErrInvalidPrice)
			return
		}

		if err := provideFeedStore(database).Save(cmd.Context(), quote); err != nil {
			cmd.PrintErrln("publish error:", err)
			return
		}

		cmd.Println("published:", feedID, quote.Price)
	},
}

func init() {
	quoteCmd.Flags().String("feed", "", "price feed id")
	quoteCmd.Flags().String("price", "", "quoted price")
	quoteCmd.Flags().Int32("exponent", 0, "price scale exponent")
	quoteCmd.Flags().String("confidence", "0", "quote confidence interval")
	rootCmd.AddCommand(quoteCmd)
}
