package lendity

import (
	"lendity/pkg/number"

	"github.com/shopspring/decimal"
)

// Share pool conversions. Rounding always favors the pool: minting
// floors the shares issued, burning ceils the shares taken back, and
// cashing shares out floors the amount paid.

// SharesForAmount shares minted for a fresh amount joining the pool.
// Bootstraps 1:1 on an empty pool.
func SharesForAmount(amount, totalShares, totalAmount decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() || totalAmount.IsZero() {
		return amount
	}

	return number.Floor(amount.Mul(totalShares).Div(totalAmount), MaxPrecision)
}

// SharesForAmountCeil shares burned to take amount back out of the pool
func SharesForAmountCeil(amount, totalShares, totalAmount decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() || totalAmount.IsZero() {
		return amount
	}

	return number.Ceil(amount.Mul(totalShares).Div(totalAmount), MaxPrecision)
}

// AmountForShares underlying amount a holding of shares is worth
func AmountForShares(shares, totalShares, totalAmount decimal.Decimal) decimal.Decimal {
	if totalShares.IsZero() {
		return decimal.Zero
	}

	return number.Floor(shares.Mul(totalAmount).Div(totalShares), MaxPrecision)
}
