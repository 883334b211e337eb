package lendity

import (
	"testing"

	"lendity/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSharesBootstrap(t *testing.T) {
	amount := number.Decimal("123.456")
	shares := SharesForAmount(amount, decimal.Zero, decimal.Zero)
	assert.Equal(t, amount.String(), shares.String(), "first depositor gets shares 1:1")
}

func TestSharesAfterInterest(t *testing.T) {
	// pool grew from 1000 to 1100 against 1000 shares, so a unit of
	// share is worth 1.1 units
	totalShares := number.Decimal("1000")
	totalAmount := number.Decimal("1100")

	shares := SharesForAmount(number.Decimal("110"), totalShares, totalAmount)
	assert.Equal(t, "100", shares.String())

	amount := AmountForShares(number.Decimal("100"), totalShares, totalAmount)
	assert.Equal(t, "110", amount.String())
}

func TestShareRoundingFavorsPool(t *testing.T) {
	totalShares := number.Decimal("3000")
	totalAmount := number.Decimal("1000")

	amount := number.Decimal("1")

	minted := SharesForAmount(amount, totalShares, totalAmount)
	burned := SharesForAmountCeil(amount, totalShares, totalAmount)

	// exact conversion is 3 shares per unit; the floor mint never
	// exceeds the ceil burn
	assert.True(t, minted.LessThanOrEqual(burned))

	exact := amount.Mul(totalShares).Div(totalAmount)
	assert.True(t, minted.LessThanOrEqual(exact))
	assert.True(t, burned.GreaterThanOrEqual(exact))
}

func TestShareRoundTrip(t *testing.T) {
	totalShares := number.Decimal("7777.7777")
	totalAmount := number.Decimal("13131.997")

	for _, raw := range []string{"1", "0.00000001", "3.14159265", "100.5", "999.99999999"} {
		amount := number.Decimal(raw)
		shares := SharesForAmount(amount, totalShares, totalAmount)
		back := AmountForShares(shares, totalShares, totalAmount)

		assert.True(t, back.LessThanOrEqual(amount), "round trip never pays out more than went in: %s -> %s", raw, back)

		loss := amount.Sub(back)
		assert.True(t, loss.LessThan(number.Decimal("0.00000001")), "loss beyond rounding dust: %s", loss)
	}
}

func TestAmountForSharesEmptyPool(t *testing.T) {
	assert.True(t, AmountForShares(number.Decimal("10"), decimal.Zero, decimal.Zero).IsZero())
}
