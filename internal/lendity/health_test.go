package lendity

import (
	"testing"

	"lendity/pkg/number"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestHealthFactor(t *testing.T) {
	t.Run("debt free", func(t *testing.T) {
		h := HealthFactor(number.Decimal("1000"), number.Decimal("0.85"), decimal.Zero)
		assert.Equal(t, MaxHealth.String(), h.String())
	})

	t.Run("at the boundary", func(t *testing.T) {
		// 1000 * 0.8 / 800 = 1, exactly healthy
		h := HealthFactor(number.Decimal("1000"), number.Decimal("0.8"), number.Decimal("800"))
		assert.Equal(t, "1", h.String())
	})

	t.Run("under water", func(t *testing.T) {
		h := HealthFactor(number.Decimal("1000"), number.Decimal("0.8"), number.Decimal("900"))
		assert.True(t, h.LessThan(decimal.NewFromInt(1)), "health: %s", h)
	})

	t.Run("no collateral", func(t *testing.T) {
		h := HealthFactor(decimal.Zero, number.Decimal("0.8"), number.Decimal("100"))
		assert.True(t, h.IsZero())
	})
}
