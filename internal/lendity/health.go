package lendity

import (
	"github.com/shopspring/decimal"
)

// MaxHealth is the ratio reported for debt-free positions, a decimal
// stand-in for +inf.
var MaxHealth = decimal.New(1, 12)

// HealthFactor risk-weighted collateral value over debt value.
// health = collateral_value * liquidation_threshold / debt_value
func HealthFactor(collateralValue, liquidationThreshold, debtValue decimal.Decimal) decimal.Decimal {
	if debtValue.LessThanOrEqual(decimal.Zero) {
		return MaxHealth
	}

	return collateralValue.Mul(liquidationThreshold).Div(debtValue).Truncate(MaxPrecision)
}
