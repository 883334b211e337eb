package lendity

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year
	SecondsPerYear = decimal.NewFromInt(31536000)
	// CloseFactorMin min of close factor, must be strictly greater than this value
	CloseFactorMin = decimal.NewFromFloat(0.05)
	// CloseFactorMax max of close factor, must not exceed this value
	CloseFactorMax = decimal.NewFromFloat(1)
	// LiquidationBonusMax must be no greater than this value
	LiquidationBonusMax = decimal.NewFromFloat(0.9)
	// MaxPrecision max precision
	MaxPrecision int32 = 16
)

// UtilizationRate utilization rate
// utilization_rate = bank.total_borrows / bank.total_deposits
func UtilizationRate(deposits, borrows decimal.Decimal) decimal.Decimal {
	if deposits.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	return borrows.Div(deposits).Truncate(MaxPrecision)
}

// GetBorrowRatePerSecond borrow rate per second from the jump-rate curve
func GetBorrowRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink decimal.Decimal) decimal.Decimal {
	if kink.Equal(decimal.Zero) ||
		utilizationRate.LessThanOrEqual(kink) {
		return utilizationRate.Mul(GetMultiplierPerSecond(multiplier)).Add(GetBaseRatePerSecond(baseRate)).Truncate(MaxPrecision)
	}

	normalRate := kink.Mul(GetMultiplierPerSecond(multiplier)).Add(GetBaseRatePerSecond(baseRate))
	excessUtilRate := utilizationRate.Sub(kink)
	return excessUtilRate.Mul(GetJumpMultiplierPerSecond(jumpMultiplier)).Add(normalRate).Truncate(MaxPrecision)
}

// GetSupplyRatePerSecond supply rate per second
func GetSupplyRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink, reserveFactor decimal.Decimal) decimal.Decimal {
	borrowRate := GetBorrowRatePerSecond(utilizationRate, baseRate, multiplier, jumpMultiplier, kink)
	oneMinusReserveFactor := decimal.NewFromInt(1).Sub(reserveFactor)
	rateToPool := borrowRate.Mul(oneMinusReserveFactor)
	return utilizationRate.Mul(rateToPool).Truncate(MaxPrecision)
}

// GetBaseRatePerSecond base rate per second
func GetBaseRatePerSecond(baseRate decimal.Decimal) decimal.Decimal {
	return baseRate.Div(SecondsPerYear).Truncate(MaxPrecision)
}

// GetMultiplierPerSecond multiplier per second
func GetMultiplierPerSecond(multiplier decimal.Decimal) decimal.Decimal {
	return multiplier.Div(SecondsPerYear).Truncate(MaxPrecision)
}

// GetJumpMultiplierPerSecond jump multiplier per second
func GetJumpMultiplierPerSecond(jumpMultiplier decimal.Decimal) decimal.Decimal {
	return jumpMultiplier.Div(SecondsPerYear).Truncate(MaxPrecision)
}

// Accrue applies deltaSeconds of interest at borrowRatePerSecond.
// Interest charged to borrowers is credited to depositors minus the
// reserve cut; share totals never move here, only the exchange rates.
// No-op for deltaSeconds <= 0.
func Accrue(totalDeposits, totalBorrows, reserves, borrowRatePerSecond, reserveFactor decimal.Decimal, deltaSeconds int64) (newDeposits, newBorrows, newReserves decimal.Decimal) {
	if deltaSeconds <= 0 || totalBorrows.LessThanOrEqual(decimal.Zero) {
		return totalDeposits, totalBorrows, reserves
	}

	interest := totalBorrows.Mul(borrowRatePerSecond).Mul(decimal.NewFromInt(deltaSeconds))
	reserveCut := interest.Mul(reserveFactor)

	newBorrows = totalBorrows.Add(interest).Truncate(MaxPrecision)
	newDeposits = totalDeposits.Add(interest.Sub(reserveCut)).Truncate(MaxPrecision)
	newReserves = reserves.Add(reserveCut).Truncate(MaxPrecision)
	return
}
