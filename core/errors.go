package core

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unknown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001

	// ErrBankNotFound no bank for that asset
	ErrBankNotFound ErrorCode = 100100
	// ErrDuplicateBank bank for that asset already initialized
	ErrDuplicateBank ErrorCode = 100101
	// ErrInvalidParameter bank parameter outside its valid range
	ErrInvalidParameter ErrorCode = 100102
	// ErrInvalidAmount zero or negative amount
	ErrInvalidAmount ErrorCode = 100103

	// ErrPositionNotFound position not initialized
	ErrPositionNotFound ErrorCode = 100200
	// ErrAlreadyInitialized position initialized twice
	ErrAlreadyInitialized ErrorCode = 100201
	// ErrCollateralMismatch position already has collateral in another bank
	ErrCollateralMismatch ErrorCode = 100202
	// ErrDebtMismatch position already owes into another bank
	ErrDebtMismatch ErrorCode = 100203
	// ErrRepayExceedsDebt repay amount strictly above outstanding debt
	ErrRepayExceedsDebt ErrorCode = 100204

	// ErrInsufficientLiquidity not enough idle funds in the bank
	ErrInsufficientLiquidity ErrorCode = 100300
	// ErrHealthCheckFailed operation would leave health factor below 1
	ErrHealthCheckFailed ErrorCode = 100301
	// ErrNotEligibleForLiquidation health factor not below 1
	ErrNotEligibleForLiquidation ErrorCode = 100302

	// ErrOracleUnavailable feed record cannot be read
	ErrOracleUnavailable ErrorCode = 100400
	// ErrStaleOracle quote older than the max staleness window
	ErrStaleOracle ErrorCode = 100401
	// ErrInvalidPrice malformed or non-positive quote
	ErrInvalidPrice ErrorCode = 100402
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// HealthError carries the computed ratio of a failed health gate so the
// caller can decide whether retrying with other parameters makes sense.
type HealthError struct {
	Code  ErrorCode
	Ratio decimal.Decimal
}

func (e *HealthError) Error() string {
	return fmt.Sprintf("%s: health factor %s", e.Code, e.Ratio)
}

// LiquidityError reports required vs available idle liquidity
type LiquidityError struct {
	Required  decimal.Decimal
	Available decimal.Decimal
}

func (e *LiquidityError) Error() string {
	return fmt.Sprintf("%s: required %s, available %s", ErrInsufficientLiquidity, e.Required, e.Available)
}
