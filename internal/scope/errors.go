package scope

import (
	"errors"
	"fmt"
)

// ErrInsufficientData means the snapshot cannot be calculated yet. It is
// routine while a scope is being filled in and is not a failure.
var ErrInsufficientData = errors.New("insufficient data to calculate")

// InsufficientDataError carries the reason a calculation could not run.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInsufficientData, e.Reason)
}

func (e *InsufficientDataError) Is(target error) bool {
	return target == ErrInsufficientData
}

// Insufficient builds an InsufficientDataError.
func Insufficient(reason string) error {
	return &InsufficientDataError{Reason: reason}
}

// ErrorCode identifies a configuration problem the caller must fix.
type ErrorCode string

const (
	ErrCodeInvalidTargetMargin  ErrorCode = "INVALID_TARGET_MARGIN"
	ErrCodeMissingStrategyInput ErrorCode = "MISSING_STRATEGY_INPUT"
	ErrCodeUnknownMethod        ErrorCode = "UNKNOWN_PRICING_METHOD"
	ErrCodeInvalidBlendWeight   ErrorCode = "INVALID_BLEND_WEIGHT"
	ErrCodeInvalidMarketBand    ErrorCode = "INVALID_MARKET_BAND"
	ErrCodeNegativeMarkup       ErrorCode = "NEGATIVE_MARKUP"
	ErrCodeUnknownBuildingType  ErrorCode = "UNKNOWN_BUILDING_TYPE"
	ErrCodeUnknownTemplate      ErrorCode = "UNKNOWN_SERVICE_TEMPLATE"
)

// CalculationError is an invalid numeric configuration: no price can be
// computed until the named field is fixed.
type CalculationError struct {
	Code    ErrorCode `json:"code"`
	Field   string    `json:"field"`
	Message string    `json:"message"`
}

func (e *CalculationError) Error() string {
	return fmt.Sprintf("calculation error [%s] %s: %s", e.Code, e.Field, e.Message)
}

// NewCalculationError builds a CalculationError with a formatted message.
func NewCalculationError(code ErrorCode, field, format string, args ...any) *CalculationError {
	return &CalculationError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}
