// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInvalidOrderType  = errors.New("invalid order type: first line must contain BUY or SELL")
	ErrIncompleteSignal  = errors.New("incomplete signal: required line missing")
	ErrMalformedNumber   = errors.New("malformed number in signal")
	ErrUnresolvedEntry   = errors.New("entry price not resolved")
	ErrZeroBalance       = errors.New("account balance must be positive")
	ErrNotAuthorized     = errors.New("operator not authorized")
	ErrNoTradeInProgress = errors.New("no trade in progress")
	ErrConnectionFailed  = errors.New("connection failed")
)

// ParseError represents a failure to parse a trading signal. It wraps one
// of the parse sentinels and records where in the signal it occurred.
type ParseError struct {
	Line  int
	Field string
	Err   error
}

func (e *ParseError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("parse error on line %d (%s): %v", e.Line+1, e.Field, e.Err)
	}
	return fmt.Sprintf("parse error on line %d: %v", e.Line+1, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError creates a new ParseError.
func NewParseError(line int, field string, err error) *ParseError {
	return &ParseError{
		Line:  line,
		Field: field,
		Err:   err,
	}
}

// StageError represents a failure of one stage of the gateway
// orchestration pipeline.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("gateway stage %s failed: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// NewStageError creates a new StageError.
func NewStageError(stage string, err error) *StageError {
	return &StageError{
		Stage: stage,
		Err:   err,
	}
}

// OrderError represents a failure to submit one take-profit leg.
type OrderError struct {
	Symbol     string
	TakeProfit float64
	Err        error
}

func (e *OrderError) Error() string {
	return fmt.Sprintf("order error %s tp=%g: %v", e.Symbol, e.TakeProfit, e.Err)
}

func (e *OrderError) Unwrap() error {
	return e.Err
}

// NewOrderError creates a new OrderError.
func NewOrderError(symbol string, takeProfit float64, err error) *OrderError {
	return &OrderError{
		Symbol:     symbol,
		TakeProfit: takeProfit,
		Err:        err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
