package bigint

import "github.com/pkg/errors"

var (
	// ErrDivisionByZero is returned when the divisor is 0.
	ErrDivisionByZero = errors.New("division by zero")
	// ErrInexactDivision is returned by ExactQuo when the remainder is not 0.
	ErrInexactDivision = errors.New("inexact division")
	// ErrInvalidBase is returned for a base outside [2, 36].
	ErrInvalidBase = errors.New("invalid base")
	// ErrInvalidDigit is returned when a character is not a digit of the base.
	ErrInvalidDigit = errors.New("invalid digit")
)
