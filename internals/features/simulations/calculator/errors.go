package calculator

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput            = errors.New("input kalkulator tidak valid")
	ErrBelowMinimumDownPayment = errors.New("TDP di bawah minimum program")
)

// InvalidInputError: input numerik di luar rentang. Tidak perlu di-retry.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func (e *InvalidInputError) Is(target error) bool { return target == ErrInvalidInput }

func invalid(field, reason string) error {
	return &InvalidInputError{Field: field, Reason: reason}
}

// BelowMinimumDownPaymentError membawa TDP minimum yang dihitung dari persentase program.
type BelowMinimumDownPaymentError struct {
	Minimum int64
	Given   int64
}

func (e *BelowMinimumDownPaymentError) Error() string {
	return fmt.Sprintf("TDP %d di bawah minimum %d", e.Given, e.Minimum)
}

func (e *BelowMinimumDownPaymentError) Is(target error) bool {
	return target == ErrBelowMinimumDownPayment
}
