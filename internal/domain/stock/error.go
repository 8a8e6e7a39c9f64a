package stock

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// Validation errors
	ErrValidation = errors.New("stock validation failed")

	// Data errors
	ErrStockNotFound = errors.New("stock not found")
)

// Violation is a single failed field rule
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates every violation found in one request
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		parts = append(parts, fmt.Sprintf("[%s: %s]", v.Field, v.Message))
	}
	return "Validation failed. Details: " + strings.Join(parts, ", ") + "."
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Has reports whether a violation with the given message was recorded
func (e *ValidationError) Has(message string) bool {
	for _, v := range e.Violations {
		if v.Message == message {
			return true
		}
	}
	return false
}
