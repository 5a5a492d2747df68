package errortypes

import (
	"strconv"
	"strings"
)

// AggregateErrors represents one or more errors reported together, such as every failed
// check of a configuration.
type AggregateErrors struct {
	Message string
	Errors  []error
}

// NewAggregateErrors builds a AggregateErrors struct.
func NewAggregateErrors(msg string, errs []error) AggregateErrors {
	return AggregateErrors{
		Message: msg,
		Errors:  errs,
	}
}

// Error implements the standard error interface.
func (e AggregateErrors) Error() string {
	if len(e.Errors) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(e.Message)

	if len(e.Errors) == 1 {
		b.WriteString(" (1 error):\n")
	} else {
		b.WriteString(" (" + strconv.Itoa(len(e.Errors)) + " errors):\n")
	}

	for i, err := range e.Errors {
		b.WriteString("  " + strconv.Itoa(i+1) + ": " + err.Error() + "\n")
	}

	return b.String()
}
