package easylog

import (
	"errors"
	"fmt"
)

// OutcomeKind is a kind of the [Outcome] .
type OutcomeKind int

const (
	// OutcomeSuccess means that a request completed.
	OutcomeSuccess OutcomeKind = iota

	// OutcomeDeclined means that logging was intentionally skipped.
	// It is not an error.
	OutcomeDeclined

	// OutcomeFailed means that a request failed.
	OutcomeFailed
)

// String implements [fmt].Stringer.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeDeclined:
		return "declined"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("OutcomeKind(%d)", int(k))
}

// Reasons of declined outcomes.
const (
	// ReasonSilenced is a reason when the logger is silenced.
	ReasonSilenced = "silenced"

	// ReasonDebugDisabled is a reason when a debug log is requested while
	// the debug mode is off.
	ReasonDebugDisabled = "debug mode disabled"
)

// Outcome is a result of the logging requests.
type Outcome struct {
	// Kind is a kind of this outcome.
	Kind OutcomeKind

	// Message is a confirmation for success, a reason for declined and
	// a detail for failed outcomes.
	Message string

	// Err is non-nil only if Kind is OutcomeFailed.
	Err error
}

// Succeeded returns true if this outcome is a success.
func (o Outcome) Succeeded() bool {
	return o.Kind == OutcomeSuccess
}

// Declined returns true if this outcome is declined.
func (o Outcome) Declined() bool {
	return o.Kind == OutcomeDeclined
}

// Failed returns true if this outcome is failed.
func (o Outcome) Failed() bool {
	return o.Kind == OutcomeFailed
}

// String implements [fmt].Stringer.
func (o Outcome) String() string {
	return o.Kind.String() + ": " + o.Message
}

func success(info string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Message: info}
}

func declined(reason string) Outcome {
	return Outcome{Kind: OutcomeDeclined, Message: reason}
}

func failed(err error) Outcome {
	return Outcome{Kind: OutcomeFailed, Message: err.Error(), Err: err}
}

var (
	// ErrFailOnError is returned when an error log is written while
	// FailOnError is enabled.
	ErrFailOnError = errors.New(Tag + " Error logged")

	// ErrCritical is returned when rendering or writing a log fails
	// unexpectedly.
	ErrCritical = errors.New(Tag + " Critical error!")
)

// FailError is an error that carries a message of the error log.
type FailError struct {
	// Message is a rendered message of the error log.
	Message string
}

// Error implements error.
func (e *FailError) Error() string {
	return ErrFailOnError.Error() + ": " + e.Message
}

// Unwrap returns [ErrFailOnError] .
func (e *FailError) Unwrap() error {
	return ErrFailOnError
}

func criticalError(detail any) error {
	if err, ok := detail.(error); ok {
		return fmt.Errorf("%w %w", ErrCritical, err)
	}
	return fmt.Errorf("%w %v", ErrCritical, detail)
}
