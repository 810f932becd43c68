// Package enginerr defines the six error kinds of spec §7 as concrete,
// wrapped error types so callers can branch with errors.Is / errors.As
// instead of matching strings.
package enginerr

import "fmt"

// Kind identifies one of the six error kinds from spec §7.
type Kind int

const (
	// KindBadState means an operation was invalid in the engine's current
	// lifecycle state (e.g. update() while PAUSED).
	KindBadState Kind = iota
	// KindNotFound means a lookup by id found nothing.
	KindNotFound
	// KindInvalidRecording means a Recording failed validation: bad event
	// ordering, a delta-sum mismatch, or a null/negative delta.
	KindInvalidRecording
	// KindCycleDetected means the serializer found a self-referential
	// structure.
	KindCycleDetected
	// KindTimerLimitExceeded means Timer.Update exceeded its bounded
	// iteration count in one pass.
	KindTimerLimitExceeded
	// KindHandlerFault means a user-registered handler panicked. Errors of
	// this kind are caught and logged per spec §7's propagation policy;
	// they are defined here mainly so logging call sites can format them
	// uniformly.
	KindHandlerFault
)

func (k Kind) String() string {
	switch k {
	case KindBadState:
		return "BadState"
	case KindNotFound:
		return "NotFound"
	case KindInvalidRecording:
		return "InvalidRecording"
	case KindCycleDetected:
		return "CycleDetected"
	case KindTimerLimitExceeded:
		return "TimerLimitExceeded"
	case KindHandlerFault:
		return "HandlerFault"
	default:
		return "Unknown"
	}
}

// Error is the concrete error type returned for every engine failure. It
// always carries a Kind so callers can branch with errors.As.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is supports errors.Is(err, enginerr.BadState) style sentinel checks by
// comparing Kind, ignoring Message and Cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func newErr(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// BadState is the sentinel used with errors.Is to detect KindBadState.
var BadState = &Error{Kind: KindBadState, Message: "bad state"}

// NotFound is the sentinel used with errors.Is to detect KindNotFound.
var NotFound = &Error{Kind: KindNotFound, Message: "not found"}

// InvalidRecording is the sentinel used with errors.Is to detect
// KindInvalidRecording.
var InvalidRecording = &Error{Kind: KindInvalidRecording, Message: "invalid recording"}

// CycleDetected is the sentinel used with errors.Is to detect
// KindCycleDetected.
var CycleDetected = &Error{Kind: KindCycleDetected, Message: "cycle detected"}

// TimerLimitExceeded is the sentinel used with errors.Is to detect
// KindTimerLimitExceeded.
var TimerLimitExceeded = &Error{Kind: KindTimerLimitExceeded, Message: "timer limit exceeded"}

// HandlerFault is the sentinel used with errors.Is to detect
// KindHandlerFault.
var HandlerFault = &Error{Kind: KindHandlerFault, Message: "handler fault"}

// NewBadState constructs a KindBadState error with a formatted message.
func NewBadState(format string, args ...any) *Error { return newErr(KindBadState, format, args...) }

// NewNotFound constructs a KindNotFound error with a formatted message.
func NewNotFound(format string, args ...any) *Error { return newErr(KindNotFound, format, args...) }

// NewInvalidRecording constructs a KindInvalidRecording error with a
// formatted message.
func NewInvalidRecording(format string, args ...any) *Error {
	return newErr(KindInvalidRecording, format, args...)
}

// NewCycleDetected constructs a KindCycleDetected error with a formatted
// message.
func NewCycleDetected(format string, args ...any) *Error {
	return newErr(KindCycleDetected, format, args...)
}

// NewTimerLimitExceeded constructs a KindTimerLimitExceeded error with a
// formatted message.
func NewTimerLimitExceeded(format string, args ...any) *Error {
	return newErr(KindTimerLimitExceeded, format, args...)
}

// NewHandlerFault wraps a recovered panic value as a KindHandlerFault
// error, keeping the original value as Cause when it is itself an error.
func NewHandlerFault(recovered any, stack string) *Error {
	cause, _ := recovered.(error)
	return &Error{
		Kind:    KindHandlerFault,
		Message: fmt.Sprintf("handler panicked: %v\n%s", recovered, stack),
		Cause:   cause,
	}
}
