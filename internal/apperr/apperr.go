// Package apperr defines the error kinds surfaced by action handlers.
//
// Handlers never print. They return an *Error and the console router decides
// what the user sees; the underlying cause is kept for logging.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the router.
type Kind int

const (
	KindUnknown Kind = iota
	// KindValidation covers bad input values and missing rows.
	KindValidation
	// KindAuthorization covers role and store-ownership checks and bad credentials.
	KindAuthorization
	// KindPersistence covers statements rejected by the database or driver failures.
	KindPersistence
	// KindParse covers console input that could not be parsed as the expected type.
	KindParse
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthorization:
		return "authorization"
	case KindPersistence:
		return "persistence"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// Error is the single error type returned by the service layer.
type Error struct {
	Kind Kind
	Op   string // handler or step that failed, e.g. "place order"
	Msg  string // user-facing message
	Err  error  // underlying cause, may be nil
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Message returns the text shown to the user.
func (e *Error) Message() string {
	if e.Msg != "" {
		return e.Msg
	}
	switch e.Kind {
	case KindPersistence:
		return "The database rejected the request."
	case KindParse:
		return "Your input is invalid!"
	default:
		return "Request failed."
	}
}

func Validation(op, msg string) error {
	return &Error{Kind: KindValidation, Op: op, Msg: msg}
}

func Authorization(op, msg string) error {
	return &Error{Kind: KindAuthorization, Op: op, Msg: msg}
}

// Persistence wraps a database failure. A nil err yields nil.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return err
	}
	return &Error{Kind: KindPersistence, Op: op, Err: err}
}

// Parse reports console input that could not be converted.
func Parse(op, field, input string, err error) error {
	return &Error{
		Kind: KindParse,
		Op:   op,
		Msg:  fmt.Sprintf("invalid %s %q", field, input),
		Err:  err,
	}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// UserMessage returns the text the router prints for err.
func UserMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Message()
	}
	return err.Error()
}
