package diagnostic

import "fmt"

// Check names, used for logging, metrics and spans.
const (
	NameGate        = "gate"
	NameSecrets     = "secrets"
	NameCredentials = "credentials"
	NameConnection  = "connection"
)

// Status is the outcome of a check as shown to the user.
type Status int

const (
	StatusPass Status = iota
	StatusFail
	// StatusWarn is a failed check that is not an error, such as a
	// connection that works but finds no spreadsheets.
	StatusWarn
)

// Glyph returns the console symbol for the status.
func (s Status) Glyph() string {
	switch s {
	case StatusPass:
		return "✅"
	case StatusWarn:
		return "⚠️"
	default:
		return "❌"
	}
}

// Error is a check failure. It carries only a human-readable message.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

// Errorf builds an Error from a format string.
func Errorf(format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Result is the outcome of a single check.
type Result struct {
	// Name is the check name (NameSecrets, ...)
	Name string

	// Status decides the glyph; only StatusPass counts as OK
	Status Status

	// Message is the headline printed after the glyph
	Message string

	// Details are printed verbatim on the following lines
	Details []string

	// Err is set when the check failed because something went wrong
	Err *Error
}

// OK reports whether the check passed.
func (r Result) OK() bool {
	return r.Status == StatusPass
}

func pass(name, format string, args ...interface{}) Result {
	return Result{Name: name, Status: StatusPass, Message: fmt.Sprintf(format, args...)}
}

func fail(name string, err *Error) Result {
	return Result{Name: name, Status: StatusFail, Message: err.Message, Err: err}
}
