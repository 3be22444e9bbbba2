package errcode

// Code is a stable, driver-facing error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Canonical codes (short, stable).
const (
	OK            Code = "ok"
	Busy          Code = "busy"
	Unsupported   Code = "unsupported"
	InvalidParams Code = "invalid_params"

	ClockUnavailable Code = "clock_unavailable"
	BlockInUse       Code = "block_in_use"
	UnknownPin       Code = "unknown_pin"
	UnknownBlock     Code = "unknown_block"

	NACK Code = "nack" // bus transfer not acknowledged

	Error Code = "error" // generic fallback
)

// E keeps an operation name and a cause alongside the code.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	s := string(e.C)
	if e.Op != "" {
		s = e.Op + ": " + s
	}
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	return s
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

// Wrap returns an *E for op, or nil when err is nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &E{C: Of(err), Op: op, Err: err}
}

// Of extracts a Code from an error, defaulting to Error.
func Of(err error) Code {
	if err == nil {
		return OK
	}
	if c, ok := err.(Code); ok {
		return c
	}
	type coder interface{ Code() Code }
	if x, ok := err.(coder); ok {
		return x.Code()
	}
	return Error
}
