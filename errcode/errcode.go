package errcode

// Code is a stable, short error identifier.
// It is a string newtype, comparable, allocation-free, and implements error.
type Code string

func (c Code) Error() string { return string(c) }

// Fault causes. Any of these means normal execution has stopped for good;
// the code names the cause, not a recoverable condition.
const (
	UnrecoverableFault Code = "unrecoverable_fault"
	AssertionFailure   Code = "assertion_failure"
	AbortCall          Code = "abort_call"
)

// Host-side monitor codes.
const (
	OK                Code = "ok"
	InvalidConfig     Code = "invalid_config"
	PortUnavailable   Code = "port_unavailable"
	BadReportLine     Code = "bad_report_line"
	BrokerUnavailable Code = "broker_unavailable"

	Error Code = "error" // generic fallback
)

// Optional wrapper when we want to keep context and a cause.
type E struct {
	C   Code
	Op  string
	Msg string
	Err error
}

func (e *E) Error() string {
	if e.Msg != "" {
		return string(e.C) + ": " + e.Msg
	}
	return string(e.C)
}
func (e *E) Unwrap() error { return e.Err }
func (e *E) Code() Code    { return e.C }

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
