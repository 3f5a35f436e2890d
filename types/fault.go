package types

import (
	"time"

	"faultcore-go/errcode"
)

// ------------------------
// Fault reports
// ------------------------

// FaultKind distinguishes the two ways execution can end up in the fault
// path: a failed runtime assertion or an explicit abort call.
type FaultKind uint8

const (
	AssertionFailure FaultKind = iota
	AbortCall
)

func (k FaultKind) String() string {
	switch k {
	case AssertionFailure:
		return "assertion_failure"
	default:
		return "abort_call"
	}
}

func (k FaultKind) MarshalJSON() ([]byte, error) { return []byte(`"` + k.String() + `"`), nil }

// Code maps a kind onto the error taxonomy.
func (k FaultKind) Code() errcode.Code {
	switch k {
	case AssertionFailure:
		return errcode.AssertionFailure
	default:
		return errcode.AbortCall
	}
}

// FaultReport captures everything the diagnostic message carries. For an
// abort the location fields stay zero.
type FaultReport struct {
	Kind FaultKind `json:"kind"`
	File string    `json:"file,omitempty"`
	Line uint32    `json:"line,omitempty"`
	Expr string    `json:"expr,omitempty"`
}

// ------------------------
// Host-side events
// ------------------------

// FaultEvent is one line received from a device, parsed when possible.
// Raw always holds the original text without its terminator.
type FaultEvent struct {
	Report     FaultReport `json:"report"`
	Parsed     bool        `json:"parsed"`
	Raw        string      `json:"raw"`
	Source     string      `json:"source"`
	ReceivedAt time.Time   `json:"received_at"`
}
