// Package fault implements the terminal fault path: report the failure over
// the diagnostic serial channel, quiesce the peripherals, then signal on the
// indicator forever. Nothing in this package returns control to the caller
// once a fault has been raised.
package fault

import (
	"runtime"
	"sync/atomic"

	"faultcore-go/boards"
	"faultcore-go/periph"
	"faultcore-go/types"
)

// Phase tracks a handler through its sequence. PhaseSignaling is terminal
// and is never left.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhaseReporting
	PhaseQuiescing
	PhaseSignaling
)

func (p Phase) String() string {
	switch p {
	case PhaseReporting:
		return "reporting"
	case PhaseQuiescing:
		return "quiescing"
	case PhaseSignaling:
		return "signaling"
	default:
		return "idle"
	}
}

// Handler runs the full fault sequence. Its components are exported so
// bring-up code can tune them (pacing hooks, alternate ceilings) before
// Install.
type Handler struct {
	Reporter *Reporter
	Quiescer *Quiescer
	Signaler *Signaler

	phase atomic.Uint32
}

// New wires a handler from a capability set and a board preset.
func New(p periph.Set, b boards.Board) *Handler {
	var pin periph.Pin
	if b.Indicator != nil && p.Pins != nil {
		pin, _ = p.Pins.ByRef(types.PinRef(*b.Indicator))
	}
	return &Handler{
		Reporter: &Reporter{Serial: p.Serial, Pins: p.Pins, Config: b.Diag, TX: b.DiagTX},
		Quiescer: &Quiescer{IRQ: p.IRQ, Timers: p.Timers, ADC: p.ADC, Serial: p.Serial, Recovery: b.Recovery},
		Signaler: &Signaler{Pin: pin},
	}
}

// Phase reports how far into the sequence the handler is. Safe to read from
// another goroutine on hosted builds.
func (h *Handler) Phase() Phase { return Phase(h.phase.Load()) }

// AssertFailed handles a failed runtime assertion. It never returns.
func (h *Handler) AssertFailed(file string, line uint32, expr string) {
	h.run(types.FaultReport{Kind: types.AssertionFailure, File: file, Line: line, Expr: expr})
}

// Abort handles an explicit abort call. It never returns.
func (h *Handler) Abort() {
	h.run(types.FaultReport{Kind: types.AbortCall})
}

// run reports, quiesces, and enters the terminal signal loop. The report
// goes out first so the serial channel is still alive when it is written;
// quiescing owns interrupt masking, so entry state does not matter here.
func (h *Handler) run(r types.FaultReport) {
	h.phase.Store(uint32(PhaseReporting))
	h.Reporter.Report(r)
	h.phase.Store(uint32(PhaseQuiescing))
	h.Quiescer.Quiesce()
	h.phase.Store(uint32(PhaseSignaling))
	h.Signaler.Run()
}

// installed routes the package-level entry points. Set it once during
// bring-up, before anything can fault.
var installed *Handler

// Install binds the package-level entry points to h.
func Install(h *Handler) { installed = h }

// Fail reports a failed assertion through the installed handler. It never
// returns; without an installed handler it halts in place.
func Fail(file string, line uint32, expr string) {
	if h := installed; h != nil {
		h.AssertFailed(file, line, expr)
	}
	for {
	}
}

// Abort reports an explicit abort through the installed handler. It never
// returns; without an installed handler it halts in place.
func Abort() {
	if h := installed; h != nil {
		h.Abort()
	}
	for {
	}
}

// Assert checks cond and, when it fails, reports the caller's location with
// the quoted expression text. A passing assert costs one branch.
func Assert(cond bool, expr string) {
	if cond {
		return
	}
	file, line := "unknown", 0
	if _, f, l, ok := runtime.Caller(1); ok {
		file, line = f, l
	}
	Fail(baseName(file), uint32(line), expr)
}

// baseName trims a path to its final element without touching the heap.
func baseName(file string) string {
	for i := len(file) - 1; i >= 0; i-- {
		if file[i] == '/' {
			return file[i+1:]
		}
	}
	return file
}
