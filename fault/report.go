package fault

import (
	"faultcore-go/periph"
	"faultcore-go/types"
)

// Reporter owns the diagnostic serial channel. Everything here is
// best-effort: a missing channel or pin is skipped, never surfaced, and a
// wedged transmitter blocks rather than erroring out.
type Reporter struct {
	Serial periph.SerialSet
	Pins   periph.PinFactory
	Config types.SerialChannelConfig
	TX     types.PinRef

	ch      periph.SerialChannel
	enabled bool
}

// Enable claims the TX pin for the peripheral and brings the channel up at
// the configured clock and baud. Safe to call repeatedly; only the first
// call touches hardware.
func (r *Reporter) Enable() {
	if r.enabled {
		return
	}
	r.enabled = true
	if r.Pins != nil {
		if pin, ok := r.Pins.ByRef(r.TX); ok {
			pin.SetMode(periph.OutputAltPushPull)
		}
	}
	if r.Serial == nil {
		return
	}
	ch, ok := r.Serial.ByID(r.Config.Channel)
	if !ok {
		return
	}
	ch.Init()
	ch.SetBaudRate(r.Config.ClockHz, r.Config.Baud)
	r.ch = ch
}

// Report transmits the diagnostic line for rep, character by character,
// with no acknowledgement and no retry. It must run before the serial
// peripherals are quiesced.
func (r *Reporter) Report(rep types.FaultReport) {
	r.Enable()
	ch := r.ch
	if ch == nil {
		return
	}
	switch rep.Kind {
	case types.AssertionFailure:
		ch.PutString(assertPrefix)
		ch.PutString(rep.Expr)
		ch.PutString("): ")
		ch.PutString(rep.File)
		ch.PutString(": ")
		ch.PutUint(rep.Line)
		ch.PutByte('\n')
		ch.PutByte('\r')
	default:
		ch.PutString(abortMessage)
		ch.PutByte('\n')
		ch.PutByte('\r')
	}
}
