// Package periph defines the narrow peripheral capabilities the fault path
// consumes. Implementations live in platform; the fault handler only ever
// sees these interfaces.
//
// Operations here carry no error returns. They run after the system has
// already been judged unrecoverable, so every call is best-effort: an
// implementation that cannot make progress blocks or drops silently, it
// never reports back.
package periph

import "faultcore-go/types"

// IRQLine numbers one interrupt source at the controller.
type IRQLine uint8

// InterruptController masks and unmasks interrupt delivery, both per line
// and globally at the core.
type InterruptController interface {
	DisableGlobal()
	DisableAll()
	EnableLine(line IRQLine)
	EnableGlobal()
}

// TimerSet covers every timer peripheral as one unit.
type TimerSet interface {
	DisableAll()
}

// ADCSet covers every analog converter as one unit.
type ADCSet interface {
	DisableAll()
}

// SerialChannel is one transmit-capable serial device. Writes go out a
// character at a time with no acknowledgement.
type SerialChannel interface {
	Init()
	SetBaudRate(clockHz, baud uint32)
	PutByte(b byte)
	PutString(s string)
	PutUint(n uint32)
}

// SerialSet resolves channels by id ("usart2", "uart0", ...) and can take
// the whole class down at once.
type SerialSet interface {
	ByID(id string) (SerialChannel, bool)
	DisableAll()
}

// OutputMode selects how an output pin is driven.
type OutputMode uint8

const (
	OutputPushPull    OutputMode = iota // GPIO driven by software
	OutputAltPushPull                   // pin handed to a peripheral (serial TX)
)

// Pin is a single writable pin.
type Pin interface {
	SetMode(mode OutputMode)
	Set(high bool)
}

// PinFactory resolves pins by reference. A false return means the board has
// no such pin; callers skip the pin rather than fail.
type PinFactory interface {
	ByRef(ref types.PinRef) (Pin, bool)
}

// Set bundles everything the fault path needs from a platform.
type Set struct {
	IRQ    InterruptController
	Timers TimerSet
	ADC    ADCSet
	Serial SerialSet
	Pins   PinFactory
}
