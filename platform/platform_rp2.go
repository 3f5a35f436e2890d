// platform/platform_rp2.go
//go:build rp2040 || rp2350

// Package platform binds the peripheral capability set to whatever the build
// is running on. Hosted builds get a process-wide simulation; RP2 builds get
// the live hardware.
package platform

import (
	"device/arm"
	"machine"

	uartx "github.com/jangala-dev/tinygo-uartx/uartx"

	"faultcore-go/boards"
	"faultcore-go/periph"
	"faultcore-go/types"
	"faultcore-go/x/conv"
)

// Default returns the live capability set, with the serial channels wired
// for boards.Selected.
func Default() periph.Set {
	return periph.Set{
		IRQ:    rp2IRQ{},
		Timers: rp2Timers{},
		ADC:    rp2ADC{},
		Serial: newRP2SerialSet(),
		Pins:   rp2Pins{},
	}
}

// ----------------------------- interrupts ------------------------------------

// rp2IRQ drives the NVIC through device/arm. Line numbers are raw NVIC
// positions; the per-chip tables in irq_rp20*.go say which positions belong
// to which peripheral block.
type rp2IRQ struct{}

func (rp2IRQ) DisableGlobal() {
	arm.DisableInterrupts()
}

func (rp2IRQ) DisableAll() {
	for line := 0; line < nvicLines; line++ {
		arm.DisableIRQ(uint32(line))
	}
}

func (rp2IRQ) EnableLine(line periph.IRQLine) {
	arm.EnableIRQ(uint32(line))
}

func (rp2IRQ) EnableGlobal() {
	// PRIMASK clear: exceptions delivered again.
	arm.EnableInterrupts(0)
}

// ----------------------------- timers / adc ----------------------------------

// The fault path parks a peripheral block by masking its NVIC lines: with
// delivery off and the core about to spin forever, the block can no longer
// steer execution.

type rp2Timers struct{}

func (rp2Timers) DisableAll() {
	for _, line := range timerIRQs {
		arm.DisableIRQ(uint32(line))
	}
}

type rp2ADC struct{}

func (rp2ADC) DisableAll() {
	for _, line := range adcIRQs {
		arm.DisableIRQ(uint32(line))
	}
}

// ----------------------------- serial ----------------------------------------

type rp2Serial struct {
	id      string
	u       *uartx.UART
	tx      machine.Pin
	hasTX   bool
	scratch [1]byte
}

func (c *rp2Serial) Init() {
	cfg := uartx.UARTConfig{}
	if c.hasTX {
		cfg.TX = c.tx
	}
	// Defaults inside uartx apply for zero fields.
	_ = c.u.Configure(cfg)
}

func (c *rp2Serial) SetBaudRate(_, baud uint32) {
	// The PL011 derives its own timing from the system clock; the peripheral
	// clock argument is for parts whose baud generator needs it spelled out.
	c.u.SetBaudRate(baud)
}

func (c *rp2Serial) PutByte(b byte) {
	c.scratch[0] = b
	_, _ = c.u.Write(c.scratch[:])
}

func (c *rp2Serial) PutString(s string) {
	for i := 0; i < len(s); i++ {
		c.PutByte(s[i])
	}
}

func (c *rp2Serial) PutUint(n uint32) {
	var buf [10]byte
	for _, b := range conv.AppendUint(buf[:0], n) {
		c.PutByte(b)
	}
}

type rp2SerialSet struct {
	chans map[string]*rp2Serial
}

func newRP2SerialSet() *rp2SerialSet {
	set := &rp2SerialSet{chans: map[string]*rp2Serial{
		"uart0": {id: "uart0", u: uartx.UART0},
		"uart1": {id: "uart1", u: uartx.UART1},
	}}
	b := boards.Selected
	if c, ok := set.chans[b.Diag.Channel]; ok {
		c.tx = machine.Pin(b.DiagTX.Pin)
		c.hasTX = true
	}
	return set
}

func (s *rp2SerialSet) ByID(id string) (periph.SerialChannel, bool) {
	c, ok := s.chans[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (s *rp2SerialSet) DisableAll() {
	for _, line := range serialIRQs {
		arm.DisableIRQ(uint32(line))
	}
}

// ----------------------------- pins ------------------------------------------

type rp2Pins struct{}

func (rp2Pins) ByRef(ref types.PinRef) (periph.Pin, bool) {
	if ref.Port != "" && ref.Port != "GP" {
		return nil, false
	}
	return rp2Pin{p: machine.Pin(ref.Pin)}, true
}

type rp2Pin struct{ p machine.Pin }

func (r rp2Pin) SetMode(mode periph.OutputMode) {
	switch mode {
	case periph.OutputAltPushPull:
		r.p.Configure(machine.PinConfig{Mode: machine.PinUART})
	default:
		r.p.Configure(machine.PinConfig{Mode: machine.PinOutput})
	}
}

func (r rp2Pin) Set(high bool) {
	r.p.Set(high)
}
