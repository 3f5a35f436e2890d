// platform/sim.go
//go:build !rp2040 && !rp2350

package platform

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"tinygo.org/x/drivers"

	"faultcore-go/periph"
	"faultcore-go/types"
	"faultcore-go/x/conv"
)

// Sim is an in-memory platform for hosted builds and tests. Every capability
// records its state, and the ordering-sensitive operations append to one
// shared trace so tests can assert sequencing across capabilities.
type Sim struct {
	mu  sync.Mutex
	ops []string

	IRQ    *SimIRQ
	Timers *SimTimers
	ADC    *SimADC
	Serial *SimSerialSet
	Pins   *SimPins
}

func NewSim() *Sim {
	s := &Sim{}
	s.IRQ = &SimIRQ{s: s, global: true, enabled: map[periph.IRQLine]bool{}}
	s.Timers = &SimTimers{s: s}
	s.ADC = &SimADC{s: s}
	s.Serial = &SimSerialSet{s: s, chans: map[string]*SimSerial{}}
	s.Pins = &SimPins{s: s, pins: map[types.PinRef]*SimPin{}}
	return s
}

// Set bundles the simulation as a capability set.
func (s *Sim) Set() periph.Set {
	return periph.Set{IRQ: s.IRQ, Timers: s.Timers, ADC: s.ADC, Serial: s.Serial, Pins: s.Pins}
}

// Trace returns a copy of the ordered operation log.
func (s *Sim) Trace() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.ops...)
}

// TraceIndex returns the position of the first matching operation, or -1.
func (s *Sim) TraceIndex(op string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, o := range s.ops {
		if o == op {
			return i
		}
	}
	return -1
}

func (s *Sim) log(format string, args ...any) {
	s.mu.Lock()
	s.ops = append(s.ops, fmt.Sprintf(format, args...))
	s.mu.Unlock()
}

// ----------------------------- interrupts ------------------------------------

type SimIRQ struct {
	s *Sim

	mu      sync.Mutex
	global  bool
	enabled map[periph.IRQLine]bool
}

func (q *SimIRQ) DisableGlobal() {
	q.s.log("irq.disable_global")
	q.mu.Lock()
	q.global = false
	q.mu.Unlock()
}

func (q *SimIRQ) DisableAll() {
	q.s.log("irq.disable_all")
	q.mu.Lock()
	clear(q.enabled)
	q.mu.Unlock()
}

func (q *SimIRQ) EnableLine(line periph.IRQLine) {
	q.s.log("irq.enable_line %d", line)
	q.mu.Lock()
	q.enabled[line] = true
	q.mu.Unlock()
}

func (q *SimIRQ) EnableGlobal() {
	q.s.log("irq.enable_global")
	q.mu.Lock()
	q.global = true
	q.mu.Unlock()
}

// Raise pre-enables a line, standing in for a busy system before a fault.
func (q *SimIRQ) Raise(line periph.IRQLine) {
	q.mu.Lock()
	q.enabled[line] = true
	q.mu.Unlock()
}

func (q *SimIRQ) GlobalEnabled() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.global
}

// EnabledLines returns the unmasked lines in ascending order.
func (q *SimIRQ) EnabledLines() []periph.IRQLine {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]periph.IRQLine, 0, len(q.enabled))
	for l := range q.enabled {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ----------------------------- timers / adc ----------------------------------

type SimTimers struct {
	s *Sim

	mu       sync.Mutex
	disabled bool
}

func (t *SimTimers) DisableAll() {
	t.s.log("timers.disable_all")
	t.mu.Lock()
	t.disabled = true
	t.mu.Unlock()
}

func (t *SimTimers) Disabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.disabled
}

type SimADC struct {
	s *Sim

	mu       sync.Mutex
	disabled bool
}

func (a *SimADC) DisableAll() {
	a.s.log("adc.disable_all")
	a.mu.Lock()
	a.disabled = true
	a.mu.Unlock()
}

func (a *SimADC) Disabled() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.disabled
}

// ----------------------------- serial ----------------------------------------

var errNoData = errors.New("sim: no data")

// SimSerial is one simulated channel. The transmit side backs the fault
// reporter; the receive side plus the drivers.UART surface let host tools
// read a simulated device like real hardware.
type SimSerial struct {
	s  *Sim
	id string

	mu          sync.Mutex
	inited      bool
	clockHz     uint32
	baud        uint32
	tx          []byte
	rx          []byte
	tee         io.Writer
	disabled    bool
	txAtDisable int
	dropped     int
}

var (
	_ periph.SerialChannel = (*SimSerial)(nil)
	_ drivers.UART         = (*SimSerial)(nil)
)

func (c *SimSerial) Init() {
	c.s.log("serial.%s.init", c.id)
	c.mu.Lock()
	c.inited = true
	c.mu.Unlock()
}

func (c *SimSerial) SetBaudRate(clockHz, baud uint32) {
	c.s.log("serial.%s.baud %d %d", c.id, clockHz, baud)
	c.mu.Lock()
	c.clockHz, c.baud = clockHz, baud
	c.mu.Unlock()
}

func (c *SimSerial) PutByte(b byte) {
	c.mu.Lock()
	if c.disabled {
		c.dropped++
		c.mu.Unlock()
		return
	}
	c.tx = append(c.tx, b)
	tee := c.tee
	c.mu.Unlock()
	if tee != nil {
		tee.Write([]byte{b})
	}
}

func (c *SimSerial) PutString(s string) {
	for i := 0; i < len(s); i++ {
		c.PutByte(s[i])
	}
}

func (c *SimSerial) PutUint(n uint32) {
	var buf [10]byte
	for _, b := range conv.AppendUint(buf[:0], n) {
		c.PutByte(b)
	}
}

// drivers.UART surface. Writes land in the same transmit buffer; reads
// drain whatever Inject queued.

func (c *SimSerial) WriteByte(b byte) error {
	c.PutByte(b)
	return nil
}

func (c *SimSerial) Write(p []byte) (int, error) {
	for _, b := range p {
		c.PutByte(b)
	}
	return len(p), nil
}

func (c *SimSerial) Buffered() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.rx)
}

func (c *SimSerial) ReadByte() (byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.rx) == 0 {
		return 0, errNoData
	}
	b := c.rx[0]
	c.rx = c.rx[1:]
	return b, nil
}

func (c *SimSerial) Read(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := copy(p, c.rx)
	c.rx = c.rx[n:]
	return n, nil
}

// Inject queues bytes on the receive side.
func (c *SimSerial) Inject(p []byte) {
	c.mu.Lock()
	c.rx = append(c.rx, p...)
	c.mu.Unlock()
}

// TeeTo mirrors every transmitted byte to w.
func (c *SimSerial) TeeTo(w io.Writer) {
	c.mu.Lock()
	c.tee = w
	c.mu.Unlock()
}

func (c *SimSerial) Bytes() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]byte(nil), c.tx...)
}

func (c *SimSerial) Inited() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inited
}

func (c *SimSerial) BaudRate() (clockHz, baud uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clockHz, c.baud
}

func (c *SimSerial) Disabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.disabled
}

// TxAtDisable reports how many bytes had been transmitted when the channel
// class was disabled.
func (c *SimSerial) TxAtDisable() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.txAtDisable
}

// Dropped counts bytes written after disable.
func (c *SimSerial) Dropped() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dropped
}

// SimSerialSet hands out stable channels per id.
type SimSerialSet struct {
	s *Sim

	mu    sync.Mutex
	chans map[string]*SimSerial
}

// Channel returns the typed channel for id, creating it on first use.
func (s *SimSerialSet) Channel(id string) *SimSerial {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.chans[id]
	if !ok {
		c = &SimSerial{s: s.s, id: id}
		s.chans[id] = c
	}
	return c
}

func (s *SimSerialSet) ByID(id string) (periph.SerialChannel, bool) {
	return s.Channel(id), true
}

func (s *SimSerialSet) DisableAll() {
	s.s.log("serial.disable_all")
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.chans {
		c.mu.Lock()
		c.disabled = true
		c.txAtDisable = len(c.tx)
		c.mu.Unlock()
	}
}

// ----------------------------- pins ------------------------------------------

type SimPin struct {
	s *Sim

	mu      sync.Mutex
	ref     types.PinRef
	mode    periph.OutputMode
	modeSet bool
	level   bool
	writes  int
}

func (p *SimPin) SetMode(mode periph.OutputMode) {
	p.s.log("pin.%s%d.mode %s", p.ref.Port, p.ref.Pin, modeLabel(mode))
	p.mu.Lock()
	p.mode = mode
	p.modeSet = true
	p.mu.Unlock()
}

func (p *SimPin) Set(high bool) {
	p.mu.Lock()
	p.level = high
	p.writes++
	p.mu.Unlock()
}

func (p *SimPin) Level() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.level
}

func (p *SimPin) Writes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.writes
}

func (p *SimPin) Mode() (periph.OutputMode, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.mode, p.modeSet
}

func modeLabel(m periph.OutputMode) string {
	if m == periph.OutputAltPushPull {
		return "af_pp"
	}
	return "out_pp"
}

// SimPins returns stable *SimPin instances per reference.
type SimPins struct {
	s *Sim

	mu   sync.Mutex
	pins map[types.PinRef]*SimPin
}

func (f *SimPins) ByRef(ref types.PinRef) (periph.Pin, bool) {
	return f.Get(ref), true
}

// Get exposes the underlying *SimPin for tests and demos.
func (f *SimPins) Get(ref types.PinRef) *SimPin {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pins[ref]
	if !ok {
		p = &SimPin{s: f.s, ref: ref}
		f.pins[ref] = p
	}
	return p
}
