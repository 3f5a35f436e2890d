package fault

import (
	"strconv"

	"faultcore-go/periph"
	"faultcore-go/types"
	"faultcore-go/x/conv"
)

// opTrace records capability calls in order so tests can assert sequencing.
type opTrace struct {
	ops []string
}

func (t *opTrace) add(op string) { t.ops = append(t.ops, op) }

// index returns the position of the first matching op, or -1.
func (t *opTrace) index(op string) int {
	for i, o := range t.ops {
		if o == op {
			return i
		}
	}
	return -1
}

type fakeIRQ struct {
	t       *opTrace
	global  bool
	enabled map[periph.IRQLine]bool
}

func newFakeIRQ(t *opTrace) *fakeIRQ {
	return &fakeIRQ{t: t, global: true, enabled: map[periph.IRQLine]bool{}}
}

func (f *fakeIRQ) DisableGlobal() {
	f.t.add("irq.disable_global")
	f.global = false
}

func (f *fakeIRQ) DisableAll() {
	f.t.add("irq.disable_all")
	clear(f.enabled)
}

func (f *fakeIRQ) EnableLine(line periph.IRQLine) {
	f.t.add("irq.enable_line " + strconv.Itoa(int(line)))
	f.enabled[line] = true
}

func (f *fakeIRQ) EnableGlobal() {
	f.t.add("irq.enable_global")
	f.global = true
}

func (f *fakeIRQ) enabledLines() []periph.IRQLine {
	out := []periph.IRQLine{}
	for l := periph.IRQLine(0); l < 255; l++ {
		if f.enabled[l] {
			out = append(out, l)
		}
	}
	return out
}

type fakeTimers struct {
	t        *opTrace
	disabled bool
}

func (f *fakeTimers) DisableAll() {
	f.t.add("timers.disable_all")
	f.disabled = true
}

type fakeADC struct {
	t        *opTrace
	disabled bool
}

func (f *fakeADC) DisableAll() {
	f.t.add("adc.disable_all")
	f.disabled = true
}

type fakeChannel struct {
	t  *opTrace
	id string

	inits       int
	clockHz     uint32
	baud        uint32
	tx          []byte
	disabled    bool
	txAtDisable int
	dropped     int
}

func (c *fakeChannel) Init() {
	c.inits++
	c.t.add("serial." + c.id + ".init")
}

func (c *fakeChannel) SetBaudRate(clockHz, baud uint32) {
	c.clockHz, c.baud = clockHz, baud
	c.t.add("serial." + c.id + ".baud")
}

func (c *fakeChannel) PutByte(b byte) {
	if c.disabled {
		c.dropped++
		return
	}
	c.tx = append(c.tx, b)
}

func (c *fakeChannel) PutString(s string) {
	for i := 0; i < len(s); i++ {
		c.PutByte(s[i])
	}
}

func (c *fakeChannel) PutUint(n uint32) {
	var buf [10]byte
	for _, b := range conv.AppendUint(buf[:0], n) {
		c.PutByte(b)
	}
}

type fakeSerialSet struct {
	t     *opTrace
	chans map[string]*fakeChannel
}

func newFakeSerialSet(t *opTrace, ids ...string) *fakeSerialSet {
	s := &fakeSerialSet{t: t, chans: map[string]*fakeChannel{}}
	for _, id := range ids {
		s.chans[id] = &fakeChannel{t: t, id: id}
	}
	return s
}

func (s *fakeSerialSet) ByID(id string) (periph.SerialChannel, bool) {
	c, ok := s.chans[id]
	if !ok {
		return nil, false
	}
	return c, true
}

func (s *fakeSerialSet) DisableAll() {
	s.t.add("serial.disable_all")
	for _, c := range s.chans {
		c.disabled = true
		c.txAtDisable = len(c.tx)
	}
}

type fakePin struct {
	t *opTrace

	ref             types.PinRef
	mode            periph.OutputMode
	modeSet         bool
	level           bool
	writes          int
	highs           int
	modeBeforeWrite bool
}

func (p *fakePin) SetMode(mode periph.OutputMode) {
	p.mode = mode
	p.modeSet = true
	p.t.add("pin." + p.ref.Port + strconv.Itoa(int(p.ref.Pin)) + ".mode")
}

func (p *fakePin) Set(high bool) {
	if p.writes == 0 {
		p.modeBeforeWrite = p.modeSet
	}
	p.level = high
	p.writes++
	if high {
		p.highs++
	}
}

type fakePins struct {
	t    *opTrace
	pins map[types.PinRef]*fakePin
}

func newFakePins(t *opTrace) *fakePins {
	return &fakePins{t: t, pins: map[types.PinRef]*fakePin{}}
}

func (f *fakePins) ByRef(ref types.PinRef) (periph.Pin, bool) {
	p, ok := f.pins[ref]
	if !ok {
		p = &fakePin{t: f.t, ref: ref}
		f.pins[ref] = p
	}
	return p, true
}

// fakeSet bundles one complete fake platform around a shared trace.
type fakeSet struct {
	trace  *opTrace
	irq    *fakeIRQ
	timers *fakeTimers
	adc    *fakeADC
	serial *fakeSerialSet
	pins   *fakePins
}

func newFakeSet(channels ...string) *fakeSet {
	t := &opTrace{}
	return &fakeSet{
		trace:  t,
		irq:    newFakeIRQ(t),
		timers: &fakeTimers{t: t},
		adc:    &fakeADC{t: t},
		serial: newFakeSerialSet(t, channels...),
		pins:   newFakePins(t),
	}
}

func (s *fakeSet) set() periph.Set {
	return periph.Set{IRQ: s.irq, Timers: s.timers, ADC: s.adc, Serial: s.serial, Pins: s.pins}
}
