package fault

import "faultcore-go/periph"

// DefaultCeiling is the indicator's duty-cycle resolution. One full fade in
// and out spans 2*ceiling*ceiling steps, slow enough to read by eye even on
// a tight loop.
const DefaultCeiling = 0x0200

// Waveform steps a triangular duty cycle: the amplitude climbs one notch per
// full sub-counter sweep until it hits the ceiling, then walks back down to
// zero, forever. The output level is high while the sub-counter sits below
// the amplitude, which makes the high fraction of each sweep track the
// amplitude directly.
type Waveform struct {
	ceiling uint32
	amp     uint32
	slope   int32
	i       uint32
}

// NewWaveform starts a waveform at amplitude zero, rising. A zero ceiling
// selects DefaultCeiling.
func NewWaveform(ceiling uint32) *Waveform {
	if ceiling == 0 {
		ceiling = DefaultCeiling
	}
	return &Waveform{ceiling: ceiling, slope: 1}
}

// Step advances one iteration and reports the output level. The slope only
// flips on the iterations where the amplitude sits at zero or the ceiling.
func (w *Waveform) Step() bool {
	if w.amp == w.ceiling {
		w.slope = -1
	} else if w.amp == 0 {
		w.slope = 1
	}
	if w.i == w.ceiling {
		w.amp = uint32(int32(w.amp) + w.slope)
		w.i = 0
	}
	level := w.i < w.amp
	w.i++
	return level
}

// Signaler drives the fault indicator. It is the terminal stage of the
// fault sequence: Run never returns, with or without a wired pin, because
// by the time it starts normal execution has been judged unsafe to resume.
type Signaler struct {
	Pin     periph.Pin // nil: keep looping, skip hardware writes
	Ceiling uint32     // 0: DefaultCeiling
	Yield   func()     // optional per-iteration hook for pacing
}

// Run enters the terminal indicator loop and never returns. Real-time fade
// speed falls out of the loop execution rate; only the shape is fixed.
func (s *Signaler) Run() {
	w := NewWaveform(s.Ceiling)
	if s.Pin != nil {
		s.Pin.SetMode(periph.OutputPushPull)
	}
	for {
		level := w.Step()
		if s.Pin != nil {
			s.Pin.Set(level)
		}
		if s.Yield != nil {
			s.Yield()
		}
	}
}

// Throb fades pin on and off forever.
func Throb(pin periph.Pin) {
	(&Signaler{Pin: pin}).Run()
}
