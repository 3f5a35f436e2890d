// monitor/reader.go
package monitor

import (
	"time"

	"faultcore-go/fault"
	"faultcore-go/types"
)

// Reader reassembles the device's line-oriented diagnostic stream. Device
// messages end "\n\r", so lines split on '\n' and '\r' is ignored wherever
// it lands.
type Reader struct {
	Source  string
	MaxLine int
	OnEvent func(types.FaultEvent)

	line []byte
}

// Feed consumes a chunk of raw port bytes, emitting one event per completed
// line. Chunk boundaries carry no meaning.
func (r *Reader) Feed(p []byte) {
	for _, b := range p {
		switch b {
		case '\r':
		case '\n':
			r.flush()
		default:
			if len(r.line) < r.max() {
				r.line = append(r.line, b)
			}
		}
	}
}

// Flush emits any pending partial line. Call when the port goes away.
func (r *Reader) Flush() {
	r.flush()
}

func (r *Reader) flush() {
	if len(r.line) == 0 {
		return
	}
	line := string(r.line)
	r.line = r.line[:0]

	ev := types.FaultEvent{Raw: line, Source: r.Source, ReceivedAt: time.Now()}
	if rep, err := fault.ParseMessage(line); err == nil {
		ev.Report = rep
		ev.Parsed = true
	}
	if r.OnEvent != nil {
		r.OnEvent(ev)
	}
}

func (r *Reader) max() int {
	if r.MaxLine <= 0 {
		return 256
	}
	return r.MaxLine
}
