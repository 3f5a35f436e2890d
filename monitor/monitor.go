// monitor/monitor.go

// Package monitor watches a device's diagnostic serial channel from the host
// side. It reassembles report lines, parses them back into fault reports,
// and fans them out to in-process subscribers, a bounded history, and
// optionally an MQTT broker.
package monitor

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/denisbrodbeck/machineid"
	"github.com/goburrow/serial"
	"github.com/golang/glog"

	"faultcore-go/errcode"
	"faultcore-go/types"
	"faultcore-go/x/mathx"
)

// PortState is published retained on TopicPortState whenever the link
// changes.
type PortState struct {
	Link  string    `json:"link"` // "up" or "down"
	Error string    `json:"error,omitempty"`
	TS    time.Time `json:"ts"`
}

// Stats counts monitor activity since start.
type Stats struct {
	Lines      uint64 `json:"lines"`
	Faults     uint64 `json:"faults"`
	RawLines   uint64 `json:"raw_lines"`
	Reconnects uint64 `json:"reconnects"`
}

// Monitor owns one serial port for the life of Run.
type Monitor struct {
	cfg    *Config
	events *Events
	fw     *Forwarder
	source string

	// open is swappable so tests can feed the pump without hardware.
	open func(PortConfig) (io.ReadWriteCloser, error)

	backoffMin time.Duration
	backoffMax time.Duration

	mu    sync.Mutex
	stats Stats
}

// New validates cfg and assembles a monitor. No connection is attempted
// until Run.
func New(cfg *Config) (*Monitor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Monitor{
		cfg:        cfg,
		events:     NewEvents(8, cfg.History.Size),
		source:     hostID(),
		open:       openSerial,
		backoffMin: time.Second,
		backoffMax: 30 * time.Second,
	}
	if cfg.Broker.URL != "" {
		fw, err := NewForwarder(cfg.Broker.URL, cfg.Broker.TopicPrefix)
		if err != nil {
			return nil, err
		}
		m.fw = fw
	}
	return m, nil
}

// hostID identifies this host in outgoing events.
func hostID() string {
	id, err := machineid.ID()
	if err != nil {
		glog.Warningf("machine id unavailable: %v", err)
		return "unknown-host"
	}
	return id
}

// Events exposes the pub/sub fabric.
func (m *Monitor) Events() *Events { return m.events }

// Source is the identity attached to outgoing events.
func (m *Monitor) Source() string { return m.source }

// Stats returns a snapshot of the counters.
func (m *Monitor) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.stats
}

func openSerial(pc PortConfig) (io.ReadWriteCloser, error) {
	port, err := serial.Open(&serial.Config{
		Address:  pc.Address,
		BaudRate: pc.Baud,
		DataBits: pc.DataBits,
		StopBits: pc.StopBits,
		Parity:   pc.Parity,
		Timeout:  time.Duration(pc.TimeoutMs) * time.Millisecond,
	})
	if err != nil {
		return nil, &errcode.E{C: errcode.PortUnavailable, Op: "monitor.open", Msg: pc.Address, Err: err}
	}
	return port, nil
}

// Run opens the port and pumps it until ctx is cancelled, reopening with
// exponential backoff when the port drops. A broker failure downgrades the
// monitor to serial-only; it never stops the pump.
func (m *Monitor) Run(ctx context.Context) error {
	if m.fw != nil {
		if err := m.fw.Connect(); err != nil {
			glog.Warningf("broker unavailable, forwarding disabled: %v", err)
			m.fw = nil
		}
	}
	defer func() {
		if m.fw != nil {
			m.fw.Close()
		}
	}()

	backoff := m.backoffMin
	for {
		port, err := m.open(m.cfg.Port)
		if err != nil {
			m.setPortState("down", err)
			glog.Warningf("open %s: %v (retry in %v)", m.cfg.Port.Address, err, backoff)
			if err := sleepCtx(ctx, backoff); err != nil {
				return err
			}
			backoff = mathx.Clamp(backoff*2, m.backoffMin, m.backoffMax)
			m.countReconnect()
			continue
		}
		backoff = m.backoffMin
		m.setPortState("up", nil)
		glog.Infof("monitoring %s at %d baud", m.cfg.Port.Address, m.cfg.Port.Baud)

		err = m.pump(ctx, port)
		port.Close()
		m.setPortState("down", err)
		if ctx.Err() != nil {
			return ctx.Err()
		}
		glog.Warningf("port lost: %v (reopen in %v)", err, backoff)
		if err := sleepCtx(ctx, backoff); err != nil {
			return err
		}
		backoff = mathx.Clamp(backoff*2, m.backoffMin, m.backoffMax)
		m.countReconnect()
	}
}

// pump reads the port until a hard error or cancellation.
func (m *Monitor) pump(ctx context.Context, port io.Reader) error {
	r := &Reader{Source: m.source, MaxLine: m.cfg.Port.MaxLine, OnEvent: m.handle}
	defer r.Flush()

	buf := make([]byte, 256)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := port.Read(buf)
		if n > 0 {
			r.Feed(buf[:n])
		}
		if err != nil {
			if err == serial.ErrTimeout {
				continue
			}
			return err
		}
		if n == 0 {
			// A port without deadlines can return empty; don't spin.
			if err := sleepCtx(ctx, 5*time.Millisecond); err != nil {
				return err
			}
		}
	}
}

// handle is the Reader callback for every reassembled line.
func (m *Monitor) handle(ev types.FaultEvent) {
	m.mu.Lock()
	m.stats.Lines++
	if ev.Parsed {
		m.stats.Faults++
	} else {
		m.stats.RawLines++
	}
	m.mu.Unlock()

	if !ev.Parsed {
		glog.V(1).Infof("raw line from %s: %q", ev.Source, ev.Raw)
		m.events.Publish(&Message{Topic: TopicRawLine, Payload: ev})
		return
	}

	glog.Infof("fault from %s: %s", ev.Source, ev.Raw)
	m.events.Publish(&Message{Topic: TopicFault, Payload: ev, Retained: true})
	if m.fw != nil {
		if err := m.fw.Forward(ev); err != nil {
			glog.Warningf("forward: %v", err)
		}
	}
}

func (m *Monitor) setPortState(link string, cause error) {
	st := PortState{Link: link, TS: time.Now()}
	if cause != nil && link != "up" {
		st.Error = cause.Error()
	}
	m.events.Publish(&Message{Topic: TopicPortState, Payload: st, Retained: true})
}

func (m *Monitor) countReconnect() {
	m.mu.Lock()
	m.stats.Reconnects++
	m.mu.Unlock()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
