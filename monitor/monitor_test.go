// monitor/monitor_test.go
package monitor

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"faultcore-go/errcode"
	"faultcore-go/types"
)

// pipePort turns the read half of an io.Pipe into a serial port stand-in.
type pipePort struct{ io.Reader }

func (p *pipePort) Write(b []byte) (int, error) { return len(b), nil }
func (p *pipePort) Close() error                { return nil }

func testConfig() *Config {
	cfg := &Config{}
	cfg.Port.Address = "/dev/test0"
	cfg.applyDefaults()
	cfg.History.Size = 4
	return cfg
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(&Config{})
	require.Error(t, err)
	require.Equal(t, errcode.InvalidConfig, errcode.Of(err))
}

func TestHandleCountsAndPublishes(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)

	raws := m.Events().Subscribe(TopicRawLine)
	m.handle(types.FaultEvent{Raw: "boot ok", Source: "s"})

	msg := recvMessage(t, raws)
	require.False(t, msg.Retained)
	require.Equal(t, "boot ok", msg.Payload.(types.FaultEvent).Raw)
	require.Equal(t, uint64(1), m.Stats().Lines)
	require.Equal(t, uint64(1), m.Stats().RawLines)
	require.Equal(t, uint64(0), m.Stats().Faults)
}

func TestMonitorEndToEnd(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)
	m.backoffMin = 10 * time.Millisecond
	m.backoffMax = 20 * time.Millisecond

	pr, pw := io.Pipe()
	var mu sync.Mutex
	opens := 0
	m.open = func(PortConfig) (io.ReadWriteCloser, error) {
		mu.Lock()
		defer mu.Unlock()
		opens++
		if opens > 1 {
			return nil, errcode.PortUnavailable
		}
		return &pipePort{Reader: pr}, nil
	}

	faults := m.Events().Subscribe(TopicFault)
	states := m.Events().Subscribe(TopicPortState)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	up := recvMessage(t, states)
	require.Equal(t, "up", up.Payload.(PortState).Link)
	require.True(t, up.Retained)

	_, err = pw.Write([]byte("ERROR: FAILED ASSERT(x > 0): main.c: 42\n\r"))
	require.NoError(t, err)

	msg := recvMessage(t, faults)
	ev := msg.Payload.(types.FaultEvent)
	require.True(t, ev.Parsed)
	require.Equal(t, types.AssertionFailure, ev.Report.Kind)
	require.Equal(t, "main.c", ev.Report.File)
	require.Equal(t, uint32(42), ev.Report.Line)
	require.Equal(t, m.Source(), ev.Source)
	require.True(t, msg.Retained)

	last, ok := m.Events().Last()
	require.True(t, ok)
	require.Equal(t, uint32(42), last.Report.Line)
	require.Equal(t, uint64(1), m.Stats().Lines)
	require.Equal(t, uint64(1), m.Stats().Faults)
	require.Equal(t, uint64(0), m.Stats().RawLines)

	cancel()
	pw.Close()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestMonitorReconnectsWithBackoff(t *testing.T) {
	m, err := New(testConfig())
	require.NoError(t, err)
	m.backoffMin = time.Millisecond
	m.backoffMax = 4 * time.Millisecond

	pr, pw := io.Pipe()
	var mu sync.Mutex
	opens := 0
	m.open = func(PortConfig) (io.ReadWriteCloser, error) {
		mu.Lock()
		defer mu.Unlock()
		opens++
		if opens < 3 {
			return nil, errcode.PortUnavailable
		}
		return &pipePort{Reader: pr}, nil
	}

	states := m.Events().Subscribe(TopicPortState)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- m.Run(ctx) }()

	require.Equal(t, "down", recvMessage(t, states).Payload.(PortState).Link)
	require.Equal(t, "down", recvMessage(t, states).Payload.(PortState).Link)
	require.Equal(t, "up", recvMessage(t, states).Payload.(PortState).Link)
	require.Equal(t, uint64(2), m.Stats().Reconnects)

	cancel()
	pw.Close()
	select {
	case err := <-done:
		require.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop")
	}
}
