// monitor/reader_test.go
package monitor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"faultcore-go/types"
)

func collectEvents(r *Reader) *[]types.FaultEvent {
	evs := &[]types.FaultEvent{}
	r.OnEvent = func(ev types.FaultEvent) { *evs = append(*evs, ev) }
	return evs
}

func TestReaderReassemblesAcrossChunks(t *testing.T) {
	r := &Reader{Source: "host-1", MaxLine: 256}
	evs := collectEvents(r)

	r.Feed([]byte("ERROR: FAILED ASS"))
	r.Feed([]byte("ERT(x > 0): main.c: 42\n"))
	r.Feed([]byte("\rERROR: PROGRAM ABORTED VIA abort()\n\r"))

	require.Len(t, *evs, 2)

	first := (*evs)[0]
	require.True(t, first.Parsed)
	require.Equal(t, types.AssertionFailure, first.Report.Kind)
	require.Equal(t, "main.c", first.Report.File)
	require.Equal(t, uint32(42), first.Report.Line)
	require.Equal(t, "x > 0", first.Report.Expr)
	require.Equal(t, "host-1", first.Source)
	require.False(t, first.ReceivedAt.IsZero())

	second := (*evs)[1]
	require.True(t, second.Parsed)
	require.Equal(t, types.AbortCall, second.Report.Kind)
}

func TestReaderRawPassthrough(t *testing.T) {
	r := &Reader{MaxLine: 256}
	evs := collectEvents(r)

	r.Feed([]byte("boot: clocks ok\n\r"))

	require.Len(t, *evs, 1)
	require.False(t, (*evs)[0].Parsed)
	require.Equal(t, "boot: clocks ok", (*evs)[0].Raw)
}

func TestReaderTruncatesLongLines(t *testing.T) {
	r := &Reader{MaxLine: 8}
	evs := collectEvents(r)

	r.Feed([]byte("0123456789abcdef\n"))

	require.Len(t, *evs, 1)
	require.Equal(t, "01234567", (*evs)[0].Raw)
}

func TestReaderFlushEmitsPartial(t *testing.T) {
	r := &Reader{MaxLine: 256}
	evs := collectEvents(r)

	r.Feed([]byte("half a li"))
	require.Empty(t, *evs)

	r.Flush()
	require.Len(t, *evs, 1)
	require.Equal(t, "half a li", (*evs)[0].Raw)

	r.Flush()
	require.Len(t, *evs, 1)
}

func TestReaderIgnoresBlankLines(t *testing.T) {
	r := &Reader{MaxLine: 256}
	evs := collectEvents(r)

	r.Feed([]byte("\n\r\n\r\n"))

	require.Empty(t, *evs)
}
