package fault

import (
	"strings"

	"faultcore-go/errcode"
	"faultcore-go/types"
	"faultcore-go/x/conv"
)

// Diagnostic line layout. The terminator is LF then CR, in that order.
const (
	assertPrefix = "ERROR: FAILED ASSERT("
	abortMessage = "ERROR: PROGRAM ABORTED VIA abort()"
)

// AppendMessage renders the exact diagnostic line for a report, terminator
// included, and appends it to dst. The Reporter emits the same bytes one at
// a time; the tests hold the two to each other.
func AppendMessage(dst []byte, r types.FaultReport) []byte {
	switch r.Kind {
	case types.AssertionFailure:
		dst = append(dst, assertPrefix...)
		dst = append(dst, r.Expr...)
		dst = append(dst, "): "...)
		dst = append(dst, r.File...)
		dst = append(dst, ": "...)
		dst = conv.AppendUint(dst, r.Line)
	default:
		dst = append(dst, abortMessage...)
	}
	return append(dst, '\n', '\r')
}

// ParseMessage recovers a report from one diagnostic line, stripped of its
// terminator. Fields are split from the right so an expression containing
// "): " still parses.
func ParseMessage(line string) (types.FaultReport, error) {
	if line == abortMessage {
		return types.FaultReport{Kind: types.AbortCall}, nil
	}
	if !strings.HasPrefix(line, assertPrefix) {
		return types.FaultReport{}, errcode.BadReportLine
	}
	rest := line[len(assertPrefix):]

	i := strings.LastIndex(rest, ": ")
	if i < 0 {
		return types.FaultReport{}, errcode.BadReportLine
	}
	lineNum, ok := conv.ParseUint32(rest[i+2:])
	if !ok {
		return types.FaultReport{}, errcode.BadReportLine
	}
	rest = rest[:i]

	j := strings.LastIndex(rest, "): ")
	if j < 0 {
		return types.FaultReport{}, errcode.BadReportLine
	}
	return types.FaultReport{
		Kind: types.AssertionFailure,
		Expr: rest[:j],
		File: rest[j+3:],
		Line: lineNum,
	}, nil
}
