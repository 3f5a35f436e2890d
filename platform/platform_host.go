// platform/platform_host.go
//go:build !rp2040 && !rp2350

// Package platform binds the peripheral capability set to whatever the build
// is running on. Hosted builds get a process-wide simulation; RP2 builds get
// the live hardware.
package platform

import (
	"io"

	"faultcore-go/boards"
	"faultcore-go/periph"
)

var defaultSim *Sim

// Default returns the platform capability set. Call during single-threaded
// bring-up; the first call fixes the instance.
func Default() periph.Set {
	if defaultSim == nil {
		defaultSim = NewSim()
	}
	return defaultSim.Set()
}

// DefaultSim exposes the simulation behind Default.
func DefaultSim() *Sim {
	Default()
	return defaultSim
}

// TeeDiag mirrors the selected board's diagnostic channel to w, so a hosted
// run prints what a device would put on the wire.
func TeeDiag(w io.Writer) {
	DefaultSim().Serial.Channel(boards.Selected.Diag.Channel).TeeTo(w)
}
