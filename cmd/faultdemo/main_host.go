// cmd/faultdemo/main_host.go
//go:build !rp2040 && !rp2350

package main

import (
	"os"
	"time"

	"faultcore-go/fault"
	"faultcore-go/platform"
)

// setup mirrors the simulated diagnostic wire to stdout.
func setup() {
	platform.TeeDiag(os.Stdout)
}

// tune keeps the indicator loop from monopolizing a host core.
func tune(h *fault.Handler) {
	h.Signaler.Yield = func() { time.Sleep(20 * time.Microsecond) }
}
