// platform/irq_rp2040.go
//go:build rp2040

package platform

import "faultcore-go/periph"

// RP2040 NVIC layout.
const nvicLines = 26

var (
	timerIRQs  = []periph.IRQLine{0, 1, 2, 3}
	adcIRQs    = []periph.IRQLine{22}
	serialIRQs = []periph.IRQLine{20, 21}
)
