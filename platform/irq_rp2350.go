// platform/irq_rp2350.go
//go:build rp2350

package platform

import "faultcore-go/periph"

// RP2350 NVIC layout. Two timer blocks of four alarms each.
const nvicLines = 52

var (
	timerIRQs  = []periph.IRQLine{0, 1, 2, 3, 4, 5, 6, 7}
	adcIRQs    = []periph.IRQLine{35}
	serialIRQs = []periph.IRQLine{33, 34}
)
