//go:build board_safecast && !rp2040 && !rp2350

package boards

import (
	"faultcore-go/periph"
	"faultcore-go/types"
)

// Safecast wiring: USART1 fed by PCLK2 at 72 MHz, 115200 baud, TX on A7.
// No indicator is wired; the signal generator still runs its terminal loop
// without touching hardware.
var Selected = Board{
	Name:     "safecast",
	Diag:     types.SerialChannelConfig{Channel: "usart1", ClockHz: 72_000_000, Baud: 115200},
	DiagTX:   types.PinRef{Port: "A", Pin: 7},
	Recovery: []periph.IRQLine{LineUSBHighPriority, LineUSBLowPriority},
}
