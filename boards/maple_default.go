//go:build !board_safecast && !rp2040 && !rp2350

package boards

import (
	"faultcore-go/periph"
	"faultcore-go/types"
)

// Stock Maple wiring: USART2 fed by PCLK1 at 36 MHz, 9600 baud, TX on A2.
// The indicator rides the onboard LED at A5 (D13).
var Selected = Board{
	Name:   "maple",
	Diag:   types.SerialChannelConfig{Channel: "usart2", ClockHz: 36_000_000, Baud: 9600},
	DiagTX: types.PinRef{Port: "A", Pin: 2},
	Indicator: &types.IndicatorConfig{
		Port: "A",
		Pin:  5,
	},
	Recovery: []periph.IRQLine{LineUSBHighPriority, LineUSBLowPriority},
}
