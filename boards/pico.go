//go:build rp2040

package boards

import (
	"faultcore-go/periph"
	"faultcore-go/types"
)

// USBCTRL on the RP2040 NVIC; left enabled so picotool and the CDC console
// survive a fault.
const lineUSBCtrl periph.IRQLine = 5

// Raspberry Pi Pico: uart0 with TX on GP0 (the UART baud generator derives
// its own clock, so ClockHz stays zero), indicator on the GP25 LED.
var Selected = Board{
	Name:   "pico",
	Diag:   types.SerialChannelConfig{Channel: "uart0", Baud: 115200},
	DiagTX: types.PinRef{Port: "GP", Pin: 0},
	Indicator: &types.IndicatorConfig{
		Port: "GP",
		Pin:  25,
	},
	Recovery: []periph.IRQLine{lineUSBCtrl},
}
