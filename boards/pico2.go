//go:build rp2350

package boards

import (
	"faultcore-go/periph"
	"faultcore-go/types"
)

// USBCTRL sits on line 14 on the RP2350 NVIC.
const lineUSBCtrl periph.IRQLine = 14

// Raspberry Pi Pico 2: same wiring as the Pico, different interrupt map.
// The Pico 2 has no onboard user LED on a plain GPIO when using the
// wireless variant, but the stock board keeps GP25.
var Selected = Board{
	Name:   "pico2",
	Diag:   types.SerialChannelConfig{Channel: "uart0", Baud: 115200},
	DiagTX: types.PinRef{Port: "GP", Pin: 0},
	Indicator: &types.IndicatorConfig{
		Port: "GP",
		Pin:  25,
	},
	Recovery: []periph.IRQLine{lineUSBCtrl},
}
