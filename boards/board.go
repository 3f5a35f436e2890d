// Package boards carries one fault-path preset per supported board. Build
// tags pick exactly one Selected value at link time; the firmware never
// branches on board identity at runtime.
package boards

import (
	"faultcore-go/periph"
	"faultcore-go/types"
)

// Board resolves the fault path's wiring for one variant: the serial channel
// diagnostics go out on, its TX pin, the optional indicator, and the
// interrupt lines left alive after quiescing so recovery tooling can still
// reach the device.
type Board struct {
	Name      string
	Diag      types.SerialChannelConfig
	DiagTX    types.PinRef
	Indicator *types.IndicatorConfig
	Recovery  []periph.IRQLine
}

// STM32F1 NVIC lines for the USB control path (shared with CAN). These stay
// enabled through a fault so the USB bootloader remains reachable.
const (
	LineUSBHighPriority periph.IRQLine = 19
	LineUSBLowPriority  periph.IRQLine = 20
)
