package types

// ------------------------
// Fault-path wiring
// ------------------------

// SerialChannelConfig resolves the diagnostic channel to one concrete value
// set: which channel, the peripheral clock feeding it, and the line rate.
type SerialChannelConfig struct {
	Channel string `json:"channel"`
	ClockHz uint32 `json:"clock_hz,omitempty"` // 0 where the platform knows its own clock
	Baud    uint32 `json:"baud"`
}

// PinRef names a pin by port and number, e.g. A2 or GP25.
type PinRef struct {
	Port string `json:"port"`
	Pin  uint8  `json:"pin"`
}

// IndicatorConfig locates the fault indicator. Boards without one simply
// carry no indicator at all.
type IndicatorConfig struct {
	Port string `json:"port"`
	Pin  uint8  `json:"pin"`
}
