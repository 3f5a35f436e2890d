// monitor/validate.go
package monitor

import (
	"fmt"
	"net/url"

	"faultcore-go/errcode"
)

// Validate checks configuration correctness. It MUST NOT mutate the
// configuration; Load's defaults have already been applied.
func (c *Config) Validate() error {
	if c.Port.Address == "" {
		return invalid("port.address is required", nil)
	}
	if c.Port.Baud <= 0 {
		return invalid(fmt.Sprintf("port.baud %d out of range", c.Port.Baud), nil)
	}
	switch c.Port.Parity {
	case "N", "E", "O":
	default:
		return invalid(fmt.Sprintf("port.parity %q must be N, E or O", c.Port.Parity), nil)
	}
	if c.Port.TimeoutMs < 0 {
		return invalid("port.timeout_ms must not be negative", nil)
	}
	if c.Port.MaxLine <= 0 {
		return invalid("port.max_line must be positive", nil)
	}
	if c.History.Size < 0 {
		return invalid("history.size must not be negative", nil)
	}
	if c.Broker.URL != "" {
		u, err := url.Parse(c.Broker.URL)
		if err != nil {
			return invalid("broker.url", err)
		}
		if u.Host == "" {
			return invalid(fmt.Sprintf("broker.url %q has no host", c.Broker.URL), nil)
		}
	}
	return nil
}

func invalid(msg string, cause error) error {
	return &errcode.E{C: errcode.InvalidConfig, Op: "config.validate", Msg: msg, Err: cause}
}
