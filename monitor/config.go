// monitor/config.go
package monitor

import (
	"os"

	"gopkg.in/yaml.v3"

	"faultcore-go/errcode"
)

// Config drives one monitor instance.
type Config struct {
	Port    PortConfig    `yaml:"port"`
	Broker  BrokerConfig  `yaml:"broker"`
	History HistoryConfig `yaml:"history"`
}

// ---- PORT ----

// PortConfig selects and times the serial port the device is attached to.
type PortConfig struct {
	Address   string `yaml:"address"`
	Baud      int    `yaml:"baud"`
	DataBits  int    `yaml:"data_bits"`
	StopBits  int    `yaml:"stop_bits"`
	Parity    string `yaml:"parity"` // N, E or O
	TimeoutMs int    `yaml:"timeout_ms"`
	MaxLine   int    `yaml:"max_line"`
}

// ---- BROKER ----

// BrokerConfig is optional; with an empty URL the monitor runs standalone.
type BrokerConfig struct {
	URL         string `yaml:"url"`
	TopicPrefix string `yaml:"topic_prefix"`
}

// ---- HISTORY ----

type HistoryConfig struct {
	Size int `yaml:"size"`
}

// Load reads and parses path, then fills defaults for unset fields.
// Call Validate before using the result.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "config.load", Msg: "read " + path, Err: err}
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, &errcode.E{C: errcode.InvalidConfig, Op: "config.load", Msg: "parse " + path, Err: err}
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// applyDefaults fills unset fields. The serial defaults match what a stock
// board runs, so an address is all a minimal config needs.
func (c *Config) applyDefaults() {
	if c.Port.Baud == 0 {
		c.Port.Baud = 9600
	}
	if c.Port.DataBits == 0 {
		c.Port.DataBits = 8
	}
	if c.Port.StopBits == 0 {
		c.Port.StopBits = 1
	}
	if c.Port.Parity == "" {
		c.Port.Parity = "N"
	}
	if c.Port.TimeoutMs == 0 {
		c.Port.TimeoutMs = 500
	}
	if c.Port.MaxLine == 0 {
		c.Port.MaxLine = 256
	}
	if c.Broker.TopicPrefix == "" {
		c.Broker.TopicPrefix = "faultmon"
	}
	if c.History.Size == 0 {
		c.History.Size = 64
	}
}
