// monitor/config_test.go
package monitor

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"faultcore-go/errcode"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "faultmon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "port:\n  address: /dev/ttyACM0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "/dev/ttyACM0", cfg.Port.Address)
	require.Equal(t, 9600, cfg.Port.Baud)
	require.Equal(t, 8, cfg.Port.DataBits)
	require.Equal(t, 1, cfg.Port.StopBits)
	require.Equal(t, "N", cfg.Port.Parity)
	require.Equal(t, 500, cfg.Port.TimeoutMs)
	require.Equal(t, 256, cfg.Port.MaxLine)
	require.Equal(t, "faultmon", cfg.Broker.TopicPrefix)
	require.Equal(t, 64, cfg.History.Size)
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `port:
  address: COM3
  baud: 115200
  parity: E
  timeout_ms: 250
  max_line: 128
broker:
  url: mqtt://user:pw@broker.local:1883/fleet
history:
  size: 16
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	require.Equal(t, "COM3", cfg.Port.Address)
	require.Equal(t, 115200, cfg.Port.Baud)
	require.Equal(t, "E", cfg.Port.Parity)
	require.Equal(t, 250, cfg.Port.TimeoutMs)
	require.Equal(t, 128, cfg.Port.MaxLine)
	require.Equal(t, "mqtt://user:pw@broker.local:1883/fleet", cfg.Broker.URL)
	require.Equal(t, 16, cfg.History.Size)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	require.Equal(t, errcode.InvalidConfig, errcode.Of(err))
}

func TestLoadBadYAML(t *testing.T) {
	path := writeConfig(t, "port: [not a map\n")
	_, err := Load(path)
	require.Error(t, err)
	require.Equal(t, errcode.InvalidConfig, errcode.Of(err))
}

func TestValidateRejects(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		cfg.Port.Address = "/dev/ttyUSB0"
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name string
		mut  func(*Config)
	}{
		{"missing address", func(c *Config) { c.Port.Address = "" }},
		{"zero baud", func(c *Config) { c.Port.Baud = 0 }},
		{"negative baud", func(c *Config) { c.Port.Baud = -9600 }},
		{"bad parity", func(c *Config) { c.Port.Parity = "X" }},
		{"negative timeout", func(c *Config) { c.Port.TimeoutMs = -1 }},
		{"zero max line", func(c *Config) { c.Port.MaxLine = 0 }},
		{"negative history", func(c *Config) { c.History.Size = -1 }},
		{"unparseable broker url", func(c *Config) { c.Broker.URL = "://bad" }},
		{"broker url without host", func(c *Config) { c.Broker.URL = "mqtt://" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := base()
			tc.mut(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			require.Equal(t, errcode.InvalidConfig, errcode.Of(err))
		})
	}
}
