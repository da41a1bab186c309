package config

import (
	"fmt"
	"nasne-exporter/internal/nasne"
	"nasne-exporter/internal/util"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	defaultPollInterval  = 10 * time.Second
	defaultListenAddress = "0.0.0.0:8100"
	defaultGatewayPort   = 8100
)

// Config is the configuration shared by the exporter and the gateway.
type Config struct {
	Devices    []string      `yaml:"devices"`
	DevicePort int           `yaml:"devicePort"`
	Poller     PollerConfig  `yaml:"poller"`
	Gateway    GatewayConfig `yaml:"gateway"`
	Log        LogConfig     `yaml:"log"`
}

// PollerConfig configures the continuously polling exporter.
type PollerConfig struct {
	ListenAddress string `yaml:"listenAddress"`
	Interval      string `yaml:"interval"`
}

// GetInterval returns the poll interval, falling back to 10s when it is unset or invalid.
func (p PollerConfig) GetInterval() time.Duration {
	d, err := time.ParseDuration(p.Interval)
	if err != nil || d <= 0 {
		return defaultPollInterval
	}
	return d
}

// GatewayConfig configures the on-demand gateway.
type GatewayConfig struct {
	Port int `yaml:"port"`
}

// ListenAddress returns the address the gateway binds to.
func (g GatewayConfig) ListenAddress() string {
	return fmt.Sprintf("0.0.0.0:%d", g.Port)
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Error reports a missing or invalid configuration value.
type Error struct {
	Field string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("invalid configuration %s: %v", e.Field, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// DefaultConfig returns a configuration with all defaults applied and no devices.
func DefaultConfig() *Config {
	return &Config{
		DevicePort: nasne.DefaultPort,
		Poller: PollerConfig{
			ListenAddress: defaultListenAddress,
			Interval:      defaultPollInterval.String(),
		},
		Gateway: GatewayConfig{
			Port: defaultGatewayPort,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file named by CONFIG_PATH and the environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()
	if path := util.ReadEnvVar("CONFIG_PATH"); path != "" {
		if err := LoadFile(path, cfg); err != nil {
			return nil, err
		}
	}
	if err := ApplyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFile merges the YAML file at path into cfg. Keys missing in the file keep their current value.
func LoadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "failed to read config file")
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return errors.Wrap(err, "failed to unmarshal config")
	}

	return nil
}

// ApplyEnvOverrides updates cfg in place with values from environment variables.
// Recognized variables:
//   - DEVICE_IP_ADDRS comma separated device addresses
//   - DEVICE_PORT port of the device status API
//   - POLL_INTERVAL poll interval of the exporter (Go duration)
//   - PORT listen port of the gateway
//   - LOG_LEVEL, LOG_FORMAT
func ApplyEnvOverrides(cfg *Config) error {
	if devices := util.ReadEnvList("DEVICE_IP_ADDRS"); len(devices) > 0 {
		cfg.Devices = devices
	}
	if err := readPort("DEVICE_PORT", &cfg.DevicePort); err != nil {
		return err
	}
	if err := readPort("PORT", &cfg.Gateway.Port); err != nil {
		return err
	}
	cfg.Poller.Interval = util.ReadEnvVarWithDefault("POLL_INTERVAL", cfg.Poller.Interval)
	cfg.Log.Level = util.ReadEnvVarWithDefault("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.Format = util.ReadEnvVarWithDefault("LOG_FORMAT", cfg.Log.Format)

	return nil
}

func readPort(name string, target *int) error {
	value := util.ReadEnvVar(name)
	if value == "" {
		return nil
	}
	port, err := strconv.Atoi(value)
	if err != nil {
		return &Error{Field: name, Err: errors.Wrapf(err, "error parsing %s value", name)}
	}
	*target = port

	return nil
}

// Validate checks the configuration needed by the polling exporter.
func (c *Config) Validate() error {
	if len(c.Devices) == 0 {
		return &Error{Field: "devices", Err: errors.New("require DEVICE_IP_ADDRS")}
	}
	if c.DevicePort <= 0 || c.DevicePort > 65535 {
		return &Error{Field: "devicePort", Err: errors.Errorf("port %d out of range", c.DevicePort)}
	}

	return nil
}
