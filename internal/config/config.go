// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Watchface WatchfaceConfig `yaml:"watchface"`
}

type WatchfaceConfig struct {
	Clock   ClockConfig   `yaml:"clock"`
	Display DisplayConfig `yaml:"display"`
	Log     LogConfig     `yaml:"log"`
	Sources SourcesConfig `yaml:"sources"`
}

// ---- CLOCK ----

type ClockConfig struct {
	Use24h   bool   `yaml:"use_24h"`
	Timezone string `yaml:"timezone"` // IANA name or "Local"
}

// ---- DISPLAY ----

type DisplayConfig struct {
	Host     string `yaml:"host"` // terminal | raster
	Width    int    `yaml:"width"`
	Height   int    `yaml:"height"`
	Snapshot string `yaml:"snapshot"` // raster host PNG output
}

// ---- LOG ----

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"` // required by the terminal host; stdout is the screen
}

// ---- SOURCES ----

type SourcesConfig struct {
	// Battery is shown as-is until a source reports.
	Battery *int `yaml:"battery"`
	// Connected is the fixed link state of a face without live sources.
	Connected *bool `yaml:"connected"`

	Modbus *ModbusConfig `yaml:"modbus"`
	MQTT   *MQTTConfig   `yaml:"mqtt"`
}

// Live reports whether any source delivers runtime notifications.
func (s SourcesConfig) Live() bool {
	return s.Modbus != nil || s.MQTT != nil
}

// StartupLink returns the link state known before the first event.
// With live sources it is nil: the first report initializes the link.
func (s SourcesConfig) StartupLink() *bool {
	if s.Live() {
		return nil
	}
	return s.Connected
}

type ModbusConfig struct {
	Endpoint    string `yaml:"endpoint"` // tcp://host:port | rtu:///dev/tty...
	UnitID      uint8  `yaml:"unit_id"`
	TimeoutMs   int    `yaml:"timeout_ms"`
	IntervalMs  int    `yaml:"interval_ms"`
	BaseAddress uint16 `yaml:"base_address"`
	BaudRate    int    `yaml:"baud_rate"` // rtu only
}

type MQTTConfig struct {
	Broker       string `yaml:"broker"`
	ClientID     string `yaml:"client_id"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	BatteryTopic string `yaml:"battery_topic"`
	LinkTopic    string `yaml:"link_topic"`
	QoS          byte   `yaml:"qos"`
}

// Load reads and decodes a YAML config file.
// Unknown keys are rejected.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return &cfg, nil
}
