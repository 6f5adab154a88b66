// internal/config/validate.go
package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config: nil")
	}
	w := cfg.Watchface

	// ------------------------------------------------------------
	// CLOCK
	// ------------------------------------------------------------

	if tz := w.Clock.Timezone; tz != "" && tz != "Local" {
		if _, err := time.LoadLocation(tz); err != nil {
			return fmt.Errorf("clock.timezone %q: %w", tz, err)
		}
	}

	// ------------------------------------------------------------
	// DISPLAY
	// ------------------------------------------------------------

	switch w.Display.Host {
	case "", "terminal", "raster":
	default:
		return fmt.Errorf("display.host %q: must be terminal or raster", w.Display.Host)
	}
	if w.Display.Width < 0 || w.Display.Height < 0 {
		return fmt.Errorf("display: width and height must be >= 0")
	}

	// ------------------------------------------------------------
	// LOG
	// ------------------------------------------------------------

	switch w.Log.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: must be debug, info, warn or error", w.Log.Level)
	}
	switch w.Log.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format %q: must be console or json", w.Log.Format)
	}

	// ------------------------------------------------------------
	// SOURCES
	// ------------------------------------------------------------

	if b := w.Sources.Battery; b != nil && (*b < 0 || *b > 100) {
		return fmt.Errorf("sources.battery %d: must be within 0..100", *b)
	}

	if m := w.Sources.Modbus; m != nil {
		if m.Endpoint == "" {
			return fmt.Errorf("sources.modbus.endpoint: required")
		}
		if !strings.HasPrefix(m.Endpoint, "tcp://") && !strings.HasPrefix(m.Endpoint, "rtu://") {
			return fmt.Errorf("sources.modbus.endpoint %q: scheme must be tcp:// or rtu://", m.Endpoint)
		}
		if m.TimeoutMs < 0 {
			return fmt.Errorf("sources.modbus.timeout_ms: must be >= 0")
		}
		if m.IntervalMs < 0 {
			return fmt.Errorf("sources.modbus.interval_ms: must be >= 0")
		}
		if m.BaudRate < 0 {
			return fmt.Errorf("sources.modbus.baud_rate: must be >= 0")
		}
	}

	if q := w.Sources.MQTT; q != nil {
		if q.Broker == "" {
			return fmt.Errorf("sources.mqtt.broker: required")
		}
		if q.BatteryTopic == "" && q.LinkTopic == "" {
			return fmt.Errorf("sources.mqtt: battery_topic or link_topic required")
		}
		if q.BatteryTopic != "" && q.BatteryTopic == q.LinkTopic {
			return fmt.Errorf("sources.mqtt: battery_topic and link_topic must differ")
		}
		if q.QoS > 2 {
			return fmt.Errorf("sources.mqtt.qos %d: must be 0, 1 or 2", q.QoS)
		}
	}

	return nil
}
