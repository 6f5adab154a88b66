// internal/config/normalize.go
package config

// Defaults applied by Normalize.
const (
	DefaultWidth      = 144
	DefaultHeight     = 168
	DefaultHost       = "terminal"
	DefaultLevel      = "info"
	DefaultFormat     = "console"
	DefaultLogFile    = "watchface.log"
	DefaultTimeoutMs  = 1000
	DefaultIntervalMs = 5000
	DefaultBaudRate   = 19200
	DefaultClientID   = "watchface"
	DefaultBattery    = 0
)

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	w := &cfg.Watchface

	if w.Clock.Timezone == "" {
		w.Clock.Timezone = "Local"
	}

	if w.Display.Host == "" {
		w.Display.Host = DefaultHost
	}
	if w.Display.Width == 0 {
		w.Display.Width = DefaultWidth
	}
	if w.Display.Height == 0 {
		w.Display.Height = DefaultHeight
	}

	if w.Log.Level == "" {
		w.Log.Level = DefaultLevel
	}
	if w.Log.Format == "" {
		w.Log.Format = DefaultFormat
	}
	if w.Log.File == "" && w.Display.Host == "terminal" {
		w.Log.File = DefaultLogFile
	}

	if w.Sources.Battery == nil {
		b := DefaultBattery
		w.Sources.Battery = &b
	}

	if m := w.Sources.Modbus; m != nil {
		if m.TimeoutMs == 0 {
			m.TimeoutMs = DefaultTimeoutMs
		}
		if m.IntervalMs == 0 {
			m.IntervalMs = DefaultIntervalMs
		}
		if m.BaudRate == 0 {
			m.BaudRate = DefaultBaudRate
		}
	}

	if q := w.Sources.MQTT; q != nil && q.ClientID == "" {
		q.ClientID = DefaultClientID
	}
}
