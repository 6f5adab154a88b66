// internal/poller/builder.go
package poller

import (
	"time"

	"go.uber.org/zap"

	cfg "github.com/tamzrod/watchface/internal/config"
	pmodbus "github.com/tamzrod/watchface/internal/poller/modbus"
)

// Build constructs a Poller and wires Modbus client lifecycle.
// Connection is reused while healthy.
// On transport death, Poller discards the client and uses factory on a future tick.
func Build(m cfg.ModbusConfig, log *zap.Logger) (*Poller, func() error, error) {
	// client factory: ONE attempt per call
	factory := func() (Client, error) {
		return pmodbus.New(pmodbus.Config{
			Endpoint: m.Endpoint,
			UnitID:   m.UnitID,
			Timeout:  time.Duration(m.TimeoutMs) * time.Millisecond,
			BaudRate: m.BaudRate,
		})
	}

	// initial client (fail fast at startup)
	client, err := factory()
	if err != nil {
		return nil, nil, err
	}

	p, err := New(
		Config{
			Name:        "modbus " + m.Endpoint,
			Interval:    time.Duration(m.IntervalMs) * time.Millisecond,
			BaseAddress: m.BaseAddress,
			Logger:      log,
		},
		client,
		factory,
	)
	if err != nil {
		_ = client.Close()
		return nil, nil, err
	}

	return p, p.Close, nil
}
