// internal/poller/poller.go
package poller

import (
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/watchface/internal/face"
	"github.com/tamzrod/watchface/internal/status"
)

// Client abstracts the Modbus operations needed by the poller.
type Client interface {
	ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) // FC 3
	Close() error
}

// Config is the minimal runtime config the poller needs.
type Config struct {
	Name        string
	Interval    time.Duration
	BaseAddress uint16
	Logger      *zap.Logger
}

// Poller is a clock-driven reader of the power/radio controller.
// It turns register blocks into battery and connectivity notifications.
type Poller struct {
	cfg     Config
	client  Client
	factory func() (Client, error)
	log     *zap.Logger

	last *status.Snapshot
}

// New creates a poller with immutable config.
// factory may be nil; the poller then cannot recover a dead client.
func New(cfg Config, client Client, factory func() (Client, error)) (*Poller, error) {
	if cfg.Name == "" {
		return nil, errors.New("poller: name required")
	}
	if cfg.Interval <= 0 {
		return nil, errors.New("poller: interval must be > 0")
	}
	if client == nil && factory == nil {
		return nil, errors.New("poller: client or factory required")
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Poller{
		cfg:     cfg,
		client:  client,
		factory: factory,
		log:     log.With(zap.String("source", cfg.Name)),
	}, nil
}

// PollOnce performs exactly one poll cycle.
// On transport failure the client is discarded and rebuilt on a later cycle.
func (p *Poller) PollOnce() PollResult {
	res := PollResult{At: time.Now()}

	if p.client == nil {
		if p.factory == nil {
			res.Err = errors.New("poller: no client")
			return res
		}
		c, err := p.factory()
		if err != nil {
			res.Err = err
			return res
		}
		p.client = c
	}

	regs, err := p.client.ReadHoldingRegisters(p.cfg.BaseAddress, status.SlotsPerBlock)
	if err != nil {
		_ = p.client.Close()
		p.client = nil
		res.Err = err
		return res
	}

	snap, err := status.Decode(regs)
	if err != nil {
		res.Err = err
		return res
	}
	res.Snapshot = snap

	// First success reports everything; afterwards only changes.
	if p.last == nil || p.last.Battery != snap.Battery {
		res.Events = append(res.Events, face.BatteryChanged{Percent: snap.Battery})
	}
	if p.last == nil || p.last.Connected != snap.Connected {
		res.Events = append(res.Events, face.ConnectivityChanged{Connected: snap.Connected})
	}

	p.last = &snap
	return res
}

// Close releases the current client, if any.
func (p *Poller) Close() error {
	if p.client == nil {
		return nil
	}
	err := p.client.Close()
	p.client = nil
	return err
}
