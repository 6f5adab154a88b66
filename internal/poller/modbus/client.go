// internal/poller/modbus/client.go
package modbus

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goburrow/modbus"
)

// Client implements poller.Client over Modbus TCP or RTU.
// This adapter is geometry-only: it issues reads and unpacks raw responses.
type Client struct {
	handler handler
	client  modbus.Client
}

// handler is the lifecycle part shared by the TCP and RTU handlers.
type handler interface {
	modbus.ClientHandler
	Connect() error
	Close() error
}

// Config is minimal transport config.
type Config struct {
	Endpoint string // tcp://host:port | rtu:///dev/ttyUSB0
	UnitID   uint8
	Timeout  time.Duration
	BaudRate int // rtu only
}

// New creates a connected Modbus client.
func New(cfg Config) (*Client, error) {
	h, err := newHandler(cfg)
	if err != nil {
		return nil, err
	}

	if err := h.Connect(); err != nil {
		return nil, fmt.Errorf("modbus client: connect %s: %w", cfg.Endpoint, err)
	}

	return &Client{
		handler: h,
		client:  modbus.NewClient(h),
	}, nil
}

func newHandler(cfg Config) (handler, error) {
	switch {
	case cfg.Endpoint == "":
		return nil, errors.New("modbus client: endpoint required")

	case strings.HasPrefix(cfg.Endpoint, "tcp://"):
		h := modbus.NewTCPClientHandler(strings.TrimPrefix(cfg.Endpoint, "tcp://"))
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		return h, nil

	case strings.HasPrefix(cfg.Endpoint, "rtu://"):
		h := modbus.NewRTUClientHandler(strings.TrimPrefix(cfg.Endpoint, "rtu://"))
		h.BaudRate = cfg.BaudRate
		h.DataBits = 8
		h.Parity = "N"
		h.StopBits = 1
		h.Timeout = cfg.Timeout
		h.SlaveId = cfg.UnitID
		return h, nil

	default:
		return nil, fmt.Errorf("modbus client: unsupported endpoint %q", cfg.Endpoint)
	}
}

// Close closes the underlying connection or serial port.
func (c *Client) Close() error {
	if c == nil || c.handler == nil {
		return nil
	}
	return c.handler.Close()
}

// ---- poller.Client interface ----

func (c *Client) ReadHoldingRegisters(addr, qty uint16) ([]uint16, error) {
	if qty == 0 {
		return nil, nil
	}
	raw, err := c.client.ReadHoldingRegisters(addr, qty)
	if err != nil {
		return nil, err
	}
	if len(raw) != int(qty)*2 {
		return nil, fmt.Errorf("modbus: read-registers payload size: got=%d want=%d", len(raw), int(qty)*2)
	}
	return unpackRegisters(raw), nil
}

// ---- helpers (pure geometry) ----

func unpackRegisters(data []byte) []uint16 {
	n := len(data) / 2
	out := make([]uint16, n)
	for i := 0; i < n; i++ {
		out[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}
	return out
}
