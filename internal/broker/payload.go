// internal/broker/payload.go
package broker

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/tamzrod/watchface/internal/gauge"
)

// ParseBattery accepts "37" or {"percent":37}.
// The value is clamped to 0..100: the bridge is the notifier.
func ParseBattery(payload []byte) (int, error) {
	s := strings.TrimSpace(string(payload))
	if strings.HasPrefix(s, "{") {
		var msg struct {
			Percent *int `json:"percent"`
		}
		if err := json.Unmarshal([]byte(s), &msg); err != nil {
			return 0, fmt.Errorf("broker: battery payload: %w", err)
		}
		if msg.Percent == nil {
			return 0, fmt.Errorf("broker: battery payload: missing percent")
		}
		return gauge.Clamp(*msg.Percent), nil
	}

	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("broker: battery payload %q: %w", s, err)
	}
	return gauge.Clamp(v), nil
}

// ParseLink accepts true/false, 1/0, connected/disconnected, up/down or
// {"connected":bool}.
func ParseLink(payload []byte) (bool, error) {
	s := strings.TrimSpace(string(payload))
	if strings.HasPrefix(s, "{") {
		var msg struct {
			Connected *bool `json:"connected"`
		}
		if err := json.Unmarshal([]byte(s), &msg); err != nil {
			return false, fmt.Errorf("broker: link payload: %w", err)
		}
		if msg.Connected == nil {
			return false, fmt.Errorf("broker: link payload: missing connected")
		}
		return *msg.Connected, nil
	}

	switch strings.ToLower(s) {
	case "true", "1", "connected", "up":
		return true, nil
	case "false", "0", "disconnected", "down":
		return false, nil
	}
	return false, fmt.Errorf("broker: link payload %q: not a link state", s)
}
