// internal/status/decode.go
package status

import "fmt"

// Decode converts a raw controller block into a Snapshot.
// The battery value is clamped to 0..BatteryMax: the controller is the
// notifier and owns that guarantee.
// Any non-zero link register other than LinkUp is treated as down.
// No IO. No side effects.
func Decode(regs []uint16) (Snapshot, error) {
	if len(regs) < SlotsPerBlock {
		return Snapshot{}, fmt.Errorf("status: short block: got=%d want=%d", len(regs), SlotsPerBlock)
	}

	battery := int(regs[SlotBatteryPercent])
	if battery > BatteryMax {
		battery = BatteryMax
	}

	return Snapshot{
		Battery:   battery,
		Connected: regs[SlotLinkState] == LinkUp,
		Charging:  regs[SlotCharging] != 0,
	}, nil
}
