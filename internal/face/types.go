// internal/face/types.go
package face

import "time"

// Region addresses one host-owned display region.
type Region int

const (
	RegionTime Region = iota
	RegionDate
	RegionWeekday
	RegionBattery
	RegionLink
)

var paintOrder = [...]Region{RegionBattery, RegionLink, RegionTime, RegionDate, RegionWeekday}

// Regions returns every region in paint order. The slice is a fresh copy.
func Regions() []Region {
	out := make([]Region, len(paintOrder))
	copy(out, paintOrder[:])
	return out
}

func (r Region) String() string {
	switch r {
	case RegionTime:
		return "time"
	case RegionDate:
		return "date"
	case RegionWeekday:
		return "weekday"
	case RegionBattery:
		return "battery"
	case RegionLink:
		return "link"
	default:
		return "unknown"
	}
}

// LinkLabel is the fixed text of the link region.
const LinkLabel = "DISCONNECTED"

// Display is the narrow update contract of the host's regions.
// The core never creates or destroys regions.
type Display interface {
	SetText(r Region, text string)
	SetHidden(r Region, hidden bool)

	// MarkDirty requests a repaint on the host's next cycle.
	// It must not paint synchronously.
	MarkDirty(r Region)
}

// Haptics fires a one-shot vibration.
type Haptics interface {
	Pulse()
}

// Event is one notification from a host event source.
type Event interface {
	event()
}

// Tick is the once-per-minute clock notification.
type Tick struct {
	At time.Time
}

// BatteryChanged carries a charge percentage.
type BatteryChanged struct {
	Percent int
}

// ConnectivityChanged carries the wireless link state.
type ConnectivityChanged struct {
	Connected bool
}

func (Tick) event()                {}
func (BatteryChanged) event()      {}
func (ConnectivityChanged) event() {}
