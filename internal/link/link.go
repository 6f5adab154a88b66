// internal/link/link.go
package link

// Label is the status text whose visibility tracks the link.
type Label interface {
	SetHidden(hidden bool)
}

// Alerter fires a one-shot haptic alert. Fire-and-forget.
type Alerter interface {
	Pulse()
}

// Indicator keeps the status label in sync with the wireless link and
// alerts once per connected -> disconnected transition.
// Not safe for concurrent use.
type Indicator struct {
	label   Label
	alerter Alerter

	known     bool
	connected bool
	alerts    int
}

func NewIndicator(label Label, alerter Alerter) *Indicator {
	return &Indicator{label: label, alerter: alerter}
}

// Initialize sets the startup state. Startup is not a transition: no alert.
func (i *Indicator) Initialize(connected bool) {
	i.label.SetHidden(connected)
	i.known = true
	i.connected = connected
}

// Changed applies a connectivity notification.
// It reports whether an alert was fired.
func (i *Indicator) Changed(connected bool) bool {
	i.label.SetHidden(connected)

	fallingEdge := i.known && i.connected && !connected

	i.known = true
	i.connected = connected

	if !fallingEdge {
		return false
	}

	i.alerts++
	i.alerter.Pulse()
	return true
}

// Connected returns the last observed state and whether one was observed.
func (i *Indicator) Connected() (connected, known bool) {
	return i.connected, i.known
}

// Alerts returns how many alerts have fired.
func (i *Indicator) Alerts() int {
	return i.alerts
}
