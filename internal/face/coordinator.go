// internal/face/coordinator.go
package face

import (
	"errors"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/tamzrod/watchface/internal/gauge"
	"github.com/tamzrod/watchface/internal/link"
	"github.com/tamzrod/watchface/internal/timefmt"
)

// Options seeds the coordinator with host services and the values known
// before the first event arrives.
type Options struct {
	Now      func() time.Time
	Use24h   func() bool
	Location *time.Location

	Battery int

	// Connected is the link state observed at startup. Nil means unknown:
	// the first ConnectivityChanged then initializes the link without alerting.
	Connected *bool

	GaugeStyle gauge.Style
	Logger     *zap.Logger
}

// Coordinator owns the current clock, battery and link state and drives the
// display regions from host events.
// Every method must be called from the host loop; it is not safe for
// concurrent use.
type Coordinator struct {
	display Display
	haptics Haptics
	link    *link.Indicator

	now    func() time.Time
	use24h func() bool
	loc    *time.Location
	style  gauge.Style
	log    *zap.Logger

	battery int
	initial *bool
	reading timefmt.Reading
}

// New builds a coordinator. A missing display or haptics is a startup bug.
func New(display Display, haptics Haptics, opts Options) (*Coordinator, error) {
	if display == nil {
		return nil, errors.New("face: display required")
	}
	if haptics == nil {
		return nil, errors.New("face: haptics required")
	}

	c := &Coordinator{
		display: display,
		haptics: haptics,
		now:     opts.Now,
		use24h:  opts.Use24h,
		loc:     opts.Location,
		style:   opts.GaugeStyle,
		log:     opts.Logger,
		battery: opts.Battery,
	}
	if opts.Connected != nil {
		connected := *opts.Connected
		c.initial = &connected
	}

	if c.now == nil {
		c.now = time.Now
	}
	if c.use24h == nil {
		c.use24h = func() bool { return false }
	}
	if c.style.Track == nil || c.style.Fill == nil {
		c.style = gauge.DefaultStyle
	}
	if c.log == nil {
		c.log = zap.NewNop()
	}

	c.link = link.NewIndicator(regionLabel{display: display, region: RegionLink}, haptics)
	return c, nil
}

// Start refreshes all three channels from the currently known values so the
// face is never blank before the first event.
func (c *Coordinator) Start() {
	c.display.SetText(RegionLink, LinkLabel)
	c.OnTick(c.now())
	c.OnBatteryChanged(c.battery)

	if c.initial == nil {
		// Unknown link: keep the label hidden until a source reports.
		c.display.SetHidden(RegionLink, true)
		c.log.Info("face started",
			zap.String("time", c.reading.Time),
			zap.Int("battery", c.battery),
			zap.String("connected", "unknown"),
		)
		return
	}

	c.link.Initialize(*c.initial)
	c.log.Info("face started",
		zap.String("time", c.reading.Time),
		zap.Int("battery", c.battery),
		zap.Bool("connected", *c.initial),
	)
}

// Handle dispatches one host event.
func (c *Coordinator) Handle(ev Event) {
	switch e := ev.(type) {
	case Tick:
		c.OnTick(e.At)
	case BatteryChanged:
		c.OnBatteryChanged(e.Percent)
	case ConnectivityChanged:
		c.OnConnectivityChanged(e.Connected)
	default:
		c.log.Warn("unknown event", zap.Any("event", ev))
	}
}

// OnTick formats t and pushes the three strings into their regions.
func (c *Coordinator) OnTick(t time.Time) {
	if c.loc != nil {
		t = t.In(c.loc)
	}
	r := timefmt.Format(t, c.use24h())
	c.reading = r

	c.display.SetText(RegionTime, r.Time)
	c.display.SetText(RegionDate, r.Date)
	c.display.SetText(RegionWeekday, r.Weekday)

	c.log.Debug("tick", zap.String("time", r.Time), zap.String("date", r.Date))
}

// OnBatteryChanged stores the percentage and requests a gauge repaint.
func (c *Coordinator) OnBatteryChanged(percent int) {
	c.battery = percent
	c.display.MarkDirty(RegionBattery)

	c.log.Debug("battery", zap.Int("percent", percent))
}

// OnConnectivityChanged updates the link label and alerts on link loss.
func (c *Coordinator) OnConnectivityChanged(connected bool) {
	if c.link.Changed(connected) {
		c.log.Info("link lost", zap.Int("alerts", c.link.Alerts()))
		return
	}
	c.log.Debug("link", zap.Bool("connected", connected))
}

// PaintBattery is the battery region's update proc.
// It always reads the current battery state.
func (c *Coordinator) PaintBattery(dst gauge.Canvas, bounds image.Rectangle) {
	gauge.Paint(dst, bounds, c.battery, c.style)
}

// Battery returns the last stored percentage, unclamped.
func (c *Coordinator) Battery() int {
	return c.battery
}

// Reading returns the text pushed on the last tick.
func (c *Coordinator) Reading() timefmt.Reading {
	return c.reading
}

// Connected returns the last observed link state and whether one was
// observed at all.
func (c *Coordinator) Connected() (connected, known bool) {
	return c.link.Connected()
}

// regionLabel binds link.Label to one display region.
type regionLabel struct {
	display Display
	region  Region
}

func (l regionLabel) SetHidden(hidden bool) {
	l.display.SetHidden(l.region, hidden)
}
