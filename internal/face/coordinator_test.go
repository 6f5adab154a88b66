package face

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- fake host ----

type fakeDisplay struct {
	text   map[Region]string
	hidden map[Region]bool
	dirty  []Region
	calls  []string
}

func newFakeDisplay() *fakeDisplay {
	return &fakeDisplay{
		text:   map[Region]string{},
		hidden: map[Region]bool{},
	}
}

func (f *fakeDisplay) SetText(r Region, text string) {
	f.text[r] = text
	f.calls = append(f.calls, "text:"+r.String())
}

func (f *fakeDisplay) SetHidden(r Region, hidden bool) {
	f.hidden[r] = hidden
	f.calls = append(f.calls, "hidden:"+r.String())
}

func (f *fakeDisplay) MarkDirty(r Region) {
	f.dirty = append(f.dirty, r)
	f.calls = append(f.calls, "dirty:"+r.String())
}

type fakeHaptics struct {
	pulses int
}

func (f *fakeHaptics) Pulse() { f.pulses++ }

type fillCall struct {
	r image.Rectangle
	c color.Color
}

type recordingCanvas struct {
	calls []fillCall
}

func (rc *recordingCanvas) FillRect(r image.Rectangle, c color.Color) {
	rc.calls = append(rc.calls, fillCall{r: r, c: c})
}

func boolPtr(v bool) *bool { return &v }

var tuesdayMorning = time.Date(2026, time.March, 3, 9, 5, 0, 0, time.UTC)

func newTestCoordinator(t *testing.T, opts Options) (*Coordinator, *fakeDisplay, *fakeHaptics) {
	t.Helper()

	d := newFakeDisplay()
	h := &fakeHaptics{}
	if opts.Now == nil {
		opts.Now = func() time.Time { return tuesdayMorning }
	}

	c, err := New(d, h, opts)
	require.NoError(t, err)
	return c, d, h
}

// ---- tests ----

func TestNew_RequiresHostServices(t *testing.T) {
	_, err := New(nil, &fakeHaptics{}, Options{})
	assert.Error(t, err)

	_, err = New(newFakeDisplay(), nil, Options{})
	assert.Error(t, err)
}

func TestStart_RefreshesEveryChannel(t *testing.T) {
	c, d, h := newTestCoordinator(t, Options{Battery: 80, Connected: boolPtr(false)})

	c.Start()

	assert.Equal(t, "9:05", d.text[RegionTime])
	assert.Equal(t, "March 3", d.text[RegionDate])
	assert.Equal(t, "Tuesday", d.text[RegionWeekday])
	assert.Equal(t, LinkLabel, d.text[RegionLink])
	assert.Contains(t, d.dirty, RegionBattery)
	assert.False(t, d.hidden[RegionLink])
	assert.Equal(t, 0, h.pulses, "startup while disconnected must not alert")
	assert.Equal(t, 80, c.Battery())
}

func TestStart_ConnectedHidesLabel(t *testing.T) {
	c, d, _ := newTestCoordinator(t, Options{Battery: 50, Connected: boolPtr(true)})

	c.Start()

	assert.True(t, d.hidden[RegionLink])
	connected, known := c.Connected()
	assert.True(t, connected)
	assert.True(t, known)
}

func TestStart_UnknownLinkHidesLabelWithoutObserving(t *testing.T) {
	c, d, h := newTestCoordinator(t, Options{Battery: 50})

	c.Start()

	assert.True(t, d.hidden[RegionLink])
	_, known := c.Connected()
	assert.False(t, known)
	assert.Equal(t, 0, h.pulses)
}

func TestOnTick_HonorsPreference(t *testing.T) {
	use24h := false
	c, d, _ := newTestCoordinator(t, Options{Use24h: func() bool { return use24h }})

	c.OnTick(tuesdayMorning)
	assert.Equal(t, "9:05", d.text[RegionTime])

	use24h = true
	c.OnTick(tuesdayMorning)
	assert.Equal(t, "09:05", d.text[RegionTime])
	assert.Equal(t, "09:05", c.Reading().Time)
}

func TestOnTick_ConvertsToLocation(t *testing.T) {
	loc := time.FixedZone("UTC-10", -10*60*60)
	c, d, _ := newTestCoordinator(t, Options{Location: loc})

	c.OnTick(tuesdayMorning)

	assert.Equal(t, "11:05", d.text[RegionTime])
	assert.Equal(t, "March 2", d.text[RegionDate])
	assert.Equal(t, "Monday", d.text[RegionWeekday])
}

func TestOnBatteryChanged_MarksDirtyWithoutPainting(t *testing.T) {
	c, d, _ := newTestCoordinator(t, Options{})

	c.OnBatteryChanged(37)

	require.Equal(t, []string{"dirty:battery"}, d.calls)
	assert.Equal(t, 37, c.Battery())
}

func TestPaintBattery_ReadsCurrentState(t *testing.T) {
	c, _, _ := newTestCoordinator(t, Options{Battery: 100})
	bounds := image.Rect(0, 0, 144, 3)

	c.OnBatteryChanged(37)
	rc := &recordingCanvas{}
	c.PaintBattery(rc, bounds)

	require.Len(t, rc.calls, 2)
	assert.Equal(t, image.Rect(0, 0, 53, 3), rc.calls[1].r)

	c.OnBatteryChanged(150)
	rc = &recordingCanvas{}
	c.PaintBattery(rc, bounds)
	assert.Equal(t, bounds, rc.calls[1].r)
}

func TestOnConnectivityChanged_EdgeTriggered(t *testing.T) {
	c, d, h := newTestCoordinator(t, Options{Connected: boolPtr(true)})
	c.Start()

	c.OnConnectivityChanged(false)
	assert.Equal(t, 1, h.pulses)
	assert.False(t, d.hidden[RegionLink])

	c.OnConnectivityChanged(false)
	c.OnConnectivityChanged(false)
	assert.Equal(t, 1, h.pulses)

	c.OnConnectivityChanged(true)
	assert.True(t, d.hidden[RegionLink])
	assert.Equal(t, 1, h.pulses)
}

func TestOnConnectivityChanged_InitialDisconnectedThenFalse(t *testing.T) {
	c, _, h := newTestCoordinator(t, Options{Connected: boolPtr(false)})
	c.Start()

	c.OnConnectivityChanged(false)

	assert.Equal(t, 0, h.pulses)
}

func TestHandle_FirstReportDisconnectedInitializesWithoutAlert(t *testing.T) {
	c, d, h := newTestCoordinator(t, Options{Battery: 50})
	c.Start()

	c.Handle(ConnectivityChanged{Connected: false})
	c.Handle(ConnectivityChanged{Connected: false})

	assert.Equal(t, 0, h.pulses, "already disconnected when the source first reported")
	assert.False(t, d.hidden[RegionLink])
	connected, known := c.Connected()
	assert.False(t, connected)
	assert.True(t, known)

	c.Handle(ConnectivityChanged{Connected: true})
	c.Handle(ConnectivityChanged{Connected: false})
	assert.Equal(t, 1, h.pulses)
}

func TestNew_CopiesStartupLinkState(t *testing.T) {
	connected := true
	c, _, _ := newTestCoordinator(t, Options{Connected: &connected})
	connected = false

	c.Start()

	got, _ := c.Connected()
	assert.True(t, got)
}

func TestRegions_ReturnsCopy(t *testing.T) {
	order := Regions()
	require.Equal(t, []Region{RegionBattery, RegionLink, RegionTime, RegionDate, RegionWeekday}, order)

	order[0] = RegionTime
	assert.Equal(t, RegionBattery, Regions()[0])
}

func TestHandle_Dispatches(t *testing.T) {
	c, d, h := newTestCoordinator(t, Options{Connected: boolPtr(true)})
	c.Start()

	c.Handle(Tick{At: tuesdayMorning.Add(time.Minute)})
	c.Handle(BatteryChanged{Percent: 12})
	c.Handle(ConnectivityChanged{Connected: false})

	assert.Equal(t, "9:06", d.text[RegionTime])
	assert.Equal(t, 12, c.Battery())
	assert.Equal(t, 1, h.pulses)
}

func TestRegionString(t *testing.T) {
	assert.Equal(t, "battery", RegionBattery.String())
	assert.Equal(t, "unknown", Region(99).String())
}
