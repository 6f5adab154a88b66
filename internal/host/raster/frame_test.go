package raster

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamzrod/watchface/internal/face"
	"github.com/tamzrod/watchface/internal/host"
)

var tuesdayMorning = time.Date(2026, time.March, 3, 9, 5, 0, 0, time.UTC)

func newFace(t *testing.T, snapshot string, opts face.Options) (*Frame, *face.Coordinator) {
	t.Helper()

	f := New(host.WatchLayout(host.FaceWidth, host.FaceHeight), snapshot, nil)
	if opts.Now == nil {
		opts.Now = func() time.Time { return tuesdayMorning }
	}
	c, err := face.New(f, f, opts)
	require.NoError(t, err)
	f.SetBatteryProc(c.PaintBattery)
	return f, c
}

func boolPtr(v bool) *bool { return &v }

func whitePixels(img *image.RGBA, r image.Rectangle) int {
	n := 0
	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.RGBAAt(x, y) == white {
				n++
			}
		}
	}
	return n
}

func TestImage_GaugeGeometry(t *testing.T) {
	f, c := newFace(t, "", face.Options{Battery: 37, Connected: boolPtr(true)})
	c.Start()

	img := f.Image()

	white := color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	track := color.RGBA{0xAA, 0xAA, 0xAA, 0xFF}
	assert.Equal(t, white, img.RGBAAt(0, 0))
	assert.Equal(t, white, img.RGBAAt(52, 2))
	assert.Equal(t, track, img.RGBAAt(53, 0))
	assert.Equal(t, track, img.RGBAAt(143, 2))
	assert.Equal(t, color.RGBA{0, 0, 0, 0xFF}, img.RGBAAt(0, 3))
}

func TestImage_TextRegions(t *testing.T) {
	f, c := newFace(t, "", face.Options{Battery: 100, Connected: boolPtr(true)})
	c.Start()

	img := f.Image()
	l := host.WatchLayout(host.FaceWidth, host.FaceHeight)

	assert.Positive(t, whitePixels(img, l.Rects[face.RegionTime]))
	assert.Positive(t, whitePixels(img, l.Rects[face.RegionDate]))
	assert.Positive(t, whitePixels(img, l.Rects[face.RegionWeekday]))
	assert.Zero(t, whitePixels(img, l.Rects[face.RegionLink]), "label hidden while connected")
}

func TestImage_LinkLabelOnDisconnect(t *testing.T) {
	f, c := newFace(t, "", face.Options{Connected: boolPtr(true)})
	c.Start()
	l := host.WatchLayout(host.FaceWidth, host.FaceHeight)

	c.OnConnectivityChanged(false)
	img := f.Image()

	assert.Positive(t, whitePixels(img, l.Rects[face.RegionLink]))
	assert.Equal(t, 1, f.Pulses())
}

func TestRender_OnlyWhenDirty(t *testing.T) {
	f, c := newFace(t, "", face.Options{})
	c.Start()

	assert.True(t, f.Render())
	assert.False(t, f.Render())

	c.OnBatteryChanged(5)
	assert.True(t, f.Render())
}

func TestWritePNG_Decodes(t *testing.T) {
	f, c := newFace(t, "", face.Options{})
	c.Start()

	var buf bytes.Buffer
	require.NoError(t, f.WritePNG(&buf))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, host.FaceWidth, host.FaceHeight), img.Bounds())
}

func TestRun_WritesSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "face.png")
	f, c := newFace(t, path, face.Options{Battery: 80, Connected: boolPtr(true)})
	c.Start()

	events := make(chan face.Event, 2)
	events <- face.BatteryChanged{Percent: 20}
	events <- face.ConnectivityChanged{Connected: false}
	close(events)

	require.NoError(t, f.Run(context.Background(), events, c.Handle))

	assert.Equal(t, 20, c.Battery())
	assert.Equal(t, 1, f.Pulses())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)

	// 20% of 144 rounds to 29: x=28 is the last bar pixel.
	r, g, bl, _ := img.At(28, 0).RGBA()
	assert.Equal(t, [3]uint32{0xFFFF, 0xFFFF, 0xFFFF}, [3]uint32{r, g, bl})
	r, g, bl, _ = img.At(29, 0).RGBA()
	assert.Equal(t, [3]uint32{0xAAAA, 0xAAAA, 0xAAAA}, [3]uint32{r, g, bl})
}
