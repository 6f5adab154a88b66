// internal/host/raster/frame.go
package raster

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tamzrod/watchface/internal/face"
	"github.com/tamzrod/watchface/internal/gauge"
	"github.com/tamzrod/watchface/internal/host"
)

// Frame hosts the face on an in-memory RGBA frame, the way a framebuffer or
// e-paper panel would be driven. It implements face.Display and face.Haptics.
type Frame struct {
	*host.State

	img      *image.RGBA
	layout   host.Layout
	font     font.Face
	paint    host.PaintProc
	snapshot string
	log      *zap.Logger
	pulses   int
}

// New allocates a frame of layout.Size. snapshot, when set, is the PNG path
// rewritten after every repaint by Run.
func New(layout host.Layout, snapshot string, log *zap.Logger) *Frame {
	if log == nil {
		log = zap.NewNop()
	}
	return &Frame{
		State:    host.NewState(),
		img:      image.NewRGBA(image.Rectangle{Max: layout.Size}),
		layout:   layout,
		font:     basicfont.Face7x13,
		snapshot: snapshot,
		log:      log,
	}
}

// SetBatteryProc installs the battery region's update proc.
func (f *Frame) SetBatteryProc(fn host.PaintProc) {
	f.paint = fn
}

// Pulse records a haptic alert. A panel has no motor; the alert is logged.
func (f *Frame) Pulse() {
	f.pulses++
	f.log.Info("haptic pulse", zap.Int("count", f.pulses))
}

func (f *Frame) Pulses() int {
	return f.pulses
}

// Render repaints the whole frame if anything is dirty.
func (f *Frame) Render() bool {
	if !f.Dirty() {
		return false
	}

	draw.Draw(f.img, f.img.Bounds(), image.Black, image.Point{}, draw.Src)

	if f.paint != nil {
		if b, ok := f.layout.Rects[face.RegionBattery]; ok && !b.Empty() {
			f.paint(gauge.ImageCanvas{Dst: f.img}, b)
		}
	}

	for _, r := range face.Regions() {
		tr, ok := f.Text(r)
		if !ok || tr.Hidden || tr.Text == "" {
			continue
		}
		f.drawCentered(f.layout.Rects[r], tr.Text, color.White)
	}

	f.Clean()
	return true
}

// Image renders pending changes and returns the frame.
func (f *Frame) Image() *image.RGBA {
	f.Render()
	return f.img
}

// WritePNG encodes the current frame.
func (f *Frame) WritePNG(w io.Writer) error {
	return png.Encode(w, f.Image())
}

// Run is the platform loop: it dispatches source events to handle one at a
// time and repaints after each. It returns when ctx is done or events closes.
func (f *Frame) Run(ctx context.Context, events <-chan face.Event, handle func(face.Event)) error {
	if err := f.flush(); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			handle(ev)
			if err := f.flush(); err != nil {
				return err
			}
		}
	}
}

// flush repaints and, when a snapshot path is set, replaces the PNG on disk.
func (f *Frame) flush() error {
	if !f.Render() || f.snapshot == "" {
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(f.snapshot), ".watchface-*.png")
	if err != nil {
		return fmt.Errorf("raster: snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := png.Encode(tmp, f.img); err != nil {
		tmp.Close()
		return fmt.Errorf("raster: snapshot encode: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("raster: snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), f.snapshot); err != nil {
		return fmt.Errorf("raster: snapshot: %w", err)
	}

	f.log.Debug("snapshot written", zap.String("path", f.snapshot))
	return nil
}

// drawCentered draws text centered in r, clipped to r.
func (f *Frame) drawCentered(r image.Rectangle, text string, c color.Color) {
	if r.Empty() {
		return
	}

	m := f.font.Metrics()
	ascent, descent := m.Ascent.Ceil(), m.Descent.Ceil()
	width := font.MeasureString(f.font, text).Ceil()

	x := r.Min.X + (r.Dx()-width)/2
	y := r.Min.Y + (r.Dy()-(ascent+descent))/2 + ascent

	d := &font.Drawer{
		Dst:  f.img.SubImage(r).(*image.RGBA),
		Src:  image.NewUniform(c),
		Face: f.font,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
