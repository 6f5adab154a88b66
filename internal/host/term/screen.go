// internal/host/term/screen.go
package term

import (
	"context"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/tamzrod/watchface/internal/face"
	"github.com/tamzrod/watchface/internal/host"
)

var (
	styleBackground = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
	styleTime       = styleBackground.Bold(true)
	styleLink       = styleBackground.Bold(true)
)

// Screen hosts the face on a terminal. It implements face.Display and
// face.Haptics and owns the loop that serializes every event.
type Screen struct {
	*host.State

	scr    tcell.Screen
	layout host.Layout
	paint  host.PaintProc
	log    *zap.Logger
	pulses int
}

// New wraps an initialized tcell screen. layout is in face pixels and is
// rescaled to the terminal grid on every repaint.
func New(scr tcell.Screen, layout host.Layout, log *zap.Logger) *Screen {
	if log == nil {
		log = zap.NewNop()
	}
	scr.SetStyle(styleBackground)
	scr.HideCursor()

	return &Screen{
		State:  host.NewState(),
		scr:    scr,
		layout: layout,
		log:    log,
	}
}

// SetBatteryProc installs the battery region's update proc.
func (s *Screen) SetBatteryProc(fn host.PaintProc) {
	s.paint = fn
}

// Pulse rings the terminal bell in place of a vibration motor.
func (s *Screen) Pulse() {
	s.pulses++
	if err := s.scr.Beep(); err != nil {
		s.log.Warn("bell failed", zap.Error(err))
	}
}

// Pulses returns how many alerts were delivered.
func (s *Screen) Pulses() int {
	return s.pulses
}

// Render repaints the whole face if anything is dirty.
// It reports whether a repaint happened.
func (s *Screen) Render() bool {
	if !s.Dirty() {
		return false
	}

	cols, rows := s.scr.Size()
	l := s.layout.Scaled(image.Pt(cols, rows))

	s.scr.Fill(' ', styleBackground)

	if s.paint != nil {
		if b, ok := l.Rects[face.RegionBattery]; ok && !b.Empty() {
			s.paint(cellCanvas{scr: s.scr}, b)
		}
	}

	for _, r := range face.Regions() {
		tr, ok := s.Text(r)
		if !ok || tr.Hidden {
			continue
		}
		style := styleBackground
		switch r {
		case face.RegionTime:
			style = styleTime
		case face.RegionLink:
			style = styleLink
		}
		drawCentered(s.scr, l.Rects[r], tr.Text, style)
	}

	s.scr.Show()
	s.Clean()
	return true
}

// Run is the platform loop: it dispatches source events to handle one at a
// time, repaints after each, and returns on ctx cancel or a quit key.
func (s *Screen) Run(ctx context.Context, events <-chan face.Event, handle func(face.Event)) error {
	tevents := make(chan tcell.Event, 16)
	go func() {
		defer close(tevents)
		for {
			ev := s.scr.PollEvent()
			if ev == nil {
				return
			}
			select {
			case tevents <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	s.Render()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			handle(ev)
			s.Render()

		case tev, ok := <-tevents:
			if !ok {
				return nil
			}
			switch e := tev.(type) {
			case *tcell.EventResize:
				s.scr.Sync()
				s.MarkDirty(face.RegionBattery)
				s.Render()
			case *tcell.EventKey:
				if isQuit(e) {
					s.log.Info("quit requested")
					return nil
				}
			}
		}
	}
}

func isQuit(e *tcell.EventKey) bool {
	switch e.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return e.Rune() == 'q' || e.Rune() == 'Q'
	}
	return false
}

// drawCentered writes text on the middle row of r, horizontally centered.
func drawCentered(scr tcell.Screen, r image.Rectangle, text string, style tcell.Style) {
	if r.Empty() || text == "" {
		return
	}

	text = runewidth.Truncate(text, r.Dx(), "")
	y := r.Min.Y + (r.Dy()-1)/2
	x := r.Min.X + (r.Dx()-runewidth.StringWidth(text))/2

	for _, ch := range text {
		w := runewidth.RuneWidth(ch)
		if w == 0 {
			continue
		}
		scr.SetContent(x, y, ch, nil, style)
		x += w
	}
}

// cellCanvas paints gauge rectangles as background-colored cells.
type cellCanvas struct {
	scr tcell.Screen
}

func (c cellCanvas) FillRect(r image.Rectangle, col color.Color) {
	cols, rows := c.scr.Size()
	r = r.Intersect(image.Rect(0, 0, cols, rows))

	style := tcell.StyleDefault.Background(tcell.FromImageColor(col))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			c.scr.SetContent(x, y, ' ', nil, style)
		}
	}
}
