// internal/host/host.go
package host

import (
	"image"

	"github.com/tamzrod/watchface/internal/face"
	"github.com/tamzrod/watchface/internal/gauge"
)

// Reference face geometry, in pixels.
const (
	FaceWidth  = 144
	FaceHeight = 168
)

// watchRects are the region rectangles on a FaceWidth x FaceHeight face.
var watchRects = map[face.Region]image.Rectangle{
	face.RegionBattery: image.Rect(0, 0, 144, 3),
	face.RegionLink:    image.Rect(0, 13, 144, 43),
	face.RegionTime:    image.Rect(0, 48, 144, 98),
	face.RegionDate:    image.Rect(0, 108, 144, 138),
	face.RegionWeekday: image.Rect(0, 132, 144, 162),
}

// Layout places every region on a surface of Size.
type Layout struct {
	Size  image.Point
	Rects map[face.Region]image.Rectangle
}

// WatchLayout returns the reference layout scaled to width x height.
func WatchLayout(width, height int) Layout {
	from := image.Pt(FaceWidth, FaceHeight)
	to := image.Pt(width, height)

	l := Layout{Size: to, Rects: make(map[face.Region]image.Rectangle, len(watchRects))}
	for r, rect := range watchRects {
		l.Rects[r] = Scale(rect, from, to)
	}
	return l
}

// Scaled maps the layout onto a surface of another size.
func (l Layout) Scaled(size image.Point) Layout {
	out := Layout{Size: size, Rects: make(map[face.Region]image.Rectangle, len(l.Rects))}
	for r, rect := range l.Rects {
		out.Rects[r] = Scale(rect, l.Size, size)
	}
	return out
}

// Scale maps r from a from-sized surface onto a to-sized one.
// Non-empty rectangles keep at least one unit in each direction.
func Scale(r image.Rectangle, from, to image.Point) image.Rectangle {
	if from.X <= 0 || from.Y <= 0 || to.X <= 0 || to.Y <= 0 {
		return image.Rectangle{}
	}

	out := image.Rect(
		r.Min.X*to.X/from.X,
		r.Min.Y*to.Y/from.Y,
		r.Max.X*to.X/from.X,
		r.Max.Y*to.Y/from.Y,
	)
	if r.Empty() {
		return out
	}
	if out.Dx() == 0 {
		out.Max.X = out.Min.X + 1
	}
	if out.Dy() == 0 {
		out.Max.Y = out.Min.Y + 1
	}
	return out.Intersect(image.Rectangle{Max: to})
}

// TextRegion is the content of one text region.
type TextRegion struct {
	Text   string
	Hidden bool
}

// PaintProc is a custom-draw region's update proc.
type PaintProc func(dst gauge.Canvas, bounds image.Rectangle)

// State is the region store shared by the hosts. It implements face.Display.
// Any change marks the surface dirty; the host repaints on its own cycle.
type State struct {
	text  map[face.Region]*TextRegion
	dirty bool
}

func NewState() *State {
	s := &State{text: make(map[face.Region]*TextRegion)}
	for _, r := range []face.Region{face.RegionTime, face.RegionDate, face.RegionWeekday, face.RegionLink} {
		s.text[r] = &TextRegion{}
	}
	return s
}

func (s *State) SetText(r face.Region, text string) {
	tr, ok := s.text[r]
	if !ok || tr.Text == text {
		return
	}
	tr.Text = text
	s.dirty = true
}

func (s *State) SetHidden(r face.Region, hidden bool) {
	tr, ok := s.text[r]
	if !ok || tr.Hidden == hidden {
		return
	}
	tr.Hidden = hidden
	s.dirty = true
}

func (s *State) MarkDirty(face.Region) {
	s.dirty = true
}

// Text returns a copy of a text region's content.
func (s *State) Text(r face.Region) (TextRegion, bool) {
	tr, ok := s.text[r]
	if !ok {
		return TextRegion{}, false
	}
	return *tr, true
}

// Dirty reports whether a repaint is pending.
func (s *State) Dirty() bool {
	return s.dirty
}

// Clean marks the pending repaint as done.
func (s *State) Clean() {
	s.dirty = false
}
