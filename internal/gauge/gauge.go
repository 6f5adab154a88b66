// internal/gauge/gauge.go
package gauge

import (
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Canvas is the paint surface a host hands to the gauge.
type Canvas interface {
	FillRect(r image.Rectangle, c color.Color)
}

// Style holds the two gauge tones.
type Style struct {
	Track color.Color
	Fill  color.Color
}

// DefaultStyle is a light gray track with a white bar.
var DefaultStyle = Style{
	Track: color.Gray{Y: 0xAA},
	Fill:  color.White,
}

// Clamp bounds a charge percentage to [0,100].
func Clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}

// FillWidth converts a charge percentage into a bar width against trackWidth.
// The result is always within [0, trackWidth].
func FillWidth(percent, trackWidth int) int {
	if trackWidth <= 0 {
		return 0
	}

	w := int(math.Round(float64(Clamp(percent)) / 100.0 * float64(trackWidth)))
	if w < 0 {
		return 0
	}
	if w > trackWidth {
		return trackWidth
	}
	return w
}

// Paint draws the full track, then the bar anchored at the track origin.
// No state is kept between calls.
func Paint(dst Canvas, bounds image.Rectangle, percent int, style Style) {
	if bounds.Empty() {
		return
	}

	dst.FillRect(bounds, style.Track)

	w := FillWidth(percent, bounds.Dx())
	if w == 0 {
		return
	}
	dst.FillRect(image.Rect(bounds.Min.X, bounds.Min.Y, bounds.Min.X+w, bounds.Max.Y), style.Fill)
}

// ImageCanvas paints into any draw.Image.
type ImageCanvas struct {
	Dst draw.Image
}

func (c ImageCanvas) FillRect(r image.Rectangle, col color.Color) {
	draw.Draw(c.Dst, r, image.NewUniform(col), image.Point{}, draw.Src)
}
