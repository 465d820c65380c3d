// Package backend adapts the core's render-surface and input-sample
// contracts to ebiten for the demo kiosk binary. The core itself never
// imports this package.
package backend

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/go-kiosk/kiosk/pkg/graphics"
)

// Surface draws core primitives onto an ebiten image.
type Surface struct {
	dst       *ebiten.Image
	antialias bool
}

// NewSurface creates a surface targeting dst.
func NewSurface(dst *ebiten.Image) *Surface {
	return &Surface{dst: dst, antialias: true}
}

// SetTarget redirects subsequent draws to dst. Called once per frame
// with the screen image.
func (s *Surface) SetTarget(dst *ebiten.Image) { s.dst = dst }

// FillRect fills a rectangle.
func (s *Surface) FillRect(rect graphics.Rect, c graphics.Color) error {
	vector.DrawFilledRect(s.dst,
		float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height),
		toNRGBA(c), s.antialias)
	return nil
}

// StrokeRect outlines a rectangle.
func (s *Surface) StrokeRect(rect graphics.Rect, c graphics.Color, width float64) error {
	vector.StrokeRect(s.dst,
		float32(rect.X), float32(rect.Y), float32(rect.Width), float32(rect.Height),
		float32(width), toNRGBA(c), s.antialias)
	return nil
}

// FillCircle fills a circle.
func (s *Surface) FillCircle(center graphics.Offset, radius float64, c graphics.Color) error {
	vector.DrawFilledCircle(s.dst,
		float32(center.X), float32(center.Y), float32(radius),
		toNRGBA(c), s.antialias)
	return nil
}

// DrawText prints debug text at the given position. The kiosk core has
// no text shaping; labels in the demo use ebiten's fixed debug font,
// which ignores the requested color.
func (s *Surface) DrawText(at graphics.Offset, text string, _ graphics.Color) error {
	ebitenutil.DebugPrintAt(s.dst, text, int(at.X), int(at.Y))
	return nil
}

func toNRGBA(c graphics.Color) color.NRGBA {
	r, g, b, a := c.Components()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}
