package graphics

// Surface is an opaque drawable accepting fill and draw primitives.
//
// The core never owns the window or display lifecycle; a host injects a
// Surface per frame (an ebiten-backed implementation lives in pkg/backend,
// a recording implementation in pkg/kiosktest). Every primitive returns an
// error so rendering can propagate surface failures fail-fast.
type Surface interface {
	// FillRect fills the rectangle with a solid color.
	FillRect(rect Rect, color Color) error
	// StrokeRect outlines the rectangle with the given line width.
	StrokeRect(rect Rect, color Color, width float64) error
	// FillCircle fills a circle centered at the given point.
	FillCircle(center Offset, radius float64, color Color) error
	// DrawText draws a one-line label anchored at the given point.
	// Text shaping is the surface's concern; the core only positions it.
	DrawText(at Offset, text string, color Color) error
}
