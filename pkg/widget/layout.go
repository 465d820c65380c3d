package widget

import "github.com/go-kiosk/kiosk/pkg/graphics"

// LayoutMode selects how a widget positions its children when its delegate
// does not implement Layouter.
type LayoutMode int

const (
	// LayoutStack arranges children in a single vertical column honoring
	// the style's padding and spacing. This is the default.
	LayoutStack LayoutMode = iota
	// LayoutAbsolute leaves each child at its manually set relative bounds.
	LayoutAbsolute
)

// LayoutMode returns the widget's layout mode.
func (w *Widget) LayoutMode() LayoutMode { return w.layoutMode }

// SetLayoutMode changes how children are arranged and schedules layout.
func (w *Widget) SetLayoutMode(mode LayoutMode) {
	if w.layoutMode == mode {
		return
	}
	w.layoutMode = mode
	w.MarkNeedsLayout()
}

// LayoutIfNeeded runs pending layout across the subtree, parents before
// children so freshly assigned bounds cascade downward.
func (w *Widget) LayoutIfNeeded() {
	if w.needsLayout {
		if l, ok := w.delegate.(Layouter); ok {
			l.LayoutChildren(w)
		} else if w.layoutMode == LayoutStack {
			w.stackChildren()
		}
		w.needsLayout = false
	}
	for _, child := range w.children {
		child.LayoutIfNeeded()
	}
}

// stackChildren is the default single-column vertical stack. Children keep
// their own heights; x position and width come from the parent's padding.
// Hidden children take no space.
func (w *Widget) stackChildren() {
	style := w.Style()
	width := w.bounds.Width - 2*style.Padding
	if width < 0 {
		width = 0
	}
	y := style.Padding
	for _, child := range w.children {
		if child.Hidden() {
			continue
		}
		child.relBounds = graphics.Rect{
			X:      style.Padding,
			Y:      y,
			Width:  width,
			Height: child.relBounds.Height,
		}
		child.recomputeBounds()
		y += child.relBounds.Height + style.Spacing
	}
}
