package widget

import "github.com/go-kiosk/kiosk/pkg/graphics"

// Style describes widget appearance. Styles can be owned by a single
// widget or shared between many; SetSharedStyle installs a shared
// reference, EnsureOwnStyle copies on first per-widget mutation.
type Style struct {
	// Background fills the widget bounds. Transparent skips the fill.
	Background graphics.Color
	// Border outlines the widget bounds when BorderWidth > 0.
	Border      graphics.Color
	BorderWidth float64
	// TextColor is used for label and button text.
	TextColor graphics.Color
	// Padding is the inset applied by the default stack layout.
	Padding float64
	// Spacing is the vertical gap between stacked children.
	Spacing float64
}

// DefaultStyle returns the baseline kiosk style.
func DefaultStyle() *Style {
	return &Style{
		Background: graphics.ColorTransparent,
		Border:     graphics.ColorTransparent,
		TextColor:  graphics.ColorWhite,
		Padding:    8,
		Spacing:    4,
	}
}

// Clone returns a copy of the style.
func (s *Style) Clone() *Style {
	if s == nil {
		return DefaultStyle()
	}
	copied := *s
	return &copied
}

// Style returns the widget's style, shared or owned. A widget with no
// style set reports the default style without retaining it.
func (w *Widget) Style() *Style {
	if w.style != nil {
		return w.style
	}
	return DefaultStyle()
}

// SetSharedStyle installs a style reference shared with other widgets.
// Mutations through EnsureOwnStyle will copy first.
func (w *Widget) SetSharedStyle(style *Style) {
	w.style = style
	w.ownsStyle = false
	w.MarkNeedsLayout()
	w.Invalidate()
}

// EnsureOwnStyle returns a style owned by this widget alone, copying a
// shared style on first call.
func (w *Widget) EnsureOwnStyle() *Style {
	if w.style == nil {
		w.style = DefaultStyle()
		w.ownsStyle = true
	} else if !w.ownsStyle {
		w.style = w.style.Clone()
		w.ownsStyle = true
	}
	return w.style
}
