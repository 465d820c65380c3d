package widget

import (
	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/graphics"
)

// pressedDim is how far a pressed widget's background shifts toward black.
const pressedDim = 0.2

// Render draws the widget and its subtree onto the surface. Hidden
// subtrees are skipped, pending layout runs first, and the widget renders
// itself before its children in insertion order. The first child error
// aborts the remaining siblings; already drawn output is left intact.
func (w *Widget) Render(surface graphics.Surface) error {
	const op = "widget.Render"
	if w == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "widget is nil")
	}
	if surface == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "surface is nil")
	}
	if w.Hidden() {
		return nil
	}
	w.LayoutIfNeeded()
	return w.renderNode(surface)
}

func (w *Widget) renderNode(surface graphics.Surface) error {
	if w.Hidden() {
		return nil
	}
	if err := w.renderSelf(surface); err != nil {
		return err
	}
	for _, child := range w.children {
		if err := child.renderNode(surface); err != nil {
			// Fail fast: remaining siblings are not rendered.
			return err
		}
	}
	w.flags &^= FlagDirty
	return nil
}

func (w *Widget) renderSelf(surface graphics.Surface) error {
	style := w.Style()

	if style.Background.Alpha() > 0 {
		bg := style.Background
		if w.HasFlag(FlagPressed) && !w.Disabled() {
			bg = graphics.LerpColor(bg, graphics.ColorBlack, pressedDim)
		}
		if err := surface.FillRect(w.bounds, bg); err != nil {
			return w.renderError("FillRect", err)
		}
	}

	if style.BorderWidth > 0 && style.Border.Alpha() > 0 {
		if err := surface.StrokeRect(w.bounds, style.Border, style.BorderWidth); err != nil {
			return w.renderError("StrokeRect", err)
		}
	}

	if w.text != "" {
		at := graphics.Offset{X: w.bounds.X + style.Padding, Y: w.bounds.Y + style.Padding}
		if err := surface.DrawText(at, w.text, style.TextColor); err != nil {
			return w.renderError("DrawText", err)
		}
	}

	if r, ok := w.delegate.(Renderer); ok {
		if err := r.RenderWidget(w, surface); err != nil {
			return w.renderError("delegate", err)
		}
	}
	return nil
}

func (w *Widget) renderError(primitive string, err error) error {
	wrapped := kioskerrors.Wrap("widget.Render."+primitive, kioskerrors.KindRenderFailed, err)
	wrapped.Widget = w.id
	return wrapped
}
