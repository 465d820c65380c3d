package widget

import (
	"errors"
	"testing"

	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/graphics"
)

// stubSurface records fill ops and can fail on a chosen rectangle.
type stubSurface struct {
	fills   []graphics.Rect
	texts   []string
	failOn  graphics.Rect
	failErr error
}

func (s *stubSurface) FillRect(rect graphics.Rect, color graphics.Color) error {
	if s.failErr != nil && rect.Equals(s.failOn) {
		return s.failErr
	}
	s.fills = append(s.fills, rect)
	return nil
}

func (s *stubSurface) StrokeRect(rect graphics.Rect, color graphics.Color, width float64) error {
	return nil
}

func (s *stubSurface) FillCircle(center graphics.Offset, radius float64, color graphics.Color) error {
	return nil
}

func (s *stubSurface) DrawText(at graphics.Offset, text string, color graphics.Color) error {
	s.texts = append(s.texts, text)
	return nil
}

func coloredBox(id string, rect graphics.Rect) *Widget {
	w := New(id, KindContainer)
	w.SetLayoutMode(LayoutAbsolute)
	w.EnsureOwnStyle().Background = graphics.ColorBlue
	w.SetRelativeBounds(rect)
	return w
}

func TestRenderParentBeforeChildrenInOrder(t *testing.T) {
	root := coloredBox("root", graphics.RectFromLTWH(0, 0, 100, 100))
	a := coloredBox("a", graphics.RectFromLTWH(0, 0, 10, 10))
	b := coloredBox("b", graphics.RectFromLTWH(20, 0, 10, 10))
	root.AddChild(a)
	root.AddChild(b)

	surface := &stubSurface{}
	if err := root.Render(surface); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(surface.fills) != 3 {
		t.Fatalf("fill count = %d, want 3", len(surface.fills))
	}
	wantOrder := []graphics.Rect{
		graphics.RectFromLTWH(0, 0, 100, 100),
		graphics.RectFromLTWH(0, 0, 10, 10),
		graphics.RectFromLTWH(20, 0, 10, 10),
	}
	for i, want := range wantOrder {
		if !surface.fills[i].Equals(want) {
			t.Errorf("fill[%d] = %+v, want %+v", i, surface.fills[i], want)
		}
	}
}

func TestRenderSkipsHiddenSubtree(t *testing.T) {
	root := coloredBox("root", graphics.RectFromLTWH(0, 0, 100, 100))
	hidden := coloredBox("hidden", graphics.RectFromLTWH(0, 0, 10, 10))
	inner := coloredBox("inner", graphics.RectFromLTWH(0, 0, 5, 5))
	hidden.AddChild(inner)
	root.AddChild(hidden)
	hidden.SetFlag(FlagHidden, true)

	surface := &stubSurface{}
	if err := root.Render(surface); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(surface.fills) != 1 {
		t.Errorf("fill count = %d, want 1 (hidden subtree skipped)", len(surface.fills))
	}
}

func TestRenderFailFast(t *testing.T) {
	root := coloredBox("root", graphics.RectFromLTWH(0, 0, 100, 100))
	first := coloredBox("first", graphics.RectFromLTWH(0, 0, 10, 10))
	failing := coloredBox("failing", graphics.RectFromLTWH(0, 20, 10, 10))
	last := coloredBox("last", graphics.RectFromLTWH(0, 40, 10, 10))
	root.AddChild(first)
	root.AddChild(failing)
	root.AddChild(last)

	surface := &stubSurface{
		failOn:  failing.Bounds(),
		failErr: errors.New("device lost"),
	}
	err := root.Render(surface)
	if !kioskerrors.IsRenderFailed(err) {
		t.Fatalf("Render error = %v, want render-failed", err)
	}

	// Root and first child drew; the failing child aborted its siblings.
	if len(surface.fills) != 2 {
		t.Errorf("fill count = %d, want 2 (fail-fast)", len(surface.fills))
	}
}

func TestRenderClearsDirtyFlag(t *testing.T) {
	root := coloredBox("root", graphics.RectFromLTWH(0, 0, 100, 100))
	root.Invalidate()

	if err := root.Render(&stubSurface{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if root.HasFlag(FlagDirty) {
		t.Error("render should clear the dirty flag")
	}
}

func TestInvalidateOnHiddenDirtyChildReachesRoot(t *testing.T) {
	root := coloredBox("root", graphics.RectFromLTWH(0, 0, 100, 100))
	child := coloredBox("child", graphics.RectFromLTWH(0, 0, 10, 10))
	root.AddChild(child)
	child.SetFlag(FlagHidden, true)

	// Rendering clears the root's dirty flag but skips the hidden child,
	// leaving it dirty.
	if err := root.Render(&stubSurface{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if root.HasFlag(FlagDirty) {
		t.Fatal("root still dirty after render")
	}
	if !child.HasFlag(FlagDirty) {
		t.Fatal("hidden child should keep its dirty flag")
	}

	// A mutation of the still-dirty child must reach the root anyway.
	child.SetText("updated")
	if !root.HasFlag(FlagDirty) {
		t.Error("invalidating a hidden-but-dirty child did not mark the root")
	}
}

func TestRenderDrawsText(t *testing.T) {
	label := New("label", KindLabel)
	label.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 100, 20))
	label.SetText("72°F Partly Cloudy")

	surface := &stubSurface{}
	if err := label.Render(surface); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(surface.texts) != 1 || surface.texts[0] != "72°F Partly Cloudy" {
		t.Errorf("texts = %v", surface.texts)
	}
}

func TestRenderNilSurface(t *testing.T) {
	w := New("w", KindContainer)
	if err := w.Render(nil); !kioskerrors.IsNullParam(err) {
		t.Errorf("Render(nil) error = %v, want null-param", err)
	}
}

func TestDispatchInputRespectsDisabled(t *testing.T) {
	clicked := 0
	btn := New("btn", KindButton)
	btn.OnClick = func(*Widget) { clicked++ }

	btn.DispatchInput(InputEvent{Type: InputClick})
	if clicked != 1 {
		t.Fatalf("clicked = %d, want 1", clicked)
	}

	btn.SetFlag(FlagDisabled, true)
	btn.DispatchInput(InputEvent{Type: InputClick})
	if clicked != 1 {
		t.Errorf("disabled widget dispatched a click")
	}
}
