package widget

import (
	"testing"

	"github.com/go-kiosk/kiosk/pkg/graphics"
)

func TestStackLayoutPositionsChildren(t *testing.T) {
	parent := New("parent", KindContainer)
	parent.SetBounds(graphics.RectFromLTWH(0, 0, 200, 300))
	style := parent.EnsureOwnStyle()
	style.Padding = 10
	style.Spacing = 5

	a := New("a", KindLabel)
	a.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 30))
	b := New("b", KindLabel)
	b.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 40))
	parent.AddChild(a)
	parent.AddChild(b)

	parent.LayoutIfNeeded()

	if got := a.RelativeBounds(); !got.Equals(graphics.RectFromLTWH(10, 10, 180, 30)) {
		t.Errorf("a relative = %+v, want {10 10 180 30}", got)
	}
	if got := b.RelativeBounds(); !got.Equals(graphics.RectFromLTWH(10, 45, 180, 40)) {
		t.Errorf("b relative = %+v, want {10 45 180 40}", got)
	}
	assertBoundsInvariant(t, parent)
}

func TestStackLayoutSkipsHiddenChildren(t *testing.T) {
	parent := New("parent", KindContainer)
	parent.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))
	style := parent.EnsureOwnStyle()
	style.Padding = 0
	style.Spacing = 0

	a := New("a", KindLabel)
	a.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 10))
	hidden := New("hidden", KindLabel)
	hidden.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 50))
	hidden.SetFlag(FlagHidden, true)
	b := New("b", KindLabel)
	b.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 10))
	parent.AddChild(a)
	parent.AddChild(hidden)
	parent.AddChild(b)

	parent.LayoutIfNeeded()

	if got := b.RelativeBounds().Y; got != 10 {
		t.Errorf("b.Y = %v, want 10 (hidden child takes no space)", got)
	}
}

func TestAbsoluteLayoutLeavesChildrenAlone(t *testing.T) {
	parent := New("parent", KindContainer)
	parent.SetLayoutMode(LayoutAbsolute)
	parent.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))
	child := New("child", KindLabel)
	parent.AddChild(child)
	child.SetRelativeBounds(graphics.RectFromLTWH(33, 44, 10, 10))

	parent.LayoutIfNeeded()

	if got := child.RelativeBounds(); !got.Equals(graphics.RectFromLTWH(33, 44, 10, 10)) {
		t.Errorf("child relative = %+v, want unchanged {33 44 10 10}", got)
	}
}

func TestLayouterDelegateOverridesStack(t *testing.T) {
	parent := New("parent", KindContainer)
	parent.SetBounds(graphics.RectFromLTWH(0, 0, 100, 100))
	child := New("child", KindLabel)
	parent.AddChild(child)
	parent.SetDelegate(rowLayouter{})

	parent.LayoutIfNeeded()

	if got := child.RelativeBounds(); !got.Equals(graphics.RectFromLTWH(50, 0, 10, 10)) {
		t.Errorf("child relative = %+v, want delegate-assigned {50 0 10 10}", got)
	}
}

// rowLayouter pins every child at x=50 to prove the delegate ran.
type rowLayouter struct{}

func (rowLayouter) LayoutChildren(w *Widget) {
	for _, child := range w.Children() {
		child.SetRelativeBounds(graphics.RectFromLTWH(50, 0, 10, 10))
	}
}
