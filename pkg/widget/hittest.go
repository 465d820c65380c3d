package widget

import "github.com/go-kiosk/kiosk/pkg/graphics"

// HitTest returns the deepest interactive widget containing the point,
// preferring the frontmost (last inserted) sibling at every level. When no
// interactive descendant contains the point, the deepest containing widget
// is returned as a fallback; nil means the point missed this subtree
// entirely. Hidden subtrees never match.
func (w *Widget) HitTest(p graphics.Offset) *Widget {
	interactive, deepest := w.hitTest(p)
	if interactive != nil {
		return interactive
	}
	return deepest
}

// hitTest walks the subtree front to back. It returns the first
// interactive match and the deepest (frontmost) containing widget.
func (w *Widget) hitTest(p graphics.Offset) (interactive, deepest *Widget) {
	if w == nil || w.Hidden() || !w.bounds.Contains(p) {
		return nil, nil
	}
	for i := len(w.children) - 1; i >= 0; i-- {
		ci, cd := w.children[i].hitTest(p)
		if ci != nil {
			// Frontmost interactive descendant wins outright.
			return ci, cd
		}
		if deepest == nil && cd != nil {
			deepest = cd
		}
	}
	if w.Interactive() {
		interactive = w
	}
	if deepest == nil {
		deepest = w
	}
	return interactive, deepest
}
