package widget

import (
	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/events"
	"github.com/go-kiosk/kiosk/pkg/store"
)

// AddChild appends child to this widget's ordered child list, detaching it
// from any prior parent first. The parent's event bus and state store
// references propagate to the child and all its descendants; if that
// propagation fails the reparent is rolled back and the tree is left as it
// was.
func (w *Widget) AddChild(child *Widget) error {
	const op = "widget.AddChild"
	if w == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "parent is nil")
	}
	if child == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "child is nil")
	}
	if child == w {
		return kioskerrors.E(op, kioskerrors.KindInvalidParam, "cannot parent a widget to itself")
	}
	for cur := w; cur != nil; cur = cur.parent {
		if cur == child {
			return kioskerrors.Ef(op, kioskerrors.KindInvalidParam,
				"widget %q is an ancestor of %q", child.id, w.id)
		}
	}

	oldParent := child.parent
	oldIndex := -1
	if oldParent != nil {
		oldIndex = oldParent.indexOf(child)
		oldParent.children = append(oldParent.children[:oldIndex], oldParent.children[oldIndex+1:]...)
		oldParent.MarkNeedsLayout()
		oldParent.Invalidate()
	}

	w.children = append(w.children, child)
	child.parent = w

	if err := child.attachContext(w.bus, w.store); err != nil {
		// Roll back the reparent: restore the previous parent, position,
		// and context.
		w.children = w.children[:len(w.children)-1]
		child.parent = oldParent
		if oldParent != nil {
			oldParent.children = append(oldParent.children, nil)
			copy(oldParent.children[oldIndex+1:], oldParent.children[oldIndex:])
			oldParent.children[oldIndex] = child
			child.attachContext(oldParent.bus, oldParent.store)
		} else {
			child.detachContext()
		}
		child.recomputeBounds()
		return err
	}

	child.recomputeBounds()
	w.MarkNeedsLayout()
	w.Invalidate()
	return nil
}

// RemoveChild detaches a direct child. The child's subtree is disconnected
// from the bus and store but remains intact for reattachment elsewhere.
// Cost is O(children).
func (w *Widget) RemoveChild(child *Widget) error {
	const op = "widget.RemoveChild"
	if child == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "child is nil")
	}
	idx := w.indexOf(child)
	if idx < 0 {
		err := kioskerrors.Ef(op, kioskerrors.KindNotFound, "%q is not a direct child", child.id)
		err.Widget = w.id
		return err
	}
	w.children = append(w.children[:idx], w.children[idx+1:]...)
	child.parent = nil
	child.detachContext()
	// A detached widget's relative bounds become its absolute bounds.
	child.recomputeBounds()
	w.MarkNeedsLayout()
	w.Invalidate()
	return nil
}

// Destroy tears down this widget and every descendant exactly once:
// detach from the parent, unsubscribe every recorded topic in the subtree,
// run delegate teardown hooks, and release factory budget slots. No
// subscribed handler fires afterward.
func (w *Widget) Destroy() {
	if w == nil || w.destroyed {
		return
	}
	if w.parent != nil {
		// Removal also disconnects the subtree from bus and store.
		w.parent.RemoveChild(w)
	}
	w.teardown()
}

// teardown recursively destroys the subtree. The destroyed flag guards
// against double destruction when a delegate hook re-enters.
func (w *Widget) teardown() {
	if w.destroyed {
		return
	}
	w.destroyed = true

	kids := w.children
	w.children = nil
	for _, child := range kids {
		child.parent = nil
		child.teardown()
	}

	w.disconnectBus()
	w.store = nil
	if d, ok := w.delegate.(Destroyer); ok {
		d.WidgetDestroyed(w)
	}
	w.delegate = nil
	w.OnClick = nil
	w.OnScroll = nil
	if w.factory != nil {
		w.factory.release()
		w.factory = nil
	}
}

// FindByID returns the widget with the given ID in this subtree, or nil.
// Absence is not an error.
func (w *Widget) FindByID(id string) *Widget {
	if w == nil {
		return nil
	}
	if w.id == id {
		return w
	}
	for _, child := range w.children {
		if found := child.FindByID(id); found != nil {
			return found
		}
	}
	return nil
}

// AttachContext wires the subtree to an event bus and state store. Roots
// get their context here; descendants inherit it through AddChild.
func (w *Widget) AttachContext(bus *events.Bus, st *store.Store) error {
	return w.attachContext(bus, st)
}

// DetachContext disconnects the subtree from its bus and store.
func (w *Widget) DetachContext() {
	w.detachContext()
}

// attachContext connects every widget in the subtree to the given bus and
// store. On failure every connection made so far is rolled back and the
// subtree is left detached.
func (w *Widget) attachContext(bus *events.Bus, st *store.Store) error {
	var attached []*Widget
	var walk func(n *Widget) error
	walk = func(n *Widget) error {
		n.disconnectBus()
		if err := n.connectBus(bus); err != nil {
			return err
		}
		n.store = st
		attached = append(attached, n)
		for _, child := range n.children {
			if err := walk(child); err != nil {
				return err
			}
		}
		return nil
	}
	if err := walk(w); err != nil {
		for _, n := range attached {
			n.disconnectBus()
			n.store = nil
		}
		return err
	}
	return nil
}

// detachContext disconnects every widget in the subtree.
func (w *Widget) detachContext() {
	w.disconnectBus()
	w.store = nil
	for _, child := range w.children {
		child.detachContext()
	}
}

// indexOf returns the position of child in the child list, or -1.
func (w *Widget) indexOf(child *Widget) int {
	for i, c := range w.children {
		if c == child {
			return i
		}
	}
	return -1
}
