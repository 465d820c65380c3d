// Package manager owns the root widgets and routes input through the
// gesture recognizer into the tree: hit-testing, hover/press/focus flag
// tracking, synthetic widget callbacks, and page navigation.
package manager

import (
	"time"

	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/events"
	"github.com/go-kiosk/kiosk/pkg/gestures"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/pages"
	"github.com/go-kiosk/kiosk/pkg/store"
	"github.com/go-kiosk/kiosk/pkg/widget"
)

// Bus topics published by the manager. Payloads are widget ids.
const (
	TopicWidgetClicked = "widget.clicked"
	TopicWidgetHeld    = "widget.held"
)

// Manager is the single-threaded core's entry point for input and
// rendering. All methods must be called from one owning goroutine; the
// per-frame order is HandleSample calls, then Update, then Render.
type Manager struct {
	bus        *events.Bus
	store      *store.Store
	recognizer *gestures.Recognizer
	pages      *pages.Manager

	roots   []*widget.Widget
	hovered *widget.Widget
	pressed *widget.Widget
	focused *widget.Widget

	// Running horizontal displacement of the active drag, fed to the
	// page strip as an absolute offset.
	dragTotal float64
}

// NewManager creates a manager with the given gesture thresholds. The
// bus and store are propagated to every registered root.
func NewManager(bus *events.Bus, st *store.Store, cfg gestures.Config) *Manager {
	m := &Manager{bus: bus, store: st}
	r := gestures.NewRecognizer(cfg)
	r.HitTest = m.hitAny
	r.OnClick = m.onClick
	r.OnHold = m.onHold
	r.OnVerticalDrag = m.onVerticalDrag
	r.OnHorizontalDrag = m.onHorizontalDrag
	r.OnSwipeEnd = m.onSwipeEnd
	m.recognizer = r
	return m
}

// Recognizer returns the manager's gesture recognizer.
func (m *Manager) Recognizer() *gestures.Recognizer { return m.recognizer }

// AttachPages connects a page strip. Horizontal drags and swipes
// navigate it; vertical drags that no widget consumes scroll its
// current page. The strip renders beneath the registered roots.
func (m *Manager) AttachPages(pm *pages.Manager) { m.pages = pm }

// Pages returns the attached page strip, or nil.
func (m *Manager) Pages() *pages.Manager { return m.pages }

// RegisterRoot adds a root widget, attaching the shared bus/store
// context to its subtree. Later roots render and hit-test in front.
func (m *Manager) RegisterRoot(root *widget.Widget) error {
	const op = "manager.Manager.RegisterRoot"
	if root == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "nil root")
	}
	for _, r := range m.roots {
		if r == root {
			return kioskerrors.Ef(op, kioskerrors.KindAlreadyExists, "root %q already registered", root.ID())
		}
	}
	if err := root.AttachContext(m.bus, m.store); err != nil {
		return err
	}
	m.roots = append(m.roots, root)
	return nil
}

// UnregisterRoot removes a root widget and detaches its context.
func (m *Manager) UnregisterRoot(root *widget.Widget) error {
	const op = "manager.Manager.UnregisterRoot"
	if root == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "nil root")
	}
	for i, r := range m.roots {
		if r != root {
			continue
		}
		m.roots = append(m.roots[:i], m.roots[i+1:]...)
		root.DetachContext()
		m.dropRefsInto(root)
		return nil
	}
	return kioskerrors.Ef(op, kioskerrors.KindNotFound, "root %q not registered", root.ID())
}

// Roots returns the registered roots in back-to-front order.
func (m *Manager) Roots() []*widget.Widget { return m.roots }

// FindByID searches every root and the current page for a widget id.
// Returns nil when absent.
func (m *Manager) FindByID(id string) *widget.Widget {
	for _, root := range m.roots {
		if w := root.FindByID(id); w != nil {
			return w
		}
	}
	if m.pages != nil {
		if p := m.pages.CurrentPage(); p != nil {
			return p.Root().FindByID(id)
		}
	}
	return nil
}

// Focused returns the widget holding focus, or nil.
func (m *Manager) Focused() *widget.Widget { return m.focused }

// Hovered returns the widget under the last pointer position, or nil.
func (m *Manager) Hovered() *widget.Widget { return m.hovered }

// Focus moves the focus flag to w. Passing nil clears focus.
func (m *Manager) Focus(w *widget.Widget) {
	if m.focused == w {
		return
	}
	if m.focused != nil {
		m.focused.SetFlag(widget.FlagFocused, false)
	}
	m.focused = w
	if w != nil {
		w.SetFlag(widget.FlagFocused, true)
	}
}

// HitTest returns the widget under the point, searching roots from
// front to back and falling back to the current page's subtree.
func (m *Manager) HitTest(pos graphics.Offset) *widget.Widget {
	for i := len(m.roots) - 1; i >= 0; i-- {
		if w := m.roots[i].HitTest(pos); w != nil {
			return w
		}
	}
	if m.pages != nil {
		if p := m.pages.CurrentPage(); p != nil {
			return p.Root().HitTest(pos)
		}
	}
	return nil
}

// HandleSample feeds one raw input sample into the core: press/hover
// flags first, then gesture classification.
func (m *Manager) HandleSample(sample gestures.Sample) {
	switch sample.Phase {
	case gestures.PhaseDown:
		m.setPressed(m.HitTest(sample.Position), sample.Position)
	case gestures.PhaseMove:
		m.setHovered(m.HitTest(sample.Position))
	case gestures.PhaseUp, gestures.PhaseCancel:
		m.releasePressed(sample.Position)
	}
	m.recognizer.HandleSample(sample)
}

// CancelGesture aborts the active gesture and clears the press flag
// without firing callbacks. Used on focus loss.
func (m *Manager) CancelGesture() {
	m.recognizer.Cancel()
	m.releasePressed(graphics.Offset{})
	m.dragTotal = 0
}

// Update advances time-driven state: hold detection and, when a page
// strip is attached, its settle animation. Call once per frame.
func (m *Manager) Update(now time.Time, dt float64) {
	m.recognizer.Tick(now)
	if m.pages != nil {
		m.pages.Update(dt)
	}
}

// Render draws the page strip, then the roots in registration order.
func (m *Manager) Render(surface graphics.Surface) error {
	if m.pages != nil {
		if err := m.pages.Render(surface); err != nil {
			return err
		}
	}
	for _, root := range m.roots {
		if err := root.Render(surface); err != nil {
			return err
		}
	}
	return nil
}

func (m *Manager) setPressed(w *widget.Widget, pos graphics.Offset) {
	m.pressed = w
	if w == nil {
		return
	}
	w.SetFlag(widget.FlagPressed, true)
	w.DispatchInput(widget.InputEvent{Type: widget.InputPress, Position: pos})
}

func (m *Manager) releasePressed(pos graphics.Offset) {
	w := m.pressed
	m.pressed = nil
	if w == nil {
		return
	}
	w.SetFlag(widget.FlagPressed, false)
	w.DispatchInput(widget.InputEvent{Type: widget.InputRelease, Position: pos})
}

func (m *Manager) setHovered(w *widget.Widget) {
	if m.hovered == w {
		return
	}
	if old := m.hovered; old != nil {
		old.SetFlag(widget.FlagHovered, false)
		old.DispatchInput(widget.InputEvent{Type: widget.InputHoverLeave})
	}
	m.hovered = w
	if w != nil {
		w.SetFlag(widget.FlagHovered, true)
		w.DispatchInput(widget.InputEvent{Type: widget.InputHoverEnter})
	}
}

// hitAny adapts HitTest for the recognizer, which compares targets as
// plain interface values.
func (m *Manager) hitAny(pos graphics.Offset) any {
	if w := m.HitTest(pos); w != nil {
		return w
	}
	return nil
}

func (m *Manager) onClick(target any, pos graphics.Offset) {
	w, ok := target.(*widget.Widget)
	if !ok || w == nil {
		return
	}
	m.Focus(w)
	w.DispatchInput(widget.InputEvent{Type: widget.InputClick, Position: pos})
	if m.bus != nil {
		m.bus.Publish(TopicWidgetClicked, w.ID())
	}
}

func (m *Manager) onHold(target any, pos graphics.Offset) {
	w, ok := target.(*widget.Widget)
	if !ok || w == nil {
		return
	}
	w.DispatchInput(widget.InputEvent{Type: widget.InputHold, Position: pos})
	if m.bus != nil {
		m.bus.Publish(TopicWidgetHeld, w.ID())
	}
}

// onVerticalDrag routes a scroll delta to the hit widget when it
// consumes scrolls, otherwise to the current page's content.
func (m *Manager) onVerticalDrag(target any, delta float64) {
	if w, ok := target.(*widget.Widget); ok && w != nil && w.ConsumesScroll() {
		w.DispatchInput(widget.InputEvent{Type: widget.InputScroll, Delta: delta})
		return
	}
	if m.pages != nil {
		m.pages.HandleScroll(delta)
	}
}

func (m *Manager) onHorizontalDrag(delta float64) {
	m.dragTotal += delta
	if m.pages != nil {
		m.pages.HandleDrag(m.dragTotal, false)
	}
}

func (m *Manager) onSwipeEnd(offset, velocity float64, complete bool) {
	m.dragTotal = 0
	if m.pages == nil || !complete {
		return
	}
	m.pages.HandleDrag(offset, true)
	m.pages.HandleSwipe(true, velocity)
}

// dropRefsInto clears hover/press/focus references that point into a
// subtree leaving the manager.
func (m *Manager) dropRefsInto(root *widget.Widget) {
	if inSubtree(root, m.hovered) {
		m.hovered = nil
	}
	if inSubtree(root, m.pressed) {
		m.pressed = nil
	}
	if inSubtree(root, m.focused) {
		m.focused.SetFlag(widget.FlagFocused, false)
		m.focused = nil
	}
}

func inSubtree(root, w *widget.Widget) bool {
	for ; w != nil; w = w.Parent() {
		if w == root {
			return true
		}
	}
	return false
}
