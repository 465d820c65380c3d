// Package widget implements the retained-mode widget tree: hierarchical UI
// nodes with styling, bounds, state flags, and a small capability surface
// for rendering, input handling, and layout.
//
// The tree is single-threaded and cooperative. Widgets hold references to
// the event bus and shared state store injected at the root; attaching a
// subtree propagates both references and re-subscribes every recorded
// topic, detaching unsubscribes them.
package widget

import (
	"fmt"

	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/events"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/store"
)

// Kind tags the concrete widget variety.
type Kind int

const (
	// KindContainer is a non-interactive grouping node.
	KindContainer Kind = iota
	// KindButton is an interactive click target.
	KindButton
	// KindLabel is a non-interactive text node.
	KindLabel
	// KindPage is a full-screen page owned by the page manager.
	KindPage
	// KindCustom is an application-defined widget driven by its delegate.
	KindCustom
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindButton:
		return "button"
	case KindLabel:
		return "label"
	case KindPage:
		return "page"
	case KindCustom:
		return "custom"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// StateFlags is the widget state bitmask.
type StateFlags uint8

const (
	// FlagHovered is set while the pointer is over the widget.
	FlagHovered StateFlags = 1 << iota
	// FlagPressed is set between touch-down and touch-up on the widget.
	FlagPressed
	// FlagFocused is set on the widget holding input focus.
	FlagFocused
	// FlagDisabled suppresses click and input callbacks.
	FlagDisabled
	// FlagHidden skips the widget and its subtree during rendering and hit-testing.
	FlagHidden
	// FlagDirty marks the widget as needing redraw.
	FlagDirty
)

// InputEventType classifies a synthetic input event delivered to a widget.
type InputEventType int

const (
	// InputPress is sent on touch-down over the widget.
	InputPress InputEventType = iota
	// InputRelease is sent on touch-up after a press.
	InputRelease
	// InputClick is sent when a gesture classifies as a click on the widget.
	InputClick
	// InputScroll carries a vertical drag delta.
	InputScroll
	// InputHold is sent when a gesture classifies as a hold on the widget.
	InputHold
	// InputHoverEnter is sent when the pointer moves onto the widget.
	InputHoverEnter
	// InputHoverLeave is sent when the pointer moves off the widget.
	InputHoverLeave
)

// InputEvent is a synthetic input event produced by the widget manager
// from classified gestures.
type InputEvent struct {
	Type     InputEventType
	Position graphics.Offset
	// Delta is the incremental scroll distance for InputScroll events.
	Delta float64
}

// Renderer is implemented by delegates that draw widget content beyond the
// style background.
type Renderer interface {
	RenderWidget(w *Widget, surface graphics.Surface) error
}

// InputHandler is implemented by delegates that consume synthetic input
// events. Returning true marks the event as handled.
type InputHandler interface {
	HandleInput(w *Widget, event InputEvent) bool
}

// Layouter is implemented by delegates that replace the default
// vertical-stack layout for their children.
type Layouter interface {
	LayoutChildren(w *Widget)
}

// Destroyer is implemented by delegates that need a teardown hook.
type Destroyer interface {
	WidgetDestroyed(w *Widget)
}

// topicBinding records one auto-managed bus subscription.
type topicBinding struct {
	topic   string
	handler events.Handler
	sub     events.Subscription
	active  bool
}

// Widget is a node in the retained UI tree.
//
// Invariants maintained by this package:
//   - a widget has at most one parent;
//   - bounds == parent.bounds origin + relBounds, re-derived whenever
//     either side changes (for a detached widget the two are equal);
//   - destruction tears down every descendant exactly once and
//     unsubscribes every recorded topic.
type Widget struct {
	// OnClick fires when a click gesture resolves on this widget.
	OnClick func(w *Widget)
	// OnScroll fires with incremental vertical drag deltas.
	OnScroll func(w *Widget, delta float64)

	id          string
	kind        Kind
	parent      *Widget
	children    []*Widget
	bounds      graphics.Rect // absolute
	relBounds   graphics.Rect // parent-relative
	flags       StateFlags
	style       *Style
	ownsStyle   bool
	text        string
	delegate    any
	bindings    []*topicBinding
	bus         *events.Bus
	store       *store.Store
	factory     *Factory
	destroyed   bool
	needsLayout bool
	layoutMode  LayoutMode
}

// New creates a detached widget. Most code should go through a Factory so
// the widget budget is enforced; New exists for tests and built-in
// constructors.
func New(id string, kind Kind) *Widget {
	return &Widget{id: id, kind: kind, flags: FlagDirty, needsLayout: true}
}

// ID returns the widget's identity string.
func (w *Widget) ID() string { return w.id }

// Kind returns the widget's type tag.
func (w *Widget) Kind() Kind { return w.kind }

// Parent returns the widget's parent, or nil for roots and detached nodes.
func (w *Widget) Parent() *Widget { return w.parent }

// Children returns the ordered child list. The slice is shared; callers
// must not mutate it.
func (w *Widget) Children() []*Widget { return w.children }

// Bus returns the event bus this widget is attached to, or nil.
func (w *Widget) Bus() *events.Bus { return w.bus }

// Store returns the shared state store this widget is attached to, or nil.
func (w *Widget) Store() *store.Store { return w.store }

// Delegate returns the widget's behavior delegate, or nil.
func (w *Widget) Delegate() any { return w.delegate }

// SetDelegate installs a behavior delegate. The delegate's capabilities
// (Renderer, InputHandler, Layouter, Destroyer) are discovered by type
// assertion at each call site.
func (w *Widget) SetDelegate(delegate any) {
	w.delegate = delegate
	w.MarkNeedsLayout()
	w.Invalidate()
}

// Text returns the widget's label text.
func (w *Widget) Text() string { return w.text }

// SetText updates the widget's label text and marks it dirty.
func (w *Widget) SetText(text string) {
	if w.text == text {
		return
	}
	w.text = text
	w.Invalidate()
}

// Flags returns the current state bitmask.
func (w *Widget) Flags() StateFlags { return w.flags }

// HasFlag reports whether every bit in flag is set.
func (w *Widget) HasFlag(flag StateFlags) bool { return w.flags&flag == flag }

// SetFlag sets or clears a state flag and marks the widget dirty when the
// bitmask changes.
func (w *Widget) SetFlag(flag StateFlags, on bool) {
	old := w.flags
	if on {
		w.flags |= flag
	} else {
		w.flags &^= flag
	}
	if w.flags != old {
		w.Invalidate()
	}
}

// Hidden reports whether the widget is excluded from rendering and
// hit-testing.
func (w *Widget) Hidden() bool { return w.HasFlag(FlagHidden) }

// Disabled reports whether input callbacks are suppressed.
func (w *Widget) Disabled() bool { return w.HasFlag(FlagDisabled) }

// Interactive reports whether this widget is a valid click target:
// buttons, widgets with an OnClick callback, and widgets whose delegate
// handles input. Containers and labels are transparent to hit-testing.
func (w *Widget) Interactive() bool {
	if w.kind == KindButton || w.OnClick != nil {
		return true
	}
	_, ok := w.delegate.(InputHandler)
	return ok
}

// ConsumesScroll reports whether the widget handles vertical drag
// deltas itself rather than leaving them to the page content.
func (w *Widget) ConsumesScroll() bool {
	if w.OnScroll != nil {
		return true
	}
	_, ok := w.delegate.(InputHandler)
	return ok
}

// Destroyed reports whether Destroy has run on this widget.
func (w *Widget) Destroyed() bool { return w.destroyed }

// Bounds returns the widget's absolute bounds.
func (w *Widget) Bounds() graphics.Rect { return w.bounds }

// RelativeBounds returns the widget's parent-relative bounds.
func (w *Widget) RelativeBounds() graphics.Rect { return w.relBounds }

// SetBounds sets the absolute bounds and re-derives the relative bounds
// from the current parent. Negative width or height is rejected and the
// widget is left unchanged.
func (w *Widget) SetBounds(bounds graphics.Rect) error {
	if bounds.Width < 0 || bounds.Height < 0 {
		return kioskerrors.Ef("widget.SetBounds", kioskerrors.KindInvalidParam,
			"negative size %gx%g", bounds.Width, bounds.Height)
	}
	w.bounds = bounds
	if w.parent != nil {
		origin := w.parent.bounds.Origin()
		w.relBounds = graphics.Rect{
			X:      bounds.X - origin.X,
			Y:      bounds.Y - origin.Y,
			Width:  bounds.Width,
			Height: bounds.Height,
		}
	} else {
		w.relBounds = bounds
	}
	w.syncChildBounds()
	w.Invalidate()
	return nil
}

// SetRelativeBounds sets the parent-relative bounds and re-derives the
// absolute bounds. Negative width or height is rejected and the widget is
// left unchanged.
func (w *Widget) SetRelativeBounds(rel graphics.Rect) error {
	if rel.Width < 0 || rel.Height < 0 {
		return kioskerrors.Ef("widget.SetRelativeBounds", kioskerrors.KindInvalidParam,
			"negative size %gx%g", rel.Width, rel.Height)
	}
	w.relBounds = rel
	w.recomputeBounds()
	w.Invalidate()
	return nil
}

// recomputeBounds re-derives this widget's absolute bounds from its
// relative bounds and parent, then cascades to the subtree.
func (w *Widget) recomputeBounds() {
	if w.parent != nil {
		w.bounds = w.relBounds.Translate(w.parent.bounds.Origin())
	} else {
		w.bounds = w.relBounds
	}
	w.syncChildBounds()
}

// syncChildBounds re-derives every descendant's absolute bounds from the
// relative chain below this widget.
func (w *Widget) syncChildBounds() {
	for _, child := range w.children {
		child.bounds = child.relBounds.Translate(w.bounds.Origin())
		child.syncChildBounds()
	}
}

// Invalidate sets the dirty flag on this widget and every ancestor up to
// the root. It performs no rendering. The walk is unconditional: a dirty
// node does not imply dirty ancestors, since a render skips hidden
// children without clearing their flag while clearing the parent's.
func (w *Widget) Invalidate() {
	for cur := w; cur != nil; cur = cur.parent {
		cur.flags |= FlagDirty
	}
}

// MarkNeedsLayout schedules this widget's subtree for layout before the
// next render.
func (w *Widget) MarkNeedsLayout() {
	w.needsLayout = true
}

// Subscribe records a topic binding and, if the widget is attached to a
// bus, registers it immediately. Recorded bindings are re-subscribed on
// attach and unsubscribed on detach and destroy.
func (w *Widget) Subscribe(topic string, handler events.Handler) error {
	if handler == nil {
		return kioskerrors.E("widget.Subscribe", kioskerrors.KindNullParam, "handler is nil")
	}
	if topic == "" {
		return kioskerrors.E("widget.Subscribe", kioskerrors.KindInvalidParam, "topic is empty")
	}
	binding := &topicBinding{topic: topic, handler: handler}
	if w.bus != nil {
		sub, err := w.bus.Subscribe(topic, handler)
		if err != nil {
			return err
		}
		binding.sub = sub
		binding.active = true
	}
	w.bindings = append(w.bindings, binding)
	return nil
}

// Topics returns the topics this widget is recorded to subscribe to.
func (w *Widget) Topics() []string {
	topics := make([]string, len(w.bindings))
	for i, b := range w.bindings {
		topics[i] = b.topic
	}
	return topics
}

// Publish publishes on the attached bus. A detached widget's publish is
// silently dropped.
func (w *Widget) Publish(topic string, payload any) {
	if w.bus != nil {
		w.bus.Publish(topic, payload)
	}
}

// DispatchInput delivers a synthetic input event to the widget's delegate
// and callbacks. Disabled widgets swallow events without handling them.
// Returns true when a delegate or callback consumed the event.
func (w *Widget) DispatchInput(event InputEvent) bool {
	if w == nil || w.destroyed || w.Disabled() {
		return false
	}
	handled := false
	if h, ok := w.delegate.(InputHandler); ok {
		handled = h.HandleInput(w, event)
	}
	switch event.Type {
	case InputClick:
		if w.OnClick != nil {
			w.OnClick(w)
			handled = true
		}
	case InputScroll:
		if w.OnScroll != nil {
			w.OnScroll(w, event.Delta)
			handled = true
		}
	}
	return handled
}

// connectBus subscribes every recorded binding on the given bus. On
// failure it rolls back the subscriptions made so far and leaves the
// widget detached.
func (w *Widget) connectBus(bus *events.Bus) error {
	if bus == nil {
		return nil
	}
	done := 0
	for _, binding := range w.bindings {
		sub, err := bus.Subscribe(binding.topic, binding.handler)
		if err != nil {
			for _, rolled := range w.bindings[:done] {
				bus.Unsubscribe(rolled.sub)
				rolled.active = false
			}
			return err
		}
		binding.sub = sub
		binding.active = true
		done++
	}
	w.bus = bus
	return nil
}

// disconnectBus unsubscribes every active binding and drops the bus
// reference. Safe to call twice.
func (w *Widget) disconnectBus() {
	if w.bus != nil {
		for _, binding := range w.bindings {
			if binding.active {
				w.bus.Unsubscribe(binding.sub)
				binding.active = false
			}
		}
	}
	w.bus = nil
}
