// Package gestures classifies a raw touch/pointer sample stream into
// click, drag, hold, and swipe gestures.
//
// The recognizer is a state machine:
//
//	           touch-down              classify
//	NONE ────────────────► POTENTIAL ────────────► CLICK
//	  ▲                        │                   DRAG_VERTICAL
//	  │     touch-up/cancel    │                   DRAG_HORIZONTAL
//	  └────────────────────────┴────────────────── HOLD
//
// Classification uses two configurable thresholds: a drag distance
// (Euclidean, one metric everywhere) and a click timeout. HOLD is reached
// only from POTENTIAL, never from a drag state. Cancel returns to NONE
// from any state without firing callbacks.
package gestures

import (
	"fmt"
	"time"

	"github.com/go-kiosk/kiosk/pkg/graphics"
)

// Phase identifies where a sample sits in a touch stream.
type Phase int

const (
	// PhaseDown begins a touch stream.
	PhaseDown Phase = iota
	// PhaseMove continues a touch stream.
	PhaseMove
	// PhaseUp ends a touch stream normally.
	PhaseUp
	// PhaseCancel aborts a touch stream (focus loss, multi-touch conflict).
	PhaseCancel
)

func (p Phase) String() string {
	switch p {
	case PhaseDown:
		return "down"
	case PhaseMove:
		return "move"
	case PhaseUp:
		return "up"
	case PhaseCancel:
		return "cancel"
	default:
		return fmt.Sprintf("Phase(%d)", int(p))
	}
}

// Sample is one discrete input sample delivered by the platform layer.
// The core never polls devices itself.
type Sample struct {
	Position graphics.Offset
	Phase    Phase
	Time     time.Time
}

// State is the recognizer's classification state.
type State int

const (
	// StateNone means no touch stream is active.
	StateNone State = iota
	// StatePotential means a touch is down but not yet classified.
	StatePotential
	// StateClick is entered momentarily when a touch-up classifies as a click.
	StateClick
	// StateDragVertical reports incremental scroll deltas.
	StateDragVertical
	// StateDragHorizontal reports incremental swipe-offset deltas.
	StateDragHorizontal
	// StateHold means the touch stayed down past the hold timeout without moving.
	StateHold
)

func (s State) String() string {
	switch s {
	case StateNone:
		return "none"
	case StatePotential:
		return "potential"
	case StateClick:
		return "click"
	case StateDragVertical:
		return "drag-vertical"
	case StateDragHorizontal:
		return "drag-horizontal"
	case StateHold:
		return "hold"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Config holds the classification thresholds. Zero values fall back to
// the documented defaults; thresholds are per-recognizer, not globals.
type Config struct {
	// DragThreshold is the Euclidean distance in pixels beyond which a
	// touch becomes a drag. Default 10.
	DragThreshold float64
	// ClickTimeout is the longest press that still classifies as a
	// click. Default 300ms.
	ClickTimeout time.Duration
	// HoldTimeout is the press duration after which a stationary touch
	// classifies as a hold. Default 600ms.
	HoldTimeout time.Duration
}

// Default thresholds.
const (
	DefaultDragThreshold = 10.0
	DefaultClickTimeout  = 300 * time.Millisecond
	DefaultHoldTimeout   = 600 * time.Millisecond
)

// DefaultConfig returns the documented default thresholds.
func DefaultConfig() Config {
	return Config{
		DragThreshold: DefaultDragThreshold,
		ClickTimeout:  DefaultClickTimeout,
		HoldTimeout:   DefaultHoldTimeout,
	}
}

func (c Config) withDefaults() Config {
	if c.DragThreshold <= 0 {
		c.DragThreshold = DefaultDragThreshold
	}
	if c.ClickTimeout <= 0 {
		c.ClickTimeout = DefaultClickTimeout
	}
	if c.HoldTimeout <= 0 {
		c.HoldTimeout = DefaultHoldTimeout
	}
	return c
}

// Recognizer classifies one touch stream at a time. All callbacks run
// synchronously on the caller's stack and may mutate the structures that
// feed the recognizer.
type Recognizer struct {
	// HitTest resolves the context (widget, page) under a position. The
	// result is remembered from touch-down and passed to OnClick/OnHold;
	// a click only fires when touch-up resolves to the same context.
	HitTest func(pos graphics.Offset) any
	// OnClick fires when a touch classifies as a click.
	OnClick func(target any, pos graphics.Offset)
	// OnHold fires once when a stationary touch crosses the hold timeout.
	OnHold func(target any, pos graphics.Offset)
	// OnVerticalDrag fires per sample with the scroll delta since the
	// previous sample.
	OnVerticalDrag func(target any, delta float64)
	// OnHorizontalDrag fires per sample with the swipe-offset delta since
	// the previous sample.
	OnHorizontalDrag func(delta float64)
	// OnSwipeEnd fires on touch-up from a horizontal drag with the final
	// offset from the start position, the mean horizontal velocity in
	// px/s, and a completion flag. The caller decides whether to commit
	// a page change.
	OnSwipeEnd func(offset, velocity float64, complete bool)

	cfg    Config
	state  State
	start  Sample
	last   Sample
	target any
}

// NewRecognizer creates a recognizer with the given thresholds.
func NewRecognizer(cfg Config) *Recognizer {
	return &Recognizer{cfg: cfg.withDefaults()}
}

// Config returns the active thresholds.
func (r *Recognizer) Config() Config { return r.cfg }

// State returns the current classification state.
func (r *Recognizer) State() State { return r.state }

// Target returns the context hit at touch-down, or nil outside a stream.
func (r *Recognizer) Target() any { return r.target }

// HandleSample advances the state machine with one input sample.
func (r *Recognizer) HandleSample(sample Sample) {
	switch sample.Phase {
	case PhaseDown:
		r.handleDown(sample)
	case PhaseMove:
		r.handleMove(sample)
	case PhaseUp:
		r.handleUp(sample)
	case PhaseCancel:
		r.Cancel()
	}
}

// Tick checks time-driven transitions (hold detection) between samples.
// Call once per frame with the current time.
func (r *Recognizer) Tick(now time.Time) {
	if r.state == StatePotential && now.Sub(r.start.Time) >= r.cfg.HoldTimeout {
		r.enterHold()
	}
}

// Cancel forces the recognizer back to NONE from any state without
// firing callbacks. Used on focus loss or multi-touch conflict.
func (r *Recognizer) Cancel() {
	r.state = StateNone
	r.target = nil
}

func (r *Recognizer) handleDown(sample Sample) {
	// A second down while a stream is active aborts the first stream.
	if r.state != StateNone {
		r.Cancel()
	}
	r.start = sample
	r.last = sample
	if r.HitTest != nil {
		r.target = r.HitTest(sample.Position)
	}
	r.state = StatePotential
}

func (r *Recognizer) handleMove(sample Sample) {
	switch r.state {
	case StatePotential:
		if sample.Time.Sub(r.start.Time) >= r.cfg.HoldTimeout &&
			sample.Position.Distance(r.start.Position) <= r.cfg.DragThreshold {
			r.enterHold()
			r.last = sample
			return
		}
		if sample.Position.Distance(r.start.Position) > r.cfg.DragThreshold {
			dx := sample.Position.X - r.start.Position.X
			dy := sample.Position.Y - r.start.Position.Y
			if abs(dx) > abs(dy) {
				r.state = StateDragHorizontal
				if r.OnHorizontalDrag != nil {
					r.OnHorizontalDrag(sample.Position.X - r.last.Position.X)
				}
			} else {
				r.state = StateDragVertical
				if r.OnVerticalDrag != nil {
					r.OnVerticalDrag(r.target, sample.Position.Y-r.last.Position.Y)
				}
			}
		}
		r.last = sample
	case StateDragHorizontal:
		if r.OnHorizontalDrag != nil {
			r.OnHorizontalDrag(sample.Position.X - r.last.Position.X)
		}
		r.last = sample
	case StateDragVertical:
		if r.OnVerticalDrag != nil {
			r.OnVerticalDrag(r.target, sample.Position.Y-r.last.Position.Y)
		}
		r.last = sample
	case StateHold:
		// A hold stays a hold; movement after the timeout is ignored.
		r.last = sample
	}
}

func (r *Recognizer) handleUp(sample Sample) {
	switch r.state {
	case StatePotential:
		elapsed := sample.Time.Sub(r.start.Time)
		dist := sample.Position.Distance(r.start.Position)
		if elapsed < r.cfg.ClickTimeout && dist < r.cfg.DragThreshold && r.sameContext(sample.Position) {
			r.state = StateClick
			if r.OnClick != nil {
				r.OnClick(r.target, sample.Position)
			}
		}
	case StateDragHorizontal:
		offset := sample.Position.X - r.start.Position.X
		velocity := 0.0
		if elapsed := sample.Time.Sub(r.start.Time); elapsed > 0 {
			velocity = abs(offset) / elapsed.Seconds()
		}
		if r.OnSwipeEnd != nil {
			r.OnSwipeEnd(offset, velocity, true)
		}
	}
	r.state = StateNone
	r.target = nil
}

// sameContext reports whether the release position resolves to the same
// context the gesture began on. With no HitTest hook every release
// matches.
func (r *Recognizer) sameContext(pos graphics.Offset) bool {
	if r.HitTest == nil {
		return true
	}
	return r.HitTest(pos) == r.target
}

func (r *Recognizer) enterHold() {
	r.state = StateHold
	if r.OnHold != nil {
		r.OnHold(r.target, r.last.Position)
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
