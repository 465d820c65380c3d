package kiosktest

import (
	"fmt"
	"time"

	"github.com/go-kiosk/kiosk/pkg/gestures"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/manager"
	"github.com/go-kiosk/kiosk/pkg/pages"
)

// frameStep is the simulated frame interval used by Pump.
const frameStep = 16 * time.Millisecond

// Tester drives a widget manager with synthetic touch sequences on a
// fake clock and records draw output.
type Tester struct {
	Manager *manager.Manager
	Clock   *FakeClock
	Surface *RecordingSurface
}

// NewTester wraps a manager in a test harness.
func NewTester(m *manager.Manager) *Tester {
	return &Tester{
		Manager: m,
		Clock:   NewFakeClock(),
		Surface: &RecordingSurface{},
	}
}

func (t *Tester) send(pos graphics.Offset, phase gestures.Phase) {
	t.Manager.HandleSample(gestures.Sample{
		Position: pos,
		Phase:    phase,
		Time:     t.Clock.Now(),
	})
}

// Tap simulates a quick touch at the center of the widget with the
// given id.
func (t *Tester) Tap(id string) error {
	w := t.Manager.FindByID(id)
	if w == nil {
		return fmt.Errorf("Tap: no widget with id %q", id)
	}
	t.TapAt(w.Bounds().Center())
	return nil
}

// TapAt simulates a quick touch at the given position.
func (t *Tester) TapAt(pos graphics.Offset) {
	t.send(pos, gestures.PhaseDown)
	t.Clock.Advance(50 * time.Millisecond)
	t.send(pos, gestures.PhaseUp)
}

// DragFrom simulates a slow drag from start by delta, emitting
// intermediate moves so per-sample delta callbacks fire repeatedly.
func (t *Tester) DragFrom(start, delta graphics.Offset) {
	t.drag(start, delta, 40*time.Millisecond)
}

// Fling simulates a fast drag from start by delta. The short sample
// spacing produces a high release velocity.
func (t *Tester) Fling(start, delta graphics.Offset) {
	t.drag(start, delta, 10*time.Millisecond)
}

func (t *Tester) drag(start, delta graphics.Offset, spacing time.Duration) {
	const steps = 4
	t.send(start, gestures.PhaseDown)
	pos := start
	for i := 1; i <= steps; i++ {
		t.Clock.Advance(spacing)
		frac := float64(i) / steps
		pos = graphics.Offset{X: start.X + delta.X*frac, Y: start.Y + delta.Y*frac}
		t.send(pos, gestures.PhaseMove)
	}
	t.Clock.Advance(spacing)
	t.send(pos, gestures.PhaseUp)
}

// HoldAt simulates a stationary touch held past the hold timeout.
func (t *Tester) HoldAt(pos graphics.Offset) {
	t.send(pos, gestures.PhaseDown)
	t.Pump(t.Manager.Recognizer().Config().HoldTimeout + frameStep)
	t.send(pos, gestures.PhaseUp)
}

// Pump advances the clock by d in frame-sized steps, updating the
// manager each step so holds and page animations progress.
func (t *Tester) Pump(d time.Duration) {
	for elapsed := time.Duration(0); elapsed < d; elapsed += frameStep {
		t.Clock.Advance(frameStep)
		t.Manager.Update(t.Clock.Now(), frameStep.Seconds())
	}
}

// PumpUntilSettled pumps frames until the attached page strip is at
// rest, giving up after maxFrames.
func (t *Tester) PumpUntilSettled(maxFrames int) error {
	pm := t.Manager.Pages()
	if pm == nil {
		return nil
	}
	for i := 0; i < maxFrames; i++ {
		if pm.State() == pages.TransitionNone {
			return nil
		}
		t.Pump(frameStep)
	}
	return fmt.Errorf("PumpUntilSettled: still %v after %d frames", pm.State(), maxFrames)
}

// Render draws a frame into the recording surface, replacing any
// previously recorded ops.
func (t *Tester) Render() error {
	t.Surface.Reset()
	return t.Manager.Render(t.Surface)
}
