package backend

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/go-kiosk/kiosk/pkg/gestures"
	"github.com/go-kiosk/kiosk/pkg/graphics"
)

// InputSource polls ebiten's mouse and touch state once per tick and
// converts it into the discrete samples the gesture recognizer
// consumes. Only one touch stream is tracked at a time; while a touch
// is active the mouse is ignored.
type InputSource struct {
	touchActive bool
	touchID     ebiten.TouchID
	mouseDown   bool
	lastPos     graphics.Offset
	touchIDs    []ebiten.TouchID
}

// NewInputSource creates an input poller.
func NewInputSource() *InputSource {
	return &InputSource{}
}

// Poll reads the current device state and appends the resulting samples
// to dst. Call once per ebiten Update.
func (s *InputSource) Poll(now time.Time, dst []gestures.Sample) []gestures.Sample {
	s.touchIDs = ebiten.AppendTouchIDs(s.touchIDs[:0])

	if s.touchActive {
		return s.pollActiveTouch(now, dst)
	}
	if len(s.touchIDs) > 0 {
		s.touchActive = true
		s.touchID = s.touchIDs[0]
		s.lastPos = touchPos(s.touchID)
		// A touch supersedes any in-flight mouse press.
		if s.mouseDown {
			s.mouseDown = false
			dst = append(dst, sample(s.lastPos, gestures.PhaseCancel, now))
		}
		return append(dst, sample(s.lastPos, gestures.PhaseDown, now))
	}
	return s.pollMouse(now, dst)
}

func (s *InputSource) pollActiveTouch(now time.Time, dst []gestures.Sample) []gestures.Sample {
	for _, id := range s.touchIDs {
		if id != s.touchID {
			continue
		}
		pos := touchPos(id)
		if pos != s.lastPos {
			s.lastPos = pos
			dst = append(dst, sample(pos, gestures.PhaseMove, now))
		}
		return dst
	}
	s.touchActive = false
	return append(dst, sample(s.lastPos, gestures.PhaseUp, now))
}

func (s *InputSource) pollMouse(now time.Time, dst []gestures.Sample) []gestures.Sample {
	mx, my := ebiten.CursorPosition()
	pos := graphics.Offset{X: float64(mx), Y: float64(my)}
	pressed := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)

	switch {
	case pressed && !s.mouseDown:
		s.mouseDown = true
		dst = append(dst, sample(pos, gestures.PhaseDown, now))
	case pressed && s.mouseDown:
		if pos != s.lastPos {
			dst = append(dst, sample(pos, gestures.PhaseMove, now))
		}
	case !pressed && s.mouseDown:
		s.mouseDown = false
		dst = append(dst, sample(pos, gestures.PhaseUp, now))
	default:
		// Hover only; the manager tracks hover flags from move samples.
		if pos != s.lastPos {
			dst = append(dst, sample(pos, gestures.PhaseMove, now))
		}
	}
	s.lastPos = pos
	return dst
}

func touchPos(id ebiten.TouchID) graphics.Offset {
	x, y := ebiten.TouchPosition(id)
	return graphics.Offset{X: float64(x), Y: float64(y)}
}

func sample(pos graphics.Offset, phase gestures.Phase, now time.Time) gestures.Sample {
	return gestures.Sample{Position: pos, Phase: phase, Time: now}
}
