package pages

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/go-kiosk/kiosk/pkg/graphics"
)

// fadeDuration is how long the indicator takes to fade out once the
// post-drag hold expires.
const fadeDuration = 0.4

// Indicator is the row of page dots drawn near the bottom of the
// screen. It is fully visible while dragging or animating, stays for a
// hold period after a drag ends, then fades out.
type Indicator struct {
	DotRadius     float64
	Spacing       float64
	BottomMargin  float64
	ActiveColor   graphics.Color
	InactiveColor graphics.Color

	hold          time.Duration
	visible       bool
	holding       bool
	holdRemaining float64
	fade          *gween.Tween
	opacity       float64
}

// NewIndicator creates an indicator that stays visible for hold after a
// drag ends.
func NewIndicator(hold time.Duration) *Indicator {
	return &Indicator{
		DotRadius:     4,
		Spacing:       18,
		BottomMargin:  24,
		ActiveColor:   graphics.ColorWhite,
		InactiveColor: graphics.RGBA8(255, 255, 255, 96),
		hold:          hold,
	}
}

// Visible reports whether the indicator currently draws anything.
func (in *Indicator) Visible() bool { return in.visible }

// Opacity returns the indicator's overall opacity in [0, 1].
func (in *Indicator) Opacity() float64 { return in.opacity }

// Show makes the indicator fully visible with no pending fade. Called
// while a drag or transition is in progress.
func (in *Indicator) Show() {
	in.visible = true
	in.opacity = 1
	in.holding = false
	in.fade = nil
}

// HoldThenFade keeps the indicator fully visible for the hold period,
// then fades it out. Called when a drag completes.
func (in *Indicator) HoldThenFade() {
	in.visible = true
	in.opacity = 1
	in.holding = true
	in.holdRemaining = in.hold.Seconds()
	in.fade = nil
}

// Update advances the hold countdown and fade by dt seconds.
func (in *Indicator) Update(dt float64) {
	if in.holding {
		in.holdRemaining -= dt
		if in.holdRemaining <= 0 {
			in.holding = false
			in.fade = gween.New(1, 0, fadeDuration, ease.OutQuad)
		}
		return
	}
	if in.fade == nil {
		return
	}
	value, done := in.fade.Update(float32(dt))
	in.opacity = float64(value)
	if done {
		in.fade = nil
		in.visible = false
		in.opacity = 0
	}
}

// Render draws one dot per page. During a swap the active highlight
// interpolates from the current dot to the target dot with the
// transition offset.
func (in *Indicator) Render(surface graphics.Surface, screen graphics.Size, count, current, target int, offset float64) error {
	if !in.visible || count <= 1 {
		return nil
	}
	startX := (screen.Width - float64(count-1)*in.Spacing) / 2
	y := screen.Height - in.BottomMargin
	progress := graphics.Clamp01(abs(offset))
	for i := 0; i < count; i++ {
		active := 0.0
		switch {
		case i == current:
			active = 1 - progress
		case i == target:
			active = progress
		}
		color := graphics.LerpColor(in.InactiveColor, in.ActiveColor, active)
		color = color.WithAlpha(color.Alpha() * in.opacity)
		center := graphics.Offset{X: startX + float64(i)*in.Spacing, Y: y}
		if err := surface.FillCircle(center, in.DotRadius, color); err != nil {
			return err
		}
	}
	return nil
}
