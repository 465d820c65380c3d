// Package config loads the optional kiosk.yaml file and resolves it
// into the concrete threshold/animation settings the core consumes.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/gestures"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/pages"
)

// FileName is the configuration file looked up in the app directory.
const FileName = "kiosk.yaml"

// Config represents the optional kiosk.yaml configuration. Omitted
// fields resolve to the documented defaults.
type Config struct {
	Display     DisplayConfig    `yaml:"display"`
	Gestures    GestureConfig    `yaml:"gestures"`
	Transitions TransitionConfig `yaml:"transitions"`
	Limits      LimitsConfig     `yaml:"limits"`
}

// DisplayConfig contains the fixed kiosk screen geometry.
type DisplayConfig struct {
	Width  float64 `yaml:"width,omitempty"`
	Height float64 `yaml:"height,omitempty"`
}

// GestureConfig contains gesture classification thresholds.
type GestureConfig struct {
	DragThresholdPx float64 `yaml:"drag_threshold_px,omitempty"`
	ClickTimeoutMs  int     `yaml:"click_timeout_ms,omitempty"`
	HoldTimeoutMs   int     `yaml:"hold_timeout_ms,omitempty"`
}

// TransitionConfig contains page navigation and animation settings.
type TransitionConfig struct {
	CommitThreshold   float64 `yaml:"commit_threshold,omitempty"`
	VelocityThreshold float64 `yaml:"velocity_threshold_px_s,omitempty"`
	AnimationRate     float64 `yaml:"animation_rate,omitempty"`
	Epsilon           float64 `yaml:"epsilon,omitempty"`
	IndicatorHoldMs   int     `yaml:"indicator_hold_ms,omitempty"`
}

// LimitsConfig contains resource budgets.
type LimitsConfig struct {
	// WidgetBudget caps how many factory-built widgets may be live at
	// once. Zero means unlimited.
	WidgetBudget int `yaml:"widget_budget,omitempty"`
}

// Resolved contains the validated settings in the types the core uses.
type Resolved struct {
	Screen       graphics.Size
	Gestures     gestures.Config
	Transitions  pages.TransitionConfig
	WidgetBudget int
}

// Default screen geometry for a landscape kiosk panel.
const (
	DefaultScreenWidth  = pages.DefaultScreenWidth
	DefaultScreenHeight = pages.DefaultScreenHeight
)

// LoadOptional reads kiosk.yaml from dir if present. A missing file is
// not an error; the zero Config resolves to all defaults.
func LoadOptional(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", FileName, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", FileName, err)
	}

	return &cfg, nil
}

// Resolve loads kiosk.yaml (if present) from dir and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	return cfg.Resolve()
}

// Resolve validates the configuration and fills in defaults.
func (c *Config) Resolve() (*Resolved, error) {
	const op = "config.Resolve"
	if err := c.validate(op); err != nil {
		return nil, err
	}

	screen := graphics.Size{Width: c.Display.Width, Height: c.Display.Height}
	if screen.Width == 0 {
		screen.Width = DefaultScreenWidth
	}
	if screen.Height == 0 {
		screen.Height = DefaultScreenHeight
	}

	gcfg := gestures.Config{
		DragThreshold: c.Gestures.DragThresholdPx,
		ClickTimeout:  time.Duration(c.Gestures.ClickTimeoutMs) * time.Millisecond,
		HoldTimeout:   time.Duration(c.Gestures.HoldTimeoutMs) * time.Millisecond,
	}
	tcfg := pages.TransitionConfig{
		CommitThreshold:   c.Transitions.CommitThreshold,
		VelocityThreshold: c.Transitions.VelocityThreshold,
		AnimationRate:     c.Transitions.AnimationRate,
		Epsilon:           c.Transitions.Epsilon,
		IndicatorHold:     time.Duration(c.Transitions.IndicatorHoldMs) * time.Millisecond,
	}

	return &Resolved{
		Screen:       screen,
		Gestures:     gcfg,
		Transitions:  tcfg,
		WidgetBudget: c.Limits.WidgetBudget,
	}, nil
}

func (c *Config) validate(op string) error {
	if c.Display.Width < 0 || c.Display.Height < 0 {
		return kioskerrors.Ef(op, kioskerrors.KindInvalidParam,
			"negative display size %gx%g", c.Display.Width, c.Display.Height)
	}
	if c.Gestures.DragThresholdPx < 0 {
		return kioskerrors.Ef(op, kioskerrors.KindInvalidParam,
			"negative drag threshold %g", c.Gestures.DragThresholdPx)
	}
	if c.Gestures.ClickTimeoutMs < 0 || c.Gestures.HoldTimeoutMs < 0 {
		return kioskerrors.E(op, kioskerrors.KindInvalidParam, "negative gesture timeout")
	}
	if t := c.Transitions.CommitThreshold; t < 0 || t > 1 {
		return kioskerrors.Ef(op, kioskerrors.KindInvalidParam,
			"commit threshold %g outside [0, 1]", t)
	}
	if c.Transitions.VelocityThreshold < 0 || c.Transitions.AnimationRate < 0 ||
		c.Transitions.Epsilon < 0 || c.Transitions.IndicatorHoldMs < 0 {
		return kioskerrors.E(op, kioskerrors.KindInvalidParam, "negative transition setting")
	}
	if c.Limits.WidgetBudget < 0 {
		return kioskerrors.Ef(op, kioskerrors.KindInvalidParam,
			"negative widget budget %d", c.Limits.WidgetBudget)
	}
	return nil
}
