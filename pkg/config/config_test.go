package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
)

func TestLoadOptionalMissingFile(t *testing.T) {
	cfg, err := LoadOptional(t.TempDir())
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if *cfg != (Config{}) {
		t.Errorf("missing file should resolve to the zero config, got %+v", cfg)
	}
}

func TestResolveDefaults(t *testing.T) {
	resolved, err := (&Config{}).Resolve()
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Screen.Width != 800 || resolved.Screen.Height != 480 {
		t.Errorf("screen = %+v, want 800x480", resolved.Screen)
	}
	// Zero thresholds fall through to the package defaults downstream.
	if resolved.Gestures.DragThreshold != 0 || resolved.WidgetBudget != 0 {
		t.Errorf("zero config should stay zero: %+v", resolved)
	}
}

func TestResolveReadsYAML(t *testing.T) {
	dir := t.TempDir()
	doc := `
display:
  width: 1024
  height: 600
gestures:
  drag_threshold_px: 16
  click_timeout_ms: 250
  hold_timeout_ms: 900
transitions:
  commit_threshold: 0.4
  velocity_threshold_px_s: 650
  animation_rate: 8
  epsilon: 0.005
  indicator_hold_ms: 1500
limits:
  widget_budget: 128
`
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}

	resolved, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Screen.Width != 1024 || resolved.Screen.Height != 600 {
		t.Errorf("screen = %+v", resolved.Screen)
	}
	if resolved.Gestures.DragThreshold != 16 {
		t.Errorf("drag threshold = %v, want 16", resolved.Gestures.DragThreshold)
	}
	if resolved.Gestures.ClickTimeout != 250*time.Millisecond {
		t.Errorf("click timeout = %v, want 250ms", resolved.Gestures.ClickTimeout)
	}
	if resolved.Gestures.HoldTimeout != 900*time.Millisecond {
		t.Errorf("hold timeout = %v, want 900ms", resolved.Gestures.HoldTimeout)
	}
	if resolved.Transitions.CommitThreshold != 0.4 {
		t.Errorf("commit threshold = %v, want 0.4", resolved.Transitions.CommitThreshold)
	}
	if resolved.Transitions.IndicatorHold != 1500*time.Millisecond {
		t.Errorf("indicator hold = %v, want 1.5s", resolved.Transitions.IndicatorHold)
	}
	if resolved.WidgetBudget != 128 {
		t.Errorf("widget budget = %d, want 128", resolved.WidgetBudget)
	}
}

func TestResolveRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
	}{
		{"negative display", Config{Display: DisplayConfig{Width: -1}}},
		{"negative drag threshold", Config{Gestures: GestureConfig{DragThresholdPx: -5}}},
		{"negative timeout", Config{Gestures: GestureConfig{ClickTimeoutMs: -1}}},
		{"commit threshold above one", Config{Transitions: TransitionConfig{CommitThreshold: 1.5}}},
		{"negative budget", Config{Limits: LimitsConfig{WidgetBudget: -3}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := tc.cfg.Resolve(); !kioskerrors.IsInvalidParam(err) {
				t.Errorf("Resolve error = %v, want invalid-param", err)
			}
		})
	}
}

func TestLoadOptionalBadYAML(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("display: ["), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadOptional(dir); err == nil {
		t.Error("malformed yaml should fail to load")
	}
}
