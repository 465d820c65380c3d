package main

import (
	"testing"

	"github.com/go-kiosk/kiosk/pkg/events"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/pages"
	"github.com/go-kiosk/kiosk/pkg/widget"
)

func newDemoStrip(t *testing.T) *pages.Manager {
	t.Helper()
	pm := pages.NewManager(nil, nil, graphics.Size{Width: 800, Height: 480}, pages.TransitionConfig{})
	if err := buildPages(widget.NewFactory(0), pm); err != nil {
		t.Fatalf("buildPages: %v", err)
	}
	return pm
}

func TestNavigationHandlerRoutesClicks(t *testing.T) {
	pm := newDemoStrip(t)
	handle := navigationHandler(pm)

	handle(events.Event{Topic: "widget.clicked", Payload: "open-settings"})
	if pm.TargetIndex() != 1 {
		t.Fatalf("target = %d, want 1 after open-settings", pm.TargetIndex())
	}
}

func TestNavigationHandlerIgnoresNonStringPayload(t *testing.T) {
	pm := newDemoStrip(t)
	handle := navigationHandler(pm)

	// Payloads on the click topic are widget ids, but a stray publisher
	// must not take the demo down.
	handle(events.Event{Topic: "widget.clicked", Payload: 42})
	handle(events.Event{Topic: "widget.clicked", Payload: nil})
	if pm.State() != pages.TransitionNone || pm.TargetIndex() != -1 {
		t.Errorf("state = %v target = %d, want at rest", pm.State(), pm.TargetIndex())
	}
}
