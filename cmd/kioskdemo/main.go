// Package main runs a small demo kiosk: a weather page and a settings
// page on a swipeable strip, rendered through the ebiten backend.
package main

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/colornames"

	"github.com/go-kiosk/kiosk/pkg/backend"
	"github.com/go-kiosk/kiosk/pkg/config"
	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/events"
	"github.com/go-kiosk/kiosk/pkg/gestures"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/manager"
	"github.com/go-kiosk/kiosk/pkg/pages"
	"github.com/go-kiosk/kiosk/pkg/store"
	"github.com/go-kiosk/kiosk/pkg/widget"
)

type game struct {
	mgr     *manager.Manager
	surface *backend.Surface
	input   *backend.InputSource
	samples []gestures.Sample
	screen  graphics.Size
	last    time.Time
}

func (g *game) Update() error {
	now := time.Now()
	if g.last.IsZero() {
		g.last = now
	}
	dt := now.Sub(g.last).Seconds()
	g.last = now

	g.samples = g.input.Poll(now, g.samples[:0])
	for _, s := range g.samples {
		g.mgr.HandleSample(s)
	}
	g.mgr.Update(now, dt)
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.surface.SetTarget(screen)
	if err := g.mgr.Render(g.surface); err != nil {
		var ke *kioskerrors.KioskError
		if errors.As(err, &ke) {
			kioskerrors.Report(ke)
		} else {
			fmt.Fprintf(os.Stderr, "kioskdemo: render: %v\n", err)
		}
	}
}

func (g *game) Layout(int, int) (int, int) {
	return int(g.screen.Width), int(g.screen.Height)
}

func main() {
	cfg, err := config.Resolve(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "kioskdemo: %v\n", err)
		os.Exit(1)
	}

	bus := events.NewBus()
	st := store.New(bus)
	factory := widget.NewFactory(cfg.WidgetBudget)

	pm := pages.NewManager(bus, st, cfg.Screen, cfg.Transitions)
	mgr := manager.NewManager(bus, st, cfg.Gestures)
	mgr.AttachPages(pm)

	if err := buildPages(factory, pm); err != nil {
		fmt.Fprintf(os.Stderr, "kioskdemo: %v\n", err)
		os.Exit(1)
	}

	// Navigation wiring: the settings button jumps to the settings
	// page, its back button returns home.
	bus.Subscribe(manager.TopicWidgetClicked, navigationHandler(pm))

	g := &game{
		mgr:     mgr,
		surface: backend.NewSurface(nil),
		input:   backend.NewInputSource(),
		screen:  cfg.Screen,
	}
	ebiten.SetWindowSize(int(cfg.Screen.Width), int(cfg.Screen.Height))
	ebiten.SetWindowTitle("kiosk demo")
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "kioskdemo: %v\n", err)
		os.Exit(1)
	}
}

// navigationHandler routes widget click events to page jumps. Click
// payloads are widget ids; anything else is ignored.
func navigationHandler(pm *pages.Manager) events.Handler {
	return func(e events.Event) {
		id, ok := e.Payload.(string)
		if !ok {
			return
		}
		switch id {
		case "open-settings":
			pm.GotoPage(1)
		case "back-home":
			pm.GotoPage(0)
		}
	}
}

func buildPages(factory *widget.Factory, pm *pages.Manager) error {
	weather, err := buildWeatherPage(factory)
	if err != nil {
		return err
	}
	settings, err := buildSettingsPage(factory)
	if err != nil {
		return err
	}
	for _, p := range []*pages.Page{weather, settings} {
		if err := pm.AddPage(p); err != nil {
			return err
		}
	}
	return nil
}

func buildWeatherPage(factory *widget.Factory) (*pages.Page, error) {
	root, err := factory.New("page", "weather")
	if err != nil {
		return nil, err
	}
	style := root.EnsureOwnStyle()
	style.Background = fromName(colornames.Midnightblue)
	style.Padding = 16
	style.Spacing = 12

	title, err := factory.New("label", "weather-title")
	if err != nil {
		return nil, err
	}
	title.SetText("Right Now")
	title.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 28))

	reading, err := factory.New("label", "weather-reading")
	if err != nil {
		return nil, err
	}
	reading.SetText("72F  Partly Cloudy")
	reading.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 60))
	reading.EnsureOwnStyle().Background = fromName(colornames.Steelblue)

	open, err := factory.New("button", "open-settings")
	if err != nil {
		return nil, err
	}
	open.SetText("Settings")
	open.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 44))
	open.EnsureOwnStyle().Background = fromName(colornames.Darkorange)

	for _, child := range []*widget.Widget{title, reading, open} {
		if err := root.AddChild(child); err != nil {
			return nil, err
		}
	}
	return pages.NewPage("weather", root)
}

func buildSettingsPage(factory *widget.Factory) (*pages.Page, error) {
	root, err := factory.New("page", "settings")
	if err != nil {
		return nil, err
	}
	style := root.EnsureOwnStyle()
	style.Background = fromName(colornames.Darkslategray)
	style.Padding = 16
	style.Spacing = 12

	title, err := factory.New("label", "settings-title")
	if err != nil {
		return nil, err
	}
	title.SetText("Settings")
	title.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 28))

	back, err := factory.New("button", "back-home")
	if err != nil {
		return nil, err
	}
	back.SetText("Back")
	back.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 0, 44))
	back.EnsureOwnStyle().Background = fromName(colornames.Seagreen)

	for _, child := range []*widget.Widget{title, back} {
		if err := root.AddChild(child); err != nil {
			return nil, err
		}
	}
	return pages.NewPage("settings", root)
}

func fromName(c color.RGBA) graphics.Color {
	return graphics.RGBA8(c.R, c.G, c.B, c.A)
}
