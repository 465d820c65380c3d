package pages

import (
	"testing"

	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/events"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/store"
	"github.com/go-kiosk/kiosk/pkg/widget"
)

const frame = 1.0 / 60

// newStrip builds a manager with n pages on a 300x200 screen.
func newStrip(t *testing.T, n int) (*Manager, *events.Bus) {
	t.Helper()
	bus := events.NewBus()
	st := store.New(bus)
	m := NewManager(bus, st, graphics.Size{Width: 300, Height: 200}, TransitionConfig{})
	for i := 0; i < n; i++ {
		root := widget.New(pageName(i), widget.KindPage)
		root.SetLayoutMode(widget.LayoutAbsolute)
		p, err := NewPage(pageName(i), root)
		if err != nil {
			t.Fatalf("NewPage: %v", err)
		}
		if err := m.AddPage(p); err != nil {
			t.Fatalf("AddPage: %v", err)
		}
	}
	return m, bus
}

func pageName(i int) string {
	return "page-" + string(rune('0'+i))
}

// settle runs Update until the transition finishes, failing the test if
// it never converges.
func settle(t *testing.T, m *Manager) {
	t.Helper()
	for i := 0; i < 600; i++ {
		if m.State() == TransitionNone {
			return
		}
		m.Update(frame)
	}
	t.Fatalf("transition never settled: state=%v offset=%v", m.State(), m.Offset())
}

func assertInvariants(t *testing.T, m *Manager) {
	t.Helper()
	if n := m.PageCount(); n > 0 {
		if idx := m.CurrentIndex(); idx < 0 || idx >= n {
			t.Fatalf("current index %d out of range [0,%d)", idx, n)
		}
	}
	if m.State() == TransitionNone && m.TargetIndex() != -1 {
		t.Fatalf("target = %d while at rest, want -1", m.TargetIndex())
	}
}

func TestNewManagerDefaultsEmptyScreen(t *testing.T) {
	m := NewManager(nil, nil, graphics.Size{}, TransitionConfig{})
	if m.screen.Width != DefaultScreenWidth || m.screen.Height != DefaultScreenHeight {
		t.Fatalf("screen = %+v, want %gx%g defaults", m.screen, DefaultScreenWidth, DefaultScreenHeight)
	}

	root := widget.New("only", widget.KindPage)
	root.SetLayoutMode(widget.LayoutAbsolute)
	p, err := NewPage("only", root)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	if err := m.AddPage(p); err != nil {
		t.Fatalf("AddPage: %v", err)
	}

	// A drag normalized against the defaulted width stays finite.
	m.HandleDrag(-240, false)
	if got := m.Offset(); got != -240/DefaultScreenWidth {
		t.Errorf("offset = %v, want %v", got, -240/DefaultScreenWidth)
	}
}

func TestAddPageValidation(t *testing.T) {
	m, _ := newStrip(t, 1)
	if err := m.AddPage(nil); !kioskerrors.IsNullParam(err) {
		t.Errorf("AddPage(nil) error = %v, want null-param", err)
	}
	dup, _ := NewPage(pageName(0), widget.New("other-root", widget.KindPage))
	if err := m.AddPage(dup); !kioskerrors.IsAlreadyExists(err) {
		t.Errorf("duplicate AddPage error = %v, want already-exists", err)
	}
}

func TestWideDragCommitsPageChange(t *testing.T) {
	m, bus := newStrip(t, 3)
	changedTo := -1
	bus.Subscribe(TopicPageChanged, func(e events.Event) {
		changedTo = e.Payload.(int)
	})

	// 150px of 300px is 0.5 normalized, past the 0.3 commit threshold.
	m.HandleDrag(-75, false)
	if m.State() != TransitionDragging {
		t.Fatalf("state = %v, want dragging", m.State())
	}
	m.HandleDrag(-150, true)
	if m.State() != TransitionAnimating || m.TargetIndex() != 1 {
		t.Fatalf("state = %v target = %d, want animating toward 1", m.State(), m.TargetIndex())
	}

	settle(t, m)
	if m.CurrentIndex() != 1 {
		t.Errorf("current = %d, want 1", m.CurrentIndex())
	}
	if changedTo != 1 {
		t.Errorf("page.changed payload = %d, want 1", changedTo)
	}
	if m.Offset() != 0 {
		t.Errorf("offset after settle = %v, want 0", m.Offset())
	}
	assertInvariants(t, m)
}

func TestShortDragSnapsBack(t *testing.T) {
	m, bus := newStrip(t, 3)
	changed := 0
	bus.Subscribe(TopicPageChanged, func(events.Event) { changed++ })

	// 20px of 300px is ~0.067, under the commit threshold.
	m.HandleDrag(-20, false)
	m.HandleDrag(-20, true)
	settle(t, m)

	if m.CurrentIndex() != 0 {
		t.Errorf("current = %d, want unchanged 0", m.CurrentIndex())
	}
	if changed != 0 {
		t.Errorf("page.changed fired %d times on snap-back", changed)
	}
	assertInvariants(t, m)
}

func TestDragPastLastPageSnapsBack(t *testing.T) {
	m, _ := newStrip(t, 2)
	m.GotoPage(1)
	settle(t, m)

	// A wide drag toward a page that does not exist snaps back.
	m.HandleDrag(-200, false)
	m.HandleDrag(-200, true)
	settle(t, m)
	if m.CurrentIndex() != 1 {
		t.Errorf("current = %d, want 1", m.CurrentIndex())
	}
	assertInvariants(t, m)
}

func TestFlickCommitsWithShortDrag(t *testing.T) {
	m, _ := newStrip(t, 2)

	m.HandleDrag(-40, false)
	m.HandleDrag(-40, true) // distance alone snaps back
	m.HandleSwipe(true, 800)
	if m.TargetIndex() != 1 {
		t.Fatalf("target after flick = %d, want 1", m.TargetIndex())
	}
	settle(t, m)
	if m.CurrentIndex() != 1 {
		t.Errorf("current = %d, want 1 after flick", m.CurrentIndex())
	}
}

func TestSlowFlickDoesNotCommit(t *testing.T) {
	m, _ := newStrip(t, 2)

	m.HandleDrag(-40, false)
	m.HandleDrag(-40, true)
	m.HandleSwipe(true, 200)
	settle(t, m)
	if m.CurrentIndex() != 0 {
		t.Errorf("current = %d, want unchanged 0", m.CurrentIndex())
	}
}

func TestGotoPageOutOfRangeIsNoOp(t *testing.T) {
	m, _ := newStrip(t, 3)

	m.GotoPage(-1)
	if m.State() != TransitionNone || m.CurrentIndex() != 0 {
		t.Errorf("GotoPage(-1): state = %v current = %d, want untouched", m.State(), m.CurrentIndex())
	}
	m.GotoPage(3)
	if m.State() != TransitionNone || m.CurrentIndex() != 0 {
		t.Errorf("GotoPage(count): state = %v current = %d, want untouched", m.State(), m.CurrentIndex())
	}
	assertInvariants(t, m)
}

func TestGotoPageAnimatesAndPublishes(t *testing.T) {
	m, bus := newStrip(t, 3)
	changedTo := -1
	bus.Subscribe(TopicPageChanged, func(e events.Event) { changedTo = e.Payload.(int) })

	m.GotoPage(2)
	if m.State() != TransitionAnimating {
		t.Fatalf("state = %v, want animating", m.State())
	}
	settle(t, m)
	if m.CurrentIndex() != 2 || changedTo != 2 {
		t.Errorf("current = %d changed = %d, want 2/2", m.CurrentIndex(), changedTo)
	}

	// The swap also lands in the shared store.
	if got, ok := m.store.Get(StoreKeyCurrentPage); !ok || string(got) != "2" {
		t.Errorf("store %q = %q ok=%v, want \"2\"", StoreKeyCurrentPage, got, ok)
	}
}

func TestPageScrollClamps(t *testing.T) {
	root := widget.New("scrolly", widget.KindPage)
	root.SetLayoutMode(widget.LayoutAbsolute)
	root.SetBounds(graphics.RectFromLTWH(0, 0, 300, 200))
	content := widget.New("content", widget.KindContainer)
	root.AddChild(content)
	content.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 300, 500))

	p, err := NewPage("scrolly", root)
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	p.SetContent(content, 500)

	if got := p.MaxScroll(); got != 300 {
		t.Fatalf("MaxScroll = %v, want 300", got)
	}
	p.Scroll(-50)
	if got := p.ScrollOffset(); got != 0 {
		t.Errorf("scroll below zero = %v, want clamped to 0", got)
	}
	p.Scroll(120)
	if got := content.RelativeBounds().Y; got != -120 {
		t.Errorf("content Y = %v, want -120", got)
	}
	p.Scroll(1000)
	if got := p.ScrollOffset(); got != 300 {
		t.Errorf("scroll past end = %v, want clamped to 300", got)
	}
}

func TestHandleScrollMovesCurrentPageContent(t *testing.T) {
	m, _ := newStrip(t, 1)
	p := m.CurrentPage()
	content := widget.New("content", widget.KindContainer)
	p.Root().AddChild(content)
	content.SetRelativeBounds(graphics.RectFromLTWH(0, 0, 300, 600))
	p.SetContent(content, 600)

	// Finger moving up by 30px reveals lower content.
	m.HandleScroll(-30)
	if got := p.ScrollOffset(); got != 30 {
		t.Errorf("scroll offset = %v, want 30", got)
	}
}

func TestIndicatorHoldThenFade(t *testing.T) {
	m, _ := newStrip(t, 3)
	in := m.Indicator()

	m.HandleDrag(-50, false)
	if !in.Visible() || in.Opacity() != 1 {
		t.Fatal("indicator should be fully visible while dragging")
	}
	m.HandleDrag(-50, true)
	settle(t, m)

	// Fully visible through the 2s hold.
	for i := 0; i < 60; i++ {
		m.Update(frame)
	}
	if !in.Visible() || in.Opacity() != 1 {
		t.Fatalf("indicator faded during hold: visible=%v opacity=%v", in.Visible(), in.Opacity())
	}

	// Past hold plus fade it is gone.
	for i := 0; i < 180; i++ {
		m.Update(frame)
	}
	if in.Visible() {
		t.Errorf("indicator still visible after hold+fade, opacity=%v", in.Opacity())
	}
}

// dotSurface records indicator dots and ignores everything else.
type dotSurface struct {
	centers []graphics.Offset
	colors  []graphics.Color
}

func (s *dotSurface) FillRect(graphics.Rect, graphics.Color) error { return nil }
func (s *dotSurface) StrokeRect(graphics.Rect, graphics.Color, float64) error {
	return nil
}
func (s *dotSurface) FillCircle(center graphics.Offset, radius float64, color graphics.Color) error {
	s.centers = append(s.centers, center)
	s.colors = append(s.colors, color)
	return nil
}
func (s *dotSurface) DrawText(graphics.Offset, string, graphics.Color) error { return nil }

func TestRenderDrawsOneDotPerPage(t *testing.T) {
	m, _ := newStrip(t, 3)
	m.HandleDrag(-30, false)

	surface := &dotSurface{}
	if err := m.Render(surface); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(surface.centers) != 3 {
		t.Fatalf("dot count = %d, want 3", len(surface.centers))
	}
	// Dots are centered horizontally, 18px apart.
	if got := surface.centers[1].X; got != 150 {
		t.Errorf("middle dot X = %v, want 150", got)
	}
	if got := surface.centers[2].X - surface.centers[0].X; got != 36 {
		t.Errorf("dot span = %v, want 36", got)
	}
}

func TestRenderShiftsPagesByOffset(t *testing.T) {
	m, _ := newStrip(t, 2)
	m.HandleDrag(-150, false) // offset -0.5

	if err := m.Render(&dotSurface{}); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := m.pages[0].Root().Bounds().X; got != -150 {
		t.Errorf("current page X = %v, want -150", got)
	}
	if got := m.pages[1].Root().Bounds().X; got != 150 {
		t.Errorf("next page X = %v, want 150", got)
	}
}
