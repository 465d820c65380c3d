package pages

import (
	"fmt"
	"strconv"
	"time"

	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/events"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/store"
)

// TopicPageChanged is published on the event bus after a page swap
// finalizes. The payload is the new page index.
const TopicPageChanged = "page.changed"

// StoreKeyCurrentPage is the shared-state key the manager writes the
// current page index to after every swap.
const StoreKeyCurrentPage = "page.current"

// TransitionState tracks what the page strip is currently doing.
type TransitionState int

const (
	// TransitionNone means the strip is at rest on the current page.
	TransitionNone TransitionState = iota
	// TransitionDragging means a finger is moving the strip.
	TransitionDragging
	// TransitionAnimating means the strip is settling toward a target.
	TransitionAnimating
)

func (s TransitionState) String() string {
	switch s {
	case TransitionNone:
		return "none"
	case TransitionDragging:
		return "dragging"
	case TransitionAnimating:
		return "animating"
	default:
		return fmt.Sprintf("TransitionState(%d)", int(s))
	}
}

// TransitionConfig holds the navigation thresholds and animation
// constants. Zero values fall back to the documented defaults.
type TransitionConfig struct {
	// CommitThreshold is the normalized drag distance beyond which a
	// completed drag commits a page change. Default 0.3.
	CommitThreshold float64
	// VelocityThreshold is the flick speed in px/s that commits a page
	// change regardless of drag distance. Default 500.
	VelocityThreshold float64
	// AnimationRate is the exponential settle rate constant in 1/s.
	// Default 5.
	AnimationRate float64
	// Epsilon is the normalized offset below which a settle animation
	// finalizes. Default 0.01.
	Epsilon float64
	// IndicatorHold is how long the page indicator stays fully visible
	// after a drag ends. Default 2s.
	IndicatorHold time.Duration
}

// Default transition constants.
const (
	DefaultCommitThreshold   = 0.3
	DefaultVelocityThreshold = 500.0
	DefaultAnimationRate     = 5.0
	DefaultEpsilon           = 0.01
	DefaultIndicatorHold     = 2 * time.Second
)

// Default screen geometry for a landscape kiosk panel, used when
// NewManager receives a non-positive dimension.
const (
	DefaultScreenWidth  = 800.0
	DefaultScreenHeight = 480.0
)

// DefaultTransitionConfig returns the documented default constants.
func DefaultTransitionConfig() TransitionConfig {
	return TransitionConfig{
		CommitThreshold:   DefaultCommitThreshold,
		VelocityThreshold: DefaultVelocityThreshold,
		AnimationRate:     DefaultAnimationRate,
		Epsilon:           DefaultEpsilon,
		IndicatorHold:     DefaultIndicatorHold,
	}
}

func (c TransitionConfig) withDefaults() TransitionConfig {
	if c.CommitThreshold <= 0 {
		c.CommitThreshold = DefaultCommitThreshold
	}
	if c.VelocityThreshold <= 0 {
		c.VelocityThreshold = DefaultVelocityThreshold
	}
	if c.AnimationRate <= 0 {
		c.AnimationRate = DefaultAnimationRate
	}
	if c.Epsilon <= 0 {
		c.Epsilon = DefaultEpsilon
	}
	if c.IndicatorHold <= 0 {
		c.IndicatorHold = DefaultIndicatorHold
	}
	return c
}

// Manager owns the page strip: a list of pages, the current index, and
// the drag/animate state machine that moves between them.
//
// Two invariants hold at every point between calls: the current index
// is always valid once a page exists, and the target index is -1
// whenever the transition state is TransitionNone.
type Manager struct {
	cfg       TransitionConfig
	bus       *events.Bus
	store     *store.Store
	screen    graphics.Size
	pages     []*Page
	names     map[string]*Page
	current   int
	target    int
	state     TransitionState
	offset    float64
	settleTo  float64
	indicator *Indicator
}

// NewManager creates a page manager for a screen of the given size.
// Non-positive dimensions fall back to the default panel geometry, so
// drag offsets normalized against the width stay finite. The bus and
// store may be nil; pages then run without a shared context.
func NewManager(bus *events.Bus, st *store.Store, screen graphics.Size, cfg TransitionConfig) *Manager {
	cfg = cfg.withDefaults()
	if screen.Width <= 0 {
		screen.Width = DefaultScreenWidth
	}
	if screen.Height <= 0 {
		screen.Height = DefaultScreenHeight
	}
	return &Manager{
		cfg:       cfg,
		bus:       bus,
		store:     st,
		screen:    screen,
		names:     make(map[string]*Page),
		target:    -1,
		indicator: NewIndicator(cfg.IndicatorHold),
	}
}

// Config returns the active transition constants.
func (m *Manager) Config() TransitionConfig { return m.cfg }

// Indicator returns the page indicator overlay.
func (m *Manager) Indicator() *Indicator { return m.indicator }

// PageCount returns the number of registered pages.
func (m *Manager) PageCount() int { return len(m.pages) }

// CurrentIndex returns the index of the resting page.
func (m *Manager) CurrentIndex() int { return m.current }

// CurrentPage returns the resting page, or nil when no pages exist.
func (m *Manager) CurrentPage() *Page {
	if len(m.pages) == 0 {
		return nil
	}
	return m.pages[m.current]
}

// TargetIndex returns the settle target, or -1 outside a transition.
func (m *Manager) TargetIndex() int { return m.target }

// State returns the transition state.
func (m *Manager) State() TransitionState { return m.state }

// Offset returns the normalized transition offset in [-1, 1]. Negative
// values slide toward the next page.
func (m *Manager) Offset() float64 { return m.offset }

// PageByName returns a registered page, or nil when absent.
func (m *Manager) PageByName(name string) *Page { return m.names[name] }

// AddPage appends a page to the strip, attaches the shared bus/store
// context to its subtree, and sizes its root to the screen.
func (m *Manager) AddPage(p *Page) error {
	const op = "pages.Manager.AddPage"
	if p == nil {
		return kioskerrors.E(op, kioskerrors.KindNullParam, "nil page")
	}
	if _, ok := m.names[p.name]; ok {
		return kioskerrors.Ef(op, kioskerrors.KindAlreadyExists, "page %q already registered", p.name)
	}
	if err := p.root.AttachContext(m.bus, m.store); err != nil {
		return err
	}
	if err := p.root.SetBounds(graphics.RectFromLTWH(0, 0, m.screen.Width, m.screen.Height)); err != nil {
		p.root.DetachContext()
		return err
	}
	p.index = len(m.pages)
	m.pages = append(m.pages, p)
	m.names[p.name] = p
	return nil
}

// GotoPage starts an animated transition to the given index.
// Out-of-range indices are silently ignored.
func (m *Manager) GotoPage(index int) {
	if index < 0 || index >= len(m.pages) {
		return
	}
	if index == m.current && m.state == TransitionNone {
		return
	}
	m.target = index
	m.settleTo = settleDirection(m.current, index)
	m.state = TransitionAnimating
	m.indicator.Show()
}

// HandleDrag feeds a horizontal drag into the strip. The offset is the
// total displacement in pixels from the drag start; is_complete style
// semantics apply: while false the strip follows the finger, on true
// the drag either commits to a neighbor or snaps back.
func (m *Manager) HandleDrag(offsetPx float64, complete bool) {
	if len(m.pages) == 0 {
		return
	}
	norm := graphics.Clamp(offsetPx/m.screen.Width, -1, 1)
	if !complete {
		m.state = TransitionDragging
		m.offset = norm
		m.indicator.Show()
		return
	}
	m.offset = norm
	m.finishDrag()
}

// HandleSwipe applies a flick to the strip. A flick past the velocity
// threshold commits a page change in the direction of the current
// offset even when the drag distance alone would snap back.
func (m *Manager) HandleSwipe(horizontal bool, velocity float64) {
	if !horizontal || len(m.pages) == 0 || m.offset == 0 {
		return
	}
	if abs(velocity) < m.cfg.VelocityThreshold {
		return
	}
	if target, ok := m.neighborToward(m.offset); ok {
		m.target = target
		m.settleTo = settleDirection(m.current, target)
		m.state = TransitionAnimating
		m.indicator.HoldThenFade()
	}
}

func (m *Manager) finishDrag() {
	if abs(m.offset) > m.cfg.CommitThreshold {
		if target, ok := m.neighborToward(m.offset); ok {
			m.target = target
			m.settleTo = settleDirection(m.current, target)
			m.state = TransitionAnimating
			m.indicator.HoldThenFade()
			return
		}
	}
	// Snap back to the unchanged page.
	m.target = m.current
	m.settleTo = 0
	m.state = TransitionAnimating
	m.indicator.HoldThenFade()
}

// neighborToward resolves the page the offset direction points at.
// Negative offsets slide toward the next page.
func (m *Manager) neighborToward(offset float64) (int, bool) {
	switch {
	case offset < 0 && m.current+1 < len(m.pages):
		return m.current + 1, true
	case offset > 0 && m.current-1 >= 0:
		return m.current - 1, true
	default:
		return 0, false
	}
}

// HandleScroll feeds a vertical drag delta into the current page's
// content. Negative deltas (finger moving up) reveal lower content.
func (m *Manager) HandleScroll(delta float64) {
	if p := m.CurrentPage(); p != nil {
		p.Scroll(-delta)
	}
}

// Update advances the settle animation and the indicator by dt seconds.
// Call once per frame.
func (m *Manager) Update(dt float64) {
	m.indicator.Update(dt)
	if m.state != TransitionAnimating {
		return
	}
	step := m.cfg.AnimationRate * dt
	if step > 1 {
		step = 1
	}
	m.offset += (m.settleTo - m.offset) * step
	if abs(m.offset-m.settleTo) >= m.cfg.Epsilon {
		return
	}
	m.finalize()
}

func (m *Manager) finalize() {
	changed := m.target != m.current
	if m.target >= 0 {
		m.current = m.target
	}
	m.target = -1
	m.offset = 0
	m.settleTo = 0
	m.state = TransitionNone
	m.indicator.HoldThenFade()
	if !changed {
		return
	}
	if m.store != nil {
		m.store.Set(StoreKeyCurrentPage, []byte(strconv.Itoa(m.current)))
	}
	if m.bus != nil {
		m.bus.Publish(TopicPageChanged, m.current)
	}
}

// Render draws the visible pages and the indicator overlay. During a
// transition the current page and the neighbor in the offset direction
// are drawn shifted by offset * screen width.
func (m *Manager) Render(surface graphics.Surface) error {
	if len(m.pages) == 0 {
		return nil
	}
	shift := m.offset * m.screen.Width
	if err := m.renderPageAt(surface, m.current, shift); err != nil {
		return err
	}
	switch {
	case m.offset < 0 && m.current+1 < len(m.pages):
		if err := m.renderPageAt(surface, m.current+1, shift+m.screen.Width); err != nil {
			return err
		}
	case m.offset > 0 && m.current-1 >= 0:
		if err := m.renderPageAt(surface, m.current-1, shift-m.screen.Width); err != nil {
			return err
		}
	}
	return m.indicator.Render(surface, m.screen, len(m.pages), m.current, m.target, m.offset)
}

func (m *Manager) renderPageAt(surface graphics.Surface, index int, x float64) error {
	root := m.pages[index].root
	if err := root.SetBounds(graphics.RectFromLTWH(x, 0, m.screen.Width, m.screen.Height)); err != nil {
		return err
	}
	return root.Render(surface)
}

// settleDirection picks the full-offset value the strip animates toward
// when moving from one index to another.
func settleDirection(from, to int) float64 {
	switch {
	case to > from:
		return -1
	case to < from:
		return 1
	default:
		return 0
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
