// Package pages manages a horizontal strip of full-screen pages with
// drag/flick navigation, an exponential settle animation, vertical
// content scrolling, and a page indicator overlay.
package pages

import (
	kioskerrors "github.com/go-kiosk/kiosk/pkg/errors"
	"github.com/go-kiosk/kiosk/pkg/graphics"
	"github.com/go-kiosk/kiosk/pkg/widget"
)

// Page is one screen-sized entry in the page strip. Root is the page's
// widget subtree; Content, when set, is the child that vertical drags
// scroll.
type Page struct {
	name    string
	root    *widget.Widget
	content *widget.Widget

	index         int
	scrollOffset  float64
	contentHeight float64
}

// NewPage wraps a widget subtree as a page. Root must be non-nil.
func NewPage(name string, root *widget.Widget) (*Page, error) {
	const op = "pages.NewPage"
	if root == nil {
		return nil, kioskerrors.E(op, kioskerrors.KindNullParam, "nil root widget")
	}
	if name == "" {
		return nil, kioskerrors.E(op, kioskerrors.KindInvalidParam, "empty page name")
	}
	return &Page{name: name, root: root, index: -1}, nil
}

// Name returns the page's registration name.
func (p *Page) Name() string { return p.name }

// Root returns the page's widget subtree.
func (p *Page) Root() *widget.Widget { return p.root }

// Index returns the page's position in the strip, or -1 before AddPage.
func (p *Page) Index() int { return p.index }

// SetContent marks the child subtree that vertical drags scroll and the
// logical height of its content. Heights smaller than the viewport
// disable scrolling.
func (p *Page) SetContent(content *widget.Widget, contentHeight float64) {
	p.content = content
	p.contentHeight = contentHeight
	p.applyScroll()
}

// ScrollOffset returns the current scroll position in pixels.
func (p *Page) ScrollOffset() float64 { return p.scrollOffset }

// MaxScroll returns how far the content can scroll past the viewport.
func (p *Page) MaxScroll() float64 {
	max := p.contentHeight - p.root.Bounds().Height
	if max < 0 {
		return 0
	}
	return max
}

// Scroll moves the content by delta pixels, clamped to [0, MaxScroll].
// Positive delta scrolls the content up (reveals lower content).
func (p *Page) Scroll(delta float64) {
	p.scrollOffset += delta
	if p.scrollOffset < 0 {
		p.scrollOffset = 0
	}
	if max := p.MaxScroll(); p.scrollOffset > max {
		p.scrollOffset = max
	}
	p.applyScroll()
}

func (p *Page) applyScroll() {
	if p.content == nil {
		return
	}
	rel := p.content.RelativeBounds()
	p.content.SetRelativeBounds(graphics.RectFromLTWH(rel.X, -p.scrollOffset, rel.Width, rel.Height))
}
