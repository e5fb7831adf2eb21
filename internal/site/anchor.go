package site

import "strings"

// Resolver finds in-page anchor targets by id.
type Resolver interface {
	Lookup(id string) (Measurer, bool)
}

// AnchorScroller turns in-page links into smooth scrolls that stop below the
// fixed header.
type AnchorScroller struct {
	header   Measurer
	viewport Viewport
	targets  Resolver
}

// NewAnchorScroller binds the header used for the offset.
func NewAnchorScroller(header Measurer, viewport Viewport, targets Resolver) *AnchorScroller {
	return &AnchorScroller{header: header, viewport: viewport, targets: targets}
}

// Navigate handles a click on a link to href ("#id"). It reports whether a
// scroll was started. Bare "#" and unknown ids are ignored.
func (a *AnchorScroller) Navigate(href string) bool {
	if href == "#" || !strings.HasPrefix(href, "#") {
		return false
	}
	target, ok := a.targets.Lookup(strings.TrimPrefix(href, "#"))
	if !ok {
		return false
	}
	top := target.BoundingTop() + a.viewport.ScrollY() - a.header.OffsetHeight()
	a.viewport.ScrollTo(top)
	return true
}
