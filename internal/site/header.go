package site

// DefaultScrollThreshold is the vertical offset past which the header is
// styled as scrolled.
const DefaultScrollThreshold = 50

// HeaderScroll keeps the header's scrolled class in sync with the viewport.
type HeaderScroll struct {
	header    ClassList
	viewport  Viewport
	threshold float64
}

// NewHeaderScroll binds the header and applies the current scroll position.
func NewHeaderScroll(header ClassList, viewport Viewport, threshold float64) *HeaderScroll {
	h := &HeaderScroll{header: header, viewport: viewport, threshold: threshold}
	h.Sync()
	return h
}

// Sync is the scroll event handler.
func (h *HeaderScroll) Sync() {
	if h.viewport.ScrollY() > h.threshold {
		h.header.AddClass(ClassScrolled)
		return
	}
	h.header.RemoveClass(ClassScrolled)
}
