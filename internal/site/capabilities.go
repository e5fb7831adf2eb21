// Package site holds the interactive behaviour of the marketing page as plain
// Go controllers. Controllers never touch the DOM directly; they are bound to
// the small capability interfaces below so they can run against the browser
// (see internal/ui/wasm) or against in-memory fakes (see site/sitetest).
package site

import (
	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/internal/schedule"
)

// Class names applied by the controllers. The stylesheet keys off these.
const (
	ClassScrolled = "scrolled"
	ClassActive   = "active"
	ClassShow     = "show"
	ClassMenuOpen = "menu-open"
	ClassAnimated = "animated"
	ClassLoading  = "loading"
	ClassError    = "error"
)

// ClassList mirrors the element classList operations the controllers use.
type ClassList interface {
	AddClass(name string)
	RemoveClass(name string)
	ToggleClass(name string) bool
	HasClass(name string) bool
}

// Displayer controls the CSS display property of an element.
type Displayer interface {
	SetDisplay(value string)
}

// DataReader reads a data-* attribute.
type DataReader interface {
	Data(key string) string
}

// Disabler toggles the disabled property of a control.
type Disabler interface {
	SetDisabled(disabled bool)
}

// TextSetter replaces the text content of an element.
type TextSetter interface {
	SetText(text string)
}

// Measurer exposes the geometry used for anchor scrolling.
type Measurer interface {
	OffsetHeight() float64
	BoundingTop() float64
}

// Viewport is the scrollable window.
type Viewport interface {
	ScrollY() float64
	// ScrollTo performs an animated scroll to the absolute offset.
	ScrollTo(top float64)
}

// FilterItem is a portfolio tile.
type FilterItem interface {
	ClassList
	Displayer
	DataReader
}

// FilterButton is a portfolio category button.
type FilterButton interface {
	ClassList
	DataReader
}

// SubmitControl is the contact form submit button.
type SubmitControl interface {
	ClassList
	Disabler
}

// ContactForm reads and clears the contact form fields.
type ContactForm interface {
	Values() contact.Fields
	Reset()
}

// Scheduler runs callbacks on the page's event loop.
type Scheduler = schedule.Scheduler

// Timer is a handle to a scheduled callback.
type Timer = schedule.Timer

// VisibilityObserver reports when targets enter the viewport.
//
// The callback is invoked every time the target crosses into view at the
// observer's intersection threshold, until Unobserve is called.
type VisibilityObserver interface {
	Observe(target any, onVisible func())
	Unobserve(target any)
}
