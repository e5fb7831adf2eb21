package site

import (
	"fmt"
	"time"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/logging"
)

// MissingElementError reports a required page element that the markup does
// not provide. It is fatal: nothing after the missing element is bound.
type MissingElementError struct {
	Name string
}

func (e *MissingElementError) Error() string {
	return fmt.Sprintf("site: required element %q not found", e.Name)
}

// HeaderElement is the fixed page header.
type HeaderElement interface {
	ClassList
	Measurer
}

// Elements are the page elements the controllers bind to. Collections may
// be empty; single elements are required. Services and ToastClose are only
// event targets: the browser binding routes close clicks to Toast.Hide.
type Elements struct {
	FooterYear    TextSetter
	Header        HeaderElement
	MenuButton    ClassList
	MenuPanel     ClassList
	Body          ClassList
	Services      any
	ServiceCards  []ClassList
	FilterButtons []FilterButton
	Portfolio     []FilterItem
	Slides        []ClassList
	Dots          []ClassList
	Form          ContactForm
	SubmitButton  SubmitControl
	Toast         ClassList
	ToastTitle    TextSetter
	ToastMessage  TextSetter
	ToastClose    any
	Sections      []ClassList
	Anchors       Resolver
}

// Options tunes the controllers. The zero value of a field selects its
// default.
type Options struct {
	ScrollThreshold  float64
	StaggerStep      time.Duration
	FilterShowDelay  time.Duration
	FilterHideDelay  time.Duration
	CarouselInterval time.Duration
	ToastDuration    time.Duration
}

func (o Options) withDefaults() Options {
	if o.ScrollThreshold == 0 {
		o.ScrollThreshold = DefaultScrollThreshold
	}
	if o.StaggerStep == 0 {
		o.StaggerStep = DefaultStaggerStep
	}
	if o.FilterShowDelay == 0 {
		o.FilterShowDelay = DefaultFilterShowDelay
	}
	if o.FilterHideDelay == 0 {
		o.FilterHideDelay = DefaultFilterHideDelay
	}
	if o.CarouselInterval == 0 {
		o.CarouselInterval = DefaultCarouselInterval
	}
	if o.ToastDuration == 0 {
		o.ToastDuration = DefaultToastDuration
	}
	return o
}

// Deps are the runtime services the controllers share.
type Deps struct {
	Scheduler Scheduler
	Observer  VisibilityObserver
	Viewport  Viewport
	// Submitter delivers contact inquiries. Nil selects the simulated path.
	Submitter contact.Submitter
	Logger    *logging.Logger
	Now       func() time.Time
	Options   Options
}

// Page holds every mounted controller. The browser binding routes events to
// these handles.
type Page struct {
	Header    *HeaderScroll
	Menu      *MobileMenu
	Services  *Reveal
	Portfolio *Portfolio
	Carousel  *Carousel
	Toast     *Toast
	Contact   *ContactController
	Anchors   *AnchorScroller
	Sections  *Reveal
}

// Mount constructs the controllers in page order. A missing required element
// stops mounting at that point and is returned as *MissingElementError along
// with the controllers mounted so far.
func Mount(el Elements, deps Deps) (*Page, error) {
	opts := deps.Options.withDefaults()
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	submitter := deps.Submitter
	if submitter == nil {
		submitter = contact.NewSimulatedSubmitter(deps.Scheduler, deps.Logger, contact.DefaultSimulatedLatency)
	}

	page := &Page{}
	if el.FooterYear == nil {
		return page, missing(deps.Logger, "current-year")
	}
	SetFooterYear(el.FooterYear, now())

	if el.Header == nil {
		return page, missing(deps.Logger, "header")
	}
	page.Header = NewHeaderScroll(el.Header, deps.Viewport, opts.ScrollThreshold)

	switch {
	case el.MenuButton == nil:
		return page, missing(deps.Logger, "mobile-menu-button")
	case el.MenuPanel == nil:
		return page, missing(deps.Logger, "mobile-menu")
	case el.Body == nil:
		return page, missing(deps.Logger, "body")
	}
	page.Menu = NewMobileMenu(el.MenuButton, el.MenuPanel, el.Body)

	if el.Services == nil {
		return page, missing(deps.Logger, "services")
	}
	page.Services = NewStaggerReveal(deps.Observer, el.Services, el.ServiceCards, ClassShow, opts.StaggerStep, deps.Scheduler)

	page.Portfolio = NewPortfolio(el.FilterButtons, el.Portfolio, deps.Scheduler, opts.FilterShowDelay, opts.FilterHideDelay)

	carousel, err := NewCarousel(el.Slides, el.Dots, deps.Scheduler, opts.CarouselInterval)
	if err != nil {
		if deps.Logger != nil {
			deps.Logger.Error("site", "testimonials not mounted", err, nil)
		}
		return page, err
	}
	carousel.Start()
	page.Carousel = carousel

	switch {
	case el.Form == nil:
		return page, missing(deps.Logger, "contactForm")
	case el.SubmitButton == nil:
		return page, missing(deps.Logger, "contactForm submit button")
	case el.Toast == nil:
		return page, missing(deps.Logger, "toast")
	case el.ToastClose == nil:
		return page, missing(deps.Logger, "toast-close")
	}
	page.Toast = NewToast(el.Toast, el.ToastTitle, el.ToastMessage, deps.Scheduler, opts.ToastDuration)
	page.Contact = NewContactController(el.Form, el.SubmitButton, submitter, page.Toast)

	if el.Anchors == nil {
		return page, missing(deps.Logger, "document")
	}
	page.Anchors = NewAnchorScroller(el.Header, deps.Viewport, el.Anchors)
	page.Sections = NewSectionReveal(deps.Observer, el.Sections, ClassAnimated)

	if deps.Logger != nil {
		deps.Logger.Info("site", "page mounted", map[string]any{
			"portfolioItems": len(el.Portfolio),
			"slides":         len(el.Slides),
			"sections":       len(el.Sections),
		})
	}
	return page, nil
}

func missing(logger *logging.Logger, name string) error {
	err := &MissingElementError{Name: name}
	if logger != nil {
		logger.Error("site", "page not mounted", err, nil)
	}
	return err
}
