// Package markup defines the element contract between the page HTML and the
// browser controllers, and checks documents against it.
package markup

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selectors bound by the browser bundle.
const (
	FooterYear    = "#current-year"
	Header        = ".header"
	MenuButton    = ".mobile-menu-button"
	MenuPanel     = ".mobile-menu"
	MenuLinks     = ".mobile-menu a"
	Services      = ".services"
	ServiceCards  = ".service-card"
	FilterButtons = ".filter-button"
	PortfolioItem = ".portfolio-item"
	Slides        = ".testimonial-slide"
	Dots          = ".dot"
	ContactForm   = "#contactForm"
	NameField     = "#name"
	EmailField    = "#email"
	ServiceField  = "#service"
	MessageField  = "#message"
	SubmitButton  = `#contactForm button[type="submit"]`
	Toast         = "#toast"
	ToastTitle    = "#toast .toast-title"
	ToastMessage  = "#toast .toast-message"
	ToastClose    = ".toast-close"
	Sections      = "section"
	InPageAnchors = `a[href^="#"]`

	// ContactEndpointAttr on the form selects real submission when set.
	ContactEndpointAttr = "data-contact-endpoint"
)

// Requirement is one selector the page must satisfy.
type Requirement struct {
	Name     string
	Selector string
	// Collection selectors may legitimately match nothing.
	Collection bool
}

// Contract lists every element the controllers bind, in mount order.
var Contract = []Requirement{
	{Name: "footer year", Selector: FooterYear},
	{Name: "header", Selector: Header},
	{Name: "menu button", Selector: MenuButton},
	{Name: "mobile menu", Selector: MenuPanel},
	{Name: "menu links", Selector: MenuLinks, Collection: true},
	{Name: "services", Selector: Services},
	{Name: "service cards", Selector: ServiceCards, Collection: true},
	{Name: "filter buttons", Selector: FilterButtons, Collection: true},
	{Name: "portfolio items", Selector: PortfolioItem, Collection: true},
	{Name: "testimonial slides", Selector: Slides, Collection: true},
	{Name: "testimonial dots", Selector: Dots, Collection: true},
	{Name: "contact form", Selector: ContactForm},
	{Name: "name field", Selector: NameField},
	{Name: "email field", Selector: EmailField},
	{Name: "service field", Selector: ServiceField},
	{Name: "message field", Selector: MessageField},
	{Name: "submit button", Selector: SubmitButton},
	{Name: "toast", Selector: Toast},
	{Name: "toast close", Selector: ToastClose},
	{Name: "sections", Selector: Sections, Collection: true},
}

// Report is the result of checking a document.
type Report struct {
	Missing  []string
	Warnings []string
}

// Err returns a non-nil error when the document cannot be mounted.
func (r Report) Err() error {
	if len(r.Missing) == 0 {
		return nil
	}
	return fmt.Errorf("markup: missing %s", strings.Join(r.Missing, "; "))
}

// Check parses an HTML document and verifies it against Contract.
func Check(r io.Reader) (Report, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return Report{}, fmt.Errorf("markup: parse document: %w", err)
	}
	return CheckDocument(doc), nil
}

// CheckDocument verifies an already parsed document.
func CheckDocument(doc *goquery.Document) Report {
	var report Report
	for _, req := range Contract {
		n := doc.Find(req.Selector).Length()
		switch {
		case n == 0 && !req.Collection:
			report.Missing = append(report.Missing, fmt.Sprintf("%s (%s)", req.Name, req.Selector))
		case n == 0:
			report.Warnings = append(report.Warnings, fmt.Sprintf("no %s (%s)", req.Name, req.Selector))
		}
	}

	slides, dots := doc.Find(Slides).Length(), doc.Find(Dots).Length()
	if slides != dots {
		report.Missing = append(report.Missing, fmt.Sprintf("testimonial dots: %d slides but %d dots", slides, dots))
	}

	doc.Find(PortfolioItem).Each(func(i int, s *goquery.Selection) {
		if _, ok := s.Attr("data-category"); !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("portfolio item %d has no data-category", i))
		}
	})
	doc.Find(FilterButtons).Each(func(i int, s *goquery.Selection) {
		if _, ok := s.Attr("data-filter"); !ok {
			report.Warnings = append(report.Warnings, fmt.Sprintf("filter button %d has no data-filter", i))
		}
	})
	ids := make(map[string]bool)
	doc.Find("[id]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("id")
		ids[id] = true
	})
	doc.Find(InPageAnchors).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		id := strings.TrimPrefix(href, "#")
		if id == "" {
			return
		}
		if !ids[id] {
			report.Warnings = append(report.Warnings, fmt.Sprintf("anchor %s has no target", href))
		}
	})
	return report
}
