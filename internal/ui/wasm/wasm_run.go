//go:build js && wasm

package wasm

import (
	"os"
	"syscall/js"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/internal/markup"
	"github.com/Its-donkey/cloudhub-site/internal/site"
	"github.com/Its-donkey/cloudhub-site/logging"
)

var (
	// Document references the global browser document for DOM interactions.
	Document js.Value
	// handlers keeps bound callbacks alive for the lifetime of the page.
	handlers []js.Func
)

// RunApp mounts the page controllers, binds their events and blocks forever.
func RunApp() {
	done := make(chan struct{})
	window := js.Global()
	Document = window.Get("document")
	if Document.Get("readyState").String() == "loading" {
		ready := make(chan struct{})
		listen(Document, "DOMContentLoaded", func(js.Value) { close(ready) })
		<-ready
	}
	logger := logging.New("site", logging.INFO, os.Stdout)

	exposeSendEmail(window)

	sched := browserScheduler{window: window}
	deps := site.Deps{
		Scheduler: sched,
		Observer:  newIntersectionObserver(window),
		Viewport:  viewport{window: window},
		Logger:    logger,
	}
	if formEl := query(markup.ContactForm); formEl != nil {
		if endpoint := formEl.attr(markup.ContactEndpointAttr); endpoint != "" {
			deps.Submitter = contact.NewHTTPSubmitter(endpoint, nil, sched, logger)
			logger.Info("contact", "contact form posts to endpoint", map[string]any{"endpoint": endpoint})
		}
	}

	collected := collectElements()
	page, err := site.Mount(collected, deps)
	bindEvents(window, page, collected)
	if err != nil {
		window.Get("console").Call("error", "site not mounted", err.Error())
	}
	<-done
}

// bindEvents routes DOM events to whatever controllers Mount produced.
func bindEvents(window js.Value, page *site.Page, collected site.Elements) {
	if page.Header != nil {
		listen(window, "scroll", func(js.Value) { page.Header.Sync() })
	}
	if page.Menu != nil {
		if button := query(markup.MenuButton); button != nil {
			listen(button.v, "click", func(js.Value) { page.Menu.Toggle() })
		}
		for _, link := range queryAll(markup.MenuLinks) {
			listen(link.v, "click", func(js.Value) { page.Menu.Close() })
		}
	}
	if page.Portfolio != nil {
		for i, button := range queryAll(markup.FilterButtons) {
			index := i
			listen(button.v, "click", func(js.Value) { page.Portfolio.Select(index) })
		}
	}
	if page.Carousel != nil {
		for i, dot := range queryAll(markup.Dots) {
			index := i
			listen(dot.v, "click", func(js.Value) { page.Carousel.JumpTo(index) })
		}
	}
	if page.Contact != nil {
		if formEl := query(markup.ContactForm); formEl != nil {
			listen(formEl.v, "submit", func(event js.Value) {
				event.Call("preventDefault")
				page.Contact.Submit()
			})
		}
		if closeButton, ok := collected.ToastClose.(*element); ok {
			listen(closeButton.v, "click", func(js.Value) { page.Toast.Hide() })
		}
	}
	if page.Anchors != nil {
		for _, anchor := range queryAll(markup.InPageAnchors) {
			link := anchor
			listen(link.v, "click", func(event js.Value) {
				event.Call("preventDefault")
				page.Anchors.Navigate(link.attr("href"))
			})
		}
	}
}

func listen(target js.Value, event string, fn func(event js.Value)) {
	handler := js.FuncOf(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		fn(ev)
		return nil
	})
	handlers = append(handlers, handler)
	target.Call("addEventListener", event, handler)
}

// exposeSendEmail installs the global mailto helper used by inline markup.
func exposeSendEmail(window js.Value) {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		window.Get("location").Set("href", contact.DefaultMailto())
		return nil
	})
	handlers = append(handlers, fn)
	window.Set("sendEmail", fn)
}
