//go:build js && wasm

package wasm

import (
	"syscall/js"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/internal/markup"
	"github.com/Its-donkey/cloudhub-site/internal/site"
)

// element adapts a DOM node to the site capability interfaces. Every query
// returns a fresh wrapper; the visibility observer keys on the pointer, so
// two controllers watching the same node stay independent.
type element struct {
	v js.Value
}

func wrap(v js.Value) *element {
	if !v.Truthy() {
		return nil
	}
	return &element{v: v}
}

func (e *element) AddClass(name string)    { e.v.Get("classList").Call("add", name) }
func (e *element) RemoveClass(name string) { e.v.Get("classList").Call("remove", name) }

func (e *element) ToggleClass(name string) bool {
	return e.v.Get("classList").Call("toggle", name).Bool()
}

func (e *element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *element) SetDisplay(value string)   { e.v.Get("style").Set("display", value) }
func (e *element) SetDisabled(disabled bool) { e.v.Set("disabled", disabled) }
func (e *element) SetText(text string)       { e.v.Set("textContent", text) }

func (e *element) Data(key string) string {
	value := e.v.Get("dataset").Get(key)
	if value.Type() != js.TypeString {
		return ""
	}
	return value.String()
}

func (e *element) OffsetHeight() float64 { return e.v.Get("offsetHeight").Float() }

func (e *element) BoundingTop() float64 {
	return e.v.Call("getBoundingClientRect").Get("top").Float()
}

func (e *element) attr(name string) string {
	value := e.v.Call("getAttribute", name)
	if value.Type() != js.TypeString {
		return ""
	}
	return value.String()
}

// query returns the first match for selector, or nil.
func query(selector string) *element {
	return wrap(Document.Call("querySelector", selector))
}

func queryAll(selector string) []*element {
	list := Document.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]*element, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, &element{v: list.Index(i)})
	}
	return out
}

type viewport struct {
	window js.Value
}

func (w viewport) ScrollY() float64 { return w.window.Get("scrollY").Float() }

func (w viewport) ScrollTo(top float64) {
	w.window.Call("scrollTo", map[string]any{"top": top, "behavior": "smooth"})
}

// form reads the contact fields by id.
type form struct {
	el *element
}

func (f form) Values() contact.Fields {
	return contact.Fields{
		Name:    fieldValue(markup.NameField),
		Email:   fieldValue(markup.EmailField),
		Service: fieldValue(markup.ServiceField),
		Message: fieldValue(markup.MessageField),
	}
}

func (f form) Reset() { f.el.v.Call("reset") }

func fieldValue(selector string) string {
	field := query(selector)
	if field == nil {
		return ""
	}
	return field.v.Get("value").String()
}

type resolver struct{}

func (resolver) Lookup(id string) (site.Measurer, bool) {
	target := wrap(Document.Call("getElementById", id))
	if target == nil {
		return nil, false
	}
	return target, true
}

// collectElements resolves the markup contract against the live document.
// Missing single elements are left as nil interfaces so Mount can name them.
func collectElements() site.Elements {
	var el site.Elements
	if e := query(markup.FooterYear); e != nil {
		el.FooterYear = e
	}
	if e := query(markup.Header); e != nil {
		el.Header = e
	}
	if e := query(markup.MenuButton); e != nil {
		el.MenuButton = e
	}
	if e := query(markup.MenuPanel); e != nil {
		el.MenuPanel = e
	}
	if e := wrap(Document.Get("body")); e != nil {
		el.Body = e
	}
	if e := query(markup.Services); e != nil {
		el.Services = e
	}
	for _, e := range queryAll(markup.ServiceCards) {
		el.ServiceCards = append(el.ServiceCards, e)
	}
	for _, e := range queryAll(markup.FilterButtons) {
		el.FilterButtons = append(el.FilterButtons, e)
	}
	for _, e := range queryAll(markup.PortfolioItem) {
		el.Portfolio = append(el.Portfolio, e)
	}
	for _, e := range queryAll(markup.Slides) {
		el.Slides = append(el.Slides, e)
	}
	for _, e := range queryAll(markup.Dots) {
		el.Dots = append(el.Dots, e)
	}
	if e := query(markup.ContactForm); e != nil {
		el.Form = form{el: e}
	}
	if e := query(markup.SubmitButton); e != nil {
		el.SubmitButton = e
	}
	if e := query(markup.Toast); e != nil {
		el.Toast = e
	}
	if e := query(markup.ToastTitle); e != nil {
		el.ToastTitle = e
	}
	if e := query(markup.ToastMessage); e != nil {
		el.ToastMessage = e
	}
	if e := query(markup.ToastClose); e != nil {
		el.ToastClose = e
	}
	for _, e := range queryAll(markup.Sections) {
		el.Sections = append(el.Sections, e)
	}
	el.Anchors = resolver{}
	return el
}
