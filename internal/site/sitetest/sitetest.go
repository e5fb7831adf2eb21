// Package sitetest provides in-memory stand-ins for the page elements and
// browser services the site controllers bind to.
package sitetest

import (
	"fmt"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/internal/site"
)

// Element is a fake DOM element.
type Element struct {
	ID       string
	classes  map[string]bool
	Display  string
	Dataset  map[string]string
	Disabled bool
	Text     string
	Height   float64
	Top      float64
}

// NewElement returns an element with the given data-* attributes.
func NewElement(id string, data map[string]string) *Element {
	if data == nil {
		data = map[string]string{}
	}
	return &Element{ID: id, classes: map[string]bool{}, Dataset: data}
}

func (e *Element) AddClass(name string)    { e.classes[name] = true }
func (e *Element) RemoveClass(name string) { delete(e.classes, name) }
func (e *Element) HasClass(name string) bool {
	return e.classes[name]
}

func (e *Element) ToggleClass(name string) bool {
	if e.classes[name] {
		delete(e.classes, name)
		return false
	}
	e.classes[name] = true
	return true
}

func (e *Element) SetDisplay(value string)   { e.Display = value }
func (e *Element) Data(key string) string    { return e.Dataset[key] }
func (e *Element) SetDisabled(disabled bool) { e.Disabled = disabled }
func (e *Element) SetText(text string)       { e.Text = text }
func (e *Element) OffsetHeight() float64     { return e.Height }
func (e *Element) BoundingTop() float64      { return e.Top }

// Elements creates n elements with ids prefix-0..prefix-n-1.
func Elements(prefix string, n int) []*Element {
	out := make([]*Element, n)
	for i := range out {
		out[i] = NewElement(fmt.Sprintf("%s-%d", prefix, i), nil)
	}
	return out
}

// ClassLists adapts elements to the ClassList capability.
func ClassLists(els []*Element) []site.ClassList {
	out := make([]site.ClassList, len(els))
	for i, e := range els {
		out[i] = e
	}
	return out
}

// Viewport is a fake window scroll position. ScrollTo jumps immediately and
// records every requested position.
type Viewport struct {
	Y        float64
	Requests []float64
}

func (v *Viewport) ScrollY() float64 { return v.Y }

func (v *Viewport) ScrollTo(top float64) {
	v.Requests = append(v.Requests, top)
	v.Y = top
}

// Observer is a manually triggered VisibilityObserver.
type Observer struct {
	callbacks map[any]func()
}

// NewObserver returns an Observer with nothing observed.
func NewObserver() *Observer {
	return &Observer{callbacks: map[any]func(){}}
}

func (o *Observer) Observe(target any, onVisible func()) { o.callbacks[target] = onVisible }
func (o *Observer) Unobserve(target any)                 { delete(o.callbacks, target) }

// Observing reports whether target is still watched.
func (o *Observer) Observing(target any) bool {
	_, ok := o.callbacks[target]
	return ok
}

// Trigger simulates target scrolling into view.
func (o *Observer) Trigger(target any) {
	if cb, ok := o.callbacks[target]; ok {
		cb()
	}
}

// Form is a fake contact form.
type Form struct {
	Fields contact.Fields
	Resets int
}

func (f *Form) Values() contact.Fields { return f.Fields }

func (f *Form) Reset() {
	f.Fields = contact.Fields{}
	f.Resets++
}

// Document resolves anchor targets from a map.
type Document map[string]*Element

func (d Document) Lookup(id string) (site.Measurer, bool) {
	el, ok := d[id]
	if !ok {
		return nil, false
	}
	return el, true
}

// Submitter records submissions and lets the test finish them.
type Submitter struct {
	Messages []contact.Message
	pending  []func(error)
}

func (s *Submitter) Submit(msg contact.Message, done func(error)) {
	s.Messages = append(s.Messages, msg)
	s.pending = append(s.pending, done)
}

// Complete finishes the oldest pending submission with err.
func (s *Submitter) Complete(err error) {
	if len(s.pending) == 0 {
		return
	}
	done := s.pending[0]
	s.pending = s.pending[1:]
	done(err)
}
