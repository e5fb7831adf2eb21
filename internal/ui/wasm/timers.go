//go:build js && wasm

package wasm

import (
	"syscall/js"
	"time"

	"github.com/Its-donkey/cloudhub-site/internal/schedule"
	"github.com/Its-donkey/cloudhub-site/internal/site"
)

// browserScheduler runs callbacks through setTimeout and setInterval so
// every controller callback lands on the page's event loop.
type browserScheduler struct {
	window js.Value
}

type browserTimer struct {
	window  js.Value
	clear   string
	id      js.Value
	fn      js.Func
	stopped bool
}

func (t *browserTimer) Stop() {
	if t.stopped {
		return
	}
	t.stopped = true
	t.window.Call(t.clear, t.id)
	t.fn.Release()
}

func (s browserScheduler) AfterFunc(d time.Duration, fn func()) schedule.Timer {
	t := &browserTimer{window: s.window, clear: "clearTimeout"}
	t.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		if t.stopped {
			return nil
		}
		t.stopped = true
		t.fn.Release()
		fn()
		return nil
	})
	t.id = s.window.Call("setTimeout", t.fn, d.Milliseconds())
	return t
}

func (s browserScheduler) Every(d time.Duration, fn func()) schedule.Timer {
	t := &browserTimer{window: s.window, clear: "clearInterval"}
	t.fn = js.FuncOf(func(this js.Value, args []js.Value) any {
		fn()
		return nil
	})
	t.id = s.window.Call("setInterval", t.fn, d.Milliseconds())
	return t
}

type observed struct {
	el        *element
	onVisible func()
}

// intersectionObserver adapts a single IntersectionObserver to
// site.VisibilityObserver.
type intersectionObserver struct {
	observer js.Value
	callback js.Func
	targets  []observed
}

func newIntersectionObserver(window js.Value) *intersectionObserver {
	o := &intersectionObserver{}
	o.callback = js.FuncOf(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		entries := args[0]
		for i := 0; i < entries.Length(); i++ {
			entry := entries.Index(i)
			if !entry.Get("isIntersecting").Bool() {
				continue
			}
			o.fire(entry.Get("target"))
		}
		return nil
	})
	o.observer = window.Get("IntersectionObserver").New(o.callback, map[string]any{
		"threshold": site.RevealThreshold,
	})
	return o
}

func (o *intersectionObserver) fire(target js.Value) {
	pending := append([]observed(nil), o.targets...)
	for _, t := range pending {
		if t.el.v.Equal(target) {
			t.onVisible()
		}
	}
}

func (o *intersectionObserver) Observe(target any, onVisible func()) {
	el, ok := target.(*element)
	if !ok || el == nil {
		return
	}
	o.targets = append(o.targets, observed{el: el, onVisible: onVisible})
	o.observer.Call("observe", el.v)
}

// Unobserve drops target. The node itself stays observed while another
// wrapper of it is still registered.
func (o *intersectionObserver) Unobserve(target any) {
	el, ok := target.(*element)
	if !ok || el == nil {
		return
	}
	kept := o.targets[:0]
	shared := false
	for _, t := range o.targets {
		if t.el == el {
			continue
		}
		if t.el.v.Equal(el.v) {
			shared = true
		}
		kept = append(kept, t)
	}
	o.targets = kept
	if !shared {
		o.observer.Call("unobserve", el.v)
	}
}
