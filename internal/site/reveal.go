package site

import "time"

const (
	// RevealThreshold is the intersection ratio that counts as visible.
	RevealThreshold = 0.1
	// DefaultStaggerStep is the delay added per child in a staggered reveal.
	DefaultStaggerStep = 100 * time.Millisecond
)

// Reveal applies a one-shot class to elements the first time they scroll
// into view. Targets must be comparable (pointers in practice).
type Reveal struct {
	observer VisibilityObserver
	revealed map[any]bool
}

func newReveal(observer VisibilityObserver) *Reveal {
	return &Reveal{observer: observer, revealed: make(map[any]bool)}
}

// NewStaggerReveal watches target and, on first view, adds class to each
// child with a delay of index*step, producing a cascade.
func NewStaggerReveal(observer VisibilityObserver, target any, children []ClassList, class string, step time.Duration, sched Scheduler) *Reveal {
	r := newReveal(observer)
	observer.Observe(target, func() {
		if !r.fire(target) {
			return
		}
		for i, child := range children {
			child := child
			sched.AfterFunc(time.Duration(i)*step, func() {
				child.AddClass(class)
			})
		}
	})
	return r
}

// NewSectionReveal watches every section independently and adds class to the
// section itself the first time it is seen.
func NewSectionReveal(observer VisibilityObserver, sections []ClassList, class string) *Reveal {
	r := newReveal(observer)
	for _, section := range sections {
		section := section
		observer.Observe(section, func() {
			if r.fire(section) {
				section.AddClass(class)
			}
		})
	}
	return r
}

// fire marks target as revealed and detaches it. It returns false when the
// target already fired, in case the observer delivers a late entry.
func (r *Reveal) fire(target any) bool {
	if r.revealed[target] {
		return false
	}
	r.revealed[target] = true
	r.observer.Unobserve(target)
	return true
}

// Revealed reports whether target has been revealed.
func (r *Reveal) Revealed(target any) bool {
	return r.revealed[target]
}
