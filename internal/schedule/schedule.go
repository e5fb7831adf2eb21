// Package schedule abstracts the page's timer queue (setTimeout/setInterval)
// so callbacks can be driven by the browser or by a virtual clock in tests.
package schedule

import (
	"sort"
	"time"
)

// Timer is a handle to a scheduled callback.
type Timer interface {
	Stop()
}

// Scheduler runs callbacks on a single event loop.
type Scheduler interface {
	// AfterFunc runs fn once after d.
	AfterFunc(d time.Duration, fn func()) Timer
	// Every runs fn repeatedly with period d until stopped.
	Every(d time.Duration, fn func()) Timer
}

// Manual is a virtual-time Scheduler. Nothing runs until Advance is called,
// and callbacks run on the caller's goroutine in due-time order.
// Manual is not safe for concurrent use.
type Manual struct {
	now   time.Duration
	seq   int
	tasks []*task
}

type task struct {
	due     time.Duration
	period  time.Duration
	seq     int
	fn      func()
	stopped bool
}

func (t *task) Stop() { t.stopped = true }

// NewManual returns a Manual clock at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// AfterFunc implements Scheduler.
func (m *Manual) AfterFunc(d time.Duration, fn func()) Timer {
	return m.add(d, 0, fn)
}

// Every implements Scheduler. A non-positive period is treated as 1ms,
// matching how browsers clamp setInterval.
func (m *Manual) Every(d time.Duration, fn func()) Timer {
	if d <= 0 {
		d = time.Millisecond
	}
	return m.add(d, d, fn)
}

func (m *Manual) add(d, period time.Duration, fn func()) *task {
	if d < 0 {
		d = 0
	}
	m.seq++
	t := &task{due: m.now + d, period: period, seq: m.seq, fn: fn}
	m.tasks = append(m.tasks, t)
	return t
}

// Now returns the elapsed virtual time.
func (m *Manual) Now() time.Duration {
	return m.now
}

// Pending returns the number of live timers.
func (m *Manual) Pending() int {
	n := 0
	for _, t := range m.tasks {
		if !t.stopped {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, running every callback that falls
// due, including ones scheduled by callbacks within the window.
func (m *Manual) Advance(d time.Duration) {
	end := m.now + d
	for {
		next := m.nextDue(end)
		if next == nil {
			break
		}
		m.now = next.due
		if next.period > 0 {
			m.seq++
			next.due += next.period
			next.seq = m.seq
		} else {
			next.stopped = true
		}
		next.fn()
		m.compact()
	}
	m.now = end
}

func (m *Manual) nextDue(end time.Duration) *task {
	live := make([]*task, 0, len(m.tasks))
	for _, t := range m.tasks {
		if !t.stopped && t.due <= end {
			live = append(live, t)
		}
	}
	if len(live) == 0 {
		return nil
	}
	sort.Slice(live, func(i, j int) bool {
		if live[i].due != live[j].due {
			return live[i].due < live[j].due
		}
		return live[i].seq < live[j].seq
	})
	return live[0]
}

func (m *Manual) compact() {
	kept := m.tasks[:0]
	for _, t := range m.tasks {
		if !t.stopped {
			kept = append(kept, t)
		}
	}
	m.tasks = kept
}
