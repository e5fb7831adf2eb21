package site

import "time"

// DefaultToastDuration is how long a toast stays up without interaction.
const DefaultToastDuration = 5 * time.Second

// Notice is the content of a toast.
type Notice struct {
	Title   string
	Message string
	Error   bool
}

// Toast shows transient notifications.
//
// Every Show schedules its own auto-hide and Hide never cancels them, so an
// older auto-hide can close a newer toast early.
type Toast struct {
	box      ClassList
	title    TextSetter
	message  TextSetter
	sched    Scheduler
	duration time.Duration
}

// NewToast binds the toast box and its text slots. title and message may be
// nil when the markup has fixed copy.
func NewToast(box ClassList, title, message TextSetter, sched Scheduler, duration time.Duration) *Toast {
	return &Toast{box: box, title: title, message: message, sched: sched, duration: duration}
}

// Show displays n and schedules the auto-hide.
func (t *Toast) Show(n Notice) {
	if t.title != nil && n.Title != "" {
		t.title.SetText(n.Title)
	}
	if t.message != nil && n.Message != "" {
		t.message.SetText(n.Message)
	}
	if n.Error {
		t.box.AddClass(ClassError)
	} else {
		t.box.RemoveClass(ClassError)
	}
	t.box.AddClass(ClassShow)
	t.sched.AfterFunc(t.duration, t.Hide)
}

// Hide removes the toast. It is also the close button handler.
func (t *Toast) Hide() {
	t.box.RemoveClass(ClassShow)
}

// Visible reports whether the toast is shown.
func (t *Toast) Visible() bool {
	return t.box.HasClass(ClassShow)
}
