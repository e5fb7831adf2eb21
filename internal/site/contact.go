package site

import (
	"errors"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
)

// Toast copy for the contact form outcomes.
var (
	NoticeSent = Notice{
		Title:   "Message sent",
		Message: "Thanks for reaching out. We'll get back to you shortly.",
	}
	NoticeFailed = Notice{
		Title:   "Message not sent",
		Message: "Something went wrong sending your message. Please try again.",
		Error:   true,
	}
	NoticeRejected = Notice{
		Title:   "Message not sent",
		Message: "Please check the form and try again.",
		Error:   true,
	}
)

// ContactController runs the contact form submission cycle.
type ContactController struct {
	form      ContactForm
	submit    SubmitControl
	submitter contact.Submitter
	toast     *Toast
	inFlight  bool
}

// NewContactController binds the form, its submit button, the delivery path
// and the toast used to report the outcome.
func NewContactController(form ContactForm, submit SubmitControl, submitter contact.Submitter, toast *Toast) *ContactController {
	return &ContactController{form: form, submit: submit, submitter: submitter, toast: toast}
}

// Submit is the form submit handler; the binding suppresses the browser's
// own navigation before calling it.
func (c *ContactController) Submit() {
	if c.inFlight {
		return
	}
	msg := contact.Compose(c.form.Values())
	c.setLoading(true)
	c.submitter.Submit(msg, c.complete)
}

func (c *ContactController) complete(err error) {
	if err == nil {
		c.form.Reset()
		c.setLoading(false)
		c.toast.Show(NoticeSent)
		return
	}
	c.setLoading(false)
	var reqErr *contact.RequestError
	if errors.As(err, &reqErr) && reqErr.Status >= 400 && reqErr.Status < 500 {
		c.toast.Show(NoticeRejected)
		return
	}
	c.toast.Show(NoticeFailed)
}

func (c *ContactController) setLoading(on bool) {
	c.inFlight = on
	c.submit.SetDisabled(on)
	if on {
		c.submit.AddClass(ClassLoading)
	} else {
		c.submit.RemoveClass(ClassLoading)
	}
}

// InFlight reports whether a submission is pending.
func (c *ContactController) InFlight() bool {
	return c.inFlight
}
