package site_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/internal/schedule"
	"github.com/Its-donkey/cloudhub-site/internal/site"
	"github.com/Its-donkey/cloudhub-site/internal/site/sitetest"
	"github.com/Its-donkey/cloudhub-site/logging"
)

func filledForm() *sitetest.Form {
	return &sitetest.Form{Fields: contact.Fields{
		Name:    "Ada",
		Email:   "ada@example.com",
		Service: "Web design",
		Message: "Need a new site.",
	}}
}

func TestContactSimulatedSubmission(t *testing.T) {
	clock := schedule.NewManual()
	var logs bytes.Buffer
	logger := logging.New("site", logging.INFO, &logs)

	form := filledForm()
	button := sitetest.NewElement("submit", nil)
	toast := site.NewToast(sitetest.NewElement("toast", nil), nil, nil, clock, site.DefaultToastDuration)
	submitter := contact.NewSimulatedSubmitter(clock, logger, contact.DefaultSimulatedLatency)
	c := site.NewContactController(form, button, submitter, toast)

	c.Submit()
	assert.True(t, c.InFlight())
	assert.True(t, button.Disabled)
	assert.True(t, button.HasClass(site.ClassLoading))
	assert.False(t, toast.Visible())

	clock.Advance(1499 * time.Millisecond)
	assert.True(t, button.Disabled, "still loading before the latency elapses")

	clock.Advance(time.Millisecond)
	assert.False(t, c.InFlight())
	assert.False(t, button.Disabled)
	assert.False(t, button.HasClass(site.ClassLoading))
	assert.Equal(t, contact.Fields{}, form.Fields, "fields cleared")
	assert.True(t, toast.Visible())
	assert.True(t, strings.Contains(logs.String(), "New inquiry from Ada about Web design"))
}

func TestContactIgnoresDoubleSubmit(t *testing.T) {
	clock := schedule.NewManual()
	sub := &sitetest.Submitter{}
	toast := site.NewToast(sitetest.NewElement("toast", nil), nil, nil, clock, site.DefaultToastDuration)
	c := site.NewContactController(filledForm(), sitetest.NewElement("submit", nil), sub, toast)

	c.Submit()
	c.Submit()
	assert.Len(t, sub.Messages, 1)
}

func TestContactFailureKeepsFields(t *testing.T) {
	clock := schedule.NewManual()
	sub := &sitetest.Submitter{}
	form := filledForm()
	button := sitetest.NewElement("submit", nil)
	box := sitetest.NewElement("toast", nil)
	msg := sitetest.NewElement("toast-message", nil)
	toast := site.NewToast(box, nil, msg, clock, site.DefaultToastDuration)
	c := site.NewContactController(form, button, sub, toast)

	c.Submit()
	require.Len(t, sub.Messages, 1)
	assert.Equal(t, contact.Recipient, sub.Messages[0].To)
	assert.Equal(t, "ada@example.com", sub.Messages[0].ReplyTo)

	sub.Complete(errors.New("network down"))
	assert.False(t, c.InFlight())
	assert.False(t, button.Disabled)
	assert.Equal(t, "Ada", form.Fields.Name)
	assert.Zero(t, form.Resets)
	assert.True(t, box.HasClass(site.ClassError))
	assert.Equal(t, site.NoticeFailed.Message, msg.Text)

	c.Submit()
	sub.Complete(&contact.RequestError{Status: 422})
	assert.Equal(t, site.NoticeRejected.Message, msg.Text)
}
