package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Its-donkey/cloudhub-site/internal/schedule"
)

func TestCompose(t *testing.T) {
	msg := Compose(Fields{Name: "Ada", Email: "ada@example.com", Service: "Branding", Message: "Hi"})
	if msg.To != Recipient {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	if msg.Subject != "New inquiry from Ada about Branding" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if msg.Body != "Hi" || msg.ReplyTo != "ada@example.com" {
		t.Fatalf("unexpected message %+v", msg)
	}
}

func TestValidate(t *testing.T) {
	errs := Validate(Fields{})
	if !errs.Name || !errs.Email || !errs.Service || !errs.Message {
		t.Fatalf("expected every field flagged, got %+v", errs)
	}
	if errs.Error() != "contact: invalid name, email, service, message" {
		t.Fatalf("unexpected message %q", errs.Error())
	}

	errs = Validate(Fields{Name: "Ada", Email: "Ada <ada@example.com>", Service: "Web", Message: "Hi"})
	if !errs.Email || errs.Name || errs.Service || errs.Message {
		t.Fatalf("expected only email flagged, got %+v", errs)
	}

	if errs := Validate(Fields{Name: "Ada", Email: "ada@example.com", Service: "Web", Message: "Hi"}); errs.Any() {
		t.Fatalf("expected valid fields, got %+v", errs)
	}
}

func TestDefaultMailto(t *testing.T) {
	want := "mailto:cloudhubai@gmail.com?subject=Subject%20Here&body=Hello%2C%0A%0AThis%20is%20the%20email%20body.%0A%0ARegards"
	if got := DefaultMailto(); got != want {
		t.Fatalf("DefaultMailto() = %q\nwant %q", got, want)
	}
}

func TestEncodeURIComponent(t *testing.T) {
	cases := map[string]string{
		"a b":           "a%20b",
		"it's (fine)!*": "it's%20(fine)!*",
		"1+1=2&x":       "1%2B1%3D2%26x",
		"~_.-":          "~_.-",
		"é":             "%C3%A9",
	}
	for in, want := range cases {
		if got := EncodeURIComponent(in); got != want {
			t.Fatalf("EncodeURIComponent(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHTTPSubmitterSend(t *testing.T) {
	var received Fields
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode: %v", err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, srv.Client(), nil, nil)
	fields := Fields{Name: "Ada", Email: "ada@example.com", Service: "Web", Message: "Hi"}
	if err := s.Send(context.Background(), fields); err != nil {
		t.Fatalf("send: %v", err)
	}
	if received != fields {
		t.Fatalf("server received %+v", received)
	}
}

func TestHTTPSubmitterRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "invalid email", http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	s := NewHTTPSubmitter(srv.URL, srv.Client(), nil, nil)
	err := s.Send(context.Background(), Fields{})
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.Status != http.StatusUnprocessableEntity || reqErr.Body != "invalid email" {
		t.Fatalf("unexpected error %+v", reqErr)
	}
}

// loopScheduler hands callbacks to the test goroutine, standing in for the
// browser event loop.
type loopScheduler struct {
	queue chan func()
}

type noopTimer struct{}

func (noopTimer) Stop() {}

func (l loopScheduler) AfterFunc(_ time.Duration, fn func()) schedule.Timer {
	l.queue <- fn
	return noopTimer{}
}

func (l loopScheduler) Every(d time.Duration, fn func()) schedule.Timer {
	return l.AfterFunc(d, fn)
}

func TestHTTPSubmitterCompletesOnLoop(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	loop := loopScheduler{queue: make(chan func(), 1)}
	s := NewHTTPSubmitter(srv.URL, srv.Client(), loop, nil)

	var got error
	s.Submit(Compose(Fields{Name: "Ada"}), func(err error) { got = err })

	select {
	case fn := <-loop.queue:
		fn()
	case <-time.After(5 * time.Second):
		t.Fatalf("submission never completed")
	}
	var reqErr *RequestError
	if !errors.As(got, &reqErr) || reqErr.Status != http.StatusInternalServerError {
		t.Fatalf("expected 500 RequestError, got %v", got)
	}
}

func TestSimulatedSubmitterSucceedsAfterLatency(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSimulatedSubmitter(clock, nil, DefaultSimulatedLatency)
	done := false
	s.Submit(Compose(Fields{}), func(err error) {
		if err != nil {
			t.Fatalf("simulated submission failed: %v", err)
		}
		done = true
	})
	clock.Advance(DefaultSimulatedLatency - time.Millisecond)
	if done {
		t.Fatalf("completed early")
	}
	clock.Advance(time.Millisecond)
	if !done {
		t.Fatalf("expected completion after latency")
	}
}
