package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Its-donkey/cloudhub-site/internal/schedule"
	"github.com/Its-donkey/cloudhub-site/logging"
)

// DefaultSimulatedLatency is the delay of the simulated submission.
const DefaultSimulatedLatency = 1500 * time.Millisecond

// Submitter delivers a message and reports the outcome through done, which
// always runs on the page's event loop.
type Submitter interface {
	Submit(msg Message, done func(error))
}

// SimulatedSubmitter never transmits anything. It logs the composed message
// and reports success after a fixed latency.
type SimulatedSubmitter struct {
	sched   schedule.Scheduler
	logger  *logging.Logger
	latency time.Duration
}

// NewSimulatedSubmitter returns a submitter that succeeds after latency.
func NewSimulatedSubmitter(sched schedule.Scheduler, logger *logging.Logger, latency time.Duration) *SimulatedSubmitter {
	return &SimulatedSubmitter{sched: sched, logger: logger, latency: latency}
}

// Submit implements Submitter.
func (s *SimulatedSubmitter) Submit(msg Message, done func(error)) {
	s.sched.AfterFunc(s.latency, func() {
		if s.logger != nil {
			s.logger.Info("contact", "inquiry composed (not sent)", map[string]any{
				"to":      msg.To,
				"subject": msg.Subject,
				"body":    msg.Body,
				"replyTo": msg.ReplyTo,
			})
		}
		done(nil)
	})
}

// RequestError is returned when the contact endpoint rejects a submission.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("contact: endpoint returned %d", e.Status)
	}
	return fmt.Sprintf("contact: endpoint returned %d: %s", e.Status, e.Body)
}

// HTTPSubmitter posts inquiries to the site's contact endpoint.
type HTTPSubmitter struct {
	endpoint string
	client   *http.Client
	sched    schedule.Scheduler
	logger   *logging.Logger
	timeout  time.Duration
}

// NewHTTPSubmitter returns a submitter for endpoint. A nil client uses
// http.DefaultClient.
func NewHTTPSubmitter(endpoint string, client *http.Client, sched schedule.Scheduler, logger *logging.Logger) *HTTPSubmitter {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSubmitter{
		endpoint: endpoint,
		client:   client,
		sched:    sched,
		logger:   logger,
		timeout:  10 * time.Second,
	}
}

// Submit implements Submitter. The request runs on its own goroutine and the
// result is handed back through the scheduler.
func (s *HTTPSubmitter) Submit(msg Message, done func(error)) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
		defer cancel()
		err := s.Send(ctx, msg.Fields)
		if err != nil && s.logger != nil {
			s.logger.Error("contact", "inquiry submission failed", err, map[string]any{
				"endpoint": s.endpoint,
			})
		}
		s.sched.AfterFunc(0, func() { done(err) })
	}()
}

// Send posts the fields and waits for the response.
func (s *HTTPSubmitter) Send(ctx context.Context, fields Fields) error {
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode inquiry: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("submit inquiry: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &RequestError{Status: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}
