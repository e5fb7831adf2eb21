package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/internal/storage"
	"github.com/Its-donkey/cloudhub-site/logging"
	"github.com/Its-donkey/cloudhub-site/web"
)

type stubStore struct {
	added []contact.Fields
	err   error
}

func (s *stubStore) AddInquiry(fields contact.Fields, requestID string) (storage.Inquiry, error) {
	if s.err != nil {
		return storage.Inquiry{}, s.err
	}
	s.added = append(s.added, fields)
	return storage.Inquiry{ID: "inq-1", RequestID: requestID, Fields: fields}, nil
}

func (s *stubStore) ListInquiries() ([]storage.Inquiry, error) {
	return s.inquiries(), nil
}

func (s *stubStore) GetInquiry(id string) (storage.Inquiry, error) {
	for _, inquiry := range s.inquiries() {
		if inquiry.ID == id {
			return inquiry, nil
		}
	}
	return storage.Inquiry{}, storage.ErrNotFound
}

func (s *stubStore) DeleteInquiry(id string) error {
	for i, inquiry := range s.inquiries() {
		if inquiry.ID == id {
			s.added = append(s.added[:i], s.added[i+1:]...)
			return nil
		}
	}
	return storage.ErrNotFound
}

func (s *stubStore) inquiries() []storage.Inquiry {
	out := make([]storage.Inquiry, len(s.added))
	for i, f := range s.added {
		out[i] = storage.Inquiry{ID: fmt.Sprintf("inq-%d", i+1), Fields: f}
	}
	return out
}

func newTestServer(t *testing.T, opts Options) (*Server, *bytes.Buffer) {
	t.Helper()
	var logs bytes.Buffer
	if opts.Store == nil {
		opts.Store = &stubStore{}
	}
	opts.Logger = logging.New("server", logging.DEBUG, &logs)
	srv, err := New(opts)
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, &logs
}

func TestIndexInjectsContactEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, Options{ContactEndpoint: "/api/contact"})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, `data-contact-endpoint="/api/contact"`) {
		t.Fatalf("expected endpoint attribute in page")
	}
	if rr.Header().Get(logging.RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
}

func TestIndexWithoutEndpointIsSimulated(t *testing.T) {
	srv, _ := newTestServer(t, Options{})
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(rr.Body.String(), "data-contact-endpoint") {
		t.Fatalf("simulated mode must not expose an endpoint")
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader("{}")))
	if rr.Code == http.StatusAccepted {
		t.Fatalf("contact endpoint should not be routed in simulated mode")
	}
}

func TestNewRejectsBrokenMarkup(t *testing.T) {
	dir := t.TempDir()
	broken := strings.Replace(web.Index, `id="contactForm"`, `id="form"`, 1)
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(broken), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	_, err := New(Options{AssetsDir: dir, Store: &stubStore{}, Logger: logging.New("server", logging.ERROR, &bytes.Buffer{})})
	if err == nil || !strings.Contains(err.Error(), "contact form") {
		t.Fatalf("expected markup error, got %v", err)
	}
}

func TestContactAcceptsValidInquiry(t *testing.T) {
	store := &stubStore{}
	srv, logs := newTestServer(t, Options{ContactEndpoint: "/api/contact", Store: store})

	body := `{"name":"Ada","email":"ada@example.com","service":"Branding","message":"Hi"}`
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))

	if rr.Code != http.StatusAccepted {
		t.Fatalf("expected 202, got %d: %s", rr.Code, rr.Body.String())
	}
	var resp contactResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "inq-1" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(store.added) != 1 || store.added[0].Name != "Ada" {
		t.Fatalf("inquiry not stored: %+v", store.added)
	}
	if !strings.Contains(logs.String(), "inquiry received") {
		t.Fatalf("expected inquiry log entry")
	}
}

func TestContactRejectsInvalidInquiry(t *testing.T) {
	store := &stubStore{}
	srv, _ := newTestServer(t, Options{ContactEndpoint: "/api/contact", Store: store})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"name":"Ada","email":"nope"}`)))
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rr.Code)
	}
	var resp contactResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Fields == nil || !resp.Fields.Email || !resp.Fields.Service || resp.Fields.Name {
		t.Fatalf("unexpected field errors %+v", resp.Fields)
	}
	if len(store.added) != 0 {
		t.Fatalf("invalid inquiry must not be stored")
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(`{"phone":"1"}`)))
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown fields, got %d", rr.Code)
	}
}

func TestContactStoreFailure(t *testing.T) {
	srv, _ := newTestServer(t, Options{ContactEndpoint: "/api/contact", Store: &stubStore{err: errors.New("disk full")}})
	body := `{"name":"Ada","email":"ada@example.com","service":"Branding","message":"Hi"}`
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body)))
	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rr.Code)
	}
}

func TestListInquiriesRequiresToken(t *testing.T) {
	store := &stubStore{added: []contact.Fields{{Name: "Ada"}}}
	srv, _ := newTestServer(t, Options{AdminToken: "s3cret", Store: store})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/inquiries", nil))
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/inquiries", nil)
	req.Header.Set("Authorization", "Bearer s3cret")
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var inquiries []storage.Inquiry
	if err := json.Unmarshal(rr.Body.Bytes(), &inquiries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(inquiries) != 1 {
		t.Fatalf("expected 1 inquiry, got %d", len(inquiries))
	}
}

func TestStaticServesWasmAndHidesSources(t *testing.T) {
	dir := t.TempDir()
	for name, data := range map[string]string{"main.wasm": "\x00asm", "web.go": "package web"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(data), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	srv, _ := newTestServer(t, Options{AssetsDir: dir})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/main.wasm", nil))
	if rr.Code != http.StatusOK || rr.Header().Get("Content-Type") != "application/wasm" {
		t.Fatalf("unexpected wasm response %d %q", rr.Code, rr.Header().Get("Content-Type"))
	}

	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/web.go", nil))
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for source files, got %d", rr.Code)
	}
}

func TestInquiryAdminRoutes(t *testing.T) {
	store := &stubStore{added: []contact.Fields{{Name: "Ada"}, {Name: "Grace"}}}
	srv, _ := newTestServer(t, Options{AdminToken: "s3cret", Store: store})
	do := func(method, path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, nil)
		req.Header.Set("Authorization", "Bearer s3cret")
		rr := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rr, req)
		return rr
	}

	rr := do(http.MethodGet, "/api/inquiries/inq-2")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
	var inquiry storage.Inquiry
	if err := json.Unmarshal(rr.Body.Bytes(), &inquiry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if inquiry.Fields.Name != "Grace" {
		t.Fatalf("unexpected inquiry %+v", inquiry)
	}

	if rr := do(http.MethodDelete, "/api/inquiries/inq-1"); rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if len(store.added) != 1 || store.added[0].Name != "Grace" {
		t.Fatalf("unexpected store contents %+v", store.added)
	}
	if rr := do(http.MethodGet, "/api/inquiries/inq-9"); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestContactPreflightForAllowedOrigin(t *testing.T) {
	srv, _ := newTestServer(t, Options{
		ContactEndpoint: "/api/contact",
		AllowedOrigins:  []string{"https://cloudhub.example"},
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://cloudhub.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")
	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://cloudhub.example" {
		t.Fatalf("expected allowed origin header, got %q", got)
	}

	req = httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
	req.Header.Set("Origin", "https://elsewhere.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, req)
	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected allow origin %q for foreign origin", got)
	}
}
