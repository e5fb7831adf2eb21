// Package server serves the marketing page, its WASM bundle and the contact
// endpoint.
package server

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
	"github.com/Its-donkey/cloudhub-site/internal/markup"
	"github.com/Its-donkey/cloudhub-site/internal/storage"
	"github.com/Its-donkey/cloudhub-site/logging"
	"github.com/Its-donkey/cloudhub-site/web"
)

const maxContactBody = 32 * 1024

// InquiryStore is the subset of storage the contact endpoint needs.
type InquiryStore interface {
	AddInquiry(fields contact.Fields, requestID string) (storage.Inquiry, error)
	ListInquiries() ([]storage.Inquiry, error)
	GetInquiry(id string) (storage.Inquiry, error)
	DeleteInquiry(id string) error
}

// Options configures the site server.
type Options struct {
	AssetsDir       string
	ContactEndpoint string
	AdminToken      string
	AllowedOrigins  []string
	Store           InquiryStore
	Logger          *logging.Logger
}

// Server holds the rendered page and the request handlers.
type Server struct {
	assetsDir       string
	contactEndpoint string
	adminToken      string
	allowedOrigins  []string
	page            []byte
	pageModTime     time.Time
	store           InquiryStore
	logger          *logging.Logger
}

// New renders the page and checks it against the markup contract. A page
// that cannot be mounted is a startup error.
func New(opts Options) (*Server, error) {
	if opts.Store == nil {
		return nil, errors.New("server: inquiry store is required")
	}
	if opts.Logger == nil {
		opts.Logger = logging.New("server", logging.INFO)
	}
	s := &Server{
		assetsDir:       opts.AssetsDir,
		contactEndpoint: opts.ContactEndpoint,
		adminToken:      opts.AdminToken,
		allowedOrigins:  opts.AllowedOrigins,
		store:           opts.Store,
		logger:          opts.Logger,
		pageModTime:     time.Now(),
	}

	text, source, err := s.loadTemplate()
	if err != nil {
		return nil, err
	}
	page, err := web.Render(text, web.PageData{ContactEndpoint: opts.ContactEndpoint})
	if err != nil {
		return nil, err
	}
	report, err := markup.Check(bytes.NewReader(page))
	if err != nil {
		return nil, err
	}
	for _, w := range report.Warnings {
		s.logger.Warn("markup", w, map[string]any{"template": source})
	}
	if err := report.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}
	s.page = page
	s.logger.Info("markup", "page passed markup check", map[string]any{
		"template":        source,
		"contactEndpoint": opts.ContactEndpoint,
	})
	return s, nil
}

func (s *Server) loadTemplate() (string, string, error) {
	if s.assetsDir != "" {
		path := filepath.Join(s.assetsDir, "index.html")
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), path, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", "", fmt.Errorf("read page template: %w", err)
		}
	}
	return web.Index, "embedded index.html", nil
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mime.AddExtensionType(".wasm", "application/wasm")

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(logging.NewHTTPLogger(s.logger, 0).Middleware)

	r.Get("/", s.handleIndex)
	r.Get("/index.html", s.handleIndex)
	r.Get("/healthz", s.handleHealth)
	if s.contactEndpoint != "" {
		r.Group(func(r chi.Router) {
			if len(s.allowedOrigins) > 0 {
				r.Use(cors.Handler(cors.Options{
					AllowedOrigins: s.allowedOrigins,
					AllowedMethods: []string{http.MethodPost, http.MethodOptions},
					AllowedHeaders: []string{"Content-Type"},
					MaxAge:         300,
				}))
				r.Options(s.contactEndpoint, func(w http.ResponseWriter, r *http.Request) {})
			}
			r.Post(s.contactEndpoint, s.handleContact)
		})
	}
	if s.adminToken != "" {
		r.Route("/api/inquiries", func(r chi.Router) {
			r.Use(s.requireAdmin)
			r.Get("/", s.handleListInquiries)
			r.Get("/{id}", s.handleGetInquiry)
			r.Delete("/{id}", s.handleDeleteInquiry)
		})
	}
	if s.assetsDir != "" {
		r.Get("/*", s.staticHandler().ServeHTTP)
	}
	return r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeContent(w, r, "index.html", s.pageModTime, bytes.NewReader(s.page))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) staticHandler() http.Handler {
	fileServer := http.FileServer(http.Dir(s.assetsDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch filepath.Ext(r.URL.Path) {
		case ".go":
			http.NotFound(w, r)
			return
		case ".wasm":
			w.Header().Set("Content-Type", "application/wasm")
		}
		fileServer.ServeHTTP(w, r)
	})
}

type contactResponse struct {
	ID     string               `json:"id,omitempty"`
	Error  string               `json:"error,omitempty"`
	Fields *contact.FieldErrors `json:"fields,omitempty"`
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	requestID := w.Header().Get(logging.RequestIDHeader)
	logCtx := s.logger.WithRequestID(requestID).WithCategory("contact")

	var fields contact.Fields
	dec := json.NewDecoder(io.LimitReader(r.Body, maxContactBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&fields); err != nil {
		logCtx.Warn("malformed inquiry")
		writeJSON(w, http.StatusBadRequest, contactResponse{Error: "invalid request body"})
		return
	}

	if errs := contact.Validate(fields); errs.Any() {
		logCtx.WithField("invalid", errs).Warn("inquiry rejected")
		writeJSON(w, http.StatusUnprocessableEntity, contactResponse{Error: errs.Error(), Fields: &errs})
		return
	}

	inquiry, err := s.store.AddInquiry(fields, requestID)
	if err != nil {
		logCtx.Error("store inquiry", err)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: "could not record inquiry"})
		return
	}
	logCtx.WithField("inquiry_id", inquiry.ID).WithField("subject", inquiry.Subject).Info("inquiry received")
	writeJSON(w, http.StatusAccepted, contactResponse{ID: inquiry.ID})
}

func (s *Server) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if subtle.ConstantTimeCompare([]byte(token), []byte(s.adminToken)) != 1 {
			writeJSON(w, http.StatusUnauthorized, contactResponse{Error: "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleListInquiries(w http.ResponseWriter, r *http.Request) {
	inquiries, err := s.store.ListInquiries()
	if err != nil {
		s.logger.Error("contact", "list inquiries", err, nil)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: "could not list inquiries"})
		return
	}
	writeJSON(w, http.StatusOK, inquiries)
}

func (s *Server) handleGetInquiry(w http.ResponseWriter, r *http.Request) {
	inquiry, err := s.store.GetInquiry(chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, contactResponse{Error: "inquiry not found"})
	case err != nil:
		s.logger.Error("contact", "get inquiry", err, nil)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: "could not load inquiry"})
	default:
		writeJSON(w, http.StatusOK, inquiry)
	}
}

func (s *Server) handleDeleteInquiry(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := s.store.DeleteInquiry(id)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, contactResponse{Error: "inquiry not found"})
	case err != nil:
		s.logger.Error("contact", "delete inquiry", err, nil)
		writeJSON(w, http.StatusInternalServerError, contactResponse{Error: "could not delete inquiry"})
	default:
		s.logger.Info("contact", "inquiry deleted", map[string]any{"inquiry_id": id})
		w.WriteHeader(http.StatusNoContent)
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// ListenAndServe runs the server until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("general", "serving site", map[string]any{"addr": addr, "assets": s.assetsDir})
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}
