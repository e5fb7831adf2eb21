// Package storage persists contact inquiries received by the site server.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Its-donkey/cloudhub-site/internal/contact"
)

// ErrNotFound indicates that the requested entity does not exist.
var ErrNotFound = errors.New("storage: not found")

// Inquiry is a stored contact-form submission.
type Inquiry struct {
	ID          string         `json:"id"`
	SubmittedAt time.Time      `json:"submittedAt"`
	RequestID   string         `json:"requestId,omitempty"`
	Subject     string         `json:"subject"`
	Fields      contact.Fields `json:"fields"`
}

// JSONStore keeps inquiries in a single JSON file on disk.
type JSONStore struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

// NewJSONStore returns a store backed by path, creating the file if needed.
func NewJSONStore(path string) (*JSONStore, error) {
	if path == "" {
		return nil, errors.New("storage: inquiries path is required")
	}
	store := &JSONStore{
		path: path,
		now:  func() time.Time { return time.Now().UTC() },
	}
	if err := store.ensureFile(); err != nil {
		return nil, err
	}
	return store, nil
}

// AddInquiry records a new inquiry and returns the stored entry.
func (s *JSONStore) AddInquiry(fields contact.Fields, requestID string) (Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiries, err := s.read()
	if err != nil {
		return Inquiry{}, err
	}

	entry := Inquiry{
		ID:          uuid.NewString(),
		SubmittedAt: s.now(),
		RequestID:   requestID,
		Subject:     contact.Compose(fields).Subject,
		Fields:      fields,
	}
	inquiries = append(inquiries, entry)

	if err := s.write(inquiries); err != nil {
		return Inquiry{}, err
	}
	return entry, nil
}

// ListInquiries returns every stored inquiry, oldest first.
func (s *JSONStore) ListInquiries() ([]Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// GetInquiry returns the inquiry with id.
func (s *JSONStore) GetInquiry(id string) (Inquiry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	inquiries, err := s.read()
	if err != nil {
		return Inquiry{}, err
	}
	for _, inq := range inquiries {
		if inq.ID == id {
			return inq, nil
		}
	}
	return Inquiry{}, ErrNotFound
}

// DeleteInquiry removes a handled inquiry.
func (s *JSONStore) DeleteInquiry(id string) error {
	if id == "" {
		return errors.New("storage: delete requires inquiry id")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	inquiries, err := s.read()
	if err != nil {
		return err
	}

	index := -1
	for i, inq := range inquiries {
		if inq.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return ErrNotFound
	}

	inquiries = append(inquiries[:index], inquiries[index+1:]...)
	return s.write(inquiries)
}

func (s *JSONStore) ensureFile() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte("[]\n"), 0o644)
}

func (s *JSONStore) read() ([]Inquiry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		data = []byte("[]")
	}
	var inquiries []Inquiry
	if err := json.Unmarshal(data, &inquiries); err != nil {
		return nil, fmt.Errorf("storage: decode %s: %w", filepath.Base(s.path), err)
	}
	return inquiries, nil
}

func (s *JSONStore) write(inquiries []Inquiry) error {
	data, err := json.MarshalIndent(inquiries, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}
