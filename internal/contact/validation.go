package contact

import (
	"net/mail"
	"strings"
)

// FieldErrors flags the contact fields that failed validation.
type FieldErrors struct {
	Name    bool `json:"name,omitempty"`
	Email   bool `json:"email,omitempty"`
	Service bool `json:"service,omitempty"`
	Message bool `json:"message,omitempty"`
}

// Any reports whether at least one field is invalid.
func (e FieldErrors) Any() bool {
	return e.Name || e.Email || e.Service || e.Message
}

func (e FieldErrors) Error() string {
	var names []string
	if e.Name {
		names = append(names, "name")
	}
	if e.Email {
		names = append(names, "email")
	}
	if e.Service {
		names = append(names, "service")
	}
	if e.Message {
		names = append(names, "message")
	}
	return "contact: invalid " + strings.Join(names, ", ")
}

// Validate checks the fields the page marks as required. The browser relies
// on the markup's required attributes; the server calls this before storing.
func Validate(f Fields) FieldErrors {
	var errs FieldErrors
	if strings.TrimSpace(f.Name) == "" {
		errs.Name = true
	}
	if strings.TrimSpace(f.Service) == "" {
		errs.Service = true
	}
	if strings.TrimSpace(f.Message) == "" {
		errs.Message = true
	}
	email := strings.TrimSpace(f.Email)
	if email == "" {
		errs.Email = true
	} else if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		errs.Email = true
	}
	return errs
}
