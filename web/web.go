// Package web holds the page template served when the asset directory does
// not provide its own index.html.
package web

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
)

// Index is the bundled page template.
//
//go:embed index.html
var Index string

// PageData is injected into the page template.
type PageData struct {
	// ContactEndpoint switches the contact form to real submission.
	ContactEndpoint string
}

// Render executes the page template text with data.
func Render(text string, data PageData) ([]byte, error) {
	tmpl, err := template.New("index.html").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render page template: %w", err)
	}
	return buf.Bytes(), nil
}
