package contact

import (
	"net/url"
	"strings"
)

// Fallback copy used by the unbound sendEmail helper on the page.
const (
	DefaultMailtoSubject = "Subject Here"
	DefaultMailtoBody    = "Hello,\n\nThis is the email body.\n\nRegards"
)

// MailtoURI builds a mailto link with a percent-encoded subject and body.
func MailtoURI(recipient, subject, body string) string {
	return "mailto:" + recipient + "?subject=" + EncodeURIComponent(subject) + "&body=" + EncodeURIComponent(body)
}

// DefaultMailto is the link the page's sendEmail helper navigates to.
func DefaultMailto() string {
	return MailtoURI(Recipient, DefaultMailtoSubject, DefaultMailtoBody)
}

var componentUnescapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// EncodeURIComponent matches the browser function of the same name: only
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) are left unescaped.
func EncodeURIComponent(s string) string {
	return componentUnescapes.Replace(url.QueryEscape(s))
}
