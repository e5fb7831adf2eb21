// Package contact composes and delivers contact-form inquiries.
package contact

import "fmt"

// Recipient receives every inquiry sent from the site.
const Recipient = "cloudhubai@gmail.com"

// Fields are the values of the contact form.
type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Service string `json:"service"`
	Message string `json:"message"`
}

// Message is an inquiry ready for delivery.
type Message struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	ReplyTo string `json:"replyTo"`
	Fields  Fields `json:"-"`
}

// Compose builds the e-mail for an inquiry.
func Compose(f Fields) Message {
	return Message{
		To:      Recipient,
		Subject: fmt.Sprintf("New inquiry from %s about %s", f.Name, f.Service),
		Body:    f.Message,
		ReplyTo: f.Email,
		Fields:  f,
	}
}
