package email

// Provider sends outbound mail. Implementations must never block a request
// longer than one SMTP round trip; callers treat failures as log-and-forget.
type Provider interface {
	// Send delivers a prepared message.
	Send(msg *Message) error

	// SendContactConfirmation sends the auto-response for a received
	// contact-form submission.
	SendContactConfirmation(to, name, messageBody string) error
}

// Message is one outbound email.
type Message struct {
	To      string
	Subject string
	Body    string
}
