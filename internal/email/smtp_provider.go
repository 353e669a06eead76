package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// Config holds SMTP settings for the gomail provider.
type Config struct {
	SMTPHost  string
	SMTPPort  int
	Username  string
	Password  string
	FromEmail string
	FromName  string
}

func (c Config) Validate() error {
	if c.SMTPHost == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.SMTPPort == 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.FromEmail == "" {
		return fmt.Errorf("from email is required")
	}
	return nil
}

// SMTPProvider sends mail over SMTP using gomail.
type SMTPProvider struct {
	config Config
	dialer *gomail.Dialer
}

func NewSMTPProvider(config Config) (*SMTPProvider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid email config: %w", err)
	}

	return &SMTPProvider{
		config: config,
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.Username, config.Password),
	}, nil
}

func (p *SMTPProvider) Send(msg *Message) error {
	m := gomail.NewMessage()
	m.SetAddressHeader("From", p.config.FromEmail, p.config.FromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Body)

	return p.dialer.DialAndSend(m)
}

func (p *SMTPProvider) SendContactConfirmation(to, name, messageBody string) error {
	body := fmt.Sprintf(`Dear %s,

Thank you for contacting us through our website. This is an automated
confirmation to let you know that we have received your message.

Your Message:
--------------------------------------------------
%s
--------------------------------------------------

Our team will review your submission and get back to you shortly.

Best regards,
Management Team
`, name, messageBody)

	return p.Send(&Message{
		To:      to,
		Subject: "Message Received: Thank you for reaching out",
		Body:    body,
	})
}
