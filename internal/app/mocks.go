package app

import (
	"contactdesk_backend/internal/email"
	"contactdesk_backend/internal/logger"
)

// LogMailProvider is used when SMTP is not configured: messages are logged,
// never sent.
type LogMailProvider struct{}

func (p *LogMailProvider) Send(msg *email.Message) error {
	logger.Info("mail (not sent)", "to", msg.To, "subject", msg.Subject)
	return nil
}

func (p *LogMailProvider) SendContactConfirmation(to, name, messageBody string) error {
	logger.Info("contact confirmation (not sent)", "to", to, "name", name)
	return nil
}
