// Package mailer delivers plain text email through SMTP or the Resend API.
package mailer

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/errs"
)

// Message is a single plain text email.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New returns the mailer selected by cfg.Provider ("smtp", "resend" or "log").
func New(cfg config.MailConfig, logger zerolog.Logger) (Mailer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", "smtp":
		if cfg.Server == "" {
			return nil, errs.NewInvalidConfigError("MAIL_SERVER", "required for the smtp provider")
		}
		return NewSMTPMailer(cfg), nil
	case "resend":
		if cfg.ResendAPIKey == "" {
			return nil, errs.NewInvalidConfigError("RESEND_API_KEY", "required for the resend provider")
		}
		return NewResendMailer(cfg.ResendAPIKey), nil
	case "log":
		return NewLogMailer(logger), nil
	default:
		return nil, errs.NewInvalidConfigError("MAIL_PROVIDER", "unknown provider "+cfg.Provider)
	}
}

// LogMailer writes messages to the log instead of sending them. Handy for local
// development without mail credentials.
type LogMailer struct {
	logger zerolog.Logger
}

func NewLogMailer(logger zerolog.Logger) *LogMailer {
	return &LogMailer{logger: logger.With().Str("mailer", "log").Logger()}
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.logger.Info().
		Str("from", msg.From).
		Strs("to", msg.To).
		Str("replyTo", msg.ReplyTo).
		Str("subject", msg.Subject).
		Msg(msg.Body)
	return nil
}
