package services

import (
	"context"
	"fmt"
	"net/mail"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/mailer"
	"github.com/rpupo63/portfolio-backend/models"
)

const (
	ContactSentMessage   = "Email sent successfully!"
	ContactFailedMessage = "Failed to send email. Please try again later."
)

// ContactResult is the user visible outcome of a contact submission.
type ContactResult struct {
	Sent    bool
	Message string
}

type ContactService struct {
	mailer mailer.Mailer
	from   string
	to     string
	logger zerolog.Logger
}

// NewContactService forwards messages from the from address to the operator
// mailbox at to.
func NewContactService(m mailer.Mailer, from, to string) *ContactService {
	return &ContactService{
		mailer: m,
		from:   from,
		to:     to,
		logger: log.With().Str("service", "contact").Logger(),
	}
}

// Send validates the message and forwards it. Only validation problems come back
// as an error; delivery failures are logged and reported through the result.
func (s *ContactService) Send(ctx context.Context, msg models.ContactMessage) (ContactResult, error) {
	if err := validateContact(msg); err != nil {
		return ContactResult{}, err
	}

	err := s.mailer.Send(ctx, mailer.Message{
		From:    s.from,
		To:      []string{s.to},
		ReplyTo: msg.Email,
		Subject: contactSubject(msg),
		Body:    contactBody(msg),
	})
	if err != nil {
		s.logger.Error().Err(errs.NewDeliveryError("mail", err)).Msg("Failed to send email")
		return ContactResult{Sent: false, Message: ContactFailedMessage}, nil
	}

	s.logger.Info().Str("replyTo", msg.Email).Msg("contact message forwarded")
	return ContactResult{Sent: true, Message: ContactSentMessage}, nil
}

func validateContact(msg models.ContactMessage) error {
	v := errs.NewValidationError()
	requireText(v, "name", msg.Name, 0)
	requireText(v, "email", msg.Email, 0)
	requireText(v, "message", msg.Message, 0)

	if !v.Has("email") {
		if _, err := mail.ParseAddress(msg.Email); err != nil {
			v.Add("email", "Invalid email address.")
		}
	}
	return v.OrNil()
}

func contactSubject(msg models.ContactMessage) string {
	// header injection guard; the body carries the name verbatim
	name := strings.NewReplacer("\r", " ", "\n", " ").Replace(msg.Name)
	return "New Portfolio Message from " + name
}

func contactBody(msg models.ContactMessage) string {
	return fmt.Sprintf("Name: %s\nEmail: %s\n\nMessage:\n%s", msg.Name, msg.Email, msg.Message)
}
