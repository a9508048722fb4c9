package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailService returns an EmailService that uses the given Mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.EmailService {
	return &emailService{mailer: mailer, renderer: renderer, logger: logger}
}

// SendTicket sends a sponsor-ticket email using the "ticket" template.
func (s *emailService) SendTicket(ctx context.Context, data *domain.TicketEmailData) error {
	if data == nil {
		return fmt.Errorf("ticket email data is nil")
	}
	subject, htmlBody, textBody, err := s.renderer.Render("ticket", data)
	if err != nil {
		return fmt.Errorf("failed to render ticket template: %w", err)
	}
	if err := s.mailer.Send(data.RecipientEmail, subject, htmlBody, textBody); err != nil {
		return fmt.Errorf("failed to send ticket email: %w", err)
	}
	s.logger.InfoContext(ctx, "ticket email sent", "ticket_number", data.TicketNumber)
	return nil
}
