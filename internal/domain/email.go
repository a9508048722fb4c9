package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the
// given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// TicketEmailData holds data for the sponsor-ticket email.
type TicketEmailData struct {
	RecipientName  string
	RecipientEmail string
	TicketNumber   string
	CompanyName    string
	Event          EventDetails
}

// EmailService defines the contract for sending domain-level emails.
type EmailService interface {
	SendTicket(ctx context.Context, data *TicketEmailData) error
}
