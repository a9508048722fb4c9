package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateTicketNumber is returned by TicketRepository.Create when the
// generated ticket number collides with an existing one. The issuer
// regenerates and retries instead of trusting the random draw.
var ErrDuplicateTicketNumber = errors.New("ticket number already in use")

// SponsorTicket is one numbered admission credential issued against a
// sponsor's seat allocation. SentAt and PrintedAt are independent markers; a
// ticket may be both emailed and printed.
// swagger:model SponsorTicket
type SponsorTicket struct {
	ID             int64       `json:"id"`
	SponsorID      int64       `json:"sponsor_id"`
	TicketNumber   string      `json:"ticket_number"`
	RecipientName  string      `json:"recipient_name"`
	RecipientEmail string      `json:"recipient_email"`
	SentAt         *time.Time  `json:"sent_at"`
	PrintedAt      *time.Time  `json:"printed_at"`
	Year           int         `json:"year"`
}

// Assigned reports whether the ticket has been given to a recipient: a
// recipient name or either completion marker counts.
func (t *SponsorTicket) Assigned() bool {
	return t.RecipientName != "" || t.RecipientEmail != "" || t.SentAt != nil || t.PrintedAt != nil
}

// AssignedGuest is an assigned sponsor ticket joined with its sponsor, used
// by the admin guest export.
type AssignedGuest struct {
	Ticket      *SponsorTicket
	CompanyName string
	Tier        SponsorTier
}

// TicketRepository defines storage operations for sponsor tickets.
type TicketRepository interface {
	CountBySponsor(ctx context.Context, sponsorID int64, year int) (int, error)
	// Create inserts the ticket and sets its ID. Returns
	// ErrDuplicateTicketNumber when the number violates the uniqueness
	// constraint.
	Create(ctx context.Context, t *SponsorTicket) error
	ListBySponsor(ctx context.Context, sponsorID int64, year int) ([]*SponsorTicket, error)
	GetByID(ctx context.Context, id int64) (*SponsorTicket, error)
	// Assign sets the recipient fields. Last write wins; re-assignment never
	// creates a duplicate ticket.
	Assign(ctx context.Context, id int64, name, email string) error
	MarkSent(ctx context.Context, id int64, at time.Time) error
	MarkPrinted(ctx context.Context, id int64, at time.Time) error
	ListAssigned(ctx context.Context, year int) ([]*AssignedGuest, error)
}

// TicketService defines the sponsor-side ticket issuer.
type TicketService interface {
	// EnsureTickets lazily creates tickets up to seatCount. Idempotent:
	// running it twice creates the allocation once. Returns the number of
	// tickets created by this call.
	EnsureTickets(ctx context.Context, sponsorID int64, seatCount int) (created int, err error)
	ListTickets(ctx context.Context, sponsorID int64) ([]*SponsorTicket, error)
	// SendTicket assigns the recipient, emails the ticket, and marks it sent.
	SendTicket(ctx context.Context, sponsorID, ticketID int64, name, email string) (*SponsorTicket, error)
	// PrintTicket assigns the recipient, marks the ticket printed, and
	// returns the printable HTML rendering.
	PrintTicket(ctx context.Context, sponsorID, ticketID int64, name, email string) (*SponsorTicket, string, error)
}
