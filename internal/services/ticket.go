package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

// maxTicketNumberRetries bounds regeneration when a random ticket number
// collides with an existing one. The table is small, so one retry is already
// rare; three exhausted retries means something is wrong with the table.
const maxTicketNumberRetries = 3

type ticketService struct {
	tickets  domain.TicketRepository
	sponsors domain.SponsorRepository
	emails   domain.EmailService
	renderer domain.TicketRenderer
	event    domain.EventDetails
	logger   *slog.Logger
	year     int
	now      func() time.Time
	numberFn func() string
}

// NewTicketService creates the sponsor-side ticket issuer.
func NewTicketService(
	tickets domain.TicketRepository,
	sponsors domain.SponsorRepository,
	emails domain.EmailService,
	renderer domain.TicketRenderer,
	event domain.EventDetails,
	logger *slog.Logger,
	year int,
) domain.TicketService {
	return &ticketService{
		tickets:  tickets,
		sponsors: sponsors,
		emails:   emails,
		renderer: renderer,
		event:    event,
		logger:   logger,
		year:     year,
		now:      time.Now,
		numberFn: randomTicketNumber,
	}
}

// randomTicketNumber draws a fixed-width 8-digit number. Uniqueness is
// enforced by the database constraint, not by the draw.
func randomTicketNumber() string {
	return fmt.Sprintf("%08d", rand.IntN(100_000_000))
}

func (s *ticketService) EnsureTickets(ctx context.Context, sponsorID int64, seatCount int) (int, error) {
	existing, err := s.tickets.CountBySponsor(ctx, sponsorID, s.year)
	if err != nil {
		return 0, fmt.Errorf("count tickets: %w", err)
	}
	if existing >= seatCount {
		return 0, nil
	}

	// Each insert commits on its own; a failure partway leaves the earlier
	// tickets in place and the next EnsureTickets call tops the pool up.
	created := 0
	for i := existing; i < seatCount; i++ {
		if err := s.createOne(ctx, sponsorID); err != nil {
			return created, err
		}
		created++
	}
	s.logger.InfoContext(ctx, "tickets created", "sponsor_id", sponsorID, "created", created)
	return created, nil
}

func (s *ticketService) createOne(ctx context.Context, sponsorID int64) error {
	for attempt := 0; attempt <= maxTicketNumberRetries; attempt++ {
		ticket := &domain.SponsorTicket{
			SponsorID:    sponsorID,
			TicketNumber: s.numberFn(),
			Year:         s.year,
		}
		err := s.tickets.Create(ctx, ticket)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateTicketNumber) {
			return fmt.Errorf("create ticket: %w", err)
		}
	}
	return fmt.Errorf("could not generate a unique ticket number after %d retries", maxTicketNumberRetries)
}

func (s *ticketService) ListTickets(ctx context.Context, sponsorID int64) ([]*domain.SponsorTicket, error) {
	tickets, err := s.tickets.ListBySponsor(ctx, sponsorID, s.year)
	if err != nil {
		return nil, fmt.Errorf("list tickets: %w", err)
	}
	if tickets == nil {
		tickets = []*domain.SponsorTicket{}
	}
	return tickets, nil
}

func (s *ticketService) SendTicket(ctx context.Context, sponsorID, ticketID int64, name, email string) (*domain.SponsorTicket, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" {
		return nil, fmt.Errorf("recipient name is required: %w", domain.ErrInvalidInput)
	}
	if email == "" {
		return nil, fmt.Errorf("recipient email is required to send a ticket: %w", domain.ErrInvalidInput)
	}

	ticket, sponsor, err := s.ownedTicket(ctx, sponsorID, ticketID)
	if err != nil {
		return nil, err
	}

	// Assignment is last-write-wins; re-sending overwrites the recipient
	// but never creates another ticket.
	if err := s.tickets.Assign(ctx, ticketID, name, email); err != nil {
		return nil, fmt.Errorf("assign ticket: %w", err)
	}

	err = s.emails.SendTicket(ctx, &domain.TicketEmailData{
		RecipientName:  name,
		RecipientEmail: email,
		TicketNumber:   ticket.TicketNumber,
		CompanyName:    sponsor.CompanyName,
		Event:          s.event,
	})
	if err != nil {
		return nil, fmt.Errorf("send ticket email: %w", err)
	}

	if err := s.tickets.MarkSent(ctx, ticketID, s.now()); err != nil {
		return nil, fmt.Errorf("mark ticket sent: %w", err)
	}

	return s.tickets.GetByID(ctx, ticketID)
}

func (s *ticketService) PrintTicket(ctx context.Context, sponsorID, ticketID int64, name, email string) (*domain.SponsorTicket, string, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	_, sponsor, err := s.ownedTicket(ctx, sponsorID, ticketID)
	if err != nil {
		return nil, "", err
	}

	if name != "" || email != "" {
		if err := s.tickets.Assign(ctx, ticketID, name, email); err != nil {
			return nil, "", fmt.Errorf("assign ticket: %w", err)
		}
	}
	if err := s.tickets.MarkPrinted(ctx, ticketID, s.now()); err != nil {
		return nil, "", fmt.Errorf("mark ticket printed: %w", err)
	}

	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, "", fmt.Errorf("get ticket: %w", err)
	}

	html, err := s.renderer.RenderPrintable(ticket, sponsor.CompanyName, s.event)
	if err != nil {
		return nil, "", fmt.Errorf("render ticket: %w", err)
	}
	return ticket, html, nil
}

// ownedTicket loads the ticket and verifies it belongs to the sponsor.
func (s *ticketService) ownedTicket(ctx context.Context, sponsorID, ticketID int64) (*domain.SponsorTicket, *domain.Sponsor, error) {
	ticket, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get ticket: %w", err)
	}
	if ticket.SponsorID != sponsorID {
		return nil, nil, domain.ErrForbidden
	}
	sponsor, err := s.sponsors.GetByID(ctx, sponsorID)
	if err != nil {
		return nil, nil, fmt.Errorf("get sponsor: %w", err)
	}
	return ticket, sponsor, nil
}
