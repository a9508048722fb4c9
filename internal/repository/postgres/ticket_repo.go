package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lib/pq"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

const ticketColumns = `
	id, sponsor_id, ticket_number, COALESCE(recipient_name, ''),
	COALESCE(recipient_email, ''), sent_at, printed_at, year`

type ticketRepository struct {
	DB *sql.DB
}

func NewTicketRepository(db *sql.DB) domain.TicketRepository {
	return &ticketRepository{DB: db}
}

func (r *ticketRepository) CountBySponsor(ctx context.Context, sponsorID int64, year int) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sponsor_tickets WHERE sponsor_id = $1 AND year = $2`,
		sponsorID, year,
	).Scan(&count)
	return count, err
}

func (r *ticketRepository) Create(ctx context.Context, t *domain.SponsorTicket) error {
	query := `
		INSERT INTO sponsor_tickets (sponsor_id, ticket_number, year)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query, t.SponsorID, t.TicketNumber, t.Year).Scan(&t.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateTicketNumber
		}
		return err
	}
	return nil
}

func (r *ticketRepository) ListBySponsor(ctx context.Context, sponsorID int64, year int) ([]*domain.SponsorTicket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM sponsor_tickets
		WHERE sponsor_id = $1 AND year = $2
		ORDER BY id
	`
	rows, err := r.DB.QueryContext(ctx, query, sponsorID, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.SponsorTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id int64) (*domain.SponsorTicket, error) {
	query := `
		SELECT ` + ticketColumns + `
		FROM sponsor_tickets
		WHERE id = $1
	`
	t, err := scanTicket(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *ticketRepository) Assign(ctx context.Context, id int64, name, email string) error {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE sponsor_tickets
		SET recipient_name = $1, recipient_email = $2
		WHERE id = $3
	`, nullIfEmpty(name), nullIfEmpty(email), id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ticketRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sponsor_tickets SET sent_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ticketRepository) MarkPrinted(ctx context.Context, id int64, at time.Time) error {
	res, err := r.DB.ExecContext(ctx,
		`UPDATE sponsor_tickets SET printed_at = $1 WHERE id = $2`, at, id)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *ticketRepository) ListAssigned(ctx context.Context, year int) ([]*domain.AssignedGuest, error) {
	query := `
		SELECT t.id, t.sponsor_id, t.ticket_number, COALESCE(t.recipient_name, ''),
			COALESCE(t.recipient_email, ''), t.sent_at, t.printed_at, t.year,
			s.company_name, s.tier
		FROM sponsor_tickets t
		JOIN sponsors s ON s.id = t.sponsor_id
		WHERE t.year = $1
			AND (t.recipient_name IS NOT NULL OR t.recipient_email IS NOT NULL
				OR t.sent_at IS NOT NULL OR t.printed_at IS NOT NULL)
		ORDER BY s.company_name, t.id
	`
	rows, err := r.DB.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.AssignedGuest
	for rows.Next() {
		t := &domain.SponsorTicket{}
		g := &domain.AssignedGuest{Ticket: t}
		var sentAt, printedAt sql.NullTime
		var tier string
		err := rows.Scan(
			&t.ID, &t.SponsorID, &t.TicketNumber, &t.RecipientName,
			&t.RecipientEmail, &sentAt, &printedAt, &t.Year,
			&g.CompanyName, &tier,
		)
		if err != nil {
			return nil, err
		}
		if sentAt.Valid {
			t.SentAt = &sentAt.Time
		}
		if printedAt.Valid {
			t.PrintedAt = &printedAt.Time
		}
		g.Tier = domain.SponsorTier(tier)
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanTicket(row interface{ Scan(...any) error }) (*domain.SponsorTicket, error) {
	t := &domain.SponsorTicket{}
	var sentAt, printedAt sql.NullTime
	err := row.Scan(
		&t.ID, &t.SponsorID, &t.TicketNumber, &t.RecipientName,
		&t.RecipientEmail, &sentAt, &printedAt, &t.Year,
	)
	if err != nil {
		return nil, err
	}
	if sentAt.Valid {
		t.SentAt = &sentAt.Time
	}
	if printedAt.Valid {
		t.PrintedAt = &printedAt.Time
	}
	return t, nil
}

func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
