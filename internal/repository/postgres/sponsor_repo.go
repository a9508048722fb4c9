package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

type sponsorRepository struct {
	DB *sql.DB
}

func NewSponsorRepository(db *sql.DB) domain.SponsorRepository {
	return &sponsorRepository{DB: db}
}

func (r *sponsorRepository) Create(ctx context.Context, s *domain.Sponsor) error {
	query := `
		INSERT INTO sponsors (username, password, company_name, tier, seat_count, is_admin, year)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err := r.DB.QueryRowContext(ctx, query,
		s.Username, s.Password, s.CompanyName, string(s.Tier), s.SeatCount, s.IsAdmin, s.Year,
	).Scan(&s.ID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return domain.ErrDuplicateUsername
		}
		return err
	}
	return nil
}

func (r *sponsorRepository) GetByUsername(ctx context.Context, username string, year int) (*domain.Sponsor, error) {
	query := `
		SELECT id, username, password, company_name, tier, seat_count, is_admin, year
		FROM sponsors
		WHERE username = $1 AND year = $2
	`
	return r.scanSponsor(r.DB.QueryRowContext(ctx, query, username, year))
}

func (r *sponsorRepository) GetByID(ctx context.Context, id int64) (*domain.Sponsor, error) {
	query := `
		SELECT id, username, password, company_name, tier, seat_count, is_admin, year
		FROM sponsors
		WHERE id = $1
	`
	return r.scanSponsor(r.DB.QueryRowContext(ctx, query, id))
}

func (r *sponsorRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	_, err := r.DB.ExecContext(ctx, `UPDATE sponsors SET password = $1 WHERE id = $2`, passwordHash, id)
	return err
}

func (r *sponsorRepository) ListWithCounts(ctx context.Context, year int) ([]*domain.SponsorSummary, error) {
	query := `
		SELECT s.id, s.username, s.company_name, s.tier, s.seat_count, s.is_admin, s.year,
			COUNT(t.id),
			COUNT(t.id) FILTER (WHERE t.recipient_name IS NOT NULL
				OR t.recipient_email IS NOT NULL
				OR t.sent_at IS NOT NULL
				OR t.printed_at IS NOT NULL)
		FROM sponsors s
		LEFT JOIN sponsor_tickets t ON t.sponsor_id = s.id AND t.year = s.year
		WHERE s.year = $1
		GROUP BY s.id
		ORDER BY s.company_name
	`
	rows, err := r.DB.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.SponsorSummary
	for rows.Next() {
		s := &domain.Sponsor{}
		summary := &domain.SponsorSummary{Sponsor: s}
		var tier string
		err := rows.Scan(
			&s.ID, &s.Username, &s.CompanyName, &tier, &s.SeatCount, &s.IsAdmin, &s.Year,
			&summary.TicketCount, &summary.AssignedCount,
		)
		if err != nil {
			return nil, err
		}
		s.Tier = domain.SponsorTier(tier)
		out = append(out, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *sponsorRepository) scanSponsor(row *sql.Row) (*domain.Sponsor, error) {
	s := &domain.Sponsor{}
	var tier string
	err := row.Scan(&s.ID, &s.Username, &s.Password, &s.CompanyName, &tier, &s.SeatCount, &s.IsAdmin, &s.Year)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	s.Tier = domain.SponsorTier(tier)
	return s, nil
}
