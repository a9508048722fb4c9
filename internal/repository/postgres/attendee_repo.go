package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

const attendeeColumns = `
	id, COALESCE(prefix, ''), first_name, last_name, COALESCE(suffix, ''),
	COALESCE(school_system, ''), COALESCE(grade_subject, ''), bringing_plus_one,
	COALESCE(email, ''), COALESCE(status, ''), COALESCE(school_cleaned, ''),
	scan_code, COALESCE(attendance_response, ''), checked_in, honor, year`

type attendeeRepository struct {
	DB *sql.DB
}

func NewAttendeeRepository(db *sql.DB) domain.AttendeeRepository {
	return &attendeeRepository{DB: db}
}

func scanAttendee(row interface{ Scan(...any) error }) (*domain.Attendee, error) {
	a := &domain.Attendee{}
	err := row.Scan(
		&a.ID, &a.Prefix, &a.FirstName, &a.LastName, &a.Suffix,
		&a.SchoolSystem, &a.GradeSubject, &a.BringingPlusOne,
		&a.Email, &a.InviteStatus, &a.SchoolCleaned,
		&a.ScanCode, &a.AttendanceResponse, &a.CheckedIn, &a.Honor, &a.Year,
	)
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) GetByScanCode(ctx context.Context, scanCode string, year int) (*domain.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE scan_code = $1 AND year = $2
	`
	a, err := scanAttendee(r.DB.QueryRowContext(ctx, query, scanCode, year))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *attendeeRepository) SearchByName(ctx context.Context, nameSubstring string, year int) ([]*domain.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE (first_name ILIKE '%' || $1 || '%'
			OR last_name ILIKE '%' || $1 || '%'
			OR first_name || ' ' || last_name ILIKE '%' || $1 || '%')
			AND year = $2
		ORDER BY last_name, first_name
		LIMIT 50
	`
	rows, err := r.DB.QueryContext(ctx, query, nameSubstring, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendees(rows)
}

func (r *attendeeRepository) List(ctx context.Context, year int, p domain.PaginationParams) ([]*domain.Attendee, int, error) {
	var total int
	if err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM attendees WHERE year = $1`, year).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE year = $1
		ORDER BY last_name, first_name
		LIMIT $2 OFFSET $3
	`
	rows, err := r.DB.QueryContext(ctx, query, year, p.Limit(20), p.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	attendees, err := collectAttendees(rows)
	if err != nil {
		return nil, 0, err
	}
	return attendees, total, nil
}

func (r *attendeeRepository) UpsertByScanCode(ctx context.Context, a *domain.Attendee) (bool, error) {
	// xmax = 0 distinguishes a fresh insert from a conflict update.
	query := `
		INSERT INTO attendees (
			prefix, first_name, last_name, suffix, school_system, grade_subject,
			bringing_plus_one, email, status, school_cleaned, scan_code,
			attendance_response, checked_in, honor, year
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (scan_code, year) DO UPDATE SET
			prefix = EXCLUDED.prefix,
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			suffix = EXCLUDED.suffix,
			school_system = EXCLUDED.school_system,
			grade_subject = EXCLUDED.grade_subject,
			bringing_plus_one = EXCLUDED.bringing_plus_one,
			email = EXCLUDED.email,
			status = EXCLUDED.status,
			school_cleaned = EXCLUDED.school_cleaned,
			attendance_response = EXCLUDED.attendance_response,
			honor = EXCLUDED.honor
		RETURNING id, (xmax = 0)
	`
	var created bool
	err := r.DB.QueryRowContext(ctx, query,
		a.Prefix, a.FirstName, a.LastName, a.Suffix, a.SchoolSystem, a.GradeSubject,
		a.BringingPlusOne, a.Email, a.InviteStatus, a.SchoolCleaned, a.ScanCode,
		a.AttendanceResponse, int(a.CheckedIn), int(a.Honor), a.Year,
	).Scan(&a.ID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert attendee %q: %w", a.ScanCode, err)
	}
	return created, nil
}

func (r *attendeeRepository) ExportAll(ctx context.Context, year int) ([]*domain.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE year = $1
		ORDER BY last_name, first_name
	`
	rows, err := r.DB.QueryContext(ctx, query, year)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectAttendees(rows)
}

// CheckIn is the race-sensitive transition: the WHERE clause only matches a
// row still in NotCheckedIn, so of two concurrent scans exactly one update
// takes effect.
func (r *attendeeRepository) CheckIn(ctx context.Context, scanCode string, year int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE attendees
		SET checked_in = 1
		WHERE scan_code = $1 AND year = $2 AND checked_in = 0
	`, scanCode, year)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *attendeeRepository) CheckInWithPlusOne(ctx context.Context, scanCode string, year int) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE attendees
		SET checked_in = 2
		WHERE scan_code = $1 AND year = $2 AND bringing_plus_one = TRUE AND checked_in IN (0, 1)
	`, scanCode, year)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *attendeeRepository) ResetCheckIns(ctx context.Context, year int) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `
		UPDATE attendees
		SET checked_in = 0
		WHERE year = $1 AND checked_in <> 0
	`, year)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func collectAttendees(rows *sql.Rows) ([]*domain.Attendee, error) {
	var out []*domain.Attendee
	for rows.Next() {
		a, err := scanAttendee(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
