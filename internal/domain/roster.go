package domain

import (
	"context"
	"io"
)

// RosterImportResult reports the outcome of a roster import.
type RosterImportResult struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// RosterFetcher retrieves a roster file from a remote location.
type RosterFetcher interface {
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// RosterService imports roster CSVs and produces the archival exports.
type RosterService interface {
	// Import reads roster rows from r and upserts attendees by scan code.
	Import(ctx context.Context, r io.Reader) (*RosterImportResult, error)
	// ImportURL fetches the roster CSV from url and imports it.
	ImportURL(ctx context.Context, url string) (*RosterImportResult, error)
	// ExportAttendees writes the full attendee table as CSV and returns the
	// number of rows written.
	ExportAttendees(ctx context.Context, w io.Writer) (int, error)
	// ExportGuests writes the combined guest list (attendees plus assigned
	// sponsor tickets) as CSV: name, email, type, school, ticket_id, table.
	ExportGuests(ctx context.Context, w io.Writer) (int, error)
	// ResetCheckIns returns every attendee to NotCheckedIn. Used between
	// rehearsals and before doors open.
	ResetCheckIns(ctx context.Context) (int64, error)
}
