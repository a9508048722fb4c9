package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

var rosterExportHeader = []string{
	"prefix", "first_name", "last_name", "suffix", "school_system",
	"grade_subject", "bringing_plus_one", "email", "status", "school_cleaned",
	"qr_code", "attendance_response", "checked_in", "honor", "year",
}

var guestExportHeader = []string{"name", "email", "type", "school", "ticket_id", "table"}

type rosterService struct {
	attendees domain.AttendeeRepository
	tickets   domain.TicketRepository
	fetcher   domain.RosterFetcher
	logger    *slog.Logger
	year      int
}

// NewRosterService creates the roster import/export service.
func NewRosterService(
	attendees domain.AttendeeRepository,
	tickets domain.TicketRepository,
	fetcher domain.RosterFetcher,
	logger *slog.Logger,
	year int,
) domain.RosterService {
	return &rosterService{
		attendees: attendees,
		tickets:   tickets,
		fetcher:   fetcher,
		logger:    logger,
		year:      year,
	}
}

func (s *rosterService) Import(ctx context.Context, r io.Reader) (*domain.RosterImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read roster header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := cols["qr_code"]; !ok {
		return nil, fmt.Errorf("roster file has no qr_code column: %w", domain.ErrInvalidInput)
	}

	result := &domain.RosterImportResult{}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read roster row: %w", err)
		}

		field := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		scanCode := field("qr_code")
		firstName := field("first_name")
		lastName := field("last_name")
		if scanCode == "" || (firstName == "" && lastName == "") {
			result.Skipped++
			continue
		}

		year := s.year
		if y, err := strconv.Atoi(field("year")); err == nil && y > 0 {
			year = y
		}

		a := &domain.Attendee{
			Prefix:             field("prefix"),
			FirstName:          firstName,
			LastName:           lastName,
			Suffix:             field("suffix"),
			SchoolSystem:       field("school_system"),
			GradeSubject:       field("grade_subject"),
			BringingPlusOne:    strings.EqualFold(field("bringing_plus_one"), "yes"),
			Email:              field("email"),
			InviteStatus:       field("status"),
			SchoolCleaned:      field("school_cleaned"),
			ScanCode:           scanCode,
			AttendanceResponse: field("attendance_response"),
			CheckedIn:          parseCheckedIn(field("checked_in")),
			Honor:              parseHonor(field("honor"), field("toty")),
			Year:               year,
		}

		created, err := s.attendees.UpsertByScanCode(ctx, a)
		if err != nil {
			return nil, fmt.Errorf("import row %q: %w", scanCode, err)
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
	}

	s.logger.InfoContext(ctx, "roster imported",
		"created", result.Created, "updated", result.Updated, "skipped", result.Skipped)
	return result, nil
}

func (s *rosterService) ImportURL(ctx context.Context, url string) (*domain.RosterImportResult, error) {
	body, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch roster: %w", err)
	}
	defer body.Close()
	return s.Import(ctx, body)
}

func (s *rosterService) ExportAttendees(ctx context.Context, w io.Writer) (int, error) {
	attendees, err := s.attendees.ExportAll(ctx, s.year)
	if err != nil {
		return 0, fmt.Errorf("export attendees: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(rosterExportHeader); err != nil {
		return 0, err
	}
	for _, a := range attendees {
		row := []string{
			a.Prefix, a.FirstName, a.LastName, a.Suffix, a.SchoolSystem,
			a.GradeSubject, yesNo(a.BringingPlusOne), a.Email, a.InviteStatus,
			a.SchoolCleaned, a.ScanCode, a.AttendanceResponse,
			strconv.Itoa(int(a.CheckedIn)), strconv.Itoa(int(a.Honor)),
			strconv.Itoa(a.Year),
		}
		if err := writer.Write(row); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return len(attendees), nil
}

func (s *rosterService) ExportGuests(ctx context.Context, w io.Writer) (int, error) {
	attendees, err := s.attendees.ExportAll(ctx, s.year)
	if err != nil {
		return 0, fmt.Errorf("export attendees: %w", err)
	}
	guests, err := s.tickets.ListAssigned(ctx, s.year)
	if err != nil {
		return 0, fmt.Errorf("export sponsor guests: %w", err)
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(guestExportHeader); err != nil {
		return 0, err
	}
	rows := 0
	for _, a := range attendees {
		school := a.SchoolCleaned
		if school == "" {
			school = a.SchoolSystem
		}
		// Table assignments are handled by the venue; the column stays for
		// the seating spreadsheet to fill in.
		if err := writer.Write([]string{a.FullName(), a.Email, "Attendee", school, a.ScanCode, ""}); err != nil {
			return 0, err
		}
		rows++
	}
	for _, g := range guests {
		err := writer.Write([]string{
			g.Ticket.RecipientName, g.Ticket.RecipientEmail,
			string(g.Tier), g.CompanyName, g.Ticket.TicketNumber, "",
		})
		if err != nil {
			return 0, err
		}
		rows++
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}
	return rows, nil
}

func (s *rosterService) ResetCheckIns(ctx context.Context) (int64, error) {
	n, err := s.attendees.ResetCheckIns(ctx, s.year)
	if err != nil {
		return 0, fmt.Errorf("reset check-ins: %w", err)
	}
	s.logger.InfoContext(ctx, "check-ins reset", "rows", n)
	return n, nil
}

// parseCheckedIn reconciles the schema drift between the old boolean
// checked_in exports and the tri-state integer: "true"/"yes" map to
// CheckedIn, digits map straight onto the enum, anything else is
// NotCheckedIn.
func parseCheckedIn(v string) domain.CheckInStatus {
	switch strings.ToLower(v) {
	case "true", "yes":
		return domain.CheckedIn
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 2 {
		return domain.CheckInStatus(n)
	}
	return domain.NotCheckedIn
}

// parseHonor accepts either the current honor column or the legacy toty one.
func parseHonor(honor, toty string) domain.HonorFlag {
	v := honor
	if v == "" {
		v = toty
	}
	if n, err := strconv.Atoi(v); err == nil && n >= 0 && n <= 3 {
		return domain.HonorFlag(n)
	}
	return domain.HonorNone
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
