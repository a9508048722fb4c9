package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

const sampleRoster = `prefix,first_name,last_name,suffix,school_system,grade_subject,bringing_plus_one,email,status,school_cleaned,qr_code,attendance_response,checked_in,honor
Ms.,Dana,Whitfield,,Richmond County,4th Grade,Yes,dana@example.org,Sent,Pine Hill Elementary,1000,Attending,0,1
Mr.,Miguel,Santos,,Columbia County,Band,No,miguel@example.org,Sent,Lakeside Middle,1001,Attending,true,0
,,,,,,,,,,,,,
Dr.,Priya,Nair,,Richmond County,Science,no,priya@example.org,Sent,Westview High,,Attending,0,0
`

func newTestRosterService(attendees *fakeAttendeeRepo, tickets *fakeTicketRepo, fetcher domain.RosterFetcher) domain.RosterService {
	return NewRosterService(attendees, tickets, fetcher, testLogger, 2026)
}

func TestRosterService_Import(t *testing.T) {
	attendees := newFakeAttendeeRepo()
	svc := newTestRosterService(attendees, newFakeTicketRepo(), &fakeFetcher{})
	ctx := context.Background()

	result, err := svc.Import(ctx, strings.NewReader(sampleRoster))
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 0, result.Updated)
	// The blank row and the row with no qr_code are skipped.
	assert.Equal(t, 2, result.Skipped)

	a, err := attendees.GetByScanCode(ctx, "1000", 2026)
	require.NoError(t, err)
	assert.Equal(t, "Ms. Dana Whitfield", a.FullName())
	assert.True(t, a.BringingPlusOne)
	assert.Equal(t, domain.NotCheckedIn, a.CheckedIn)
	assert.Equal(t, domain.HonorTeacherOfYear, a.Honor)
	assert.Equal(t, 2026, a.Year)

	// Legacy boolean checked_in exports map onto the tri-state.
	b, err := attendees.GetByScanCode(ctx, "1001", 2026)
	require.NoError(t, err)
	assert.Equal(t, domain.CheckedIn, b.CheckedIn)
	assert.False(t, b.BringingPlusOne)
}

func TestRosterService_Import_ReimportUpdatesInPlace(t *testing.T) {
	attendees := newFakeAttendeeRepo()
	svc := newTestRosterService(attendees, newFakeTicketRepo(), &fakeFetcher{})
	ctx := context.Background()

	_, err := svc.Import(ctx, strings.NewReader(sampleRoster))
	require.NoError(t, err)

	result, err := svc.Import(ctx, strings.NewReader(sampleRoster))
	require.NoError(t, err)
	assert.Equal(t, 0, result.Created)
	assert.Equal(t, 2, result.Updated)
}

func TestRosterService_Import_RequiresScanCodeColumn(t *testing.T) {
	svc := newTestRosterService(newFakeAttendeeRepo(), newFakeTicketRepo(), &fakeFetcher{})

	_, err := svc.Import(context.Background(), strings.NewReader("first_name,last_name\nDana,Whitfield\n"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "qr_code")
}

func TestRosterService_Import_LegacyTotyColumn(t *testing.T) {
	attendees := newFakeAttendeeRepo()
	svc := newTestRosterService(attendees, newFakeTicketRepo(), &fakeFetcher{})
	ctx := context.Background()

	roster := "first_name,last_name,qr_code,toty\nDana,Whitfield,1000,2\n"
	_, err := svc.Import(ctx, strings.NewReader(roster))
	require.NoError(t, err)

	a, err := attendees.GetByScanCode(ctx, "1000", 2026)
	require.NoError(t, err)
	assert.Equal(t, domain.HonorStaffOfYear, a.Honor)
}

func TestRosterService_ImportURL(t *testing.T) {
	attendees := newFakeAttendeeRepo()
	fetcher := &fakeFetcher{body: sampleRoster}
	svc := newTestRosterService(attendees, newFakeTicketRepo(), fetcher)

	result, err := svc.ImportURL(context.Background(), "https://sheets.example.org/roster.csv")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Created)
}

func TestRosterService_ExportAttendees(t *testing.T) {
	attendees := newFakeAttendeeRepo(&domain.Attendee{
		ID: 1, Prefix: "Ms.", FirstName: "Dana", LastName: "Whitfield",
		SchoolSystem: "Richmond County", GradeSubject: "4th Grade",
		BringingPlusOne: true, Email: "dana@example.org", InviteStatus: "Sent",
		SchoolCleaned: "Pine Hill Elementary", ScanCode: "1000",
		AttendanceResponse: "Attending", CheckedIn: domain.CheckedIn,
		Honor: domain.HonorTeacherOfYear, Year: 2026,
	})
	svc := newTestRosterService(attendees, newFakeTicketRepo(), &fakeFetcher{})

	var buf bytes.Buffer
	n, err := svc.ExportAttendees(context.Background(), &buf)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, rosterExportHeader, records[0])
	assert.Equal(t, []string{
		"Ms.", "Dana", "Whitfield", "", "Richmond County", "4th Grade",
		"Yes", "dana@example.org", "Sent", "Pine Hill Elementary", "1000",
		"Attending", "1", "1", "2026",
	}, records[1])
}

func TestRosterService_ExportGuests(t *testing.T) {
	attendees := newFakeAttendeeRepo(&domain.Attendee{
		ID: 1, FirstName: "Dana", LastName: "Whitfield",
		SchoolSystem: "Richmond County", SchoolCleaned: "Pine Hill Elementary",
		Email: "dana@example.org", ScanCode: "1000", Year: 2026,
	})
	tickets := newFakeTicketRepo()
	tickets.companies = map[int64]string{7: "Acme Corp"}
	ctx := context.Background()
	require.NoError(t, tickets.Create(ctx, &domain.SponsorTicket{
		SponsorID: 7, TicketNumber: "12345678",
		RecipientName: "Jordan Lee", RecipientEmail: "jordan@example.com", Year: 2026,
	}))
	// Unassigned pool tickets stay off the guest list.
	require.NoError(t, tickets.Create(ctx, &domain.SponsorTicket{
		SponsorID: 7, TicketNumber: "87654321", Year: 2026,
	}))

	svc := newTestRosterService(attendees, tickets, &fakeFetcher{})

	var buf bytes.Buffer
	n, err := svc.ExportGuests(ctx, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, guestExportHeader, records[0])
	assert.Equal(t, []string{"Dana Whitfield", "dana@example.org", "Attendee", "Pine Hill Elementary", "1000", ""}, records[1])
	assert.Equal(t, []string{"Jordan Lee", "jordan@example.com", "", "Acme Corp", "12345678", ""}, records[2])
}

func TestRosterService_ResetCheckIns(t *testing.T) {
	attendees := newFakeAttendeeRepo(
		&domain.Attendee{ID: 1, FirstName: "Dana", LastName: "Whitfield", ScanCode: "1000", CheckedIn: domain.CheckedIn, Year: 2026},
		&domain.Attendee{ID: 2, FirstName: "Miguel", LastName: "Santos", ScanCode: "1001", CheckedIn: domain.CheckedInWithPlusOne, Year: 2026},
		&domain.Attendee{ID: 3, FirstName: "Priya", LastName: "Nair", ScanCode: "1002", Year: 2026},
	)
	svc := newTestRosterService(attendees, newFakeTicketRepo(), &fakeFetcher{})
	ctx := context.Background()

	n, err := svc.ResetCheckIns(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	a, err := attendees.GetByScanCode(ctx, "1000", 2026)
	require.NoError(t, err)
	assert.Equal(t, domain.NotCheckedIn, a.CheckedIn)
}
