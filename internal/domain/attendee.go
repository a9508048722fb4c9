package domain

import (
	"context"
	"errors"
	"strings"
)

// ErrPlusOneNotAllowed is returned when a plus-one check-in is attempted for
// an attendee who is not eligible to bring a guest.
var ErrPlusOneNotAllowed = errors.New("attendee is not bringing a plus-one")

// CheckInStatus is the tri-state check-in status of an attendee. The status
// only moves forward: once checked in, an attendee never returns to
// NotCheckedIn through the normal flow.
type CheckInStatus int

const (
	NotCheckedIn CheckInStatus = iota
	CheckedIn
	CheckedInWithPlusOne
)

func (s CheckInStatus) String() string {
	switch s {
	case CheckedIn:
		return "Checked In"
	case CheckedInWithPlusOne:
		return "Checked In +1"
	default:
		return "Not Checked In"
	}
}

// HonorFlag marks a recognition category displayed at check-in.
type HonorFlag int

const (
	HonorNone HonorFlag = iota
	HonorTeacherOfYear
	HonorStaffOfYear
	HonorSuperintendent
)

func (h HonorFlag) String() string {
	switch h {
	case HonorTeacherOfYear:
		return "Teacher of the Year"
	case HonorStaffOfYear:
		return "Staff of the Year"
	case HonorSuperintendent:
		return "Superintendent"
	default:
		return ""
	}
}

// Attendee represents one roster entry. ScanCode is the token encoded in the
// attendee's QR code and is unique across the table for a given year.
// swagger:model Attendee
type Attendee struct {
	ID                 int64         `json:"id"`
	Prefix             string        `json:"prefix"`
	FirstName          string        `json:"first_name"`
	LastName           string        `json:"last_name"`
	Suffix             string        `json:"suffix"`
	SchoolSystem       string        `json:"school_system"`
	GradeSubject       string        `json:"grade_subject"`
	BringingPlusOne    bool          `json:"bringing_plus_one"`
	Email              string        `json:"email"`
	InviteStatus       string        `json:"status"`
	SchoolCleaned      string        `json:"school_cleaned"`
	ScanCode           string        `json:"scan_code"`
	AttendanceResponse string        `json:"attendance_response"`
	CheckedIn          CheckInStatus `json:"checked_in"`
	Honor              HonorFlag     `json:"honor"`
	Year               int           `json:"year"`
}

// FullName returns the attendee's display name including prefix and suffix.
func (a *Attendee) FullName() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{a.Prefix, a.FirstName, a.LastName, a.Suffix} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// AttendeeView is the read view returned to the check-in surface.
// swagger:model AttendeeView
type AttendeeView struct {
	Name            string        `json:"name"`
	SchoolSystem    string        `json:"school_system"`
	School          string        `json:"school"`
	GradeSubject    string        `json:"grade_subject"`
	BringingPlusOne bool          `json:"bringing_plus_one"`
	Status          CheckInStatus `json:"status"`
	StatusLabel     string        `json:"status_label"`
	Honor           HonorFlag     `json:"honor"`
	HonorLabel      string        `json:"honor_label"`
	ScanCode        string        `json:"scan_code"`
}

// NewAttendeeView builds the read view for the given attendee.
func NewAttendeeView(a *Attendee) *AttendeeView {
	return &AttendeeView{
		Name:            a.FullName(),
		SchoolSystem:    a.SchoolSystem,
		School:          a.SchoolCleaned,
		GradeSubject:    a.GradeSubject,
		BringingPlusOne: a.BringingPlusOne,
		Status:          a.CheckedIn,
		StatusLabel:     a.CheckedIn.String(),
		Honor:           a.Honor,
		HonorLabel:      a.Honor.String(),
		ScanCode:        a.ScanCode,
	}
}

// AttendeeRepository defines storage operations for attendees. The CheckIn
// and CheckInWithPlusOne transitions are single conditional updates so that
// two near-simultaneous scans of the same code cannot both succeed.
type AttendeeRepository interface {
	GetByScanCode(ctx context.Context, scanCode string, year int) (*Attendee, error)
	SearchByName(ctx context.Context, nameSubstring string, year int) ([]*Attendee, error)
	List(ctx context.Context, year int, p PaginationParams) ([]*Attendee, int, error)
	// UpsertByScanCode inserts or updates the roster entry keyed by
	// (scan_code, year). Returns true when a new row was created.
	UpsertByScanCode(ctx context.Context, a *Attendee) (created bool, err error)
	ExportAll(ctx context.Context, year int) ([]*Attendee, error)
	// CheckIn transitions NotCheckedIn -> CheckedIn. Returns false without
	// error when the row exists but was not in NotCheckedIn.
	CheckIn(ctx context.Context, scanCode string, year int) (updated bool, err error)
	// CheckInWithPlusOne transitions NotCheckedIn or CheckedIn ->
	// CheckedInWithPlusOne for plus-one-eligible attendees.
	CheckInWithPlusOne(ctx context.Context, scanCode string, year int) (updated bool, err error)
	// ResetCheckIns returns all attendees for the year to NotCheckedIn.
	ResetCheckIns(ctx context.Context, year int) (int64, error)
}

// CheckInResult reports the outcome of a check-in attempt.
// swagger:model CheckInResult
type CheckInResult struct {
	Attendee *AttendeeView `json:"attendee"`
	Updated  bool          `json:"updated"`
	Message  string        `json:"message"`
}

// CheckInService defines the check-in surface: code validation, lookup, name
// search, and the forward-only check-in transitions.
type CheckInService interface {
	// Login validates the shared station passphrase against the configured
	// secret (and the event-date gate, when enforced) and returns a token.
	Login(ctx context.Context, passphrase string) (token string, err error)
	Lookup(ctx context.Context, code string) (*AttendeeView, error)
	Search(ctx context.Context, nameSubstring string) ([]*AttendeeView, error)
	ListAttendees(ctx context.Context, p PaginationParams) ([]*AttendeeView, int, error)
	CheckIn(ctx context.Context, code string) (*CheckInResult, error)
	CheckInWithPlusOne(ctx context.Context, code string) (*CheckInResult, error)
}
