package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// fakeAttendeeRepo implements domain.AttendeeRepository for tests. The
// check-in transitions are guarded by a mutex so the conditional-update
// contract holds under concurrent calls.
type fakeAttendeeRepo struct {
	mu     sync.Mutex
	byCode map[string]*domain.Attendee
	err    error
}

func newFakeAttendeeRepo(attendees ...*domain.Attendee) *fakeAttendeeRepo {
	r := &fakeAttendeeRepo{byCode: make(map[string]*domain.Attendee)}
	for _, a := range attendees {
		r.byCode[a.ScanCode] = a
	}
	return r
}

func (f *fakeAttendeeRepo) GetByScanCode(ctx context.Context, scanCode string, year int) (*domain.Attendee, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byCode[scanCode]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeAttendeeRepo) SearchByName(ctx context.Context, nameSubstring string, year int) ([]*domain.Attendee, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Attendee
	for _, a := range f.byCode {
		if strings.Contains(strings.ToLower(a.FirstName+" "+a.LastName), strings.ToLower(nameSubstring)) {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeAttendeeRepo) List(ctx context.Context, year int, p domain.PaginationParams) ([]*domain.Attendee, int, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Attendee
	for _, a := range f.byCode {
		cp := *a
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeAttendeeRepo) UpsertByScanCode(ctx context.Context, a *domain.Attendee) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.byCode[a.ScanCode]
	cp := *a
	f.byCode[a.ScanCode] = &cp
	return !exists, nil
}

func (f *fakeAttendeeRepo) ExportAll(ctx context.Context, year int) ([]*domain.Attendee, error) {
	attendees, _, err := f.List(ctx, year, domain.PaginationParams{})
	return attendees, err
}

func (f *fakeAttendeeRepo) CheckIn(ctx context.Context, scanCode string, year int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byCode[scanCode]
	if !ok || a.CheckedIn != domain.NotCheckedIn {
		return false, nil
	}
	a.CheckedIn = domain.CheckedIn
	return true, nil
}

func (f *fakeAttendeeRepo) CheckInWithPlusOne(ctx context.Context, scanCode string, year int) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.byCode[scanCode]
	if !ok || !a.BringingPlusOne || a.CheckedIn == domain.CheckedInWithPlusOne {
		return false, nil
	}
	a.CheckedIn = domain.CheckedInWithPlusOne
	return true, nil
}

func (f *fakeAttendeeRepo) ResetCheckIns(ctx context.Context, year int) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.byCode {
		if a.CheckedIn != domain.NotCheckedIn {
			a.CheckedIn = domain.NotCheckedIn
			n++
		}
	}
	return n, nil
}

// fakeTicketRepo implements domain.TicketRepository for tests.
type fakeTicketRepo struct {
	mu        sync.Mutex
	byID      map[int64]*domain.SponsorTicket
	nextID    int64
	companies map[int64]string
	err       error
	// failCreateAfter makes Create fail once n tickets exist, to exercise
	// the partial-batch behavior.
	failCreateAfter int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{byID: make(map[int64]*domain.SponsorTicket), failCreateAfter: -1}
}

func (f *fakeTicketRepo) CountBySponsor(ctx context.Context, sponsorID int64, year int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, t := range f.byID {
		if t.SponsorID == sponsorID && t.Year == year {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketRepo) Create(ctx context.Context, t *domain.SponsorTicket) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreateAfter >= 0 && len(f.byID) >= f.failCreateAfter {
		return errors.New("connection lost")
	}
	for _, existing := range f.byID {
		if existing.TicketNumber == t.TicketNumber {
			return domain.ErrDuplicateTicketNumber
		}
	}
	f.nextID++
	t.ID = f.nextID
	cp := *t
	f.byID[t.ID] = &cp
	return nil
}

func (f *fakeTicketRepo) ListBySponsor(ctx context.Context, sponsorID int64, year int) ([]*domain.SponsorTicket, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.SponsorTicket
	for id := int64(1); id <= f.nextID; id++ {
		if t, ok := f.byID[id]; ok && t.SponsorID == sponsorID && t.Year == year {
			cp := *t
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id int64) (*domain.SponsorTicket, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTicketRepo) Assign(ctx context.Context, id int64, name, email string) error {
	if f.err != nil {
		return f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.RecipientName = name
	t.RecipientEmail = email
	return nil
}

func (f *fakeTicketRepo) MarkSent(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.SentAt = &at
	return nil
}

func (f *fakeTicketRepo) MarkPrinted(ctx context.Context, id int64, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.PrintedAt = &at
	return nil
}

func (f *fakeTicketRepo) ListAssigned(ctx context.Context, year int) ([]*domain.AssignedGuest, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.AssignedGuest
	for id := int64(1); id <= f.nextID; id++ {
		t, ok := f.byID[id]
		if !ok || !t.Assigned() {
			continue
		}
		cp := *t
		out = append(out, &domain.AssignedGuest{Ticket: &cp, CompanyName: f.companies[t.SponsorID]})
	}
	return out, nil
}

// fakeSponsorRepo implements domain.SponsorRepository for tests.
type fakeSponsorRepo struct {
	byID       map[int64]*domain.Sponsor
	byUsername map[string]*domain.Sponsor
	nextID     int64
	err        error
	updated    map[int64]string
}

func newFakeSponsorRepo(sponsors ...*domain.Sponsor) *fakeSponsorRepo {
	r := &fakeSponsorRepo{
		byID:       make(map[int64]*domain.Sponsor),
		byUsername: make(map[string]*domain.Sponsor),
		updated:    make(map[int64]string),
	}
	for _, s := range sponsors {
		if s.ID == 0 {
			r.nextID++
			s.ID = r.nextID
		} else if s.ID > r.nextID {
			r.nextID = s.ID
		}
		r.byID[s.ID] = s
		r.byUsername[s.Username] = s
	}
	return r
}

func (f *fakeSponsorRepo) Create(ctx context.Context, s *domain.Sponsor) error {
	if f.err != nil {
		return f.err
	}
	if _, exists := f.byUsername[s.Username]; exists {
		return domain.ErrDuplicateUsername
	}
	f.nextID++
	s.ID = f.nextID
	f.byID[s.ID] = s
	f.byUsername[s.Username] = s
	return nil
}

func (f *fakeSponsorRepo) GetByUsername(ctx context.Context, username string, year int) (*domain.Sponsor, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byUsername[username]
	if !ok || s.Year != year {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSponsorRepo) GetByID(ctx context.Context, id int64) (*domain.Sponsor, error) {
	if f.err != nil {
		return nil, f.err
	}
	s, ok := f.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSponsorRepo) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	s, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Password = passwordHash
	f.updated[id] = passwordHash
	return nil
}

func (f *fakeSponsorRepo) ListWithCounts(ctx context.Context, year int) ([]*domain.SponsorSummary, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []*domain.SponsorSummary
	for id := int64(1); id <= f.nextID; id++ {
		if s, ok := f.byID[id]; ok && s.Year == year {
			cp := *s
			out = append(out, &domain.SponsorSummary{Sponsor: &cp})
		}
	}
	return out, nil
}

// fakeTokenIssuer implements domain.TokenIssuer for tests.
type fakeTokenIssuer struct {
	err      error
	lastRole string
}

func (f *fakeTokenIssuer) Issue(subject, role string, expiry time.Duration) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.lastRole = role
	return "token-" + subject, nil
}

// fakeHasher implements domain.PasswordHasher for tests. Hashes are marked
// with a "hash:" prefix; anything else counts as legacy plaintext.
type fakeHasher struct{}

func (fakeHasher) Hash(password string) (string, error) { return "hash:" + password, nil }

func (fakeHasher) Compare(stored, password string) error {
	if stored == "hash:"+password || stored == password {
		return nil
	}
	return errors.New("mismatch")
}

func (fakeHasher) IsLegacy(stored string) bool { return !strings.HasPrefix(stored, "hash:") }

// fakeEmailService records sent ticket emails.
type fakeEmailService struct {
	sent []*domain.TicketEmailData
	err  error
}

func (f *fakeEmailService) SendTicket(ctx context.Context, data *domain.TicketEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, data)
	return nil
}

// fakeRenderer implements domain.TicketRenderer for tests.
type fakeRenderer struct{ err error }

func (f *fakeRenderer) RenderPrintable(t *domain.SponsorTicket, companyName string, event domain.EventDetails) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return "TICKET " + t.TicketNumber + " " + companyName, nil
}

// fakeTicketService implements domain.TicketService where only EnsureTickets
// matters (sponsor login).
type fakeTicketService struct {
	ensured map[int64]int
	created int
	err     error
}

func newFakeTicketService() *fakeTicketService {
	return &fakeTicketService{ensured: make(map[int64]int)}
}

func (f *fakeTicketService) EnsureTickets(ctx context.Context, sponsorID int64, seatCount int) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.ensured[sponsorID] = seatCount
	return f.created, nil
}

func (f *fakeTicketService) ListTickets(ctx context.Context, sponsorID int64) ([]*domain.SponsorTicket, error) {
	return nil, nil
}

func (f *fakeTicketService) SendTicket(ctx context.Context, sponsorID, ticketID int64, name, email string) (*domain.SponsorTicket, error) {
	return nil, nil
}

func (f *fakeTicketService) PrintTicket(ctx context.Context, sponsorID, ticketID int64, name, email string) (*domain.SponsorTicket, string, error) {
	return nil, "", nil
}

// fakeFetcher implements domain.RosterFetcher for tests.
type fakeFetcher struct {
	body string
	err  error
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return io.NopCloser(strings.NewReader(f.body)), nil
}
