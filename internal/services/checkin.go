package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

// lookupCacheSize bounds the in-process lookup cache. The cache only serves
// read views; every check-in transition goes straight to the store and
// invalidates the cached entry, so a stale entry can never double-count.
const lookupCacheSize = 256

// CheckInConfig carries the station-side settings for the check-in service.
type CheckInConfig struct {
	CodeRange  domain.ScanCodeRange
	Passphrase string
	// EventDate (YYYY-MM-DD) limits station logins to event day when
	// EnforceEventDate is true.
	EventDate        string
	EnforceEventDate bool
	Year             int
	TokenExpiry      time.Duration
}

type checkInService struct {
	attendees domain.AttendeeRepository
	tokens    domain.TokenIssuer
	logger    *slog.Logger
	cfg       CheckInConfig
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]*domain.AttendeeView
}

// NewCheckInService creates the check-in service backing the scan/manual/search
// surface.
func NewCheckInService(
	attendees domain.AttendeeRepository,
	tokens domain.TokenIssuer,
	logger *slog.Logger,
	cfg CheckInConfig,
) domain.CheckInService {
	return &checkInService{
		attendees: attendees,
		tokens:    tokens,
		logger:    logger,
		cfg:       cfg,
		now:       time.Now,
		cache:     make(map[string]*domain.AttendeeView),
	}
}

func (s *checkInService) Login(ctx context.Context, passphrase string) (string, error) {
	if s.cfg.EnforceEventDate {
		if s.now().Format("2006-01-02") != s.cfg.EventDate {
			return "", fmt.Errorf("check-in opens on %s: %w", s.cfg.EventDate, domain.ErrForbidden)
		}
	}
	if subtle.ConstantTimeCompare([]byte(passphrase), []byte(s.cfg.Passphrase)) != 1 {
		return "", domain.ErrInvalidCredentials
	}
	token, err := s.tokens.Issue("station", domain.RoleStation, s.cfg.TokenExpiry)
	if err != nil {
		return "", fmt.Errorf("issue station token: %w", err)
	}
	return token, nil
}

func (s *checkInService) Lookup(ctx context.Context, code string) (*domain.AttendeeView, error) {
	code = strings.TrimSpace(code)
	if !s.cfg.CodeRange.Valid(code) {
		return nil, fmt.Errorf("scan code must be a number between %d and %d: %w",
			s.cfg.CodeRange.Min, s.cfg.CodeRange.Max, domain.ErrInvalidInput)
	}
	if view := s.cached(code); view != nil {
		return view, nil
	}
	a, err := s.attendees.GetByScanCode(ctx, code, s.cfg.Year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}
	view := domain.NewAttendeeView(a)
	s.cacheSet(code, view)
	return view, nil
}

func (s *checkInService) Search(ctx context.Context, nameSubstring string) ([]*domain.AttendeeView, error) {
	nameSubstring = strings.TrimSpace(nameSubstring)
	if nameSubstring == "" {
		return nil, fmt.Errorf("search term is required: %w", domain.ErrInvalidInput)
	}
	attendees, err := s.attendees.SearchByName(ctx, nameSubstring, s.cfg.Year)
	if err != nil {
		return nil, fmt.Errorf("search attendees: %w", err)
	}
	views := make([]*domain.AttendeeView, 0, len(attendees))
	for _, a := range attendees {
		views = append(views, domain.NewAttendeeView(a))
	}
	return views, nil
}

func (s *checkInService) ListAttendees(ctx context.Context, p domain.PaginationParams) ([]*domain.AttendeeView, int, error) {
	attendees, total, err := s.attendees.List(ctx, s.cfg.Year, p)
	if err != nil {
		return nil, 0, fmt.Errorf("list attendees: %w", err)
	}
	views := make([]*domain.AttendeeView, 0, len(attendees))
	for _, a := range attendees {
		views = append(views, domain.NewAttendeeView(a))
	}
	return views, total, nil
}

func (s *checkInService) CheckIn(ctx context.Context, code string) (*domain.CheckInResult, error) {
	code = strings.TrimSpace(code)
	if !s.cfg.CodeRange.Valid(code) {
		return nil, fmt.Errorf("scan code must be a number between %d and %d: %w",
			s.cfg.CodeRange.Min, s.cfg.CodeRange.Max, domain.ErrInvalidInput)
	}

	// The conditional update is the source of truth: of two concurrent
	// scans only one sees rows-affected > 0.
	updated, err := s.attendees.CheckIn(ctx, code, s.cfg.Year)
	if err != nil {
		return nil, fmt.Errorf("check in: %w", err)
	}
	s.invalidate(code)

	a, err := s.attendees.GetByScanCode(ctx, code, s.cfg.Year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}

	result := &domain.CheckInResult{Attendee: domain.NewAttendeeView(a), Updated: updated}
	if updated {
		result.Message = fmt.Sprintf("%s checked in successfully", a.FullName())
		s.logger.InfoContext(ctx, "attendee checked in", "scan_code", code)
	} else {
		result.Message = fmt.Sprintf("%s is already checked in", a.FullName())
	}
	return result, nil
}

func (s *checkInService) CheckInWithPlusOne(ctx context.Context, code string) (*domain.CheckInResult, error) {
	code = strings.TrimSpace(code)
	if !s.cfg.CodeRange.Valid(code) {
		return nil, fmt.Errorf("scan code must be a number between %d and %d: %w",
			s.cfg.CodeRange.Min, s.cfg.CodeRange.Max, domain.ErrInvalidInput)
	}

	updated, err := s.attendees.CheckInWithPlusOne(ctx, code, s.cfg.Year)
	if err != nil {
		return nil, fmt.Errorf("check in with plus-one: %w", err)
	}
	s.invalidate(code)

	a, err := s.attendees.GetByScanCode(ctx, code, s.cfg.Year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get attendee: %w", err)
	}

	if !updated && !a.BringingPlusOne {
		return nil, domain.ErrPlusOneNotAllowed
	}

	result := &domain.CheckInResult{Attendee: domain.NewAttendeeView(a), Updated: updated}
	if updated {
		result.Message = fmt.Sprintf("%s checked in successfully with plus-one", a.FullName())
		s.logger.InfoContext(ctx, "attendee checked in with plus-one", "scan_code", code)
	} else {
		result.Message = fmt.Sprintf("%s is already checked in", a.FullName())
	}
	return result, nil
}

func (s *checkInService) cached(code string) *domain.AttendeeView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache[code]
}

func (s *checkInService) cacheSet(code string, view *domain.AttendeeView) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cache) >= lookupCacheSize {
		// Drop an arbitrary entry; the cache is a best-effort read
		// accelerator, not a source of truth.
		for k := range s.cache {
			delete(s.cache, k)
			break
		}
	}
	s.cache[code] = view
}

func (s *checkInService) invalidate(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, code)
}
