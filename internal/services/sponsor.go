package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

const minSponsorPasswordLen = 8

type sponsorService struct {
	sponsors    domain.SponsorRepository
	tickets     domain.TicketService
	hasher      domain.PasswordHasher
	tokens      domain.TokenIssuer
	logger      *slog.Logger
	year        int
	tokenExpiry time.Duration
}

// NewSponsorService creates the sponsor account service.
func NewSponsorService(
	sponsors domain.SponsorRepository,
	tickets domain.TicketService,
	hasher domain.PasswordHasher,
	tokens domain.TokenIssuer,
	logger *slog.Logger,
	year int,
	tokenExpiry time.Duration,
) domain.SponsorService {
	return &sponsorService{
		sponsors:    sponsors,
		tickets:     tickets,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger,
		year:        year,
		tokenExpiry: tokenExpiry,
	}
}

func (s *sponsorService) Login(ctx context.Context, username, password string) (*domain.SponsorLoginResult, error) {
	username = strings.TrimSpace(strings.ToLower(username))
	sponsor, err := s.sponsors.GetByUsername(ctx, username, s.year)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("get sponsor: %w", err)
	}

	if err := s.hasher.Compare(sponsor.Password, password); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	// Accounts imported from the old portal still carry plaintext
	// passwords; upgrade them to a hash on first successful login.
	if s.hasher.IsLegacy(sponsor.Password) {
		if hash, herr := s.hasher.Hash(password); herr == nil {
			if uerr := s.sponsors.UpdatePassword(ctx, sponsor.ID, hash); uerr != nil {
				s.logger.WarnContext(ctx, "failed to upgrade legacy password", "sponsor_id", sponsor.ID, "err", uerr)
			}
		}
	}

	role := domain.RoleSponsor
	if sponsor.IsAdmin {
		role = domain.RoleAdmin
	}
	token, err := s.tokens.Issue(strconv.FormatInt(sponsor.ID, 10), role, s.tokenExpiry)
	if err != nil {
		return nil, fmt.Errorf("issue sponsor token: %w", err)
	}

	// Materialize the seat allocation lazily, the first time the sponsor
	// shows up. Idempotent: later logins create nothing.
	created, err := s.tickets.EnsureTickets(ctx, sponsor.ID, sponsor.SeatCount)
	if err != nil {
		return nil, fmt.Errorf("ensure tickets: %w", err)
	}

	return &domain.SponsorLoginResult{
		Token:          token,
		Sponsor:        sponsor,
		TicketsCreated: created,
	}, nil
}

func (s *sponsorService) Create(ctx context.Context, sponsor *domain.Sponsor, password string) (*domain.Sponsor, error) {
	sponsor.Username = strings.TrimSpace(strings.ToLower(sponsor.Username))
	if sponsor.Username == "" {
		return nil, fmt.Errorf("username is required: %w", domain.ErrInvalidInput)
	}
	if len(password) < minSponsorPasswordLen {
		return nil, fmt.Errorf("password must be at least %d characters: %w", minSponsorPasswordLen, domain.ErrInvalidInput)
	}
	if !domain.ValidTier(sponsor.Tier) {
		return nil, fmt.Errorf("unknown sponsor tier %q: %w", sponsor.Tier, domain.ErrInvalidInput)
	}
	if sponsor.SeatCount < 1 {
		return nil, fmt.Errorf("seat count must be positive: %w", domain.ErrInvalidInput)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	sponsor.Password = hash
	if sponsor.Year == 0 {
		sponsor.Year = s.year
	}

	if err := s.sponsors.Create(ctx, sponsor); err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create sponsor: %w", err)
	}
	s.logger.InfoContext(ctx, "sponsor created", "sponsor_id", sponsor.ID, "tier", sponsor.Tier)
	return sponsor, nil
}

func (s *sponsorService) GetByID(ctx context.Context, id int64) (*domain.Sponsor, error) {
	sponsor, err := s.sponsors.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) ListSponsors(ctx context.Context) ([]*domain.SponsorSummary, error) {
	summaries, err := s.sponsors.ListWithCounts(ctx, s.year)
	if err != nil {
		return nil, fmt.Errorf("list sponsors: %w", err)
	}
	if summaries == nil {
		summaries = []*domain.SponsorSummary{}
	}
	return summaries, nil
}
