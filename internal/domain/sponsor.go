package domain

import (
	"context"
	"errors"
)

// ErrDuplicateUsername is returned when creating a sponsor whose username is
// already taken for the year.
var ErrDuplicateUsername = errors.New("username already in use")

// SponsorTier is the sponsorship level purchased by a sponsor.
type SponsorTier string

const (
	TierDiamond  SponsorTier = "Diamond"
	TierPlatinum SponsorTier = "Platinum"
	TierGold     SponsorTier = "Gold"
	TierSilver   SponsorTier = "Silver"
)

// ValidTier reports whether t is one of the known sponsor tiers.
func ValidTier(t SponsorTier) bool {
	switch t {
	case TierDiamond, TierPlatinum, TierGold, TierSilver:
		return true
	}
	return false
}

// Sponsor represents a sponsor account. Password holds either a bcrypt hash
// or, for accounts carried over from the old portal, the legacy plaintext
// value; legacy values are upgraded to bcrypt on first successful login.
// swagger:model Sponsor
type Sponsor struct {
	ID          int64       `json:"id"`
	Username    string      `json:"username"`
	Password    string      `json:"-"`
	CompanyName string      `json:"company_name"`
	Tier        SponsorTier `json:"tier"`
	SeatCount   int         `json:"seat_count"`
	IsAdmin     bool        `json:"is_admin"`
	Year        int         `json:"year"`
}

// SponsorSummary is a sponsor with its ticket counts, used by the admin list.
// swagger:model SponsorSummary
type SponsorSummary struct {
	Sponsor       *Sponsor `json:"sponsor"`
	TicketCount   int      `json:"ticket_count"`
	AssignedCount int      `json:"assigned_count"`
}

// SponsorRepository defines storage operations for sponsor accounts.
type SponsorRepository interface {
	Create(ctx context.Context, s *Sponsor) error
	GetByUsername(ctx context.Context, username string, year int) (*Sponsor, error)
	GetByID(ctx context.Context, id int64) (*Sponsor, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	// ListWithCounts returns all sponsors for the year together with their
	// issued and assigned ticket counts.
	ListWithCounts(ctx context.Context, year int) ([]*SponsorSummary, error)
}

// SponsorLoginResult is returned by SponsorService.Login.
type SponsorLoginResult struct {
	Token          string   `json:"token"`
	Sponsor        *Sponsor `json:"sponsor"`
	TicketsCreated int      `json:"tickets_created"`
}

// SponsorService defines sponsor account operations.
type SponsorService interface {
	// Login authenticates the sponsor, lazily materializes its ticket
	// allocation, and returns a session token.
	Login(ctx context.Context, username, password string) (*SponsorLoginResult, error)
	Create(ctx context.Context, s *Sponsor, password string) (*Sponsor, error)
	GetByID(ctx context.Context, id int64) (*Sponsor, error)
	ListSponsors(ctx context.Context) ([]*SponsorSummary, error)
}
