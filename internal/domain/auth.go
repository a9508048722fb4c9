package domain

import "time"

// Token roles. Station tokens gate the shared check-in surface; sponsor and
// admin tokens belong to individual sponsor accounts.
const (
	RoleStation = "station"
	RoleSponsor = "sponsor"
	RoleAdmin   = "admin"
)

// PasswordHasher hashes and verifies sponsor passwords. Compare must accept
// both bcrypt hashes and legacy plaintext values; IsLegacy reports whether
// the stored value still needs migrating to a hash.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(stored, password string) error
	IsLegacy(stored string) bool
}

// TokenIssuer issues session tokens (e.g. JWT) for an authenticated subject.
type TokenIssuer interface {
	Issue(subject, role string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns its subject and role.
type TokenVerifier interface {
	Verify(token string) (subject, role string, err error)
}
