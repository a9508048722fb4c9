package auth

import (
	"crypto/subtle"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a PasswordHasher that produces bcrypt hashes and
// still verifies legacy plaintext sponsor passwords carried over from the
// old portal. Legacy values are detected by the missing bcrypt prefix.
func NewBcryptHasher(cost int) domain.PasswordHasher {
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func (h *bcryptHasher) Compare(stored, password string) error {
	if h.IsLegacy(stored) {
		// Plaintext row that has not been migrated yet.
		if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
			return fmt.Errorf("password mismatch")
		}
		return nil
	}
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
}

func (h *bcryptHasher) IsLegacy(stored string) bool {
	return !strings.HasPrefix(stored, "$2")
}
