package middleware

import (
	"context"
	"net/http"
	"strings"

	h "github.com/lukegvoigt/vnr-checkin/internal/delivery/http/helpers"
	"github.com/lukegvoigt/vnr-checkin/internal/domain"
)

type contextKey string

const (
	subjectKey contextKey = "subject"
	roleKey    contextKey = "role"
)

// SetIdentity returns a context carrying the authenticated subject and role.
// Used by the auth middleware.
func SetIdentity(ctx context.Context, subject, role string) context.Context {
	ctx = context.WithValue(ctx, subjectKey, subject)
	return context.WithValue(ctx, roleKey, role)
}

// SubjectFromContext returns the authenticated subject from the context, if
// present. For sponsor and admin tokens the subject is the sponsor ID.
func SubjectFromContext(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey).(string)
	return s, ok
}

// RoleFromContext returns the authenticated role from the context, if present.
func RoleFromContext(ctx context.Context) (string, bool) {
	r, ok := ctx.Value(roleKey).(string)
	return r, ok
}

// RequireAuth returns a wrapper that validates the Bearer token and sets the
// subject and role in the request context. If the token is missing or invalid,
// it responds with 401 and does not call next. When roles are given, the token
// role must match one of them or the request is rejected with 403. An admin
// token satisfies a sponsor-role requirement.
func RequireAuth(verifier domain.TokenVerifier, roles ...string) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if auth == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(auth, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(auth[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			subject, role, err := verifier.Verify(token)
			if err != nil {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			if len(roles) > 0 && !roleAllowed(role, roles) {
				h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "insufficient role")
				return
			}
			r = r.WithContext(SetIdentity(r.Context(), subject, role))
			next(w, r)
		}
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
		if a == domain.RoleSponsor && role == domain.RoleAdmin {
			return true
		}
	}
	return false
}
