package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/yufj-331/ordershare/internal/auth"
	"github.com/yufj-331/ordershare/internal/http/httputil"
	"github.com/yufj-331/ordershare/internal/user"
)

//go:generate mockgen -source=auth.go -destination=auth_mock.go -package=middleware
type UserLookup interface {
	GetByUsername(ctx context.Context, username string) (*user.User, error)
}

type TokenParser interface {
	Parse(token string) (string, error)
}

type ctxKey struct{}

// UserFrom returns the user attached by Authenticator.Authenticate.
func UserFrom(ctx context.Context) (*user.User, bool) {
	u, ok := ctx.Value(ctxKey{}).(*user.User)
	return u, ok
}

func WithUser(ctx context.Context, u *user.User) context.Context {
	return context.WithValue(ctx, ctxKey{}, u)
}

type Authenticator struct {
	tokens TokenParser
	users  UserLookup
	policy auth.Policy
}

func NewAuthenticator(tokens TokenParser, users UserLookup, policy auth.Policy) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, policy: policy}
}

func bearerToken(r *http.Request) (string, bool) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return "", false
	}

	return strings.TrimSpace(token), true
}

func unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	httputil.WriteError(w, http.StatusUnauthorized, detail)
}

// Authenticate resolves the bearer token to an active user.
func (a *Authenticator) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w, "not authenticated")
			return
		}

		username, err := a.tokens.Parse(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				unauthorized(w, auth.ErrTokenExpired.Error())
				return
			}

			unauthorized(w, auth.ErrTokenInvalid.Error())

			return
		}

		u, err := a.users.GetByUsername(r.Context(), username)
		if err != nil {
			if errors.Is(err, user.ErrNotFound) {
				unauthorized(w, auth.ErrTokenInvalid.Error())
				return
			}

			httputil.Internal(w, r, err)

			return
		}

		if !u.IsActive {
			httputil.WriteError(w, http.StatusBadRequest, user.ErrInactive.Error())
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// Require rejects callers whose role lacks c. It must run after Authenticate.
func (a *Authenticator) Require(c auth.Capability) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := UserFrom(r.Context())
			if !ok {
				unauthorized(w, "not authenticated")
				return
			}

			if !a.policy.Allows(u.Role, c) {
				slog.WarnContext(r.Context(), "permission denied", "user", u.Username, "role", u.Role, "capability", c)
				httputil.WriteError(w, http.StatusForbidden, "permission denied")

				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
