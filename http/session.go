package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/quantonganh/codebinge"
)

type contextKey int

const identityKey contextKey = iota

// identify attaches the session identity, if any, to the request context.
// Requests without a valid session pass through anonymously.
func (s *Server) identify(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := sessionToken(r, s.SessionCookie)
		if token == "" || s.Sessions == nil {
			next.ServeHTTP(w, r)
			return
		}

		identity, err := s.Sessions.Verify(token)
		if err != nil {
			hlog.FromRequest(r).Debug().Err(err).Msg("ignoring invalid session")
			next.ServeHTTP(w, r)
			return
		}

		hlog.FromRequest(r).UpdateContext(func(c zerolog.Context) zerolog.Context {
			return c.Str("email", identity.Email)
		})
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), identityKey, identity)))
	})
}

func sessionToken(r *http.Request, cookieName string) string {
	if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// identityFromContext returns nil for anonymous requests.
func identityFromContext(ctx context.Context) *codebinge.Identity {
	identity, _ := ctx.Value(identityKey).(*codebinge.Identity)
	return identity
}

func requireIdentity(r *http.Request) (*codebinge.Identity, error) {
	identity := identityFromContext(r.Context())
	if identity == nil {
		return nil, codebinge.ErrAccessDenied
	}
	return identity, nil
}
