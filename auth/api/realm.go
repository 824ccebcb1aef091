package api

import (
	"net/http"

	"github.com/andrebq/bolulista/internal/logutil"
	"github.com/andrebq/bolulista/internal/webresult"
	"github.com/andrebq/bolulista/session"
)

type (
	IdentityReader interface {
		RequireIdentity(r *http.Request) (session.Identity, error)
	}

	SecurityRealm struct {
		sessions IdentityReader
	}
)

func NewRealm(sessions IdentityReader) *SecurityRealm {
	return &SecurityRealm{
		sessions: sessions,
	}
}

// Protect rejects requests without a valid session before they reach
// sensitive, the identity is available via session.FromContext.
func (s *SecurityRealm) Protect(sensitive http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := s.sessions.RequireIdentity(r)
		if err != nil {
			webresult.Fail(ctx, w, err, "unable to check session")
			return
		}
		log := logutil.GetOrDefault(ctx).With().Str("user.id", id.UserID).Logger()
		ctx = logutil.WithLogger(session.WithIdentity(ctx, id), log)
		sensitive.ServeHTTP(w, r.WithContext(ctx))
	})
}
