package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vbonduro/brickinv/internal/auth"
)

// unexported, collision-proof context key
type userIDKeyType struct{}

var userIDKey = userIDKeyType{}

// userIDFromContext extracts the authenticated owner from the request context.
func userIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	return id, ok
}

// requireAuth resolves the bearer credential before the wrapped handler runs.
// No store operation executes for a request that fails here.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			s.writeError(w, http.StatusUnauthorized, "missing bearer credential")
			return
		}

		userID, err := s.resolver.Resolve(r.Context(), token)
		if err != nil {
			if errors.Is(err, auth.ErrUnavailable) {
				s.logger.Error("identity resolution unavailable", "error", err)
				s.writeError(w, http.StatusServiceUnavailable, "authentication service unavailable")
				return
			}
			s.writeError(w, http.StatusUnauthorized, "invalid credential")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
