package server

import (
	"context"
	"net/http"
	"strings"

	"practicelog/internal/journal"
)

type authContextKey struct{}

type authPrincipal struct {
	UserID   string
	Username string
}

func contextWithAuthPrincipal(ctx context.Context, principal authPrincipal) context.Context {
	ctx = context.WithValue(ctx, authContextKey{}, principal)
	return journal.WithUserID(ctx, principal.UserID)
}

func authPrincipalFromContext(ctx context.Context) (authPrincipal, bool) {
	if ctx == nil {
		return authPrincipal{}, false
	}
	principal, ok := ctx.Value(authContextKey{}).(authPrincipal)
	return principal, ok
}

func bearerToken(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(header) < len("Bearer ") || !strings.EqualFold(header[:len("Bearer ")], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(header[len("Bearer "):])
}

// withAuth resolves the bearer token to a user and places it on the request context.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.tokens == nil {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(errTokenAuthDisabled))
			return
		}
		token := bearerToken(r)
		if token == "" {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(errMissingToken))
			return
		}
		claims, err := s.tokens.Parse(token)
		if err != nil {
			s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(err))
			return
		}
		if s.users != nil {
			user, err := s.users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				s.writeStoreError(w, r, err)
				return
			}
			if user == nil {
				s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(errUnknownUser))
				return
			}
		}

		ctx := contextWithAuthPrincipal(r.Context(), authPrincipal{UserID: claims.UserID, Username: claims.Username})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
