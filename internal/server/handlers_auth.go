package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"practicelog/internal/api"
	"practicelog/internal/auth"
)

var (
	errInvalidCredentials = errors.New("invalid credentials")
	errMissingToken       = errors.New("missing bearer token")
	errUnknownUser        = errors.New("unknown user")
	errTokenAuthDisabled  = errors.New("token auth is not configured")
	errInvalidGoalID      = errors.New("invalid goal_id")
)

func (s *Server) handleAuthLogin(w http.ResponseWriter, r *http.Request) {
	if s.tokens == nil || s.users == nil {
		s.writeErrorReq(w, r, http.StatusNotImplemented, apiError{
			status:  http.StatusNotImplemented,
			code:    "not_implemented",
			errCode: ErrCodeNotImplemented,
			err:     fmt.Errorf("auth login not supported"),
		})
		return
	}

	var req api.LoginRequest
	if !s.decodeJSONReq(w, r, &req) {
		return
	}

	now := s.now().UTC()
	limiterKey := loginAttemptKey(req.Username, r)
	if !s.loginLimiter.Allow(limiterKey, now) {
		s.writeErrorReq(w, r, http.StatusTooManyRequests, apiError{
			status:  http.StatusTooManyRequests,
			code:    "resource_exhausted",
			errCode: ErrCodeResourceExhausted,
			err:     fmt.Errorf("too many login attempts; retry later"),
		})
		return
	}

	username, err := auth.NormalizeUsername(req.Username)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(err, ErrCodeMissingRequired))
		return
	}
	if strings.TrimSpace(req.Password) == "" {
		s.writeErrorReq(w, r, http.StatusBadRequest, badRequestCode(fmt.Errorf("password is required"), ErrCodeMissingRequired))
		return
	}

	user, err := s.users.GetUserByUsername(r.Context(), username)
	if err != nil {
		s.writeStoreError(w, r, err)
		return
	}
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		s.loginLimiter.RegisterFailure(limiterKey, now)
		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(errInvalidCredentials))
		return
	}
	s.loginLimiter.Reset(limiterKey)

	token, expires, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		s.writeErrorReq(w, r, http.StatusInternalServerError, makeAPIError(http.StatusInternalServerError, "internal", ErrCodeInternal, err))
		return
	}

	s.log().Info("user logged in", "user_id", user.ID, "username", user.Username)
	s.writeJSON(w, http.StatusOK, api.LoginResponse{
		Token:     token,
		ExpiresAt: expires.UTC().Format(time.RFC3339),
		UserID:    user.ID,
		Username:  user.Username,
	})
}

func (s *Server) handleAuthMe(w http.ResponseWriter, r *http.Request) {
	principal, ok := authPrincipalFromContext(r.Context())
	if !ok {
		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(errMissingToken))
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"user_id":  principal.UserID,
		"username": principal.Username,
	})
}

func loginAttemptKey(username string, r *http.Request) string {
	user := strings.ToLower(strings.TrimSpace(username))
	if user == "" {
		user = "<empty>"
	}
	ip := requestClientIP(r)
	if ip == "" {
		ip = "<unknown>"
	}
	return ip + "|" + user
}

func requestClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	remote := strings.TrimSpace(r.RemoteAddr)
	if remote == "" {
		return ""
	}
	host, _, err := net.SplitHostPort(remote)
	if err == nil {
		return strings.TrimSpace(host)
	}
	return remote
}
