// Package http implements the HTTP transport layer of the bookmark server.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Owner resolution, logging, tracing, and compression
// concerns are all handled at this layer before requests reach the
// repository.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/avelikov/go-bookmark-sync/internal/logger"
)

type ctxKey int

// ownerIDCtxKey keys the authenticated owner's ID in the request context.
const ownerIDCtxKey ctxKey = iota

// auth resolves the bookmark owner from the "Authorization" bearer token.
//
// Signature verification happens at the gateway in front of this service;
// here the token is only parsed to extract the subject claim, which becomes
// the owner ID for every repository call downstream. Requests are rejected
// with HTTP 401 when the header is missing, malformed, or carries a token
// without a subject.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Err(ErrEmptyAuthorizationHeader).Send()
			http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := getTokenFromAuthHeader(authHeader)
		if err != nil {
			log.Err(err).Send()
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}

		ownerID, err := ownerFromToken(tokenString)
		if err != nil {
			log.Err(err).Msg("error occurred during parsing token")
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), ownerIDCtxKey, ownerID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// ownerFromToken parses the JWT without verifying its signature and returns
// the subject claim.
func ownerFromToken(tokenString string) (string, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tokenString, &claims); err != nil {
		return "", err
	}
	if claims.Subject == "" {
		return "", ErrNoTokenSubject
	}
	return claims.Subject, nil
}

// ownerFromRequest returns the owner ID stored in the request context by the
// auth middleware.
func ownerFromRequest(r *http.Request) (string, bool) {
	ownerID, ok := r.Context().Value(ownerIDCtxKey).(string)
	return ownerID, ok
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns [ErrInvalidAuthorizationHeader] when the header contains fewer
// than two space-separated parts and [ErrEmptyToken] when the second part
// exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
