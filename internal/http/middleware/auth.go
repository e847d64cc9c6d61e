// Package middleware holds the HTTP middleware chain: the bearer-token
// auth gate for the /api subtree, and request-id plus request-logging
// wrappers applied to every route.
package middleware

import (
	"net/http"
	"strings"

	"github.com/aanand-mishra/library-api/internal/utils/response"
)

// extractBearerToken extracts a bearer token from the Authorization
// header. Returns the token and an error message (empty if successful).
func extractBearerToken(authHeader string) (string, string) {
	if authHeader == "" {
		return "", "missing authorization header"
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return "", "invalid authorization header format"
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")
	if token == "" {
		return "", "empty token"
	}
	return token, ""
}

// Auth returns a middleware that requires "Authorization: Bearer
// <secret>" on every request. A missing or malformed header is a 401
// "Unauthorized"; a wrong token is a 401 "Invalid token".
//
// When no secret is configured the gate is open and every request
// passes. Useful for local development.
func Auth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if secret == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, errMsg := extractBearerToken(r.Header.Get("Authorization"))
			if errMsg != "" {
				response.WriteJSON(w, http.StatusUnauthorized,
					response.Unauthorized("Unauthorized"))
				return
			}

			if token != secret {
				response.WriteJSON(w, http.StatusUnauthorized,
					response.Unauthorized("Invalid token"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
