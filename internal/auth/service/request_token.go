package service

import (
	"net/http"
	"strings"
)

const bearerPrefix = "bearer "

// candidateTokens returns the session tokens carried by the request, cookie first.
func candidateTokens(r *http.Request, cookieName string) []string {
	tokens := make([]string, 0, 2)

	if cookieName != "" {
		if cookie, err := r.Cookie(cookieName); err == nil && cookie.Value != "" {
			tokens = append(tokens, cookie.Value)
		}
	}

	if token := bearerToken(r); token != "" {
		tokens = append(tokens, token)
	}

	return tokens
}

// bearerToken parses "Authorization: Bearer <token>" with a case-insensitive scheme.
func bearerToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if len(authHeader) <= len(bearerPrefix) ||
		!strings.EqualFold(authHeader[:len(bearerPrefix)], bearerPrefix) {
		return ""
	}
	return strings.TrimSpace(authHeader[len(bearerPrefix):])
}
