package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	authService "github.com/allisson/tenantvault/internal/auth/service"
)

type sessionTokenOutput struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email"`
}

// RunIssueSessionToken signs an application session token for the given user.
// The token is accepted by the token session identity provider, through either the
// session cookie or a bearer header. format is "text" or "json".
func RunIssueSessionToken(
	tokenService authService.TokenService,
	logger *slog.Logger,
	writer io.Writer,
	subject, email, name, format string,
) error {
	if subject == "" && email == "" {
		return fmt.Errorf("--subject or --email is required")
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("invalid format: %s (valid options: text, json)", format)
	}
	if subject == "" {
		subject = email
	}

	token, expiresAt, err := tokenService.Issue(subject, email, name)
	if err != nil {
		return fmt.Errorf("failed to issue session token: %w", err)
	}

	logger.Info("session token issued",
		slog.String("subject", subject),
		slog.Time("expires_at", expiresAt),
	)

	if format == "json" {
		return json.NewEncoder(writer).Encode(sessionTokenOutput{
			Token:     token,
			ExpiresAt: expiresAt.UTC(),
			Subject:   subject,
			Email:     email,
		})
	}

	_, _ = fmt.Fprintf(writer, "Token: %s\n", token)
	_, _ = fmt.Fprintf(writer, "Expires At: %s\n", expiresAt.UTC().Format(time.RFC3339))
	return nil
}
