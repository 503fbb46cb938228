// Package validation provides custom validation rules for the application.
package validation

import (
	"net/url"
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/tenantvault/internal/errors"
)

var (
	// emailRegex is a basic email validation pattern
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// Email validates email format using regex
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// LocalPath validates a same-origin redirect target such as "/dashboard".
var LocalPath = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") && !strings.Contains(s, `\`)
	},
	validation.NewError("validation_local_path", "must be a local path"),
)

// HasPrefix validates that a string starts with one of the given prefixes.
func HasPrefix(prefixes ...string) validation.StringRule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			for _, prefix := range prefixes {
				if strings.HasPrefix(s, prefix) {
					return true
				}
			}
			return false
		},
		validation.NewError(
			"validation_prefix",
			"must start with "+strings.Join(prefixes, " or "),
		),
	)
}

// URLHostSuffix validates an absolute http(s) URL whose host ends with one of the suffixes.
// Plain http is only accepted for localhost.
func URLHostSuffix(suffixes ...string) validation.StringRule {
	return validation.NewStringRuleWithError(
		func(s string) bool {
			u, err := url.Parse(s)
			if err != nil || u.Host == "" {
				return false
			}

			host := strings.ToLower(u.Hostname())
			switch u.Scheme {
			case "https":
			case "http":
				return host == "localhost" || host == "127.0.0.1"
			default:
				return false
			}

			for _, suffix := range suffixes {
				if strings.HasSuffix(host, strings.ToLower(suffix)) {
					return true
				}
			}
			return false
		},
		validation.NewError(
			"validation_url_host",
			"must be an https URL on "+strings.Join(suffixes, " or "),
		),
	)
}
