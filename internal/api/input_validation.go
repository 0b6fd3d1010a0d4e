package api

import (
	"strings"
	"time"

	"github.com/cyra-app/cyra/internal/services"
)

const (
	minFullNameLength = 3
	maxFullNameLength = 100
	minPasswordLength = 6
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseDateInput accepts the ISO-8601 shapes the clients send: a bare
// calendar date or a full timestamp.
func parseDateInput(raw string) (time.Time, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Time{}, services.ValidationFault("missing date")
	}
	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, services.ValidationFault("invalid date: " + trimmed)
}

func validateFullName(fullName string) error {
	trimmed := strings.TrimSpace(fullName)
	if len(trimmed) < minFullNameLength {
		return services.ValidationFault("fullname must be at least 3 characters")
	}
	if len(trimmed) > maxFullNameLength {
		return services.ValidationFault("fullname must be at most 100 characters")
	}
	return nil
}

func validateEmail(email string) error {
	normalized := services.NormalizeEmail(email)
	at := strings.Index(normalized, "@")
	if at <= 0 || at == len(normalized)-1 || !strings.Contains(normalized[at+1:], ".") {
		return services.ValidationFault("invalid email")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return services.ValidationFault("password must be at least 6 characters")
	}
	return nil
}
