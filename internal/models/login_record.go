package models

import "time"

// LoginRecord is the email-keyed credential index at logins/{email}. The
// document store has no queries, so login-by-email needs its own
// point-lookup document.
type LoginRecord struct {
	UID          string
	PasswordHash string
	CreatedAt    time.Time
}

const (
	FieldLoginUID          = "uid"
	FieldLoginPasswordHash = "passwordHash"
)
