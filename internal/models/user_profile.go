package models

import "time"

// DefaultCycleLength is written to new profiles at registration.
const DefaultCycleLength = 27

// UserProfile is the per-user document at users/{uid}.
type UserProfile struct {
	UID             string
	FullName        string
	Email           string
	CycleLength     int
	PeriodLength    int
	LastPeriodStart *time.Time
	LastPeriodEnd   *time.Time
	CreatedAt       time.Time
}

// Wire field names of the profile document. Field masks and codecs share
// these; they are part of the persisted layout contract.
const (
	FieldFullName        = "fullname"
	FieldEmail           = "email"
	FieldCycleLength     = "cycleLength"
	FieldPeriodLength    = "periodLength"
	FieldLastPeriodStart = "lastPeriodStartDate"
	FieldLastPeriodEnd   = "lastPeriodEndDate"
	FieldCreatedAt       = "created_at"
)

func (profile UserProfile) HasCycleData() bool {
	return profile.LastPeriodStart != nil && profile.LastPeriodEnd != nil
}
