package models

import "time"

// PredictionRecord is the document at
// users/{uid}/predictions/{year}/{month}/active. It is derived from the
// profile at the moment a period end is confirmed and overwritten whole,
// never merged.
type PredictionRecord struct {
	PredictedStart time.Time
	PredictedEnd   time.Time
	CreatedAt      time.Time
	IsConfirmed    bool
	Notes          map[string]string
}
