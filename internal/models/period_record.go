package models

import "time"

// PeriodRecord is the month-partitioned document at
// users/{uid}/periods/{year}/{month}/active. When both dates are set,
// PeriodLength equals end - start + 1 in days. Notes maps ISO calendar
// dates ("2006-01-02") to free-text entries.
type PeriodRecord struct {
	StartDate    *time.Time
	EndDate      *time.Time
	PeriodLength *int
	Notes        map[string]string
}

const (
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldNotes           = "notes"
	FieldPredictedStart  = "predicted_start"
	FieldPredictedEnd    = "predicted_end"
	FieldPredIsConfirmed = "is_confirmed"
)

func EmptyPeriodRecord() PeriodRecord {
	return PeriodRecord{Notes: map[string]string{}}
}

// CloneNotes returns a copy of the notes map so reconciliation can stay
// free of shared-map mutation.
func (record PeriodRecord) CloneNotes() map[string]string {
	notes := make(map[string]string, len(record.Notes))
	for date, text := range record.Notes {
		notes[date] = text
	}
	return notes
}
