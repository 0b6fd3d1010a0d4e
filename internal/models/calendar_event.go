package models

const (
	EventStart          = "start"
	EventEnd            = "end"
	EventNoteOnly       = "noteOnly"
	EventPredictedStart = "predicted_start"
	EventPredictedEnd   = "predicted_end"
)

// CalendarEvent is a projection over period and prediction records; it is
// never persisted. Date is an ISO calendar date string.
type CalendarEvent struct {
	Type  string `json:"type"`
	Date  string `json:"date"`
	Notes string `json:"notes"`
}
