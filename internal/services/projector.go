package services

import (
	"sort"
	"time"

	"github.com/cyra-app/cyra/internal/models"
)

const (
	PredictedStartPlaceholder = "Predicted start of next period"
	PredictedEndPlaceholder   = "Predicted end of next period"
)

// ProjectPeriodEvents flattens one month record into calendar events: a
// start event, an end event, and a noteOnly event for every remaining
// noted day. Extra notes come out in date order.
func ProjectPeriodEvents(record models.PeriodRecord, location *time.Location) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0, 2+len(record.Notes))

	startKey := ""
	if record.StartDate != nil {
		startKey = ISODate(*record.StartDate, location)
		events = append(events, models.CalendarEvent{
			Type:  models.EventStart,
			Date:  startKey,
			Notes: record.Notes[startKey],
		})
	}

	endKey := ""
	if record.EndDate != nil {
		endKey = ISODate(*record.EndDate, location)
		events = append(events, models.CalendarEvent{
			Type:  models.EventEnd,
			Date:  endKey,
			Notes: record.Notes[endKey],
		})
	}

	return append(events, noteOnlyEvents(record.Notes, startKey, endKey)...)
}

// ProjectPredictionEvents is the prediction analogue; when a predicted
// day carries no note a fixed placeholder is used instead.
func ProjectPredictionEvents(record models.PredictionRecord, location *time.Location) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0, 2+len(record.Notes))

	startKey := ""
	if !record.PredictedStart.IsZero() {
		startKey = ISODate(record.PredictedStart, location)
		events = append(events, models.CalendarEvent{
			Type:  models.EventPredictedStart,
			Date:  startKey,
			Notes: noteOrPlaceholder(record.Notes, startKey, PredictedStartPlaceholder),
		})
	}

	endKey := ""
	if !record.PredictedEnd.IsZero() {
		endKey = ISODate(record.PredictedEnd, location)
		events = append(events, models.CalendarEvent{
			Type:  models.EventPredictedEnd,
			Date:  endKey,
			Notes: noteOrPlaceholder(record.Notes, endKey, PredictedEndPlaceholder),
		})
	}

	return append(events, noteOnlyEvents(record.Notes, startKey, endKey)...)
}

func noteOnlyEvents(notes map[string]string, excludeA string, excludeB string) []models.CalendarEvent {
	dates := make([]string, 0, len(notes))
	for date := range notes {
		if date == excludeA || date == excludeB {
			continue
		}
		dates = append(dates, date)
	}
	sort.Strings(dates)

	events := make([]models.CalendarEvent, 0, len(dates))
	for _, date := range dates {
		events = append(events, models.CalendarEvent{
			Type:  models.EventNoteOnly,
			Date:  date,
			Notes: notes[date],
		})
	}
	return events
}

func noteOrPlaceholder(notes map[string]string, key string, placeholder string) string {
	if text, ok := notes[key]; ok {
		return text
	}
	return placeholder
}
