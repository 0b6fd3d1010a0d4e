package services

import (
	"time"

	"github.com/cyra-app/cyra/internal/models"
)

// PeriodLengthDays counts a period from start to end inclusive.
func PeriodLengthDays(start time.Time, end time.Time) int {
	return DaysBetween(start, end) + 1
}

// Predict computes the next cycle's window. Deterministic and pure:
// predicted start is one cycle after the last start, predicted end runs
// periodLength days inclusive from there.
func Predict(start time.Time, periodLength int, cycleLength int) (time.Time, time.Time) {
	predictedStart := start.AddDate(0, 0, cycleLength)
	predictedEnd := predictedStart.AddDate(0, 0, periodLength-1)
	return predictedStart, predictedEnd
}

// BuildPrediction materializes a Predict result as the record persisted
// for the predicted month: unconfirmed, stamped with now.
func BuildPrediction(start time.Time, periodLength int, cycleLength int, now time.Time) models.PredictionRecord {
	predictedStart, predictedEnd := Predict(start, periodLength, cycleLength)
	return models.PredictionRecord{
		PredictedStart: predictedStart,
		PredictedEnd:   predictedEnd,
		CreatedAt:      now,
		IsConfirmed:    false,
	}
}
