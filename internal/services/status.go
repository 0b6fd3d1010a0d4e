package services

import (
	"fmt"
	"time"
)

type CycleStatus string

const (
	StatusNoData   CycleStatus = "NO_DATA"
	StatusDelayed  CycleStatus = "DELAYED"
	StatusActive   CycleStatus = "ACTIVE"
	StatusUpcoming CycleStatus = "UPCOMING"
	StatusFinished CycleStatus = "FINISHED"
)

// CycleStatusResult is the resolver output. Message and Detail carry the
// production wording the mobile clients already render.
type CycleStatusResult struct {
	Status         CycleStatus
	Message        string
	Detail         string
	PredictedStart time.Time
}

// ResolveCycleStatus classifies today against the recorded and predicted
// dates. Precedence is fixed and order-sensitive, first match wins:
// NO_DATA, DELAYED, ACTIVE, UPCOMING, FINISHED.
//
// Two production quirks are kept on purpose: the ACTIVE day count is
// daysBetween+2 (day one of a period reads as "Day 2"), and DELAYED
// compares month numbers only, ignoring the year.
func ResolveCycleStatus(today time.Time, lastStart *time.Time, lastEnd *time.Time, cycleLength int, location *time.Location) CycleStatusResult {
	if lastStart == nil {
		return CycleStatusResult{
			Status:  StatusNoData,
			Message: "No cycle data available.",
			Detail:  "Please log your last period date.",
		}
	}

	day := DateAtLocation(today, location)
	start := DateAtLocation(*lastStart, location)
	predictedStart := start.AddDate(0, 0, cycleLength)

	if day.After(predictedStart) && start.Month() != day.Month() {
		daysDelayed := DaysBetween(day, start)
		return CycleStatusResult{
			Status:         StatusDelayed,
			Message:        "Your period is delayed!",
			Detail:         fmt.Sprintf("Delayed by %d days since last month.", daysDelayed),
			PredictedStart: predictedStart,
		}
	}

	if lastEnd != nil {
		end := DateAtLocation(*lastEnd, location)
		if day.After(start) && day.Before(end) {
			return CycleStatusResult{
				Status:         StatusActive,
				Message:        "Your period has started!",
				Detail:         fmt.Sprintf("Day %d", DaysBetween(day, start)+2),
				PredictedStart: predictedStart,
			}
		}
	}

	if day.Before(predictedStart) {
		daysLeft := DaysBetween(predictedStart, day) + 1
		return CycleStatusResult{
			Status:         StatusUpcoming,
			Message:        fmt.Sprintf("Upcoming period in %d days 🌟", daysLeft),
			Detail:         "Your next period is expected to start on, " + predictedStart.Format("January 2, 2006"),
			PredictedStart: predictedStart,
		}
	}

	return CycleStatusResult{
		Status:         StatusFinished,
		Message:        "Your period is finished.",
		Detail:         "End of cycle.",
		PredictedStart: predictedStart,
	}
}
