package services

import (
	"time"

	"github.com/cyra-app/cyra/internal/models"
)

const (
	CycleLengthSourcePrevious = "previous_month"
	CycleLengthSourceNext     = "next_month"
	CycleLengthSourceFallback = "fallback"
)

// CycleLengthEstimate carries the estimated length plus where it came
// from. Anomaly is set when the raw difference was not a usable positive
// day count and had to be clamped.
type CycleLengthEstimate struct {
	Length  int
	Source  string
	Anomaly bool
}

// EstimateCycleLength derives the cycle length to store for a newly
// confirmed start date. The previous month's recorded start wins, then
// the next month's, then the fallback. Differences of zero days are
// clamped to one and flagged rather than propagated.
func EstimateCycleLength(newStart time.Time, previousStart *time.Time, nextStart *time.Time, fallback int) CycleLengthEstimate {
	if fallback <= 0 {
		fallback = models.DefaultCycleLength
	}

	if previousStart != nil {
		return clampEstimate(DaysBetween(*previousStart, newStart), CycleLengthSourcePrevious)
	}
	if nextStart != nil {
		return clampEstimate(DaysBetween(newStart, *nextStart), CycleLengthSourceNext)
	}
	return CycleLengthEstimate{Length: fallback, Source: CycleLengthSourceFallback}
}

func clampEstimate(days int, source string) CycleLengthEstimate {
	if days < 1 {
		return CycleLengthEstimate{Length: 1, Source: source, Anomaly: true}
	}
	return CycleLengthEstimate{Length: days, Source: source}
}
