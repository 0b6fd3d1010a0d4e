package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/models"
	"github.com/cyra-app/cyra/internal/repo"
)

// Fallbacks used by the status endpoint when the profile predates a field.
// Registration writes cycleLength 27; status falls back to 28. The skew is
// inherited from production and kept for client compatibility.
const (
	statusCycleLengthFallback  = 28
	statusPeriodLengthFallback = 5
)

// CycleService composes the pure cycle engine with the document store:
// every operation is read, pure compute, then a conditional write naming
// the exact field mask it touches. Writes are optimistic and
// last-writer-wins; the store offers no cross-document transaction.
type CycleService struct {
	users       *repo.UserRepository
	periods     *repo.PeriodRepository
	predictions *repo.PredictionRepository
	location    *time.Location
}

func NewCycleService(repositories *repo.Repositories, location *time.Location) *CycleService {
	if location == nil {
		location = time.UTC
	}
	return &CycleService{
		users:       repositories.Users,
		periods:     repositories.Periods,
		predictions: repositories.Predictions,
		location:    location,
	}
}

type AddEventInput struct {
	Date time.Time
	Kind string
	Note string
	// CycleLength overrides the estimator when positive (clients may send
	// a user-confirmed value with a start event).
	CycleLength int
}

// AddEvent applies one start/end/noteOnly event to the month record the
// date falls in, with the profile and prediction cascades the event kind
// demands.
func (service *CycleService) AddEvent(ctx context.Context, uid string, input AddEventInput, now time.Time) error {
	day := DateAtLocation(input.Date, service.location)
	year, month := docstore.MonthKey(day)

	record, err := service.loadPeriodRecord(ctx, uid, year, month)
	if err != nil {
		return err
	}

	switch input.Kind {
	case models.EventStart:
		return service.applyStartEvent(ctx, uid, record, day, input, year, month)
	case models.EventEnd:
		return service.applyEndEvent(ctx, uid, record, day, input.Note, now, year, month)
	case models.EventNoteOnly:
		change, err := ApplyNote(record, day, input.Note, service.location)
		if err != nil {
			return err
		}
		return service.patchPeriod(ctx, uid, year, month, change)
	default:
		return ValidationFault("invalid event type")
	}
}

func (service *CycleService) applyStartEvent(ctx context.Context, uid string, record models.PeriodRecord, day time.Time, input AddEventInput, year int, month time.Month) error {
	change := ApplyStart(record, day, input.Note, service.location)

	cycleLength := input.CycleLength
	if cycleLength <= 0 {
		estimate := service.estimateCycleLength(ctx, uid, day, year, month)
		if estimate.Anomaly {
			log.Printf("cycle: anomalous cycle length from %s for %s, clamped to %d", estimate.Source, uid, estimate.Length)
		}
		cycleLength = estimate.Length
	}

	if err := service.users.ConfirmStart(ctx, uid, cycleLength, day); err != nil {
		return UpstreamFault("failed to update user profile", err)
	}
	return service.patchPeriod(ctx, uid, year, month, change)
}

func (service *CycleService) applyEndEvent(ctx context.Context, uid string, record models.PeriodRecord, day time.Time, note string, now time.Time, year int, month time.Month) error {
	change := ApplyEnd(record, day, note, service.location)
	if err := service.patchPeriod(ctx, uid, year, month, change); err != nil {
		return err
	}

	// No recorded start in this month: the end stands alone and there is
	// nothing to cascade.
	if change.Record.StartDate == nil || change.Record.PeriodLength == nil {
		return nil
	}

	start := *change.Record.StartDate
	periodLength := *change.Record.PeriodLength
	if err := service.users.ConfirmEnd(ctx, uid, start, day, periodLength); err != nil {
		return UpstreamFault("failed to update user profile", err)
	}

	profile, err := service.users.Get(ctx, uid)
	if err != nil {
		return UpstreamFault("failed to load user profile", err)
	}
	cycleLength := profile.CycleLength
	if cycleLength <= 0 {
		cycleLength = models.DefaultCycleLength
	}

	prediction := BuildPrediction(start, periodLength, cycleLength, now)
	predictionYear, predictionMonth := docstore.MonthKey(DateAtLocation(prediction.PredictedStart, service.location))
	if err := service.predictions.Put(ctx, uid, predictionYear, predictionMonth, prediction); err != nil {
		return UpstreamFault("failed to save prediction", err)
	}
	return nil
}

// estimateCycleLength consults the neighboring month partitions. Fetch
// failures on either neighbor are soft: logged and treated as absent.
func (service *CycleService) estimateCycleLength(ctx context.Context, uid string, day time.Time, year int, month time.Month) CycleLengthEstimate {
	previousYear, previousMonth := docstore.PreviousMonth(year, month)
	previousStart := service.neighborStart(ctx, uid, previousYear, previousMonth)

	var nextStart *time.Time
	if previousStart == nil {
		nextYear, nextMonth := docstore.NextMonth(year, month)
		nextStart = service.neighborStart(ctx, uid, nextYear, nextMonth)
	}

	return EstimateCycleLength(day, previousStart, nextStart, models.DefaultCycleLength)
}

func (service *CycleService) neighborStart(ctx context.Context, uid string, year int, month time.Month) *time.Time {
	record, err := service.periods.Get(ctx, uid, year, month)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("cycle: fetch period %04d-%02d for %s: %v", year, int(month), uid, err)
		return nil
	}
	return record.StartDate
}

// RemoveEvent clears the event and notes for the month the date falls in.
func (service *CycleService) RemoveEvent(ctx context.Context, uid string, date time.Time) error {
	day := DateAtLocation(date, service.location)
	year, month := docstore.MonthKey(day)

	record, err := service.periods.Get(ctx, uid, year, month)
	if errors.Is(err, docstore.ErrNotFound) {
		return NotFoundFault("no period record for that month")
	}
	if err != nil {
		return UpstreamFault("failed to load period record", err)
	}

	return service.patchPeriod(ctx, uid, year, month, RemoveEvent(record, day, service.location))
}

// RemoveNote deletes the note for the given date. Absent notes (or an
// absent month record) report found=false without error.
func (service *CycleService) RemoveNote(ctx context.Context, uid string, date time.Time) (bool, error) {
	day := DateAtLocation(date, service.location)
	year, month := docstore.MonthKey(day)

	record, err := service.periods.Get(ctx, uid, year, month)
	if errors.Is(err, docstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, UpstreamFault("failed to load period record", err)
	}

	change, found := RemoveNote(record, day, service.location)
	if !found {
		return false, nil
	}
	if err := service.patchPeriod(ctx, uid, year, month, change); err != nil {
		return false, err
	}
	return true, nil
}

// YearEvents projects all period records of a year. The twelve month
// lookups are independent; a failed month is logged and contributes no
// events instead of failing the projection.
func (service *CycleService) YearEvents(ctx context.Context, uid string, year int) []models.CalendarEvent {
	events := make([]models.CalendarEvent, 0)
	for month := time.January; month <= time.December; month++ {
		record, err := service.periods.Get(ctx, uid, year, month)
		if errors.Is(err, docstore.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("cycle: fetch period %04d-%02d for %s: %v", year, int(month), uid, err)
			continue
		}
		events = append(events, ProjectPeriodEvents(record, service.location)...)
	}
	return events
}

// NextPrediction locates the prediction document for the month one cycle
// after the last recorded start and projects it.
func (service *CycleService) NextPrediction(ctx context.Context, uid string) ([]models.CalendarEvent, error) {
	profile, err := service.users.Get(ctx, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, NotFoundFault("no user data found")
	}
	if err != nil {
		return nil, UpstreamFault("failed to load user profile", err)
	}

	if profile.LastPeriodStart == nil || profile.CycleLength <= 0 {
		return nil, ValidationFault("missing last period start date or cycle length")
	}

	start := DateAtLocation(*profile.LastPeriodStart, service.location)
	predictedStart := start.AddDate(0, 0, profile.CycleLength)
	year, month := docstore.MonthKey(predictedStart)

	record, err := service.predictions.Get(ctx, uid, year, month)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, NotFoundFault("no prediction available")
	}
	if err != nil {
		return nil, UpstreamFault("failed to load prediction", err)
	}

	return ProjectPredictionEvents(record, service.location), nil
}

// StatusView is the cycle-status payload: profile header fields plus the
// resolver's message pair, shaped the way the clients expect.
type StatusView struct {
	FullName     string      `json:"fullname"`
	Email        string      `json:"email"`
	CycleLength  int         `json:"cycleLength"`
	PeriodLength int         `json:"periodLength"`
	Status       CycleStatus `json:"status"`
	Message      string      `json:"currentCycleMessage"`
	Detail       string      `json:"currentCycleStatus"`
}

func (service *CycleService) Status(ctx context.Context, uid string, now time.Time) (StatusView, error) {
	profile, err := service.users.Get(ctx, uid)
	if errors.Is(err, docstore.ErrNotFound) {
		return StatusView{}, NotFoundFault("user data not found")
	}
	if err != nil {
		return StatusView{}, UpstreamFault("failed to load user profile", err)
	}

	view := StatusView{
		FullName:     profile.FullName,
		Email:        profile.Email,
		CycleLength:  profile.CycleLength,
		PeriodLength: profile.PeriodLength,
	}
	if view.FullName == "" {
		view.FullName = "User"
	}
	if view.CycleLength <= 0 {
		view.CycleLength = statusCycleLengthFallback
	}
	if view.PeriodLength <= 0 {
		view.PeriodLength = statusPeriodLengthFallback
	}

	result := ResolveCycleStatus(now, profile.LastPeriodStart, profile.LastPeriodEnd, view.CycleLength, service.location)
	view.Status = result.Status
	view.Message = result.Message
	view.Detail = result.Detail
	return view, nil
}

// MonthSummary is one entry of the cycle-history listing.
type MonthSummary struct {
	Year         int               `json:"year"`
	Month        int               `json:"month"`
	StartDate    string            `json:"start_date,omitempty"`
	EndDate      string            `json:"end_date,omitempty"`
	PeriodLength int               `json:"periodLength,omitempty"`
	Notes        map[string]string `json:"notes"`
}

// History scans a year of month partitions with the same per-month
// failure isolation as YearEvents.
func (service *CycleService) History(ctx context.Context, uid string, year int) []MonthSummary {
	summaries := make([]MonthSummary, 0)
	for month := time.January; month <= time.December; month++ {
		record, err := service.periods.Get(ctx, uid, year, month)
		if errors.Is(err, docstore.ErrNotFound) {
			continue
		}
		if err != nil {
			log.Printf("cycle: fetch period %04d-%02d for %s: %v", year, int(month), uid, err)
			continue
		}

		summary := MonthSummary{Year: year, Month: int(month), Notes: record.Notes}
		if record.StartDate != nil {
			summary.StartDate = ISODate(*record.StartDate, service.location)
		}
		if record.EndDate != nil {
			summary.EndDate = ISODate(*record.EndDate, service.location)
		}
		if record.PeriodLength != nil {
			summary.PeriodLength = *record.PeriodLength
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// SaveCycleBaseline is the onboarding bulk save: profile fields, the
// start month's period record, and the derived prediction, in that
// order. Every write here is authoritative, so any failure aborts.
func (service *CycleService) SaveCycleBaseline(ctx context.Context, uid string, cycleLength int, start time.Time, end time.Time, now time.Time) error {
	if cycleLength <= 0 {
		return ValidationFault("cycle length must be positive")
	}
	startDay := DateAtLocation(start, service.location)
	endDay := DateAtLocation(end, service.location)
	if endDay.Before(startDay) {
		return ValidationFault("end date must not be before start date")
	}

	periodLength := PeriodLengthDays(startDay, endDay)
	if err := service.users.SaveCycleBaseline(ctx, uid, cycleLength, startDay, endDay, periodLength); err != nil {
		return UpstreamFault("failed to save cycle data", err)
	}

	year, month := docstore.MonthKey(startDay)
	record := models.PeriodRecord{
		StartDate:    &startDay,
		EndDate:      &endDay,
		PeriodLength: &periodLength,
		Notes:        map[string]string{},
	}
	if err := service.periods.Put(ctx, uid, year, month, record); err != nil {
		return UpstreamFault("failed to save period record", err)
	}

	prediction := BuildPrediction(startDay, periodLength, cycleLength, now)
	predictionYear, predictionMonth := docstore.MonthKey(DateAtLocation(prediction.PredictedStart, service.location))
	if err := service.predictions.Put(ctx, uid, predictionYear, predictionMonth, prediction); err != nil {
		return UpstreamFault("failed to save prediction", err)
	}
	return nil
}

func (service *CycleService) loadPeriodRecord(ctx context.Context, uid string, year int, month time.Month) (models.PeriodRecord, error) {
	record, err := service.periods.Get(ctx, uid, year, month)
	if errors.Is(err, docstore.ErrNotFound) {
		return models.EmptyPeriodRecord(), nil
	}
	if err != nil {
		return models.PeriodRecord{}, UpstreamFault("failed to load period record", err)
	}
	return record, nil
}

func (service *CycleService) patchPeriod(ctx context.Context, uid string, year int, month time.Month, change PeriodChange) error {
	if err := service.periods.Patch(ctx, uid, year, month, change.Record, change.Mask); err != nil {
		return UpstreamFault("failed to update period record", err)
	}
	return nil
}
