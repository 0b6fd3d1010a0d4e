package notify

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/repo"
	"github.com/cyra-app/cyra/internal/services"
	"github.com/robfig/cron/v3"
)

const (
	scanTimeout = 5 * time.Minute

	// cycleLengthFallback matches the status view fallback, not the
	// registration default.
	cycleLengthFallback = 28

	// upcomingLeadDays is how close a predicted start has to be before
	// the scan reports it.
	upcomingLeadDays = 3
)

// ReminderScanner walks all user profiles on a schedule and logs the
// ones whose cycle status deserves a reminder: delayed periods and
// predicted starts within the next few days. Delivery channels hook in
// here later; for now the scan is the audit trail.
type ReminderScanner struct {
	users    *repo.UserRepository
	lister   docstore.Lister
	location *time.Location
	cron     *cron.Cron
}

// NewReminderScanner builds a scanner over the given store. Stores that
// cannot enumerate documents disable the scan rather than failing it.
func NewReminderScanner(store docstore.Client, location *time.Location) *ReminderScanner {
	lister, _ := store.(docstore.Lister)
	if location == nil {
		location = time.UTC
	}
	return &ReminderScanner{
		users:    repo.NewUserRepository(store),
		lister:   lister,
		location: location,
		cron:     cron.New(),
	}
}

// Start registers the scan under the given cron expression and starts
// the schedule.
func (scanner *ReminderScanner) Start(spec string) error {
	if scanner.lister == nil {
		log.Println("notify: store does not support listing, reminder scan disabled")
		return nil
	}

	_, err := scanner.cron.AddFunc(spec, scanner.scan)
	if err != nil {
		return err
	}

	scanner.cron.Start()
	log.Printf("notify: reminder scan scheduled (%s)", spec)
	return nil
}

// Stop halts the schedule and waits for a running scan to finish.
func (scanner *ReminderScanner) Stop() {
	ctx := scanner.cron.Stop()
	<-ctx.Done()
}

func (scanner *ReminderScanner) scan() {
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	paths, err := scanner.lister.ListPaths(ctx, docstore.UserPathPrefix)
	if err != nil {
		log.Printf("notify: listing user profiles failed: %v", err)
		return
	}

	now := time.Now().In(scanner.location)
	reminders := 0
	for _, path := range paths {
		uid, ok := docstore.ProfileUID(path)
		if !ok {
			continue
		}
		if scanner.remindUser(ctx, uid, now) {
			reminders++
		}
	}
	log.Printf("notify: reminder scan finished, %d profiles, %d reminders", len(paths), reminders)
}

// remindUser resolves one user's cycle status. Failures are logged and
// skipped so one broken profile cannot stall the whole scan.
func (scanner *ReminderScanner) remindUser(ctx context.Context, uid string, now time.Time) bool {
	profile, err := scanner.users.Get(ctx, uid)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			log.Printf("notify: loading profile %s failed: %v", uid, err)
		}
		return false
	}

	cycleLength := profile.CycleLength
	if cycleLength <= 0 {
		cycleLength = cycleLengthFallback
	}
	result := services.ResolveCycleStatus(now, profile.LastPeriodStart, profile.LastPeriodEnd, cycleLength, scanner.location)

	switch result.Status {
	case services.StatusDelayed:
		log.Printf("notify: %s delayed, %s", uid, result.Detail)
		return true
	case services.StatusUpcoming:
		lead := services.DaysBetween(now, result.PredictedStart)
		if lead <= upcomingLeadDays {
			log.Printf("notify: %s period expected in %d days", uid, lead)
			return true
		}
	}
	return false
}
