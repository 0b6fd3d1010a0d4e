package repo

import (
	"context"
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/models"
)

type UserRepository struct {
	store docstore.Client
}

func NewUserRepository(store docstore.Client) *UserRepository {
	return &UserRepository{store: store}
}

func (repo *UserRepository) Get(ctx context.Context, uid string) (models.UserProfile, error) {
	fields, err := repo.store.Get(ctx, docstore.UserPath(uid))
	if err != nil {
		return models.UserProfile{}, err
	}
	return decodeProfile(uid, fields), nil
}

func (repo *UserRepository) CreateProfile(ctx context.Context, profile models.UserProfile) error {
	return repo.store.Create(ctx, docstore.UserPath(profile.UID), encodeProfile(profile))
}

// ConfirmStart records a confirmed period start on the profile: the new
// cycle length plus the start date, nothing else.
func (repo *UserRepository) ConfirmStart(ctx context.Context, uid string, cycleLength int, start time.Time) error {
	fields := docstore.Fields{
		models.FieldCycleLength:     docstore.Integer(int64(cycleLength)),
		models.FieldLastPeriodStart: docstore.Timestamp(start),
	}
	mask := []string{models.FieldCycleLength, models.FieldLastPeriodStart}
	return repo.store.Patch(ctx, docstore.UserPath(uid), fields, mask)
}

// ConfirmEnd records a confirmed period end: both boundary dates and the
// derived period length.
func (repo *UserRepository) ConfirmEnd(ctx context.Context, uid string, start time.Time, end time.Time, periodLength int) error {
	fields := docstore.Fields{
		models.FieldLastPeriodStart: docstore.Timestamp(start),
		models.FieldLastPeriodEnd:   docstore.Timestamp(end),
		models.FieldPeriodLength:    docstore.Integer(int64(periodLength)),
	}
	mask := []string{models.FieldLastPeriodStart, models.FieldLastPeriodEnd, models.FieldPeriodLength}
	return repo.store.Patch(ctx, docstore.UserPath(uid), fields, mask)
}

// SaveCycleBaseline is the onboarding bulk write of all four cycle fields.
func (repo *UserRepository) SaveCycleBaseline(ctx context.Context, uid string, cycleLength int, start time.Time, end time.Time, periodLength int) error {
	fields := docstore.Fields{
		models.FieldCycleLength:     docstore.Integer(int64(cycleLength)),
		models.FieldLastPeriodStart: docstore.Timestamp(start),
		models.FieldLastPeriodEnd:   docstore.Timestamp(end),
		models.FieldPeriodLength:    docstore.Integer(int64(periodLength)),
	}
	mask := []string{
		models.FieldCycleLength,
		models.FieldLastPeriodStart,
		models.FieldLastPeriodEnd,
		models.FieldPeriodLength,
	}
	return repo.store.Patch(ctx, docstore.UserPath(uid), fields, mask)
}

func (repo *UserRepository) UpdateFullName(ctx context.Context, uid string, fullName string) error {
	fields := docstore.Fields{models.FieldFullName: docstore.String(fullName)}
	return repo.store.Patch(ctx, docstore.UserPath(uid), fields, []string{models.FieldFullName})
}
