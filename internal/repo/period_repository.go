package repo

import (
	"context"
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/models"
)

type PeriodRepository struct {
	store docstore.Client
}

func NewPeriodRepository(store docstore.Client) *PeriodRepository {
	return &PeriodRepository{store: store}
}

func (repo *PeriodRepository) Get(ctx context.Context, uid string, year int, month time.Month) (models.PeriodRecord, error) {
	fields, err := repo.store.Get(ctx, docstore.PeriodPath(uid, year, month))
	if err != nil {
		return models.EmptyPeriodRecord(), err
	}
	return decodePeriodRecord(fields), nil
}

// Patch writes only the masked fields of the record, leaving the rest of
// the month document untouched.
func (repo *PeriodRepository) Patch(ctx context.Context, uid string, year int, month time.Month, record models.PeriodRecord, mask []string) error {
	encoded := encodePeriodRecord(record)
	fields := make(docstore.Fields, len(mask))
	for _, name := range mask {
		if value, ok := encoded[name]; ok {
			fields[name] = value
		}
	}
	return repo.store.Patch(ctx, docstore.PeriodPath(uid, year, month), fields, mask)
}

// Put replaces the whole month document (onboarding baseline write).
func (repo *PeriodRepository) Put(ctx context.Context, uid string, year int, month time.Month, record models.PeriodRecord) error {
	return repo.store.Create(ctx, docstore.PeriodPath(uid, year, month), encodePeriodRecord(record))
}
