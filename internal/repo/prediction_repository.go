package repo

import (
	"context"
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/models"
)

type PredictionRepository struct {
	store docstore.Client
}

func NewPredictionRepository(store docstore.Client) *PredictionRepository {
	return &PredictionRepository{store: store}
}

func (repo *PredictionRepository) Get(ctx context.Context, uid string, year int, month time.Month) (models.PredictionRecord, error) {
	fields, err := repo.store.Get(ctx, docstore.PredictionPath(uid, year, month))
	if err != nil {
		return models.PredictionRecord{}, err
	}
	return decodePredictionRecord(fields), nil
}

// Put overwrites the month's prediction whole; predictions are never
// merged with a prior one.
func (repo *PredictionRepository) Put(ctx context.Context, uid string, year int, month time.Month, record models.PredictionRecord) error {
	return repo.store.Create(ctx, docstore.PredictionPath(uid, year, month), encodePredictionRecord(record))
}
