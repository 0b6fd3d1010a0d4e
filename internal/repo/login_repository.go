package repo

import (
	"context"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/models"
)

type LoginRepository struct {
	store docstore.Client
}

func NewLoginRepository(store docstore.Client) *LoginRepository {
	return &LoginRepository{store: store}
}

func (repo *LoginRepository) Get(ctx context.Context, email string) (models.LoginRecord, error) {
	fields, err := repo.store.Get(ctx, docstore.LoginPath(email))
	if err != nil {
		return models.LoginRecord{}, err
	}
	return decodeLoginRecord(fields), nil
}

func (repo *LoginRepository) Create(ctx context.Context, email string, record models.LoginRecord) error {
	return repo.store.Create(ctx, docstore.LoginPath(email), encodeLoginRecord(record))
}
