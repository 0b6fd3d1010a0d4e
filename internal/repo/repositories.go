package repo

import "github.com/cyra-app/cyra/internal/docstore"

type Repositories struct {
	Users       *UserRepository
	Logins      *LoginRepository
	Periods     *PeriodRepository
	Predictions *PredictionRepository
}

func NewRepositories(store docstore.Client) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(store),
		Logins:      NewLoginRepository(store),
		Periods:     NewPeriodRepository(store),
		Predictions: NewPredictionRepository(store),
	}
}
