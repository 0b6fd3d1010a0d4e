package api

import (
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/repo"
	"github.com/cyra-app/cyra/internal/services"
	"github.com/golang-jwt/jwt/v5"
)

const (
	contextUserKey      = "auth_uid"
	defaultAuthTokenTTL = 7 * 24 * time.Hour
)

type Handler struct {
	secretKey []byte
	location  *time.Location
	auth      *services.AuthService
	cycles    *services.CycleService
}

type authClaims struct {
	UID string `json:"uid"`
	jwt.RegisteredClaims
}

func NewHandler(store docstore.Client, secretKey string, location *time.Location) *Handler {
	if location == nil {
		location = time.UTC
	}
	repositories := repo.NewRepositories(store)
	return &Handler{
		secretKey: []byte(secretKey),
		location:  location,
		auth:      services.NewAuthService(repositories, location),
		cycles:    services.NewCycleService(repositories, location),
	}
}
