package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/cyra-app/cyra/internal/docstore"
	"github.com/cyra-app/cyra/internal/models"
	"github.com/cyra-app/cyra/internal/repo"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// AuthService owns identity: registration, credential verification, and
// profile settings. Credentials live in the same document store as the
// cycle data (logins/{email} index documents) since the store contract
// has no queries.
type AuthService struct {
	users    *repo.UserRepository
	logins   *repo.LoginRepository
	location *time.Location
}

func NewAuthService(repositories *repo.Repositories, location *time.Location) *AuthService {
	if location == nil {
		location = time.UTC
	}
	return &AuthService{
		users:    repositories.Users,
		logins:   repositories.Logins,
		location: location,
	}
}

// Register creates the login index entry and the profile document with
// registration defaults: cycleLength 27, no dates logged yet.
func (service *AuthService) Register(ctx context.Context, fullName string, email string, password string, now time.Time) (string, error) {
	email = NormalizeEmail(email)

	_, err := service.logins.Get(ctx, email)
	if err == nil {
		return "", ValidationFault("email already registered")
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return "", UpstreamFault("failed to check registration", err)
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", UpstreamFault("failed to secure password", err)
	}

	uid := uuid.NewString()
	profile := models.UserProfile{
		UID:         uid,
		FullName:    fullName,
		Email:       email,
		CycleLength: models.DefaultCycleLength,
		CreatedAt:   now,
	}
	if err := service.users.CreateProfile(ctx, profile); err != nil {
		return "", UpstreamFault("failed to create user profile", err)
	}

	login := models.LoginRecord{
		UID:          uid,
		PasswordHash: string(passwordHash),
		CreatedAt:    now,
	}
	if err := service.logins.Create(ctx, email, login); err != nil {
		return "", UpstreamFault("failed to create login record", err)
	}

	return uid, nil
}

// Authenticate verifies credentials and reports whether the account has
// both last-period dates on file. The cycle-data probe is best effort: a
// failed profile read logs and reports false rather than blocking login.
func (service *AuthService) Authenticate(ctx context.Context, email string, password string) (string, bool, error) {
	email = NormalizeEmail(email)

	login, err := service.logins.Get(ctx, email)
	if errors.Is(err, docstore.ErrNotFound) {
		return "", false, UnauthorizedFault("invalid credentials")
	}
	if err != nil {
		return "", false, UpstreamFault("failed to load login record", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(login.PasswordHash), []byte(password)) != nil {
		return "", false, UnauthorizedFault("invalid credentials")
	}

	hasCycleData := false
	profile, err := service.users.Get(ctx, login.UID)
	if err != nil {
		log.Printf("auth: load profile for %s: %v", login.UID, err)
	} else {
		hasCycleData = profile.HasCycleData()
	}

	return login.UID, hasCycleData, nil
}

func (service *AuthService) UpdateFullName(ctx context.Context, uid string, fullName string) error {
	if err := service.users.UpdateFullName(ctx, uid, fullName); err != nil {
		return UpstreamFault("failed to update full name", err)
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
