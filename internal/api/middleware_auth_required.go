package api

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// AuthRequired verifies the bearer token and stashes the opaque uid for
// the handlers downstream.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	uid, err := handler.verifyBearerToken(c.Get(fiber.HeaderAuthorization))
	if err != nil {
		return unauthorized(c)
	}
	c.Locals(contextUserKey, uid)
	return c.Next()
}

func (handler *Handler) verifyBearerToken(header string) (string, error) {
	rawToken := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(header), "Bearer "))
	if rawToken == "" || rawToken == strings.TrimSpace(header) {
		return "", fmt.Errorf("missing bearer token")
	}

	claims := &authClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(time.Now()) {
		return "", fmt.Errorf("token expired")
	}
	if claims.UID == "" {
		return "", fmt.Errorf("token without uid")
	}
	return claims.UID, nil
}

func (handler *Handler) buildToken(uid string, ttl time.Duration) (string, error) {
	if ttl <= 0 {
		ttl = defaultAuthTokenTTL
	}
	now := time.Now()

	claims := authClaims{
		UID: uid,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   uid,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(handler.secretKey)
}

func currentUID(c *fiber.Ctx) string {
	uid, _ := c.Locals(contextUserKey).(string)
	return uid
}
