package api

import (
	"strings"
	"time"

	"github.com/cyra-app/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

type registerInput struct {
	FullName string `json:"fullname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FaultValidation, "invalid input")
	}
	if err := validateFullName(input.FullName); err != nil {
		return faultError(c, err)
	}
	if err := validateEmail(input.Email); err != nil {
		return faultError(c, err)
	}
	if err := validatePassword(input.Password); err != nil {
		return faultError(c, err)
	}

	uid, err := handler.auth.Register(c.Context(), strings.TrimSpace(input.FullName), input.Email, input.Password, time.Now().In(handler.location))
	if err != nil {
		return faultError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "User registered successfully",
		"uid":     uid,
	})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := loginInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FaultValidation, "invalid input")
	}
	if err := validateEmail(input.Email); err != nil {
		return faultError(c, err)
	}
	if err := validatePassword(input.Password); err != nil {
		return faultError(c, err)
	}

	uid, hasCycleData, err := handler.auth.Authenticate(c.Context(), input.Email, input.Password)
	if err != nil {
		return faultError(c, err)
	}

	token, err := handler.buildToken(uid, defaultAuthTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, services.FaultUpstream, "failed to create session")
	}

	return c.JSON(fiber.Map{
		"uid":          uid,
		"token":        token,
		"hasCycleData": hasCycleData,
	})
}

func (handler *Handler) UpdateFullName(c *fiber.Ctx) error {
	input := struct {
		FullName string `json:"fullname"`
	}{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FaultValidation, "invalid input")
	}
	if err := validateFullName(input.FullName); err != nil {
		return faultError(c, err)
	}

	if err := handler.auth.UpdateFullName(c.Context(), currentUID(c), strings.TrimSpace(input.FullName)); err != nil {
		return faultError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Full name updated successfully."})
}
