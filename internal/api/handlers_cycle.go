package api

import (
	"strconv"
	"time"

	"github.com/cyra-app/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

type saveCycleInput struct {
	CycleLength     int    `json:"cycleLength"`
	PeriodStartDate string `json:"periodStartDate"`
	PeriodEndDate   string `json:"periodEndDate"`
}

func (handler *Handler) SaveCycleData(c *fiber.Ctx) error {
	input := saveCycleInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FaultValidation, "invalid input")
	}

	start, err := parseDateInput(input.PeriodStartDate)
	if err != nil {
		return faultError(c, services.ValidationFault("invalid period start date"))
	}
	end, err := parseDateInput(input.PeriodEndDate)
	if err != nil {
		return faultError(c, services.ValidationFault("invalid period end date"))
	}

	now := time.Now().In(handler.location)
	if err := handler.cycles.SaveCycleBaseline(c.Context(), currentUID(c), input.CycleLength, start, end, now); err != nil {
		return faultError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Cycle data saved"})
}

func (handler *Handler) CycleStatus(c *fiber.Ctx) error {
	view, err := handler.cycles.Status(c.Context(), currentUID(c), time.Now().In(handler.location))
	if err != nil {
		return faultError(c, err)
	}
	return c.JSON(view)
}

// Notification trims the status view down to what a reminder banner needs.
func (handler *Handler) Notification(c *fiber.Ctx) error {
	view, err := handler.cycles.Status(c.Context(), currentUID(c), time.Now().In(handler.location))
	if err != nil {
		return faultError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": view.Message,
		"status":  view.Status,
	})
}

func (handler *Handler) CycleHistory(c *fiber.Ctx) error {
	year := handler.yearParam(c)
	months := handler.cycles.History(c.Context(), currentUID(c), year)
	return c.JSON(fiber.Map{
		"year":   year,
		"months": months,
	})
}

func (handler *Handler) yearParam(c *fiber.Ctx) int {
	raw := c.Query("year")
	if raw == "" {
		return time.Now().In(handler.location).Year()
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 1 {
		return time.Now().In(handler.location).Year()
	}
	return year
}
