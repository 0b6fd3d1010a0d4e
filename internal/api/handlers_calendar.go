package api

import (
	"time"

	"github.com/cyra-app/cyra/internal/models"
	"github.com/cyra-app/cyra/internal/services"
	"github.com/gofiber/fiber/v2"
)

type addEventInput struct {
	Date        string `json:"date"`
	EventType   string `json:"eventType"`
	Note        string `json:"note"`
	CycleLength int    `json:"cycleLength"`
}

type dateInput struct {
	Date string `json:"date"`
}

func (handler *Handler) PeriodEvents(c *fiber.Ctx) error {
	year := handler.yearParam(c)
	events := handler.cycles.YearEvents(c.Context(), currentUID(c), year)
	return c.JSON(fiber.Map{"events": events})
}

func (handler *Handler) PeriodPrediction(c *fiber.Ctx) error {
	events, err := handler.cycles.NextPrediction(c.Context(), currentUID(c))
	if err != nil {
		return faultError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

func (handler *Handler) AddEvent(c *fiber.Ctx) error {
	input := addEventInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FaultValidation, "invalid input")
	}

	date, err := parseDateInput(input.Date)
	if err != nil {
		return faultError(c, services.ValidationFault("invalid event date"))
	}
	switch input.EventType {
	case models.EventStart, models.EventEnd, models.EventNoteOnly:
	default:
		return faultError(c, services.ValidationFault("invalid event type"))
	}

	event := services.AddEventInput{
		Date:        date,
		Kind:        input.EventType,
		Note:        input.Note,
		CycleLength: input.CycleLength,
	}
	now := time.Now().In(handler.location)
	if err := handler.cycles.AddEvent(c.Context(), currentUID(c), event, now); err != nil {
		return faultError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event added successfully"})
}

func (handler *Handler) RemoveEvent(c *fiber.Ctx) error {
	input := dateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FaultValidation, "invalid input")
	}
	date, err := parseDateInput(input.Date)
	if err != nil {
		return faultError(c, services.ValidationFault("invalid event date"))
	}

	if err := handler.cycles.RemoveEvent(c.Context(), currentUID(c), date); err != nil {
		return faultError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Event and notes removed successfully"})
}

func (handler *Handler) RemoveNote(c *fiber.Ctx) error {
	input := dateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, services.FaultValidation, "invalid input")
	}
	date, err := parseDateInput(input.Date)
	if err != nil {
		return faultError(c, services.ValidationFault("invalid event date"))
	}

	removed, err := handler.cycles.RemoveNote(c.Context(), currentUID(c), date)
	if err != nil {
		return faultError(c, err)
	}
	if !removed {
		return c.JSON(fiber.Map{"message": "Note not found for the given date"})
	}
	return c.JSON(fiber.Map{"message": "Note removed successfully"})
}
