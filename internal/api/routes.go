package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)

	api := app.Group("/api")
	api.Post("/register", handler.Register)
	api.Post("/login", handler.Login)
	api.Post("/cycle", handler.AuthRequired, handler.SaveCycleData)

	user := api.Group("/user", handler.AuthRequired)
	user.Get("/cycle-status", handler.CycleStatus)
	user.Post("/update-fullname", handler.UpdateFullName)
	user.Get("/periods-events", handler.PeriodEvents)
	user.Get("/period-prediction", handler.PeriodPrediction)
	user.Post("/add-event", handler.AddEvent)
	user.Post("/remove-event", handler.RemoveEvent)
	user.Post("/remove-note", handler.RemoveNote)
	user.Get("/notification", handler.Notification)
	user.Get("/cycle-history", handler.CycleHistory)
}
