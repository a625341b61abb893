package handlers

import (
	"server/internal/app"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	log    logger.Logger
	router fiber.Router
}

func Router(router fiber.Router, app *app.App) (err error) {
	api := router.Group("/api")
	HealthHandler(api, app.Config)
	NewPollHandler(*app, api).Register()

	return nil
}
