package main

import (
	"fmt"
	"os"

	"server/internal/app"
	"server/internal/handlers"
	"server/internal/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

func main() {
	log := logger.New("main")

	application, err := app.New()
	if err != nil {
		log.Er("failed to initialize application", err)
		os.Exit(1)
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Er("failed to close application", err)
		}
	}()

	server := fiber.New(fiber.Config{
		AppName: "poll-demo-server",
	})
	server.Use(recover.New())

	if err := handlers.Router(server, application); err != nil {
		log.Er("failed to register routes", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf(":%d", application.Config.ServerPort)
	log.Info("Starting server", "addr", addr, "environment", application.Config.Environment)
	if err := server.Listen(addr); err != nil {
		log.Er("server stopped", err)
		os.Exit(1)
	}
}
