package app

import (
	"server/config"
	"server/internal/assets"
	"server/internal/database"
	"server/internal/logger"
	"server/internal/repositories"

	pollController "server/internal/controllers/polls"
)

type App struct {
	Database database.DB
	Config   config.Config

	// Repositories
	PollRepo repositories.PollRepository

	// Controllers
	PollController *pollController.PollController
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.InitConfig()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	var uploader assets.BlobUploader
	if config.AssetStorage == string(assets.PolicyS3) {
		s3Uploader, err := assets.NewS3Uploader(config)
		if err != nil {
			log.Warn("blob storage unavailable, asset placement will fall back", "error", err)
		} else {
			uploader = s3Uploader
		}
	}
	resolver := assets.NewResolver(config, uploader)

	pollRepo := repositories.NewPoll(db, config)
	controller := pollController.New(pollRepo, resolver)

	app := &App{
		Database:       db,
		Config:         config,
		PollRepo:       pollRepo,
		PollController: controller,
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")

	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	nilChecks := []any{
		a.PollRepo,
		a.PollController,
	}

	for _, check := range nilChecks {
		if check == nil {
			return log.ErrMsg("nil check failed")
		}
	}

	return nil
}

func (a *App) Close() error {
	return a.Database.Close()
}
