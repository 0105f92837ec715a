package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"medialabs/transcribe-gateway/config"
	"medialabs/transcribe-gateway/handlers"
	"medialabs/transcribe-gateway/internal/staging"
	"medialabs/transcribe-gateway/internal/transcribe"
	"medialabs/transcribe-gateway/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := config.NewLogger()

	awsCfg, err := config.NewAWSConfig(context.Background(), cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize AWS clients: %v", err)
	}

	stager := staging.NewService(config.NewS3Client(awsCfg), cfg.BucketName, cfg.AWSRegion, logger)
	transcribeClient := config.NewTranscribeClient(awsCfg)
	orchestrator := transcribe.NewOrchestrator(transcribeClient, cfg.LanguageOptions, logger)
	poller := transcribe.NewPoller(transcribeClient, logger)
	results := transcribe.NewResultAdapter(cfg.RequestTimeout, logger)

	handler := handlers.NewApplicationHandler(stager, orchestrator, poller, results, logger, cfg)

	app := fiber.New(fiber.Config{
		// Accept bodies slightly above the validated limit so the handler
		// produces the oversize rejection whenever possible; anything beyond
		// this is shaped into the same envelope by the error handler.
		BodyLimit:    int(cfg.MaxUploadBytes) + 1024*1024,
		ErrorHandler: handlers.ErrorHandler,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "Transcription gateway is healthy",
		})
	})

	app.Post("/transcribe", handler.SubmitTranscription)
	app.Get("/transcribe/:jobName", handler.GetTranscriptionStatus)

	logger.Infof("Starting transcription gateway on port %s (region %s, bucket %s)", cfg.Port, cfg.AWSRegion, cfg.BucketName)
	logger.Fatal(app.Listen(":" + cfg.Port))
}
