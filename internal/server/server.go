package server

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"smartats/ats-evaluator/internal/config"
	"smartats/ats-evaluator/internal/handlers"
	"smartats/ats-evaluator/internal/middleware"
)

// New builds the Fiber app and registers routes. history may be nil when history is disabled.
func New(cfg *config.Config, evaluate *handlers.EvaluationHandler, history *handlers.HistoryHandler) *fiber.App {
	// leave room for the multipart envelope around the file
	bodyLimit := int(cfg.Upload.MaxFileSize) + 1<<20

	app := fiber.New(fiber.Config{
		AppName:      "Smart ATS API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: cfg.Generation.Timeout + 30*time.Second,
		BodyLimit:    bodyLimit,
		ErrorHandler: customErrorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))

	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"provider": cfg.Generation.Provider,
			"time":     time.Now(),
		})
	})

	endpoints := []string{"POST /api/v1/evaluate"}
	api.Post("/evaluate", middleware.RateLimiter(cfg.Server.RateLimit, time.Minute), evaluate.HandleEvaluate)

	if history != nil {
		api.Get("/evaluations", history.HandleListEvaluations)
		api.Get("/evaluations/:id", history.HandleGetEvaluation)
		endpoints = append(endpoints, "GET /api/v1/evaluations", "GET /api/v1/evaluations/:id")
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "Smart ATS API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})

	return app
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
