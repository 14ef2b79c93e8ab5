// Package api serves the adaptive quiz over HTTP with Fiber.
package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
)

type Config struct {
	AppName     string
	CORSOrigins string
}

// NewApp builds the Fiber app with middleware and routes.
func NewApp(cfg Config, h *Handler, log logrus.FieldLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.AppName,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
	})

	origins := cfg.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(recover.New())
	app.Use(requestLogger(log))
	app.Use(cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST",
		AllowOrigins: origins,
	}))

	Routes(app, h)
	return app
}

func Routes(app *fiber.App, h *Handler) {
	v1 := app.Group("/api/v1")
	v1.Get("/topics", h.Topics)
	v1.Get("/availability", h.Availability)

	s := v1.Group("/sessions")
	s.Post("/", h.CreateSession)
	s.Get("/:id", h.GetSession)
	s.Get("/:id/recommendation", h.Recommendation)
	s.Post("/:id/quizzes", h.StartQuiz)
	s.Post("/:id/quizzes/:quiz_id/submit", h.SubmitQuiz)
	s.Post("/:id/reset", h.Reset)
	s.Get("/:id/stats", h.Stats)
	s.Get("/:id/prediction", h.Prediction)

	app.Use(func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusNotFound, "route not found")
	})
}

func requestLogger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			status = statusFor(err)
		}
		log.WithFields(logrus.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  status,
			"latency": time.Since(start).String(),
		}).Info("request")
		return err
	}
}
