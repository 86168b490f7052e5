package httpapi

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Options configures the fiber app built by NewApp.
type Options struct {
	AppName          string
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	CORSAllowOrigins string
	AccessLog        bool

	Logger  logrus.FieldLogger
	Metrics *Metrics
}

// NewApp creates the fiber app with the global middleware stack and the
// centralized error handler. Routes are added with RegisterRoutes.
func NewApp(opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.CORSAllowOrigins == "" {
		opts.CORSAllowOrigins = "*"
	}

	app := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		DisableStartupMessage: true,
		ReadTimeout:           opts.ReadTimeout,
		WriteTimeout:          opts.WriteTimeout,
		ErrorHandler:          errorHandler(opts.Logger),
	})

	// Metrics wraps recover so that recovered panics are counted as 500s.
	if opts.Metrics != nil {
		app.Use(opts.Metrics.Middleware())
		app.Get("/metrics", opts.Metrics.Handler())
	}
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{
		Generator: uuid.NewString,
	}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "[${time}] ${locals:requestid} ${status} - ${method} ${path} (${latency})\n",
		}))
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSAllowOrigins,
		AllowMethods: "GET,OPTIONS",
	}))

	return app
}

// errorHandler renders every failure as {"detail": message}.
func errorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "internal server error"

		if e, ok := err.(*fiber.Error); ok {
			code = e.Code
			message = e.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.WithFields(logrus.Fields{
				"request_id": c.Locals("requestid"),
				"method":     c.Method(),
				"path":       c.Path(),
			}).WithError(err).Error("request failed")
		}

		return c.Status(code).JSON(fiber.Map{
			"detail": message,
		})
	}
}
