package middlewares

import (
	"github.com/gofiber/fiber/v2"

	"eduinfo_backend/internals/middlewares/logger"
)

// SetupMiddlewares branche les middlewares transverses dans l'ordre.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(CorsMiddleware())
	app.Use(logger.LoggerMiddleware())
	app.Use(GlobalRateLimiter())
}
