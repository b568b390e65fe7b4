package middlewares

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"

	"kreditku_backend/internals/configs"
	"kreditku_backend/internals/middlewares/logger"
)

// SetupMiddlewares memasang middleware global, urutan penting:
// recover paling luar, lalu request-id/logger, CORS, limiter, kompresi.
func SetupMiddlewares(app *fiber.App) {
	app.Use(RecoveryMiddleware())
	app.Use(logger.RequestLogger(configs.GetEnvDuration("HTTP_REQUEST_TIMEOUT", 5*time.Second)))
	app.Use(CorsMiddleware())
	app.Use(GlobalRateLimiter())
	app.Use(compress.New(compress.Config{Level: compress.LevelDefault})) // gzip
	app.Use(etag.New())                                                  // 304 caching
}
