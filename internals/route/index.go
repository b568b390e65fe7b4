package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	orderService "kreditku_backend/internals/features/orders/service"
	authService "kreditku_backend/internals/features/users/auth/service"
	authMiddleware "kreditku_backend/internals/middlewares/auth"
	routeDetails "kreditku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB, notifier orderService.Notifier) error {
	startTime = time.Now()

	BaseRoutes(app, db)

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	configs.Log.Info("Setting up AuthRoutes...")
	routeDetails.AuthRoutes(api, db)

	// ===================== PRIVATE (semua role login) =====================
	configs.Log.Info("Setting up PRIVATE group...")
	private := api.Group("",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              configs.JWTSecret,
			BlacklistChecker:    authService.BlacklistChecker(db),
			ActiveChecker:       authService.ActiveUserChecker(db),
			AllowCookieFallback: true,
		}),
	)

	// ===================== MOUNT ROUTES =====================
	routeDetails.UserRoutes(private, db)
	routeDetails.MasterRoutes(private, db)
	return routeDetails.PipelineRoutes(private, db, notifier)
}
