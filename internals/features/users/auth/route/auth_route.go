package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	controller "kreditku_backend/internals/features/users/auth/controller"
	rateLimiter "kreditku_backend/internals/middlewares"
)

// AuthPublicRoutes: /api/auth tanpa JWT
func AuthPublicRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/login", rateLimiter.LoginRateLimiter(), authController.Login)
	auth.Post("/refresh-token", authController.RefreshToken)
}

// AuthProtectedRoutes: /api/auth dengan JWT (r sudah dipasang AuthJWT)
func AuthProtectedRoutes(r fiber.Router, db *gorm.DB) {
	authController := controller.NewAuthController(db)

	auth := r.Group("/auth")
	auth.Post("/logout", authController.Logout)
	auth.Post("/change-password", authController.ChangePassword)
	auth.Get("/me", authController.Me)
}
