package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "kreditku_backend/internals/features/users/auth/route"
)

// AuthRoutes: login & refresh tanpa JWT. Wajib dipasang sebelum group ber-JWT.
func AuthRoutes(api fiber.Router, db *gorm.DB) {
	authRoute.AuthPublicRoutes(api, db)
}
