package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authRoute "kreditku_backend/internals/features/users/auth/route"
	userRoute "kreditku_backend/internals/features/users/user/route"
)

func UserRoutes(private fiber.Router, db *gorm.DB) {
	authRoute.AuthProtectedRoutes(private, db)
	userRoute.UserRoutes(private, db)
	userRoute.UserAdminRoutes(private, db)
}
