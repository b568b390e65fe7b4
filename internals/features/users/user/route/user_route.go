package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kreditku_backend/internals/constants"
	userController "kreditku_backend/internals/features/users/user/controller"
	authMiddleware "kreditku_backend/internals/middlewares/auth"
)

// UserRoutes: lookup untuk semua role login
func UserRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	r.Get("/users/lookup", ctrl.Lookup)
}

// UserAdminRoutes: CRUD akun staf (admin saja)
func UserAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := userController.NewUserController(db)

	admin := r.Group("/admin/users",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mengelola user"), constants.AdminOnly...),
	)
	{
		admin.Get("/", ctrl.List)
		admin.Get("/:id", ctrl.Get)
		admin.Post("/", ctrl.Create)
		admin.Patch("/:id", ctrl.Patch)
		admin.Delete("/:id", ctrl.Delete)
	}
}
