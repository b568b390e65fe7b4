package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kreditku_backend/internals/constants"
	dealerController "kreditku_backend/internals/features/dealers/controller"
	authMiddleware "kreditku_backend/internals/middlewares/auth"
)

// DealerRoutes: baca untuk semua role login
func DealerRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dealerController.NewDealerController(db)

	g := r.Group("/dealers")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

// DealerAdminRoutes: tulis (admin)
func DealerAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := dealerController.NewDealerController(db)

	admin := r.Group("/admin/dealers",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mengelola dealer"), constants.AdminOnly...),
	)
	{
		admin.Post("/", ctl.Create)
		admin.Patch("/:id", ctl.Patch)
		admin.Delete("/:id", ctl.Delete)
	}
}
