package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kreditku_backend/internals/constants"
	programController "kreditku_backend/internals/features/programs/controller"
	authMiddleware "kreditku_backend/internals/middlewares/auth"
)

func ProgramRoutes(r fiber.Router, db *gorm.DB) {
	ctl := programController.NewProgramController(db)

	g := r.Group("/programs")
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
}

func ProgramAdminRoutes(r fiber.Router, db *gorm.DB) {
	ctl := programController.NewProgramController(db)

	admin := r.Group("/admin/programs",
		authMiddleware.OnlyRoles(constants.RoleErrorAdmin("mengelola program"), constants.AdminOnly...),
	)
	{
		admin.Post("/", ctl.Create)
		admin.Patch("/:id", ctl.Patch)
		admin.Delete("/:id", ctl.Delete)
	}
}
