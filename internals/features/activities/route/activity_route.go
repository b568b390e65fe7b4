package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"kreditku_backend/internals/constants"
	activityController "kreditku_backend/internals/features/activities/controller"
	authMiddleware "kreditku_backend/internals/middlewares/auth"
)

func ActivityRoutes(r fiber.Router, db *gorm.DB) {
	ctl := activityController.NewActivityController(db)

	g := r.Group("/activities")
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Patch("/:id", ctl.Patch)
	g.Delete("/:id", authMiddleware.OnlyRoles(constants.RoleErrorHead("hapus aktivitas"), constants.HeadAndAdmin...), ctl.Delete)
}
