package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	dealerRoute "kreditku_backend/internals/features/dealers/route"
	programRoute "kreditku_backend/internals/features/programs/route"
)

// MasterRoutes: dealer & program (baca semua role, tulis admin).
func MasterRoutes(private fiber.Router, db *gorm.DB) {
	dealerRoute.DealerRoutes(private, db)
	dealerRoute.DealerAdminRoutes(private, db)
	programRoute.ProgramRoutes(private, db)
	programRoute.ProgramAdminRoutes(private, db)
}
