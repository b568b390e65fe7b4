package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	simController "kreditku_backend/internals/features/simulations/controller"
	rateLimiter "kreditku_backend/internals/middlewares"
)

// SimulationRoutes: semua role login. Tidak ada route update (simulasi immutable).
func SimulationRoutes(r fiber.Router, db *gorm.DB) {
	ctl := simController.NewSimulationController(db)

	g := r.Group("/simulations")
	g.Post("/calculate", rateLimiter.SimulationRateLimiter(), ctl.Calculate)
	g.Post("/", ctl.Create)
	g.Get("/", ctl.List)
	g.Get("/:id", ctl.Get)
	g.Delete("/:id", ctl.Delete)
}
