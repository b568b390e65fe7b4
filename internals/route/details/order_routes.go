package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	activityRoute "kreditku_backend/internals/features/activities/route"
	notifRoute "kreditku_backend/internals/features/notifications/route"
	notifService "kreditku_backend/internals/features/notifications/service"
	orderRoute "kreditku_backend/internals/features/orders/route"
	orderService "kreditku_backend/internals/features/orders/service"
	simRoute "kreditku_backend/internals/features/simulations/route"
)

// PipelineRoutes: simulasi → order → notifikasi, plus log aktivitas.
func PipelineRoutes(private fiber.Router, db *gorm.DB, notifier orderService.Notifier) error {
	svc, err := orderRoute.NewOrderService(db, notifier)
	if err != nil {
		return err
	}

	simRoute.SimulationRoutes(private, db)
	orderRoute.OrderRoutes(private, svc)
	notifRoute.NotificationRoutes(private, notifService.NewGormStore(db))
	activityRoute.ActivityRoutes(private, db)
	return nil
}
