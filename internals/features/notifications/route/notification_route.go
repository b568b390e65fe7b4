package route

import (
	"github.com/gofiber/fiber/v2"

	"kreditku_backend/internals/features/notifications/controller"
	"kreditku_backend/internals/features/notifications/service"
)

// NotificationRoutes: hanya notifikasi milik user login.
func NotificationRoutes(r fiber.Router, store *service.GormStore) {
	ctl := controller.NewNotificationController(store)

	g := r.Group("/notifications")
	g.Get("/", ctl.List)
	g.Get("/unread-count", ctl.UnreadCount)
	g.Patch("/read-all", ctl.MarkAllRead)
	g.Patch("/:id/read", ctl.MarkRead)
}
