package controller

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kreditku_backend/internals/features/notifications/service"
	helper "kreditku_backend/internals/helpers"
)

type NotificationController struct {
	Store *service.GormStore
}

func NewNotificationController(store *service.GormStore) *NotificationController {
	return &NotificationController{Store: store}
}

// GET /api/notifications?since=RFC3339&unread=true
func (ctl *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := service.ListQuery{
		UnreadOnly: c.QueryBool("unread"),
		Limit:      p.Limit(),
		Offset:     p.Offset(),
	}
	if s := strings.TrimSpace(c.Query("since")); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "since harus RFC3339")
		}
		q.Since = &t
	}

	rows, total, err := ctl.Store.List(c.UserContext(), userID, q)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonList(c, "Daftar notifikasi", rows, helper.BuildMeta(total, p))
}

// GET /api/notifications/unread-count
func (ctl *NotificationController) UnreadCount(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	n, err := ctl.Store.UnreadCount(c.UserContext(), userID)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Jumlah notifikasi belum dibaca", fiber.Map{"unread": n})
}

// PATCH /api/notifications/:id/read
func (ctl *NotificationController) MarkRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID notifikasi tidak valid")
	}
	if err := ctl.Store.MarkRead(c.UserContext(), userID, id, time.Now().UTC()); err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Notifikasi ditandai sebagai dibaca", fiber.Map{"notification_id": id})
}

// PATCH /api/notifications/read-all
func (ctl *NotificationController) MarkAllRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	n, err := ctl.Store.MarkAllRead(c.UserContext(), userID, time.Now().UTC())
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Semua notifikasi ditandai sebagai dibaca", fiber.Map{"updated": n})
}
