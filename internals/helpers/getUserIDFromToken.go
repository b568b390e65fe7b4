package helper

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"kreditku_backend/internals/features/orders/workflow"
)

// Ambil user_id dari c.Locals("user_id")
// Return 401 kalau belum login, 400 kalau formatnya tidak valid.
func GetUserIDFromToken(c *fiber.Ctx) (uuid.UUID, error) {
	v := c.Locals(LocUserID)
	if v == nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}

	var s string
	switch t := v.(type) {
	case uuid.UUID:
		if t == uuid.Nil {
			return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
		}
		return t, nil
	case string:
		s = strings.TrimSpace(t)
	case []byte:
		s = strings.TrimSpace(string(t))
	default:
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}

	if s == "" {
		return uuid.Nil, fiber.NewError(fiber.StatusUnauthorized, "User belum login")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "User ID pada token tidak valid")
	}
	return id, nil
}

func GetRoleFromToken(c *fiber.Ctx) string {
	role, _ := c.Locals(LocUserRole).(string)
	return strings.ToLower(strings.TrimSpace(role))
}

// GetActor menyusun aktor workflow dari klaim token; dipakai setiap transisi order.
func GetActor(c *fiber.Ctx) (workflow.Actor, error) {
	id, err := GetUserIDFromToken(c)
	if err != nil {
		return workflow.Actor{}, err
	}
	role, err := workflow.ParseRole(GetRoleFromToken(c))
	if err != nil {
		return workflow.Actor{}, fiber.NewError(fiber.StatusForbidden, "Role pada token tidak dikenal")
	}
	name, _ := c.Locals(LocUserName).(string)
	return workflow.Actor{ID: id, Name: name, Role: role}, nil
}
