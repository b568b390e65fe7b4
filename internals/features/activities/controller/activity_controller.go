package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kreditku_backend/internals/constants"
	"kreditku_backend/internals/features/activities/dto"
	"kreditku_backend/internals/features/activities/model"
	helper "kreditku_backend/internals/helpers"
	"kreditku_backend/internals/helpers/dbtime"
)

type ActivityController struct {
	DB *gorm.DB
}

func NewActivityController(db *gorm.DB) *ActivityController {
	return &ActivityController{DB: db}
}

var activitySortColumns = map[string]string{
	"date":       "activity_date",
	"created_at": "activity_created_at",
	"type":       "activity_type",
}

// cmh & admin bisa melihat aktivitas semua user
func seesAll(role string) bool {
	return role == constants.RoleCMH || role == constants.RoleAdmin
}

func parseActivityID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID aktivitas tidak valid")
	}
	return id, nil
}

func (ctl *ActivityController) findVisible(c *fiber.Ctx, id uuid.UUID) (*model.ActivityModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	var m model.ActivityModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "activity_id = ?", id).Error; err != nil {
		return nil, err
	}
	if m.ActivityUserID != userID && !seesAll(helper.GetRoleFromToken(c)) {
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

// POST /api/activities
func (ctl *ActivityController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	var req dto.CreateActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	name, _ := c.Locals(helper.LocUserName).(string)
	m, err := req.ToModel(userID, name)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "activity_date harus berformat YYYY-MM-DD")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Aktivitas dicatat", m)
}

// GET /api/activities?type=&from=&to=&user_id=&order_id=
func (ctl *ActivityController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "date", "desc", helper.DefaultOpts)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ActivityModel{})
	if seesAll(helper.GetRoleFromToken(c)) {
		if s := strings.TrimSpace(c.Query("user_id")); s != "" {
			uid, err := uuid.Parse(s)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
			}
			q = q.Where("activity_user_id = ?", uid)
		}
	} else {
		q = q.Where("activity_user_id = ?", userID)
	}
	if t := model.ActivityType(strings.ToLower(strings.TrimSpace(c.Query("type")))); t != "" {
		if !t.Valid() {
			return helper.JsonError(c, fiber.StatusBadRequest, "type tidak dikenal")
		}
		q = q.Where("activity_type = ?", t)
	}
	if s := strings.TrimSpace(c.Query("order_id")); s != "" {
		oid, err := uuid.Parse(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "order_id tidak valid")
		}
		q = q.Where("activity_order_id = ?", oid)
	}
	if s := strings.TrimSpace(c.Query("from")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "from harus YYYY-MM-DD")
		}
		q = q.Where("activity_date >= ?", d)
	}
	if s := strings.TrimSpace(c.Query("to")); s != "" {
		d, err := dbtime.ParseDate(s)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "to harus YYYY-MM-DD")
		}
		q = q.Where("activity_date <= ?", d)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	var rows []model.ActivityModel
	if err := q.Order(p.SafeOrder(activitySortColumns, "date")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonList(c, "Daftar aktivitas", rows, helper.BuildMeta(total, p))
}

// GET /api/activities/:id
func (ctl *ActivityController) Get(c *fiber.Ctx) error {
	id, err := parseActivityID(c)
	if err != nil {
		return err
	}
	m, err := ctl.findVisible(c, id)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Detail aktivitas", m)
}

// PATCH /api/activities/:id (pemilik saja)
func (ctl *ActivityController) Patch(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	id, err := parseActivityID(c)
	if err != nil {
		return err
	}
	var req dto.PatchActivityRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	m, err := ctl.findVisible(c, id)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if m.ActivityUserID != userID {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya pemilik yang dapat mengubah aktivitas")
	}
	if err := req.ApplyTo(m); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "activity_date harus berformat YYYY-MM-DD")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Save(m).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Aktivitas diperbarui", m)
}

// DELETE /api/activities/:id (cmh/admin)
func (ctl *ActivityController) Delete(c *fiber.Ctx) error {
	id, err := parseActivityID(c)
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.ActivityModel{}, "activity_id = ?", id)
	if res.Error != nil {
		return helper.FromDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Aktivitas tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Aktivitas dihapus", fiber.Map{"activity_id": id})
}
