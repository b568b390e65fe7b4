package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kreditku_backend/internals/features/dealers/dto"
	"kreditku_backend/internals/features/dealers/model"
	helper "kreditku_backend/internals/helpers"
)

type DealerController struct {
	DB *gorm.DB
}

func NewDealerController(db *gorm.DB) *DealerController {
	return &DealerController{DB: db}
}

var dealerSortColumns = map[string]string{
	"name":       "dealer_name",
	"brand":      "dealer_brand",
	"city":       "dealer_city",
	"created_at": "dealer_created_at",
}

func parseDealerID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "dealer_id tidak valid")
	}
	return id, nil
}

// GET /api/dealers?q=&brand=&city=&is_active=
func (ctl *DealerController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.DealerModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("dealer_name ILIKE ? OR dealer_pic_name ILIKE ?", like, like)
	}
	if brand := strings.TrimSpace(c.Query("brand")); brand != "" {
		q = q.Where("dealer_brand ILIKE ?", brand)
	}
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		q = q.Where("dealer_city ILIKE ?", city)
	}
	switch strings.TrimSpace(c.Query("is_active")) {
	case "true", "1":
		q = q.Where("dealer_is_active = true")
	case "false", "0":
		q = q.Where("dealer_is_active = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromDomainError(c, err)
	}

	var rows []model.DealerModel
	if err := q.Order(p.SafeOrder(dealerSortColumns, "name")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonList(c, "Daftar dealer", rows, helper.BuildMeta(total, p))
}

// GET /api/dealers/:id
func (ctl *DealerController) Get(c *fiber.Ctx) error {
	id, err := parseDealerID(c)
	if err != nil {
		return err
	}
	var m model.DealerModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "dealer_id = ?", id).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "OK", m)
}

// POST /api/admin/dealers
func (ctl *DealerController) Create(c *fiber.Ctx) error {
	var req dto.CreateDealerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Dealer berhasil dibuat", m)
}

// PATCH /api/admin/dealers/:id
func (ctl *DealerController) Patch(c *fiber.Ctx) error {
	id, err := parseDealerID(c)
	if err != nil {
		return err
	}
	var req dto.PatchDealerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	db := ctl.DB.WithContext(c.UserContext())
	var m model.DealerModel
	if err := db.First(&m, "dealer_id = ?", id).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	req.ApplyTo(&m)
	if err := db.Save(&m).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Dealer berhasil diperbarui", m)
}

// DELETE /api/admin/dealers/:id (soft delete)
func (ctl *DealerController) Delete(c *fiber.Ctx) error {
	id, err := parseDealerID(c)
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.DealerModel{}, "dealer_id = ?", id)
	if res.Error != nil {
		return helper.FromDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Dealer tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Dealer berhasil dihapus", fiber.Map{"dealer_id": id})
}
