package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kreditku_backend/internals/features/programs/dto"
	"kreditku_backend/internals/features/programs/model"
	programService "kreditku_backend/internals/features/programs/service"
	helper "kreditku_backend/internals/helpers"
)

type ProgramController struct {
	DB *gorm.DB
}

func NewProgramController(db *gorm.DB) *ProgramController {
	return &ProgramController{DB: db}
}

var programSortColumns = map[string]string{
	"name":       "program_name",
	"brand":      "program_brand",
	"created_at": "program_created_at",
}

func parseProgramID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "program_id tidak valid")
	}
	return id, nil
}

// GET /api/programs?brand=&financing_type=&is_active=&q=
func (ctl *ProgramController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "name", "asc", helper.DefaultOpts)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.ProgramModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		q = q.Where("program_name ILIKE ?", "%"+s+"%")
	}
	if brand := strings.TrimSpace(c.Query("brand")); brand != "" {
		q = q.Where("program_brand ILIKE ?", brand)
	}
	if ft := strings.ToLower(strings.TrimSpace(c.Query("financing_type"))); ft != "" {
		q = q.Where("program_financing_type = ?", ft)
	}
	switch strings.TrimSpace(c.Query("is_active")) {
	case "true", "1":
		q = q.Where("program_is_active = true")
	case "false", "0":
		q = q.Where("program_is_active = false")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromDomainError(c, err)
	}

	var rows []model.ProgramModel
	if err := q.Preload("ProgramTenors", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("program_tenor_months ASC")
	}).
		Order(p.SafeOrder(programSortColumns, "name")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonList(c, "Daftar program", rows, helper.BuildMeta(total, p))
}

// GET /api/programs/:id
func (ctl *ProgramController) Get(c *fiber.Ctx) error {
	id, err := parseProgramID(c)
	if err != nil {
		return err
	}
	prog, err := programService.GetProgram(c.UserContext(), ctl.DB, id)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "OK", prog)
}

// POST /api/admin/programs
func (ctl *ProgramController) Create(c *fiber.Ctx) error {
	var req dto.CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}
	if errs := dto.CheckNumbers(&req.ProgramDownPaymentPercent, req.ProgramTenors); len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}

	m := req.ToModel()
	if err := ctl.DB.WithContext(c.UserContext()).Create(m).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Program dengan nama & brand yang sama sudah ada")
		}
		return helper.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Program berhasil dibuat", m)
}

// PATCH /api/admin/programs/:id
// Order lama tidak ikut berubah: order menyimpan snapshot nama program & angka saat dibuat.
func (ctl *ProgramController) Patch(c *fiber.Ctx) error {
	id, err := parseProgramID(c)
	if err != nil {
		return err
	}
	var req dto.PatchProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}
	if errs := dto.CheckNumbers(req.ProgramDownPaymentPercent, req.ProgramTenors); len(errs) > 0 {
		return helper.JsonValidationError(c, errs)
	}

	err = ctl.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		var m model.ProgramModel
		if err := tx.First(&m, "program_id = ?", id).Error; err != nil {
			return err
		}
		req.ApplyTo(&m)
		if err := tx.Omit("ProgramTenors").Save(&m).Error; err != nil {
			return err
		}
		if req.ProgramTenors != nil {
			return programService.ReplaceTenors(tx, m.ProgramID, req.TenorModels())
		}
		return nil
	})
	if err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Program dengan nama & brand yang sama sudah ada")
		}
		return helper.FromDomainError(c, err)
	}

	prog, err := programService.GetProgram(c.UserContext(), ctl.DB, id)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Program berhasil diperbarui", prog)
}

// DELETE /api/admin/programs/:id (soft delete; tenor tetap untuk histori)
func (ctl *ProgramController) Delete(c *fiber.Ctx) error {
	id, err := parseProgramID(c)
	if err != nil {
		return err
	}
	res := ctl.DB.WithContext(c.UserContext()).Delete(&model.ProgramModel{}, "program_id = ?", id)
	if res.Error != nil {
		return helper.FromDomainError(c, res.Error)
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Program tidak ditemukan")
	}
	return helper.JsonDeleted(c, "Program berhasil dihapus", fiber.Map{"program_id": id})
}
