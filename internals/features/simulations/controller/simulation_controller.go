package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kreditku_backend/internals/constants"
	dealerModel "kreditku_backend/internals/features/dealers/model"
	programModel "kreditku_backend/internals/features/programs/model"
	programService "kreditku_backend/internals/features/programs/service"
	"kreditku_backend/internals/features/simulations/calculator"
	"kreditku_backend/internals/features/simulations/dto"
	"kreditku_backend/internals/features/simulations/model"
	simService "kreditku_backend/internals/features/simulations/service"
	helper "kreditku_backend/internals/helpers"
)

type SimulationController struct {
	DB *gorm.DB
}

func NewSimulationController(db *gorm.DB) *SimulationController {
	return &SimulationController{DB: db}
}

// admin & cmh boleh melihat simulasi semua user
func seesAll(role string) bool {
	return role == constants.RoleAdmin || role == constants.RoleCMH
}

func (ctl *SimulationController) parseAndCalculate(c *fiber.Ctx) (dto.SimulationRequest, simService.Result, *programModel.ProgramModel, error) {
	var req dto.SimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return req, simService.Result{}, nil, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return req, simService.Result{}, nil, err
	}

	prog, err := programService.GetProgram(c.UserContext(), ctl.DB, req.SimulationProgramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return req, simService.Result{}, nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Program tidak ditemukan")
		}
		return req, simService.Result{}, nil, err
	}

	res, err := simService.Calculate(prog, req.SimulationOTR, calculator.Mode(req.SimulationMode), req.SimulationAmount)
	return req, res, prog, err
}

// POST /api/simulations/calculate: hitung saja, tidak disimpan
func (ctl *SimulationController) Calculate(c *fiber.Ctx) error {
	_, res, _, err := ctl.parseAndCalculate(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "Simulasi berhasil dihitung", res)
}

// POST /api/simulations: hitung + simpan (immutable)
func (ctl *SimulationController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	req, res, prog, err := ctl.parseAndCalculate(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}

	var dealer *dealerModel.DealerModel
	if req.SimulationDealerID != nil {
		var d dealerModel.DealerModel
		if err := ctl.DB.WithContext(c.UserContext()).First(&d, "dealer_id = ?", *req.SimulationDealerID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusUnprocessableEntity, "Dealer tidak ditemukan")
			}
			return helper.FromDomainError(c, err)
		}
		dealer = &d
	}

	rec, err := simService.BuildRecord(userID, req, res, prog, dealer)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	if err := ctl.DB.WithContext(c.UserContext()).Create(rec).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "Simulasi disimpan", rec)
}

// GET /api/simulations?mode=&brand=&user_id=
func (ctl *SimulationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	p := helper.ParseFiber(c, "created_at", "desc", helper.DefaultOpts)

	q := ctl.DB.WithContext(c.UserContext()).Model(&model.SimulationModel{})
	if seesAll(helper.GetRoleFromToken(c)) {
		if s := strings.TrimSpace(c.Query("user_id")); s != "" {
			uid, err := uuid.Parse(s)
			if err != nil {
				return helper.JsonError(c, fiber.StatusBadRequest, "user_id tidak valid")
			}
			q = q.Where("simulation_user_id = ?", uid)
		}
	} else {
		q = q.Where("simulation_user_id = ?", userID)
	}
	if mode := strings.ToLower(strings.TrimSpace(c.Query("mode"))); mode != "" {
		q = q.Where("simulation_mode = ?", mode)
	}
	if brand := strings.TrimSpace(c.Query("brand")); brand != "" {
		q = q.Where("simulation_brand ILIKE ?", brand)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	var rows []model.SimulationModel
	if err := q.Order(p.SafeOrder(map[string]string{
		"created_at": "simulation_created_at",
		"otr":        "simulation_otr",
	}, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonList(c, "Daftar simulasi", rows, helper.BuildMeta(total, p))
}

func (ctl *SimulationController) loadOwned(c *fiber.Ctx) (*model.SimulationModel, error) {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "simulation_id tidak valid")
	}
	var m model.SimulationModel
	if err := ctl.DB.WithContext(c.UserContext()).First(&m, "simulation_id = ?", id).Error; err != nil {
		return nil, err
	}
	if m.SimulationUserID != userID && !seesAll(helper.GetRoleFromToken(c)) {
		// jangan bocorkan keberadaan data user lain
		return nil, gorm.ErrRecordNotFound
	}
	return &m, nil
}

// GET /api/simulations/:id
func (ctl *SimulationController) Get(c *fiber.Ctx) error {
	m, err := ctl.loadOwned(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "OK", m)
}

// DELETE /api/simulations/:id: hanya pemilik (atau admin)
func (ctl *SimulationController) Delete(c *fiber.Ctx) error {
	m, err := ctl.loadOwned(c)
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	userID, _ := helper.GetUserIDFromToken(c)
	if m.SimulationUserID != userID && helper.GetRoleFromToken(c) != constants.RoleAdmin {
		return helper.JsonError(c, fiber.StatusForbidden, "Hanya pemilik yang boleh menghapus simulasi")
	}
	if err := ctl.DB.WithContext(c.UserContext()).Delete(&model.SimulationModel{}, "simulation_id = ?", m.SimulationID).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Simulasi dihapus", fiber.Map{"simulation_id": m.SimulationID})
}
