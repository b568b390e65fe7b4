package controller

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kreditku_backend/internals/constants"
	authHelper "kreditku_backend/internals/features/users/auth/helper"
	authRepo "kreditku_backend/internals/features/users/auth/repository"
	"kreditku_backend/internals/features/users/user/dto"
	"kreditku_backend/internals/features/users/user/model"
	helper "kreditku_backend/internals/helpers"
)

type UserController struct {
	DB *gorm.DB
}

func NewUserController(db *gorm.DB) *UserController {
	return &UserController{DB: db}
}

var userSortColumns = map[string]string{
	"created_at": "created_at",
	"full_name":  "full_name",
	"email":      "email",
	"role":       "role",
}

func parseUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Params("id")))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "ID user tidak valid")
	}
	return id, nil
}

// GET /api/admin/users?q=&role=&is_active=
func (uc *UserController) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := uc.DB.WithContext(c.UserContext()).Model(&model.UserModel{})
	if s := strings.TrimSpace(c.Query("q")); s != "" {
		like := "%" + s + "%"
		q = q.Where("full_name ILIKE ? OR email ILIKE ?", like, like)
	}
	if role := strings.ToLower(strings.TrimSpace(c.Query("role"))); role != "" {
		q = q.Where("role = ?", role)
	}
	if v := strings.TrimSpace(c.Query("is_active")); v != "" {
		q = q.Where("is_active = ?", v == "true" || v == "1")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.FromDomainError(c, err)
	}

	var users []model.UserModel
	if err := q.Order(p.SafeOrder(userSortColumns, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return helper.FromDomainError(c, err)
	}

	return helper.JsonList(c, "Daftar user", dto.FromModels(users), helper.BuildMeta(total, p))
}

// GET /api/users/lookup?role=cmo: dropdown user aktif per role (semua role login)
func (uc *UserController) Lookup(c *fiber.Ctx) error {
	role := strings.ToLower(strings.TrimSpace(c.Query("role")))

	q := uc.DB.WithContext(c.UserContext()).
		Model(&model.UserModel{}).
		Select("id, full_name, role").
		Where("is_active = true")
	if role != "" {
		q = q.Where("role = ?", role)
	}

	var out []dto.UserLite
	if err := q.Order("full_name ASC").Limit(500).Scan(&out).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "OK", out)
}

// GET /api/admin/users/:id
func (uc *UserController) Get(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	var user model.UserModel
	if err := uc.DB.WithContext(c.UserContext()).First(&user, "id = ?", id).Error; err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonOK(c, "OK", dto.FromModel(&user))
}

// POST /api/admin/users
func (uc *UserController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}
	if err := authHelper.ValidatePassword(req.Password); err != nil {
		return helper.JsonValidationError(c, map[string][]string{"password": {err.Error()}})
	}

	hash, err := authHelper.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password")
	}

	user := req.ToModel(hash)
	if err := uc.DB.WithContext(c.UserContext()).Create(user).Error; err != nil {
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.FromDomainError(c, err)
	}
	return helper.JsonCreated(c, "User berhasil dibuat", dto.FromModel(user))
}

// PATCH /api/admin/users/:id
func (uc *UserController) Patch(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := helper.ValidateStruct(req); err != nil {
		return helper.FromDomainError(c, err)
	}

	selfID, _ := helper.GetUserIDFromToken(c)
	if selfID == id {
		// admin tidak boleh mengunci dirinya sendiri
		if (req.Role != nil && *req.Role != constants.RoleAdmin) || (req.IsActive != nil && !*req.IsActive) {
			return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa menurunkan role / menonaktifkan akun sendiri")
		}
	}

	var user model.UserModel
	err = uc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", id).Error; err != nil {
			return err
		}
		wasActive := user.IsActive
		req.ApplyTo(&user)

		if req.Password != nil {
			if err := authHelper.ValidatePassword(*req.Password); err != nil {
				return &fieldError{field: "password", msg: err.Error()}
			}
			hash, err := authHelper.HashPassword(*req.Password)
			if err != nil {
				return err
			}
			user.Password = hash
		}

		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		// dinonaktifkan / password direset → paksa logout semua sesi
		if (wasActive && !user.IsActive) || req.Password != nil {
			return authRepo.RevokeAllForUser(tx, user.ID, user.UpdatedAt)
		}
		return nil
	})
	if err != nil {
		var fe *fieldError
		if errors.As(err, &fe) {
			return helper.JsonValidationError(c, map[string][]string{fe.field: {fe.msg}})
		}
		if helper.IsUniqueViolation(err) {
			return helper.JsonError(c, fiber.StatusConflict, "Email sudah terdaftar")
		}
		return helper.FromDomainError(c, err)
	}
	return helper.JsonUpdated(c, "User berhasil diperbarui", dto.FromModel(&user))
}

// DELETE /api/admin/users/:id: soft delete + nonaktif
func (uc *UserController) Delete(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}
	if selfID, _ := helper.GetUserIDFromToken(c); selfID == id {
		return helper.JsonError(c, fiber.StatusBadRequest, "Tidak bisa menghapus akun sendiri")
	}

	err = uc.DB.WithContext(c.UserContext()).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.UserModel{}).Where("id = ?", id).Update("is_active", false)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		if err := tx.Delete(&model.UserModel{}, "id = ?", id).Error; err != nil {
			return err
		}
		return authRepo.RevokeAllForUser(tx, id, time.Now().UTC())
	})
	if err != nil {
		return helper.FromDomainError(c, err)
	}
	return helper.JsonDeleted(c, "User berhasil dihapus", fiber.Map{"id": id})
}

type fieldError struct {
	field string
	msg   string
}

func (e *fieldError) Error() string { return e.field + ": " + e.msg }
