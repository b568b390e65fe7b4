package service

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authHelper "kreditku_backend/internals/features/users/auth/helper"
	authRepo "kreditku_backend/internals/features/users/auth/repository"
	helpers "kreditku_backend/internals/helpers"
)

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,nefield=CurrentPassword"`
}

// ========================== CHANGE PASSWORD ==========================
func ChangePassword(db *gorm.DB, c *fiber.Ctx) error {
	var input ChangePasswordRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.FromDomainError(c, err)
	}
	if err := authHelper.ValidatePassword(input.NewPassword); err != nil {
		return helpers.JsonValidationError(c, map[string][]string{"new_password": {err.Error()}})
	}

	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}

	// Cek password lama
	if err := authHelper.CheckPasswordHash(user.Password, input.CurrentPassword); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Password saat ini salah")
	}

	newHash, err := authHelper.HashPassword(input.NewPassword)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusInternalServerError, "Gagal hash password baru")
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := authRepo.UpdateUserPassword(tx, userID, newHash); err != nil {
			return err
		}
		// sesi lain wajib login ulang
		return authRepo.RevokeAllForUser(tx, userID, nowUTC())
	})
	if err != nil {
		return helpers.FromDomainError(c, err)
	}

	return helpers.JsonUpdated(c, "Password berhasil diubah", nil)
}
