package service

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	authHelper "kreditku_backend/internals/features/users/auth/helper"
	authRepo "kreditku_backend/internals/features/users/auth/repository"
	userDTO "kreditku_backend/internals/features/users/user/dto"
	helpers "kreditku_backend/internals/helpers"
)

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

/* ==========================
   LOGIN (email + password)
========================== */

func Login(db *gorm.DB, c *fiber.Ctx) error {
	var input LoginRequest
	if err := c.BodyParser(&input); err != nil {
		return helpers.JsonError(c, fiber.StatusBadRequest, "Invalid input format")
	}
	input.Email = strings.TrimSpace(input.Email)
	if err := helpers.ValidateStruct(input); err != nil {
		return helpers.FromDomainError(c, err)
	}

	user, err := authRepo.FindUserByEmail(db, input.Email)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau Password salah")
	}
	if err := authHelper.CheckPasswordHash(user.Password, input.Password); err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Email atau Password salah")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun Anda telah dinonaktifkan. Hubungi admin.")
	}

	tokens, err := issueTokens(c, db, *user)
	if err != nil {
		return err
	}

	now := nowUTC()
	if err := authRepo.TouchLastLogin(db, user.ID, now); err != nil {
		configs.Log.Warn("gagal update last_login_at", zap.Error(err))
	}
	user.LastLoginAt = &now

	return helpers.JsonOK(c, "Login berhasil", fiber.Map{
		"user":          userDTO.FromModel(user),
		"access_token":  tokens.Access,
		"refresh_token": tokens.Refresh,
	})
}

/* ==========================
   ME
========================== */

func Me(db *gorm.DB, c *fiber.Ctx) error {
	userID, err := helpers.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.FromDomainError(c, err)
	}
	return helpers.JsonOK(c, "OK", userDTO.FromModel(user))
}

/* ==========================
   LOGOUT
========================== */

func Logout(db *gorm.DB, c *fiber.Ctx) error {
	// Ambil raw access token (Locals/Authorization/cookie)
	accessToken := helpers.GetRawAccessToken(c)

	// Blacklist access token (idempotent)
	if accessToken != "" {
		if err := authRepo.BlacklistToken(db, accessToken, resolveBlacklistExpiry(accessToken)); err != nil {
			configs.Log.Warn("gagal blacklist token", zap.Error(err))
		}
	} else {
		configs.Log.Info("logout tanpa access token; lanjut clear cookies")
	}

	// Revoke refresh token jika ada di cookie
	if rt := helpers.GetRefreshTokenFromCookie(c); rt != "" {
		if secret, err := getRefreshSecret(); err == nil {
			_ = authRepo.RevokeRefreshTokenByHash(db, ComputeRefreshHash(rt, secret), nowUTC())
		}
	}

	clearAuthCookies(c)
	return helpers.JsonOK(c, "Logout berhasil", nil)
}

// resolveBlacklistExpiry: simpan selama token masih bisa dipakai (+1 menit buffer)
func resolveBlacklistExpiry(accessToken string) time.Time {
	fallback := nowUTC().Add(accessTTL())
	secret, err := getJWTSecret()
	if err != nil {
		return fallback
	}
	claims := jwt.MapClaims{}
	if _, err := jwt.ParseWithClaims(accessToken, claims, func(t *jwt.Token) (any, error) {
		return []byte(secret), nil
	}); err != nil {
		return fallback
	}
	if exp, ok := claims["exp"].(float64); ok {
		return time.Unix(int64(exp), 0).UTC().Add(time.Minute)
	}
	return fallback
}

// ActiveUserChecker dipasang di AuthJWT
func ActiveUserChecker(db *gorm.DB) func(uuid.UUID) error {
	return func(id uuid.UUID) error {
		return authRepo.EnsureUserActive(db, id)
	}
}

// BlacklistChecker dipasang di AuthJWT
func BlacklistChecker(db *gorm.DB) func(string) (bool, error) {
	return func(raw string) (bool, error) {
		return authRepo.IsTokenBlacklisted(db, raw)
	}
}
