package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	authModel "kreditku_backend/internals/features/users/auth/model"
	userModel "kreditku_backend/internals/features/users/user/model"
)

var ErrUserInactive = errors.New("user tidak aktif")

/* ====================== USER ====================== */

func FindUserByEmail(db *gorm.DB, email string) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.Where("email = ?", userModel.NormalizeEmail(email)).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(db *gorm.DB, userID uuid.UUID) (*userModel.UserModel, error) {
	var user userModel.UserModel
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUserActive dipakai middleware: user dihapus / dinonaktifkan → tolak token lama.
func EnsureUserActive(db *gorm.DB, userID uuid.UUID) error {
	var active bool
	err := db.Model(&userModel.UserModel{}).
		Select("is_active").
		Where("id = ?", userID).
		Limit(1).
		Scan(&active).Error
	if err != nil {
		return err
	}
	if !active {
		return ErrUserInactive
	}
	return nil
}

func UpdateUserPassword(db *gorm.DB, userID uuid.UUID, newHash string) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).Update("password", newHash).Error
}

func TouchLastLogin(db *gorm.DB, userID uuid.UUID, at time.Time) error {
	return db.Model(&userModel.UserModel{}).Where("id = ?", userID).
		UpdateColumn("last_login_at", at).Error
}

/* ====================== REFRESH TOKEN ====================== */

func CreateRefreshToken(db *gorm.DB, token *authModel.RefreshToken) error {
	return db.Create(token).Error
}

// Cari refresh token yang aktif (belum di-revoke, belum expired)
func FindRefreshTokenByHashActive(db *gorm.DB, hash []byte, now time.Time) (*authModel.RefreshToken, error) {
	var rt authModel.RefreshToken
	if err := db.
		Where("token_hash = ? AND revoked_at IS NULL AND expires_at > ?", hash, now).
		Limit(1).
		Find(&rt).Error; err != nil {
		return nil, err
	}
	if rt.ID == uuid.Nil {
		return nil, gorm.ErrRecordNotFound
	}
	return &rt, nil
}

// Revoke by ID
func RevokeRefreshTokenByID(db *gorm.DB, id uuid.UUID, now time.Time) error {
	res := db.Model(&authModel.RefreshToken{}).
		Where("id = ? AND revoked_at IS NULL", id).
		Update("revoked_at", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func RevokeRefreshTokenByHash(db *gorm.DB, hash []byte, now time.Time) error {
	return db.Model(&authModel.RefreshToken{}).
		Where("token_hash = ? AND revoked_at IS NULL", hash).
		Update("revoked_at", now).Error
}

// RevokeAllForUser dipakai saat ganti password / user dinonaktifkan
func RevokeAllForUser(db *gorm.DB, userID uuid.UUID, now time.Time) error {
	return db.Model(&authModel.RefreshToken{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

/* ====================== BLACKLIST TOKEN ====================== */

// BlacklistToken idempotent: logout dua kali tidak error
func BlacklistToken(db *gorm.DB, token string, expiredAt time.Time) error {
	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&authModel.TokenBlacklist{
		TokenHash: authModel.HashAccessToken(token),
		ExpiredAt: expiredAt.UTC(),
	}).Error
}

func IsTokenBlacklisted(db *gorm.DB, token string) (bool, error) {
	var exists bool
	err := db.Raw(
		`SELECT EXISTS(SELECT 1 FROM token_blacklist WHERE token_hash = ?)`, authModel.HashAccessToken(token),
	).Scan(&exists).Error
	return exists, err
}

// CleanupExpiredBlacklist menghapus token yang exp-nya sebelum deleteBefore.
// Setelah exp, JWT sudah ditolak oleh parser jadi barisnya tidak berguna lagi.
func CleanupExpiredBlacklist(db *gorm.DB, deleteBefore time.Time) (int64, error) {
	res := db.Where("expired_at < ?", deleteBefore).Delete(&authModel.TokenBlacklist{})
	return res.RowsAffected, res.Error
}

// CleanupExpiredRefreshTokens: refresh token expired/revoked lebih tua dari deleteBefore
func CleanupExpiredRefreshTokens(db *gorm.DB, deleteBefore time.Time) (int64, error) {
	res := db.Where("expires_at < ? OR (revoked_at IS NOT NULL AND revoked_at < ?)", deleteBefore, deleteBefore).
		Delete(&authModel.RefreshToken{})
	return res.RowsAffected, res.Error
}
