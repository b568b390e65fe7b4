package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	authModel "kreditku_backend/internals/features/users/auth/model"
	authRepo "kreditku_backend/internals/features/users/auth/repository"
	userModel "kreditku_backend/internals/features/users/user/model"
	helpers "kreditku_backend/internals/helpers"
)

/* ==========================
   Const & small helpers
========================== */

const (
	accessTTLDefault  = 24 * time.Hour
	refreshTTLDefault = 7 * 24 * time.Hour
)

var ErrInvalidRefresh = errors.New("refresh token invalid")

func nowUTC() time.Time { return time.Now().UTC() }

func accessTTL() time.Duration {
	return configs.GetEnvDuration("ACCESS_TOKEN_TTL", accessTTLDefault)
}

func refreshTTL() time.Duration {
	return configs.GetEnvDuration("REFRESH_TOKEN_TTL", refreshTTLDefault)
}

func getJWTSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTSecret)
	if secret == "" {
		secret = strings.TrimSpace(configs.GetEnv("JWT_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_SECRET belum diset")
	}
	return secret, nil
}

func getRefreshSecret() (string, error) {
	secret := strings.TrimSpace(configs.JWTRefreshSecret)
	if secret == "" {
		secret = strings.TrimSpace(configs.GetEnv("JWT_REFRESH_SECRET"))
	}
	if secret == "" {
		return "", fiber.NewError(fiber.StatusInternalServerError, "JWT_REFRESH_SECRET belum diset")
	}
	return secret, nil
}

func strptr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func ComputeRefreshHash(token, secret string) []byte {
	m := hmac.New(sha256.New, []byte(secret))
	_, _ = m.Write([]byte(token))
	return m.Sum(nil)
}

/* ==========================
   Claims
========================== */

func BuildAccessClaims(user userModel.UserModel, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ":  "access",
		"sub":  user.ID.String(),
		"id":   user.ID.String(),
		"name": user.FullName,
		"role": user.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(ttl).Unix(),
	}
}

func BuildRefreshClaims(userID uuid.UUID, now time.Time, ttl time.Duration) jwt.MapClaims {
	return jwt.MapClaims{
		"typ": "refresh",
		"sub": userID.String(),
		"jti": uuid.NewString(), // dua refresh di detik yang sama tetap beda hash
		"iat": now.Unix(),
		"exp": now.Add(ttl).Unix(),
	}
}

func SignClaims(claims jwt.MapClaims, secret string) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseRefreshToken memverifikasi signature + typ dan mengembalikan user id (sub).
func ParseRefreshToken(raw, secret string) (uuid.UUID, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidRefresh
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return uuid.Nil, ErrInvalidRefresh
	}
	claims, _ := tok.Claims.(jwt.MapClaims)
	if typ, _ := claims["typ"].(string); typ != "refresh" {
		return uuid.Nil, ErrInvalidRefresh
	}
	sub, _ := claims["sub"].(string)
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidRefresh
	}
	return id, nil
}

/* ==========================
   Issue tokens + cookies
========================== */

type issuedTokens struct {
	Access  string
	Refresh string
}

func issueTokens(c *fiber.Ctx, db *gorm.DB, user userModel.UserModel) (issuedTokens, error) {
	jwtSecret, err := getJWTSecret()
	if err != nil {
		return issuedTokens{}, err
	}
	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return issuedTokens{}, err
	}

	now := nowUTC()
	access, err := SignClaims(BuildAccessClaims(user, now, accessTTL()), jwtSecret)
	if err != nil {
		return issuedTokens{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat access token")
	}
	refresh, err := SignClaims(BuildRefreshClaims(user.ID, now, refreshTTL()), refreshSecret)
	if err != nil {
		return issuedTokens{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal membuat refresh token")
	}

	// Simpan refresh token (hashed)
	if err := authRepo.CreateRefreshToken(db.WithContext(c.UserContext()), &authModel.RefreshToken{
		UserID:    user.ID,
		TokenHash: ComputeRefreshHash(refresh, refreshSecret),
		ExpiresAt: now.Add(refreshTTL()),
		UserAgent: strptr(c.Get(fiber.HeaderUserAgent)),
		IP:        strptr(c.IP()),
	}); err != nil {
		configs.Log.Error("gagal simpan refresh token", zap.Error(err))
		return issuedTokens{}, fiber.NewError(fiber.StatusInternalServerError, "Gagal menyimpan refresh token")
	}

	setAuthCookies(c, access, refresh, now)
	return issuedTokens{Access: access, Refresh: refresh}, nil
}

func cookieSecure() (bool, string) {
	if configs.AppEnv == "production" {
		return true, "None"
	}
	return false, "Lax"
}

func setAuthCookies(c *fiber.Ctx, accessToken, refreshToken string, now time.Time) {
	secure, sameSite := cookieSecure()
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Path:     "/",
		Expires:  now.Add(accessTTL()),
	})
	c.Cookie(&fiber.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: sameSite,
		Path:     "/api/auth",
		Expires:  now.Add(refreshTTL()),
	})
}

func clearAuthCookies(c *fiber.Ctx) {
	secure, sameSite := cookieSecure()
	expired := nowUTC().Add(-time.Hour)
	for name, path := range map[string]string{"access_token": "/", "refresh_token": "/api/auth"} {
		c.Cookie(&fiber.Cookie{
			Name:     name,
			Value:    "",
			HTTPOnly: true,
			Secure:   secure,
			SameSite: sameSite,
			Path:     path,
			Expires:  expired,
			MaxAge:   -1,
		})
	}
}

// ========================== REFRESH TOKEN ==========================
// POST /api/auth/refresh-token  (cookie refresh_token atau body {refresh_token})
func RefreshToken(db *gorm.DB, c *fiber.Ctx) error {
	raw := helpers.GetRefreshTokenFromCookie(c)
	if raw == "" {
		var body struct {
			RefreshToken string `json:"refresh_token"`
		}
		_ = c.BodyParser(&body)
		raw = strings.TrimSpace(body.RefreshToken)
	}
	if raw == "" {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak ada")
	}

	refreshSecret, err := getRefreshSecret()
	if err != nil {
		return err
	}
	userID, err := ParseRefreshToken(raw, refreshSecret)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token invalid")
	}

	// Pastikan hash refresh ada di DB & masih aktif
	now := nowUTC()
	stored, err := authRepo.FindRefreshTokenByHashActive(db, ComputeRefreshHash(raw, refreshSecret), now)
	if err != nil || stored.UserID != userID {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token tidak dikenal")
	}

	user, err := authRepo.FindUserByID(db, userID)
	if err != nil {
		return helpers.JsonError(c, fiber.StatusUnauthorized, "User tidak ditemukan")
	}
	if !user.IsActive {
		return helpers.JsonError(c, fiber.StatusForbidden, "Akun dinonaktifkan")
	}

	// ROTATE: revoke token lama dulu; kalau sudah di-revoke request lain → tolak
	if err := authRepo.RevokeRefreshTokenByID(db, stored.ID, now); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helpers.JsonError(c, fiber.StatusUnauthorized, "Refresh token sudah dipakai")
		}
		return err
	}

	tokens, err := issueTokens(c, db, *user)
	if err != nil {
		return err
	}
	return helpers.JsonOK(c, "Token diperbarui", fiber.Map{
		"access_token":  tokens.Access,
		"refresh_token": tokens.Refresh,
	})
}
