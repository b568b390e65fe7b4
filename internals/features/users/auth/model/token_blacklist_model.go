package model

import (
	"crypto/sha256"
	"time"

	"github.com/google/uuid"
)

// TokenBlacklist: access token yang sudah logout sebelum exp. Disimpan sebagai hash.
type TokenBlacklist struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	TokenHash []byte    `gorm:"column:token_hash;type:bytea;not null;uniqueIndex" json:"-"`
	ExpiredAt time.Time `gorm:"column:expired_at;type:timestamptz;not null;index" json:"expired_at"`
	CreatedAt time.Time `gorm:"column:created_at;type:timestamptz;autoCreateTime" json:"created_at"`
}

func (TokenBlacklist) TableName() string {
	return "token_blacklist"
}

func HashAccessToken(raw string) []byte {
	sum := sha256.Sum256([]byte(raw))
	return sum[:]
}
