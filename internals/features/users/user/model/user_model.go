package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserModel merepresentasikan tabel users (staf: sales, cmo, cmh, admin)
type UserModel struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FullName    string         `gorm:"column:full_name;size:100;not null" json:"full_name"`
	Email       string         `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone       *string        `gorm:"size:30" json:"phone,omitempty"`
	Password    string         `gorm:"not null" json:"-"`
	Role        string         `gorm:"type:varchar(20);not null;default:'sales';index" json:"role"`
	IsActive    bool           `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt *time.Time     `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt   time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName memastikan nama tabel sesuai dengan skema database
func (UserModel) TableName() string {
	return "users"
}

// NormalizeEmail: email disimpan lowercase supaya login case-insensitive
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
