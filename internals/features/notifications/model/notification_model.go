package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Satu baris per penerima. Dibaca klien lewat polling.
type NotificationModel struct {
	NotificationID      uuid.UUID         `json:"notification_id" gorm:"column:notification_id;type:uuid;default:gen_random_uuid();primaryKey"`
	NotificationUserID  uuid.UUID         `json:"notification_user_id" gorm:"column:notification_user_id;type:uuid;not null;index:idx_notif_user_created,priority:1"`
	NotificationOrderID *uuid.UUID        `json:"notification_order_id,omitempty" gorm:"column:notification_order_id;type:uuid;index"`
	NotificationKind    string            `json:"notification_kind" gorm:"column:notification_kind;type:varchar(30);not null"`
	NotificationTitle   string            `json:"notification_title" gorm:"column:notification_title;type:varchar(255);not null"`
	NotificationBody    string            `json:"notification_body" gorm:"column:notification_body;type:text"`
	NotificationMeta    datatypes.JSONMap `json:"notification_meta,omitempty" gorm:"column:notification_meta;type:jsonb"`

	NotificationIsRead bool       `json:"notification_is_read" gorm:"column:notification_is_read;not null;default:false;index"`
	NotificationReadAt *time.Time `json:"notification_read_at,omitempty" gorm:"column:notification_read_at;type:timestamptz"`

	NotificationCreatedAt time.Time `json:"notification_created_at" gorm:"column:notification_created_at;type:timestamptz;autoCreateTime;index:idx_notif_user_created,priority:2"`
}

func (NotificationModel) TableName() string { return "notifications" }
