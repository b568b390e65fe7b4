package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ActivityType string

const (
	ActivityKunjunganDealer ActivityType = "kunjungan_dealer"
	ActivitySurvey          ActivityType = "survey"
	ActivityFollowUp        ActivityType = "follow_up"
	ActivityLainnya         ActivityType = "lainnya"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityKunjunganDealer, ActivitySurvey, ActivityFollowUp, ActivityLainnya:
		return true
	}
	return false
}

// Log aktivitas lapangan sales/CMO.
type ActivityModel struct {
	ActivityID          uuid.UUID    `json:"activity_id" gorm:"column:activity_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ActivityUserID      uuid.UUID    `json:"activity_user_id" gorm:"column:activity_user_id;type:uuid;not null;index:idx_activity_user_date,priority:1"`
	ActivityUserName    string       `json:"activity_user_name" gorm:"column:activity_user_name;type:varchar(100);not null"`
	ActivityType        ActivityType `json:"activity_type" gorm:"column:activity_type;type:varchar(30);not null;index"`
	ActivityTitle       string       `json:"activity_title" gorm:"column:activity_title;type:varchar(160);not null"`
	ActivityDescription *string      `json:"activity_description,omitempty" gorm:"column:activity_description;type:text"`
	ActivityDealerID    *uuid.UUID   `json:"activity_dealer_id,omitempty" gorm:"column:activity_dealer_id;type:uuid;index"`
	ActivityOrderID     *uuid.UUID   `json:"activity_order_id,omitempty" gorm:"column:activity_order_id;type:uuid;index"`
	ActivityDate        time.Time    `json:"activity_date" gorm:"column:activity_date;type:date;not null;index:idx_activity_user_date,priority:2"`

	ActivityCreatedAt time.Time      `json:"activity_created_at" gorm:"column:activity_created_at;type:timestamptz;autoCreateTime"`
	ActivityUpdatedAt time.Time      `json:"activity_updated_at" gorm:"column:activity_updated_at;type:timestamptz;autoUpdateTime"`
	ActivityDeletedAt gorm.DeletedAt `json:"-" gorm:"column:activity_deleted_at;index"`
}

func (ActivityModel) TableName() string { return "activities" }
