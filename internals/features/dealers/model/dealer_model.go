package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DealerModel struct {
	DealerID uuid.UUID `json:"dealer_id" gorm:"column:dealer_id;type:uuid;default:gen_random_uuid();primaryKey"`

	DealerName    string  `json:"dealer_name" gorm:"column:dealer_name;type:varchar(120);not null"`
	DealerBrand   string  `json:"dealer_brand" gorm:"column:dealer_brand;type:varchar(60);not null;index"`
	DealerAddress *string `json:"dealer_address,omitempty" gorm:"column:dealer_address;type:text"`
	DealerCity    *string `json:"dealer_city,omitempty" gorm:"column:dealer_city;type:varchar(80);index"`
	DealerPhone   *string `json:"dealer_phone,omitempty" gorm:"column:dealer_phone;type:varchar(30)"`
	DealerPICName *string `json:"dealer_pic_name,omitempty" gorm:"column:dealer_pic_name;type:varchar(100)"`

	DealerIsActive bool `json:"dealer_is_active" gorm:"column:dealer_is_active;not null;default:true"`

	DealerCreatedAt time.Time      `json:"dealer_created_at" gorm:"column:dealer_created_at;type:timestamptz;autoCreateTime"`
	DealerUpdatedAt time.Time      `json:"dealer_updated_at" gorm:"column:dealer_updated_at;type:timestamptz;autoUpdateTime"`
	DealerDeletedAt gorm.DeletedAt `json:"-" gorm:"column:dealer_deleted_at;index"`
}

func (DealerModel) TableName() string { return "dealers" }
