package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

/* =========================
   Enums
   ========================= */

type FinancingType string

const (
	FinancingKonvensional FinancingType = "konvensional"
	FinancingSyariah      FinancingType = "syariah"
)

func (f FinancingType) Valid() bool {
	return f == FinancingKonvensional || f == FinancingSyariah
}

/* =========================
   Program
   ========================= */

type ProgramModel struct {
	ProgramID uuid.UUID `json:"program_id" gorm:"column:program_id;type:uuid;default:gen_random_uuid();primaryKey"`

	ProgramName          string        `json:"program_name" gorm:"column:program_name;type:varchar(120);not null;uniqueIndex:uq_program_brand_name"`
	ProgramBrand         string        `json:"program_brand" gorm:"column:program_brand;type:varchar(60);not null;uniqueIndex:uq_program_brand_name"`
	ProgramFinancingType FinancingType `json:"program_financing_type" gorm:"column:program_financing_type;type:varchar(20);not null;default:'konvensional'"`
	ProgramDescription   *string       `json:"program_description,omitempty" gorm:"column:program_description;type:text"`

	// NUMERIC(5,2): persen TDP minimum
	ProgramDownPaymentPercent decimal.Decimal `json:"program_down_payment_percent" gorm:"column:program_down_payment_percent;type:numeric(5,2);not null;default:0"`

	ProgramIsActive bool `json:"program_is_active" gorm:"column:program_is_active;not null;default:true"`

	ProgramTenors []ProgramTenorModel `json:"program_tenors" gorm:"foreignKey:ProgramTenorProgramID;references:ProgramID;constraint:OnDelete:CASCADE"`

	ProgramCreatedAt time.Time      `json:"program_created_at" gorm:"column:program_created_at;type:timestamptz;autoCreateTime"`
	ProgramUpdatedAt time.Time      `json:"program_updated_at" gorm:"column:program_updated_at;type:timestamptz;autoUpdateTime"`
	ProgramDeletedAt gorm.DeletedAt `json:"-" gorm:"column:program_deleted_at;index"`
}

func (ProgramModel) TableName() string { return "programs" }

/* =========================
   Tenor (pasangan tenor + bunga tahunan)
   ========================= */

type ProgramTenorModel struct {
	ProgramTenorID        uuid.UUID `json:"program_tenor_id" gorm:"column:program_tenor_id;type:uuid;default:gen_random_uuid();primaryKey"`
	ProgramTenorProgramID uuid.UUID `json:"program_tenor_program_id" gorm:"column:program_tenor_program_id;type:uuid;not null;index"`

	ProgramTenorMonths int `json:"program_tenor_months" gorm:"column:program_tenor_months;not null"`
	// NUMERIC(6,3): persen per tahun
	ProgramTenorAnnualRate decimal.Decimal `json:"program_tenor_annual_rate" gorm:"column:program_tenor_annual_rate;type:numeric(6,3);not null;default:0"`
	// NULL = aktif
	ProgramTenorIsActive *bool `json:"program_tenor_is_active,omitempty" gorm:"column:program_tenor_is_active"`
}

func (ProgramTenorModel) TableName() string { return "program_tenors" }
