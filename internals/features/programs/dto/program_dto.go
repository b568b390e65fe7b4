package dto

import (
	"strings"

	"github.com/shopspring/decimal"

	"kreditku_backend/internals/features/programs/model"
)

var hundred = decimal.NewFromInt(100)

/* =========================
   Request
   ========================= */

type TenorRequest struct {
	Months     int             `json:"program_tenor_months" validate:"required,min=1,max=120"`
	AnnualRate decimal.Decimal `json:"program_tenor_annual_rate"`
	IsActive   *bool           `json:"program_tenor_is_active,omitempty"`
}

type CreateProgramRequest struct {
	ProgramName               string          `json:"program_name" validate:"required,min=2,max=120"`
	ProgramBrand              string          `json:"program_brand" validate:"required,max=60"`
	ProgramFinancingType      string          `json:"program_financing_type" validate:"required,oneof=konvensional syariah"`
	ProgramDescription        *string         `json:"program_description,omitempty"`
	ProgramDownPaymentPercent decimal.Decimal `json:"program_down_payment_percent"`
	ProgramIsActive           *bool           `json:"program_is_active,omitempty"`
	ProgramTenors             []TenorRequest  `json:"program_tenors" validate:"required,min=1,dive"`
}

func (r *CreateProgramRequest) Normalize() {
	r.ProgramName = strings.TrimSpace(r.ProgramName)
	r.ProgramBrand = strings.TrimSpace(r.ProgramBrand)
	r.ProgramFinancingType = strings.ToLower(strings.TrimSpace(r.ProgramFinancingType))
}

// CheckNumbers: aturan angka yang tidak bisa diekspresikan tag validator (decimal).
// Mengembalikan map field → pesan; kosong = valid.
func CheckNumbers(dp *decimal.Decimal, tenors []TenorRequest) map[string][]string {
	errs := map[string][]string{}
	if dp != nil && (dp.IsNegative() || dp.GreaterThan(hundred)) {
		errs["program_down_payment_percent"] = append(errs["program_down_payment_percent"], "harus 0 sampai 100")
	}
	seen := map[int]bool{}
	for _, t := range tenors {
		if t.AnnualRate.IsNegative() {
			errs["program_tenors"] = append(errs["program_tenors"], "bunga tidak boleh negatif")
		}
		if seen[t.Months] {
			errs["program_tenors"] = append(errs["program_tenors"], "tenor duplikat")
		}
		seen[t.Months] = true
	}
	return errs
}

func tenorsToModel(list []TenorRequest) []model.ProgramTenorModel {
	out := make([]model.ProgramTenorModel, 0, len(list))
	for _, t := range list {
		out = append(out, model.ProgramTenorModel{
			ProgramTenorMonths:     t.Months,
			ProgramTenorAnnualRate: t.AnnualRate,
			ProgramTenorIsActive:   t.IsActive,
		})
	}
	return out
}

func (r *CreateProgramRequest) ToModel() *model.ProgramModel {
	m := &model.ProgramModel{
		ProgramName:               r.ProgramName,
		ProgramBrand:              r.ProgramBrand,
		ProgramFinancingType:      model.FinancingType(r.ProgramFinancingType),
		ProgramDescription:        r.ProgramDescription,
		ProgramDownPaymentPercent: r.ProgramDownPaymentPercent,
		ProgramIsActive:           true,
		ProgramTenors:             tenorsToModel(r.ProgramTenors),
	}
	if r.ProgramIsActive != nil {
		m.ProgramIsActive = *r.ProgramIsActive
	}
	return m
}

// PatchProgramRequest: ProgramTenors != nil → tenor diganti seluruhnya
type PatchProgramRequest struct {
	ProgramName               *string          `json:"program_name,omitempty" validate:"omitempty,min=2,max=120"`
	ProgramBrand              *string          `json:"program_brand,omitempty" validate:"omitempty,max=60"`
	ProgramFinancingType      *string          `json:"program_financing_type,omitempty" validate:"omitempty,oneof=konvensional syariah"`
	ProgramDescription        *string          `json:"program_description,omitempty"`
	ProgramDownPaymentPercent *decimal.Decimal `json:"program_down_payment_percent,omitempty"`
	ProgramIsActive           *bool            `json:"program_is_active,omitempty"`
	ProgramTenors             []TenorRequest   `json:"program_tenors,omitempty" validate:"omitempty,min=1,dive"`
}

func (r *PatchProgramRequest) ApplyTo(m *model.ProgramModel) {
	if r.ProgramName != nil {
		m.ProgramName = strings.TrimSpace(*r.ProgramName)
	}
	if r.ProgramBrand != nil {
		m.ProgramBrand = strings.TrimSpace(*r.ProgramBrand)
	}
	if r.ProgramFinancingType != nil {
		m.ProgramFinancingType = model.FinancingType(strings.ToLower(strings.TrimSpace(*r.ProgramFinancingType)))
	}
	if r.ProgramDescription != nil {
		if v := strings.TrimSpace(*r.ProgramDescription); v == "" {
			m.ProgramDescription = nil
		} else {
			m.ProgramDescription = &v
		}
	}
	if r.ProgramDownPaymentPercent != nil {
		m.ProgramDownPaymentPercent = *r.ProgramDownPaymentPercent
	}
	if r.ProgramIsActive != nil {
		m.ProgramIsActive = *r.ProgramIsActive
	}
}

func (r *PatchProgramRequest) TenorModels() []model.ProgramTenorModel {
	return tenorsToModel(r.ProgramTenors)
}
