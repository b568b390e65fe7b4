package dto

import (
	"strings"

	"kreditku_backend/internals/features/dealers/model"
)

/* =========================
   Request
   ========================= */

type CreateDealerRequest struct {
	DealerName     string  `json:"dealer_name" validate:"required,min=2,max=120"`
	DealerBrand    string  `json:"dealer_brand" validate:"required,max=60"`
	DealerAddress  *string `json:"dealer_address,omitempty"`
	DealerCity     *string `json:"dealer_city,omitempty" validate:"omitempty,max=80"`
	DealerPhone    *string `json:"dealer_phone,omitempty" validate:"omitempty,max=30"`
	DealerPICName  *string `json:"dealer_pic_name,omitempty" validate:"omitempty,max=100"`
	DealerIsActive *bool   `json:"dealer_is_active,omitempty"`
}

func trimPtr(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	if v == "" {
		return nil
	}
	return &v
}

func (r *CreateDealerRequest) Normalize() {
	r.DealerName = strings.TrimSpace(r.DealerName)
	r.DealerBrand = strings.TrimSpace(r.DealerBrand)
	r.DealerAddress = trimPtr(r.DealerAddress)
	r.DealerCity = trimPtr(r.DealerCity)
	r.DealerPhone = trimPtr(r.DealerPhone)
	r.DealerPICName = trimPtr(r.DealerPICName)
}

func (r *CreateDealerRequest) ToModel() *model.DealerModel {
	m := &model.DealerModel{
		DealerName:     r.DealerName,
		DealerBrand:    r.DealerBrand,
		DealerAddress:  r.DealerAddress,
		DealerCity:     r.DealerCity,
		DealerPhone:    r.DealerPhone,
		DealerPICName:  r.DealerPICName,
		DealerIsActive: true,
	}
	if r.DealerIsActive != nil {
		m.DealerIsActive = *r.DealerIsActive
	}
	return m
}

// PatchDealerRequest: field nil = tidak diubah, string kosong = hapus (untuk kolom nullable)
type PatchDealerRequest struct {
	DealerName     *string `json:"dealer_name,omitempty" validate:"omitempty,min=2,max=120"`
	DealerBrand    *string `json:"dealer_brand,omitempty" validate:"omitempty,max=60"`
	DealerAddress  *string `json:"dealer_address,omitempty"`
	DealerCity     *string `json:"dealer_city,omitempty" validate:"omitempty,max=80"`
	DealerPhone    *string `json:"dealer_phone,omitempty" validate:"omitempty,max=30"`
	DealerPICName  *string `json:"dealer_pic_name,omitempty" validate:"omitempty,max=100"`
	DealerIsActive *bool   `json:"dealer_is_active,omitempty"`
}

func (r *PatchDealerRequest) ApplyTo(m *model.DealerModel) {
	if r.DealerName != nil {
		m.DealerName = strings.TrimSpace(*r.DealerName)
	}
	if r.DealerBrand != nil {
		m.DealerBrand = strings.TrimSpace(*r.DealerBrand)
	}
	if r.DealerAddress != nil {
		m.DealerAddress = trimPtr(r.DealerAddress)
	}
	if r.DealerCity != nil {
		m.DealerCity = trimPtr(r.DealerCity)
	}
	if r.DealerPhone != nil {
		m.DealerPhone = trimPtr(r.DealerPhone)
	}
	if r.DealerPICName != nil {
		m.DealerPICName = trimPtr(r.DealerPICName)
	}
	if r.DealerIsActive != nil {
		m.DealerIsActive = *r.DealerIsActive
	}
}
