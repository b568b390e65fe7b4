package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"kreditku_backend/internals/features/orders/model"
	"kreditku_backend/internals/features/orders/workflow"
)

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

/* =========================
   Create
   ========================= */

type CreateOrderRequest struct {
	OrderCustomerName    string  `json:"order_customer_name" validate:"required,min=2,max=120"`
	OrderCustomerPhone   string  `json:"order_customer_phone" validate:"required,min=6,max=30"`
	OrderSpouseName      *string `json:"order_spouse_name,omitempty" validate:"omitempty,max=120"`
	OrderCustomerAddress *string `json:"order_customer_address,omitempty"`

	OrderUnitType string     `json:"order_unit_type" validate:"required,max=120"`
	OrderDealerID uuid.UUID  `json:"order_dealer_id" validate:"required"`
	OrderCMOID    *uuid.UUID `json:"order_cmo_id,omitempty"`

	OrderProgramID   uuid.UUID `json:"order_program_id" validate:"required"`
	OrderOTR         int64     `json:"order_otr" validate:"required,gt=0"`
	OrderDownPayment int64     `json:"order_down_payment" validate:"gte=0"`
	OrderTenor       int       `json:"order_tenor" validate:"required,gt=0"`

	OrderChecklist    *model.Checklist `json:"order_checklist,omitempty"`
	OrderSpecialNotes *string          `json:"order_special_notes,omitempty"`
	OrderSurveyDate   *string          `json:"order_survey_date,omitempty"` // YYYY-MM-DD
}

func (r *CreateOrderRequest) Normalize() {
	r.OrderCustomerName = strings.TrimSpace(r.OrderCustomerName)
	r.OrderCustomerPhone = strings.TrimSpace(r.OrderCustomerPhone)
	r.OrderSpouseName = trimPtr(r.OrderSpouseName)
	r.OrderCustomerAddress = trimPtr(r.OrderCustomerAddress)
	r.OrderUnitType = strings.TrimSpace(r.OrderUnitType)
	r.OrderSpecialNotes = trimPtr(r.OrderSpecialNotes)
	r.OrderSurveyDate = trimPtr(r.OrderSurveyDate)
}

/* =========================
   Patch (data saja, status tidak pernah lewat sini)
   ========================= */

type PatchOrderRequest struct {
	OrderCustomerName    *string `json:"order_customer_name,omitempty" validate:"omitempty,min=2,max=120"`
	OrderCustomerPhone   *string `json:"order_customer_phone,omitempty" validate:"omitempty,min=6,max=30"`
	OrderSpouseName      *string `json:"order_spouse_name,omitempty" validate:"omitempty,max=120"`
	OrderCustomerAddress *string `json:"order_customer_address,omitempty"`
	OrderUnitType        *string `json:"order_unit_type,omitempty" validate:"omitempty,max=120"`

	OrderOTR         *int64 `json:"order_otr,omitempty" validate:"omitempty,gt=0"`
	OrderDownPayment *int64 `json:"order_down_payment,omitempty" validate:"omitempty,gte=0"`
	OrderTenor       *int   `json:"order_tenor,omitempty" validate:"omitempty,gt=0"`

	OrderChecklist     *model.Checklist `json:"order_checklist,omitempty"`
	OrderSpecialNotes  *string          `json:"order_special_notes,omitempty"`
	OrderBandingReason *string          `json:"order_banding_reason,omitempty"`
	OrderSurveyDate    *string          `json:"order_survey_date,omitempty"`

	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// TermsChanged: OTR/TDP/tenor berubah → angsuran harus dihitung ulang
func (r *PatchOrderRequest) TermsChanged() bool {
	return r.OrderOTR != nil || r.OrderDownPayment != nil || r.OrderTenor != nil
}

// ApplyTo menulis field data. Angsuran & tanggal survey diurus service.
func (r *PatchOrderRequest) ApplyTo(m *model.OrderModel) {
	if r.OrderCustomerName != nil {
		m.OrderCustomerName = strings.TrimSpace(*r.OrderCustomerName)
	}
	if r.OrderCustomerPhone != nil {
		m.OrderCustomerPhone = strings.TrimSpace(*r.OrderCustomerPhone)
	}
	if r.OrderSpouseName != nil {
		m.OrderSpouseName = trimPtr(r.OrderSpouseName)
	}
	if r.OrderCustomerAddress != nil {
		m.OrderCustomerAddress = trimPtr(r.OrderCustomerAddress)
	}
	if r.OrderUnitType != nil {
		m.OrderUnitType = strings.TrimSpace(*r.OrderUnitType)
	}
	if r.OrderOTR != nil {
		m.OrderOTR = *r.OrderOTR
	}
	if r.OrderDownPayment != nil {
		m.OrderDownPayment = *r.OrderDownPayment
	}
	if r.OrderTenor != nil {
		m.OrderTenor = *r.OrderTenor
	}
	if r.OrderSpecialNotes != nil {
		m.OrderSpecialNotes = trimPtr(r.OrderSpecialNotes)
	}
	if r.OrderBandingReason != nil {
		m.OrderBandingReason = trimPtr(r.OrderBandingReason)
	}
}

/* =========================
   Transition / note
   ========================= */

type TransitionRequest struct {
	Action            string     `json:"action" validate:"required"`
	SlikResult        string     `json:"slik_result,omitempty"`
	Decision          string     `json:"decision,omitempty"`
	Reason            string     `json:"reason,omitempty"`
	Note              string     `json:"note,omitempty"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// ToCommand: aksi tidak dikenal diteruskan apa adanya, engine yang menolak (IllegalTransition).
func (r *TransitionRequest) ToCommand() workflow.Command {
	return workflow.Command{
		Action:     workflow.Action(strings.ToLower(strings.TrimSpace(r.Action))),
		SlikResult: workflow.SlikResult(strings.TrimSpace(r.SlikResult)),
		Decision:   workflow.Decision(strings.TrimSpace(r.Decision)),
		Reason:     r.Reason,
		Note:       r.Note,
	}
}

type NoteRequest struct {
	Note              string     `json:"note" validate:"required"`
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

/* =========================
   Response
   ========================= */

type OrderDetail struct {
	*model.OrderModel
	ChecklistCompleted int               `json:"checklist_completed"`
	AvailableActions   []workflow.Action `json:"available_actions"`
}

type TransitionResponse struct {
	Order         *model.OrderModel    `json:"order"`
	Note          model.OrderNoteModel `json:"note"`
	From          workflow.Status      `json:"from"`
	To            workflow.Status      `json:"to"`
	StatusChanged bool                 `json:"status_changed"`
}

type StatsResponse struct {
	ByStatus     map[workflow.Status]int64 `json:"by_status"`
	Total        int64                     `json:"total"`
	CreatedToday int64                     `json:"created_today"`
}
