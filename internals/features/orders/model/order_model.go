package model

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"kreditku_backend/internals/features/orders/workflow"
)

/* =========================
   Checklist dokumen (8 item)
   ========================= */

type Checklist struct {
	KTP                bool `json:"ktp"`
	KTPPasangan        bool `json:"ktp_pasangan"`
	KK                 bool `json:"kk"`
	NPWP               bool `json:"npwp"`
	SlipGaji           bool `json:"slip_gaji"`
	RekeningKoran      bool `json:"rekening_koran"`
	BuktiTempatTinggal bool `json:"bukti_tempat_tinggal"`
	FotoRumah          bool `json:"foto_rumah"`
}

// Completed menghitung jumlah dokumen yang sudah dicentang.
func (c Checklist) Completed() int {
	n := 0
	for _, ok := range []bool{c.KTP, c.KTPPasangan, c.KK, c.NPWP, c.SlipGaji, c.RekeningKoran, c.BuktiTempatTinggal, c.FotoRumah} {
		if ok {
			n++
		}
	}
	return n
}

/* =========================
   Order
   ========================= */

type OrderModel struct {
	OrderID     uuid.UUID    `json:"order_id" gorm:"column:order_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNumber snowflake.ID `json:"order_number" gorm:"column:order_number;not null;uniqueIndex"`

	// customer
	OrderCustomerName    string  `json:"order_customer_name" gorm:"column:order_customer_name;type:varchar(120);not null"`
	OrderCustomerPhone   string  `json:"order_customer_phone" gorm:"column:order_customer_phone;type:varchar(30);not null"`
	OrderSpouseName      *string `json:"order_spouse_name,omitempty" gorm:"column:order_spouse_name;type:varchar(120)"`
	OrderCustomerAddress *string `json:"order_customer_address,omitempty" gorm:"column:order_customer_address;type:text"`

	// unit
	OrderUnitType   string     `json:"order_unit_type" gorm:"column:order_unit_type;type:varchar(120);not null"`
	OrderBrand      string     `json:"order_brand" gorm:"column:order_brand;type:varchar(60);not null"`
	OrderDealerID   *uuid.UUID `json:"order_dealer_id,omitempty" gorm:"column:order_dealer_id;type:uuid;index"`
	OrderDealerName string     `json:"order_dealer_name" gorm:"column:order_dealer_name;type:varchar(120);not null"`

	// financing terms (snapshot program saat order dibuat)
	OrderOTR           int64           `json:"order_otr" gorm:"column:order_otr;not null"`
	OrderDownPayment   int64           `json:"order_down_payment" gorm:"column:order_down_payment;not null"`
	OrderTenor         int             `json:"order_tenor" gorm:"column:order_tenor;not null"`
	OrderAnnualRate    decimal.Decimal `json:"order_annual_rate" gorm:"column:order_annual_rate;type:numeric(6,3);not null;default:0"`
	OrderInstallment   int64           `json:"order_installment" gorm:"column:order_installment;not null"`
	OrderFinancingType string          `json:"order_financing_type" gorm:"column:order_financing_type;type:varchar(20);not null"`
	OrderProgramID     *uuid.UUID      `json:"order_program_id,omitempty" gorm:"column:order_program_id;type:uuid"`
	OrderProgramName   string          `json:"order_program_name" gorm:"column:order_program_name;type:varchar(120);not null"`

	// assignment
	OrderSalesID   uuid.UUID  `json:"order_sales_id" gorm:"column:order_sales_id;type:uuid;not null;index"`
	OrderSalesName string     `json:"order_sales_name" gorm:"column:order_sales_name;type:varchar(100);not null"`
	OrderCMOID     *uuid.UUID `json:"order_cmo_id,omitempty" gorm:"column:order_cmo_id;type:uuid;index"`
	OrderCMOName   *string    `json:"order_cmo_name,omitempty" gorm:"column:order_cmo_name;type:varchar(100)"`
	OrderClaimedBy *uuid.UUID `json:"order_claimed_by,omitempty" gorm:"column:order_claimed_by;type:uuid;index"`
	OrderClaimedAt *time.Time `json:"order_claimed_at,omitempty" gorm:"column:order_claimed_at;type:timestamptz"`

	// workflow
	OrderStatus workflow.Status `json:"order_status" gorm:"column:order_status;type:varchar(20);not null;default:'Baru';index"`

	// artifacts
	OrderKTPPhotoURL       *string        `json:"order_ktp_photo_url,omitempty" gorm:"column:order_ktp_photo_url;type:text"`
	OrderKTPSpousePhotoURL *string        `json:"order_ktp_spouse_photo_url,omitempty" gorm:"column:order_ktp_spouse_photo_url;type:text"`
	OrderSurveyPhotos      pq.StringArray `json:"order_survey_photos" gorm:"column:order_survey_photos;type:text[];not null;default:'{}'"`
	OrderChecklist         datatypes.JSON `json:"order_checklist" gorm:"column:order_checklist;type:jsonb;not null;default:'{}'"`

	// free text
	OrderSpecialNotes   *string `json:"order_special_notes,omitempty" gorm:"column:order_special_notes;type:text"`
	OrderHasilSlik      *string `json:"order_hasil_slik,omitempty" gorm:"column:order_hasil_slik;type:varchar(20)"`
	OrderBandingReason  *string `json:"order_banding_reason,omitempty" gorm:"column:order_banding_reason;type:text"`
	OrderDecisionReason *string `json:"order_decision_reason,omitempty" gorm:"column:order_decision_reason;type:text"`

	OrderSurveyDate *time.Time `json:"order_survey_date,omitempty" gorm:"column:order_survey_date;type:date"`

	OrderNotes []OrderNoteModel `json:"order_notes,omitempty" gorm:"foreignKey:OrderNoteOrderID;references:OrderID"`

	OrderCreatedAt time.Time `json:"order_created_at" gorm:"column:order_created_at;type:timestamptz;autoCreateTime;index"`
	// diisi manual (dipakai cek expected_updated_at)
	OrderUpdatedAt time.Time      `json:"order_updated_at" gorm:"column:order_updated_at;type:timestamptz;not null"`
	OrderDeletedAt gorm.DeletedAt `json:"-" gorm:"column:order_deleted_at;index"`
}

func (OrderModel) TableName() string { return "orders" }

func (m *OrderModel) SetChecklist(c Checklist) error {
	b, err := json.Marshal(c)
	if err != nil {
		return err
	}
	m.OrderChecklist = datatypes.JSON(b)
	return nil
}

func (m *OrderModel) Checklist() (Checklist, error) {
	var c Checklist
	if len(m.OrderChecklist) == 0 {
		return c, nil
	}
	err := json.Unmarshal(m.OrderChecklist, &c)
	return c, err
}

// ApplyMutation menulis hasil engine ke model. Catatan di-append terpisah.
func (m *OrderModel) ApplyMutation(mut workflow.Mutation) {
	m.OrderStatus = mut.To
	if mut.ClaimedBy != nil {
		m.OrderClaimedBy = mut.ClaimedBy
	}
	if mut.ClaimedAt != nil {
		m.OrderClaimedAt = mut.ClaimedAt
	}
	if mut.HasilSlik != nil {
		m.OrderHasilSlik = mut.HasilSlik
	}
	if mut.DecisionReason != nil {
		m.OrderDecisionReason = mut.DecisionReason
	}
	m.OrderUpdatedAt = mut.UpdatedAt
}

/* =========================
   OrderNote (append-only)
   ========================= */

type OrderNoteModel struct {
	OrderNoteID         uuid.UUID       `json:"order_note_id" gorm:"column:order_note_id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderNoteOrderID    uuid.UUID       `json:"order_note_order_id" gorm:"column:order_note_order_id;type:uuid;not null;index"`
	OrderNoteAuthorID   uuid.UUID       `json:"order_note_author_id" gorm:"column:order_note_author_id;type:uuid;not null"`
	OrderNoteAuthorName string          `json:"order_note_author_name" gorm:"column:order_note_author_name;type:varchar(100);not null"`
	OrderNoteAuthorRole string          `json:"order_note_author_role" gorm:"column:order_note_author_role;type:varchar(20);not null"`
	OrderNoteText       string          `json:"order_note_text" gorm:"column:order_note_text;type:text;not null"`
	OrderNoteStatus     workflow.Status `json:"order_note_status" gorm:"column:order_note_status;type:varchar(20);not null"`
	OrderNoteCreatedAt  time.Time       `json:"order_note_created_at" gorm:"column:order_note_created_at;type:timestamptz;not null;index"`
}

func (OrderNoteModel) TableName() string { return "order_notes" }

func NoteFromDraft(orderID uuid.UUID, d workflow.NoteDraft) OrderNoteModel {
	return OrderNoteModel{
		OrderNoteID:         uuid.New(),
		OrderNoteOrderID:    orderID,
		OrderNoteAuthorID:   d.AuthorID,
		OrderNoteAuthorName: d.AuthorName,
		OrderNoteAuthorRole: string(d.AuthorRole),
		OrderNoteText:       d.Note,
		OrderNoteStatus:     d.Status,
		OrderNoteCreatedAt:  d.CreatedAt,
	}
}
