package repository

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kreditku_backend/internals/features/orders/model"
	"kreditku_backend/internals/features/orders/workflow"
	helper "kreditku_backend/internals/helpers"
)

// ListFilter: nil/kosong = tidak difilter
type ListFilter struct {
	Statuses  []workflow.Status
	Search    string
	SalesID   *uuid.UUID
	CMOID     *uuid.UUID
	ClaimedBy *uuid.UUID
	DealerID  *uuid.UUID
	Brand     string
	From      *time.Time // created_at >= From
	To        *time.Time // created_at < To
}

// Repository adalah kontrak penyimpanan order. Load/Save/AppendNote
// dipanggil di dalam Transaction supaya field order & catatan tersimpan bersama.
type Repository interface {
	Transaction(ctx context.Context, fn func(tx Repository) error) error

	Create(ctx context.Context, o *model.OrderModel) error
	Load(ctx context.Context, id uuid.UUID) (*model.OrderModel, error)
	// LoadForUpdate sama dengan Load tetapi mengunci baris (SELECT ... FOR UPDATE).
	LoadForUpdate(ctx context.Context, id uuid.UUID) (*model.OrderModel, error)
	// Save menulis semua kolom data & workflow. expectedUpdatedAt != nil →
	// ErrStaleOrder jika baris sudah berubah.
	Save(ctx context.Context, o *model.OrderModel, expectedUpdatedAt *time.Time) error
	AppendNote(ctx context.Context, note *model.OrderNoteModel) error
	AppendSurveyPhoto(ctx context.Context, id uuid.UUID, url string, at time.Time) error
	SoftDelete(ctx context.Context, id uuid.UUID) error

	List(ctx context.Context, f ListFilter, p helper.Params) ([]model.OrderModel, int64, error)
	CountByStatus(ctx context.Context, f ListFilter) (map[workflow.Status]int64, error)
	CountCreatedSince(ctx context.Context, f ListFilter, since time.Time) (int64, error)
}

// saveColumns: kolom yang boleh ditulis Save (tanpa id, nomor, created, sales)
var saveColumns = []string{
	"order_customer_name", "order_customer_phone", "order_spouse_name", "order_customer_address",
	"order_unit_type", "order_brand", "order_dealer_id", "order_dealer_name",
	"order_otr", "order_down_payment", "order_tenor", "order_annual_rate", "order_installment",
	"order_financing_type", "order_program_id", "order_program_name",
	"order_cmo_id", "order_cmo_name", "order_claimed_by", "order_claimed_at",
	"order_status",
	"order_ktp_photo_url", "order_ktp_spouse_photo_url", "order_survey_photos", "order_checklist",
	"order_special_notes", "order_hasil_slik", "order_banding_reason", "order_decision_reason",
	"order_survey_date", "order_updated_at",
}

var sortColumns = map[string]string{
	"created_at":    "order_created_at",
	"updated_at":    "order_updated_at",
	"customer_name": "order_customer_name",
	"otr":           "order_otr",
	"status":        "order_status",
}

type gormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// Truncate ke mikrodetik: presisi timestamptz Postgres.
func DBTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func (r *gormRepository) Transaction(ctx context.Context, fn func(tx Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormRepository{db: tx})
	})
}

func (r *gormRepository) Create(ctx context.Context, o *model.OrderModel) error {
	return r.db.WithContext(ctx).Omit("OrderNotes").Create(o).Error
}

func (r *gormRepository) load(ctx context.Context, id uuid.UUID, lock bool) (*model.OrderModel, error) {
	q := r.db.WithContext(ctx)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var o model.OrderModel
	if err := q.First(&o, "order_id = ?", id).Error; err != nil {
		return nil, err
	}
	var notes []model.OrderNoteModel
	if err := r.db.WithContext(ctx).
		Where("order_note_order_id = ?", id).
		Order("order_note_created_at ASC, order_note_id ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}
	o.OrderNotes = notes
	return &o, nil
}

func (r *gormRepository) Load(ctx context.Context, id uuid.UUID) (*model.OrderModel, error) {
	return r.load(ctx, id, false)
}

func (r *gormRepository) LoadForUpdate(ctx context.Context, id uuid.UUID) (*model.OrderModel, error) {
	return r.load(ctx, id, true)
}

func (r *gormRepository) Save(ctx context.Context, o *model.OrderModel, expectedUpdatedAt *time.Time) error {
	q := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_id = ?", o.OrderID)
	if expectedUpdatedAt != nil {
		q = q.Where("order_updated_at = ?", DBTime(*expectedUpdatedAt))
	}

	res := q.Select(saveColumns).Updates(o)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		if expectedUpdatedAt != nil {
			return workflow.ErrStaleOrder
		}
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) AppendNote(ctx context.Context, note *model.OrderNoteModel) error {
	return r.db.WithContext(ctx).Create(note).Error
}

func (r *gormRepository) AppendSurveyPhoto(ctx context.Context, id uuid.UUID, url string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&model.OrderModel{}).
		Where("order_id = ?", id).
		Updates(map[string]any{
			"order_survey_photos": gorm.Expr("array_append(order_survey_photos, ?)", url),
			"order_updated_at":    DBTime(at),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) SoftDelete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.OrderModel{}, "order_id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *gormRepository) filtered(ctx context.Context, f ListFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&model.OrderModel{})
	if len(f.Statuses) > 0 {
		q = q.Where("order_status IN ?", f.Statuses)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + s + "%"
		q = q.Where("order_customer_name ILIKE ? OR order_customer_phone ILIKE ? OR CAST(order_number AS TEXT) = ?", like, like, s)
	}
	if f.SalesID != nil {
		q = q.Where("order_sales_id = ?", *f.SalesID)
	}
	if f.CMOID != nil {
		q = q.Where("order_cmo_id = ?", *f.CMOID)
	}
	if f.ClaimedBy != nil {
		q = q.Where("order_claimed_by = ?", *f.ClaimedBy)
	}
	if f.DealerID != nil {
		q = q.Where("order_dealer_id = ?", *f.DealerID)
	}
	if b := strings.TrimSpace(f.Brand); b != "" {
		q = q.Where("order_brand ILIKE ?", b)
	}
	if f.From != nil {
		q = q.Where("order_created_at >= ?", *f.From)
	}
	if f.To != nil {
		q = q.Where("order_created_at < ?", *f.To)
	}
	return q
}

func (r *gormRepository) List(ctx context.Context, f ListFilter, p helper.Params) ([]model.OrderModel, int64, error) {
	var total int64
	if err := r.filtered(ctx, f).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.OrderModel
	err := r.filtered(ctx, f).
		Order(p.SafeOrder(sortColumns, "created_at")).
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&rows).Error
	return rows, total, err
}

func (r *gormRepository) CountByStatus(ctx context.Context, f ListFilter) (map[workflow.Status]int64, error) {
	var rows []struct {
		Status workflow.Status
		Total  int64
	}
	if err := r.filtered(ctx, f).
		Select("order_status AS status, COUNT(*) AS total").
		Group("order_status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[workflow.Status]int64, len(workflow.AllStatuses))
	for _, s := range workflow.AllStatuses {
		out[s] = 0
	}
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}

func (r *gormRepository) CountCreatedSince(ctx context.Context, f ListFilter, since time.Time) (int64, error) {
	var n int64
	err := r.filtered(ctx, f).Where("order_created_at >= ?", since).Count(&n).Error
	return n, err
}
