package service

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"kreditku_backend/internals/configs"
	"kreditku_backend/internals/features/orders/dto"
	"kreditku_backend/internals/features/orders/model"
	"kreditku_backend/internals/features/orders/repository"
	"kreditku_backend/internals/features/orders/workflow"
	programService "kreditku_backend/internals/features/programs/service"
	"kreditku_backend/internals/features/simulations/calculator"
	helper "kreditku_backend/internals/helpers"
	"kreditku_backend/internals/helpers/dbtime"
)

// Notifier menerima event order. Implementasi tidak boleh memblokir
// dan kegagalannya tidak membatalkan transisi.
type Notifier interface {
	Notify(ctx context.Context, ev model.Event)
}

type NopNotifier struct{}

func (NopNotifier) Notify(context.Context, model.Event) {}

type PhotoKind string

const (
	PhotoKTP        PhotoKind = "ktp"
	PhotoKTPSpouse  PhotoKind = "ktp_pasangan"
	PhotoSurvey     PhotoKind = "survey"
	photoKeyPrefix            = "orders/"
	defaultNumberNo           = 1
)

func (k PhotoKind) Valid() bool {
	switch k {
	case PhotoKTP, PhotoKTPSpouse, PhotoSurvey:
		return true
	}
	return false
}

type Deps struct {
	Repo     repository.Repository
	Engine   *workflow.Engine
	Notifier Notifier
	Catalog  Catalog
	Numbers  *snowflake.Node
	Store    helper.FileStore
	Now      func() time.Time
}

type Service struct {
	repo     repository.Repository
	engine   *workflow.Engine
	notifier Notifier
	catalog  Catalog
	numbers  *snowflake.Node
	store    helper.FileStore
	now      func() time.Time
}

func New(d Deps) (*Service, error) {
	s := &Service{
		repo:     d.Repo,
		engine:   d.Engine,
		notifier: d.Notifier,
		catalog:  d.Catalog,
		numbers:  d.Numbers,
		store:    d.Store,
		now:      d.Now,
	}
	if s.repo == nil || s.catalog == nil {
		return nil, errors.New("orders: Repo dan Catalog wajib diisi")
	}
	if s.engine == nil {
		s.engine = workflow.NewEngine()
	}
	if s.notifier == nil {
		s.notifier = NopNotifier{}
	}
	if s.numbers == nil {
		n, err := snowflake.NewNode(defaultNumberNo)
		if err != nil {
			return nil, err
		}
		s.numbers = n
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s, nil
}

func (s *Service) clock() time.Time {
	return repository.DBTime(s.now())
}

/* =========================
   Visibility & permission
   ========================= */

// sales hanya melihat order miliknya; selain itu dianggap tidak ada
func canSee(actor workflow.Actor, o *model.OrderModel) bool {
	if actor.Role == workflow.RoleSales {
		return o.OrderSalesID == actor.ID
	}
	return true
}

func (s *Service) loadVisible(ctx context.Context, repo repository.Repository, actor workflow.Actor, id uuid.UUID, lock bool) (*model.OrderModel, error) {
	var (
		o   *model.OrderModel
		err error
	)
	if lock {
		o, err = repo.LoadForUpdate(ctx, id)
	} else {
		o, err = repo.Load(ctx, id)
	}
	if err != nil {
		return nil, err
	}
	if !canSee(actor, o) {
		return nil, gorm.ErrRecordNotFound
	}
	return o, nil
}

func canEditData(actor workflow.Actor, o *model.OrderModel) bool {
	switch actor.Role {
	case workflow.RoleAdmin:
		return true
	case workflow.RoleSales:
		return o.OrderSalesID == actor.ID && o.OrderStatus == workflow.StatusBaru
	}
	return false
}

/* =========================
   Create
   ========================= */

func (s *Service) Create(ctx context.Context, actor workflow.Actor, req dto.CreateOrderRequest) (*model.OrderModel, error) {
	if actor.Role != workflow.RoleSales && actor.Role != workflow.RoleAdmin {
		return nil, fiber.NewError(fiber.StatusForbidden, "Hanya sales/admin yang dapat membuat order")
	}
	req.Normalize()

	p, err := s.catalog.Program(ctx, req.OrderProgramID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Program tidak ditemukan")
		}
		return nil, err
	}
	if !p.ProgramIsActive {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Program tidak aktif")
	}
	rate, ok := programService.RateForTenor(p, req.OrderTenor)
	if !ok {
		return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Tenor tidak tersedia pada program ini")
	}

	// minimum TDP program tidak dicek di sini (hanya di simulasi)
	installment, err := calculator.Installment(req.OrderOTR, req.OrderDownPayment, req.OrderTenor, rate)
	if err != nil {
		return nil, err
	}

	dealer, err := s.catalog.Dealer(ctx, req.OrderDealerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Dealer tidak ditemukan")
		}
		return nil, err
	}

	now := s.clock()
	programID := p.ProgramID
	dealerID := dealer.DealerID
	o := &model.OrderModel{
		OrderID:              uuid.New(),
		OrderNumber:          s.numbers.Generate(),
		OrderCustomerName:    req.OrderCustomerName,
		OrderCustomerPhone:   req.OrderCustomerPhone,
		OrderSpouseName:      req.OrderSpouseName,
		OrderCustomerAddress: req.OrderCustomerAddress,
		OrderUnitType:        req.OrderUnitType,
		OrderBrand:           p.ProgramBrand,
		OrderDealerID:        &dealerID,
		OrderDealerName:      dealer.DealerName,
		OrderOTR:             req.OrderOTR,
		OrderDownPayment:     req.OrderDownPayment,
		OrderTenor:           req.OrderTenor,
		OrderAnnualRate:      decimal.NewFromFloat(rate),
		OrderInstallment:     installment,
		OrderFinancingType:   string(p.ProgramFinancingType),
		OrderProgramID:       &programID,
		OrderProgramName:     p.ProgramName,
		OrderSalesID:         actor.ID,
		OrderSalesName:       actor.Name,
		OrderStatus:          workflow.StatusBaru,
		OrderSurveyPhotos:    []string{},
		OrderSpecialNotes:    req.OrderSpecialNotes,
		OrderCreatedAt:       now,
		OrderUpdatedAt:       now,
	}

	if req.OrderCMOID != nil {
		if err := s.assignCMO(ctx, o, *req.OrderCMOID); err != nil {
			return nil, err
		}
	}
	var checklist model.Checklist
	if req.OrderChecklist != nil {
		checklist = *req.OrderChecklist
	}
	if err := o.SetChecklist(checklist); err != nil {
		return nil, err
	}
	if err := setSurveyDate(o, req.OrderSurveyDate); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, o); err != nil {
		return nil, err
	}

	s.notifier.Notify(context.WithoutCancel(ctx), model.Event{
		Kind:         model.EventOrderCreated,
		OrderID:      o.OrderID,
		OrderNumber:  o.OrderNumber,
		CustomerName: o.OrderCustomerName,
		NewStatus:    o.OrderStatus,
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ActorRole:    actor.Role,
		SalesID:      o.OrderSalesID,
		CMOID:        o.OrderCMOID,
	})
	return o, nil
}

func (s *Service) assignCMO(ctx context.Context, o *model.OrderModel, cmoID uuid.UUID) error {
	u, err := s.catalog.User(ctx, cmoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "CMO tidak ditemukan")
		}
		return err
	}
	if u.Role != string(workflow.RoleCMO) || !u.IsActive {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "User yang dipilih bukan CMO aktif")
	}
	id, name := u.ID, u.FullName
	o.OrderCMOID = &id
	o.OrderCMOName = &name
	return nil
}

func setSurveyDate(o *model.OrderModel, raw *string) error {
	if raw == nil {
		return nil
	}
	if *raw == "" {
		o.OrderSurveyDate = nil
		return nil
	}
	d, err := dbtime.ParseDate(*raw)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "order_survey_date harus berformat YYYY-MM-DD")
	}
	o.OrderSurveyDate = &d
	return nil
}

/* =========================
   Read
   ========================= */

func (s *Service) Get(ctx context.Context, actor workflow.Actor, id uuid.UUID) (*dto.OrderDetail, error) {
	o, err := s.loadVisible(ctx, s.repo, actor, id, false)
	if err != nil {
		return nil, err
	}
	return toDetail(o, actor.Role), nil
}

func toDetail(o *model.OrderModel, role workflow.Role) *dto.OrderDetail {
	c, err := o.Checklist()
	if err != nil {
		configs.Log.Warn("checklist order tidak valid", zap.String("order_id", o.OrderID.String()), zap.Error(err))
	}
	return &dto.OrderDetail{
		OrderModel:         o,
		ChecklistCompleted: c.Completed(),
		AvailableActions:   workflow.AvailableActions(o.OrderStatus, role),
	}
}

func scope(actor workflow.Actor, f repository.ListFilter) repository.ListFilter {
	if actor.Role == workflow.RoleSales {
		id := actor.ID
		f.SalesID = &id
	}
	return f
}

func (s *Service) List(ctx context.Context, actor workflow.Actor, f repository.ListFilter, p helper.Params) ([]model.OrderModel, int64, error) {
	return s.repo.List(ctx, scope(actor, f), p)
}

func (s *Service) Stats(ctx context.Context, actor workflow.Actor, f repository.ListFilter) (*dto.StatsResponse, error) {
	f = scope(actor, f)
	f.Statuses = nil

	byStatus, err := s.repo.CountByStatus(ctx, f)
	if err != nil {
		return nil, err
	}
	today, err := s.repo.CountCreatedSince(ctx, f, dbtime.StartOfDay(s.now()))
	if err != nil {
		return nil, err
	}
	var total int64
	for _, n := range byStatus {
		total += n
	}
	return &dto.StatsResponse{ByStatus: byStatus, Total: total, CreatedToday: today}, nil
}

/* =========================
   Patch (data saja)
   ========================= */

func (s *Service) Patch(ctx context.Context, actor workflow.Actor, id uuid.UUID, req dto.PatchOrderRequest) (*model.OrderModel, error) {
	var out *model.OrderModel
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		o, err := s.loadVisible(ctx, tx, actor, id, true)
		if err != nil {
			return err
		}
		if !canEditData(actor, o) {
			return fiber.NewError(fiber.StatusForbidden, "Order tidak dapat diubah pada status ini")
		}

		tenorBefore := o.OrderTenor
		req.ApplyTo(o)
		if req.OrderChecklist != nil {
			if err := o.SetChecklist(*req.OrderChecklist); err != nil {
				return err
			}
		}
		if err := setSurveyDate(o, req.OrderSurveyDate); err != nil {
			return err
		}
		if req.TermsChanged() {
			if err := s.recomputeTerms(ctx, o, tenorBefore); err != nil {
				return err
			}
		}

		o.OrderUpdatedAt = s.clock()
		if err := tx.Save(ctx, o, req.ExpectedUpdatedAt); err != nil {
			return err
		}
		out = o
		return nil
	})
	return out, err
}

// recomputeTerms: tenor baru → bunga diambil ulang dari program; selain itu pakai bunga tersimpan.
func (s *Service) recomputeTerms(ctx context.Context, o *model.OrderModel, tenorBefore int) error {
	rate := o.OrderAnnualRate.InexactFloat64()
	if o.OrderTenor != tenorBefore {
		if o.OrderProgramID == nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Order tanpa program tidak bisa ganti tenor")
		}
		p, err := s.catalog.Program(ctx, *o.OrderProgramID)
		if err != nil {
			return err
		}
		r, ok := programService.RateForTenor(p, o.OrderTenor)
		if !ok {
			return fiber.NewError(fiber.StatusUnprocessableEntity, "Tenor tidak tersedia pada program ini")
		}
		rate = r
		o.OrderAnnualRate = decimal.NewFromFloat(r)
	}
	installment, err := calculator.Installment(o.OrderOTR, o.OrderDownPayment, o.OrderTenor, rate)
	if err != nil {
		return err
	}
	o.OrderInstallment = installment
	return nil
}

/* =========================
   Transition
   ========================= */

// Transition: load → engine → simpan field + append catatan (satu tx) → notify.
func (s *Service) Transition(ctx context.Context, actor workflow.Actor, id uuid.UUID, req dto.TransitionRequest) (*dto.TransitionResponse, error) {
	cmd := req.ToCommand()

	var (
		out *dto.TransitionResponse
		mut workflow.Mutation
	)
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		o, err := s.loadVisible(ctx, tx, actor, id, true)
		if err != nil {
			return err
		}

		mut, err = s.engine.Attempt(o.OrderStatus, actor, cmd)
		if err != nil {
			return err
		}
		mut.UpdatedAt = repository.DBTime(mut.UpdatedAt)
		mut.Note.CreatedAt = repository.DBTime(mut.Note.CreatedAt)
		if mut.ClaimedAt != nil {
			at := repository.DBTime(*mut.ClaimedAt)
			mut.ClaimedAt = &at
		}

		o.ApplyMutation(mut)
		if err := tx.Save(ctx, o, req.ExpectedUpdatedAt); err != nil {
			return err
		}
		note := model.NoteFromDraft(o.OrderID, mut.Note)
		if err := tx.AppendNote(ctx, &note); err != nil {
			return err
		}
		o.OrderNotes = append(o.OrderNotes, note)

		out = &dto.TransitionResponse{
			Order:         o,
			Note:          note,
			From:          mut.From,
			To:            mut.To,
			StatusChanged: mut.StatusChanged,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if mut.StatusChanged {
		o := out.Order
		s.notifier.Notify(context.WithoutCancel(ctx), model.Event{
			Kind:         model.EventStatusChanged,
			OrderID:      o.OrderID,
			OrderNumber:  o.OrderNumber,
			CustomerName: o.OrderCustomerName,
			From:         mut.From,
			NewStatus:    mut.To,
			ActorID:      actor.ID,
			ActorName:    actor.Name,
			ActorRole:    actor.Role,
			Note:         mut.Note.Note,
			SalesID:      o.OrderSalesID,
			CMOID:        o.OrderCMOID,
			ClaimedBy:    o.OrderClaimedBy,
		})
	}
	return out, nil
}

func (s *Service) AddNote(ctx context.Context, actor workflow.Actor, id uuid.UUID, req dto.NoteRequest) (*dto.TransitionResponse, error) {
	return s.Transition(ctx, actor, id, dto.TransitionRequest{
		Action:            string(workflow.ActionAddNote),
		Note:              req.Note,
		ExpectedUpdatedAt: req.ExpectedUpdatedAt,
	})
}

/* =========================
   Photos
   ========================= */

func canUpload(actor workflow.Actor, o *model.OrderModel, kind PhotoKind) bool {
	if actor.Role == workflow.RoleAdmin {
		return true
	}
	if kind == PhotoSurvey {
		return actor.Role == workflow.RoleCMO || actor.Role == workflow.RoleCMH
	}
	return actor.Role == workflow.RoleSales && o.OrderSalesID == actor.ID
}

// UploadPhoto menyimpan foto (sudah WebP) lalu mencatat URL-nya di order.
func (s *Service) UploadPhoto(ctx context.Context, actor workflow.Actor, id uuid.UUID, kind PhotoKind, data []byte) (*model.OrderModel, error) {
	if !kind.Valid() {
		return nil, fiber.NewError(fiber.StatusBadRequest, "kind harus ktp, ktp_pasangan, atau survey")
	}
	if s.store == nil {
		return nil, fiber.NewError(fiber.StatusServiceUnavailable, "Penyimpanan file belum dikonfigurasi")
	}

	var out *model.OrderModel
	err := s.repo.Transaction(ctx, func(tx repository.Repository) error {
		o, err := s.loadVisible(ctx, tx, actor, id, true)
		if err != nil {
			return err
		}
		if !canUpload(actor, o, kind) {
			return fiber.NewError(fiber.StatusForbidden, "Anda tidak berhak mengunggah foto ini")
		}

		url, err := s.store.Put(ctx, helper.PhotoKey(photoKeyPrefix+o.OrderID.String(), string(kind)), data)
		if err != nil {
			return err
		}

		now := s.clock()
		switch kind {
		case PhotoSurvey:
			if err := tx.AppendSurveyPhoto(ctx, o.OrderID, url, now); err != nil {
				return err
			}
			o.OrderSurveyPhotos = append(o.OrderSurveyPhotos, url)
			o.OrderUpdatedAt = now
		case PhotoKTP:
			o.OrderKTPPhotoURL = &url
			o.OrderUpdatedAt = now
			if err := tx.Save(ctx, o, nil); err != nil {
				return err
			}
		case PhotoKTPSpouse:
			o.OrderKTPSpousePhotoURL = &url
			o.OrderUpdatedAt = now
			if err := tx.Save(ctx, o, nil); err != nil {
				return err
			}
		}
		out = o
		return nil
	})
	return out, err
}

/* =========================
   Delete
   ========================= */

func (s *Service) Delete(ctx context.Context, actor workflow.Actor, id uuid.UUID) error {
	if actor.Role != workflow.RoleAdmin {
		return fiber.NewError(fiber.StatusForbidden, "Hanya admin yang dapat menghapus order")
	}
	return s.repo.SoftDelete(ctx, id)
}
