package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	dealerModel "kreditku_backend/internals/features/dealers/model"
	"kreditku_backend/internals/features/orders/dto"
	"kreditku_backend/internals/features/orders/model"
	"kreditku_backend/internals/features/orders/repository"
	"kreditku_backend/internals/features/orders/workflow"
	programModel "kreditku_backend/internals/features/programs/model"
	"kreditku_backend/internals/features/simulations/calculator"
	userModel "kreditku_backend/internals/features/users/user/model"
	helper "kreditku_backend/internals/helpers"
)

/* =========================
   Fakes
   ========================= */

type memRepo struct {
	mu     sync.Mutex
	orders map[uuid.UUID]model.OrderModel
	notes  []model.OrderNoteModel
}

func newMemRepo() *memRepo {
	return &memRepo{orders: map[uuid.UUID]model.OrderModel{}}
}

// Transaction: snapshot lalu restore jika fn gagal
func (r *memRepo) Transaction(_ context.Context, fn func(tx repository.Repository) error) error {
	r.mu.Lock()
	orders := make(map[uuid.UUID]model.OrderModel, len(r.orders))
	for k, v := range r.orders {
		orders[k] = v
	}
	notes := append([]model.OrderNoteModel(nil), r.notes...)
	r.mu.Unlock()

	if err := fn(r); err != nil {
		r.mu.Lock()
		r.orders, r.notes = orders, notes
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *memRepo) Create(_ context.Context, o *model.OrderModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.OrderID] = *o
	return nil
}

func (r *memRepo) Load(_ context.Context, id uuid.UUID) (*model.OrderModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	o.OrderNotes = nil
	for _, n := range r.notes {
		if n.OrderNoteOrderID == id {
			o.OrderNotes = append(o.OrderNotes, n)
		}
	}
	o.OrderSurveyPhotos = append([]string(nil), o.OrderSurveyPhotos...)
	return &o, nil
}

func (r *memRepo) LoadForUpdate(ctx context.Context, id uuid.UUID) (*model.OrderModel, error) {
	return r.Load(ctx, id)
}

func (r *memRepo) Save(_ context.Context, o *model.OrderModel, expected *time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.orders[o.OrderID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if expected != nil && !cur.OrderUpdatedAt.Equal(repository.DBTime(*expected)) {
		return workflow.ErrStaleOrder
	}
	cp := *o
	cp.OrderNotes = nil
	r.orders[o.OrderID] = cp
	return nil
}

func (r *memRepo) AppendNote(_ context.Context, n *model.OrderNoteModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notes = append(r.notes, *n)
	return nil
}

func (r *memRepo) AppendSurveyPhoto(_ context.Context, id uuid.UUID, url string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	o.OrderSurveyPhotos = append(append([]string(nil), o.OrderSurveyPhotos...), url)
	o.OrderUpdatedAt = at
	r.orders[id] = o
	return nil
}

func (r *memRepo) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.orders[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.orders, id)
	return nil
}

func (r *memRepo) match(o model.OrderModel, f repository.ListFilter) bool {
	if f.SalesID != nil && o.OrderSalesID != *f.SalesID {
		return false
	}
	if len(f.Statuses) > 0 {
		ok := false
		for _, s := range f.Statuses {
			ok = ok || s == o.OrderStatus
		}
		if !ok {
			return false
		}
	}
	return true
}

func (r *memRepo) List(_ context.Context, f repository.ListFilter, _ helper.Params) ([]model.OrderModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.OrderModel
	for _, o := range r.orders {
		if r.match(o, f) {
			out = append(out, o)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderNumber < out[j].OrderNumber })
	return out, int64(len(out)), nil
}

func (r *memRepo) CountByStatus(_ context.Context, f repository.ListFilter) (map[workflow.Status]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := map[workflow.Status]int64{}
	for _, s := range workflow.AllStatuses {
		out[s] = 0
	}
	for _, o := range r.orders {
		if r.match(o, f) {
			out[o.OrderStatus]++
		}
	}
	return out, nil
}

func (r *memRepo) CountCreatedSince(_ context.Context, f repository.ListFilter, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, o := range r.orders {
		if r.match(o, f) && !o.OrderCreatedAt.Before(since) {
			n++
		}
	}
	return n, nil
}

type recNotifier struct {
	events []model.Event
}

func (n *recNotifier) Notify(_ context.Context, ev model.Event) { n.events = append(n.events, ev) }

type memStore struct {
	keys []string
}

func (s *memStore) Put(_ context.Context, key string, _ []byte) (string, error) {
	s.keys = append(s.keys, key)
	return "/uploads/" + key, nil
}

type memCatalog struct {
	program *programModel.ProgramModel
	dealer  *dealerModel.DealerModel
	users   map[uuid.UUID]*userModel.UserModel
}

func (c *memCatalog) Program(_ context.Context, id uuid.UUID) (*programModel.ProgramModel, error) {
	if c.program == nil || c.program.ProgramID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return c.program, nil
}

func (c *memCatalog) Dealer(_ context.Context, id uuid.UUID) (*dealerModel.DealerModel, error) {
	if c.dealer == nil || c.dealer.DealerID != id {
		return nil, gorm.ErrRecordNotFound
	}
	return c.dealer, nil
}

func (c *memCatalog) User(_ context.Context, id uuid.UUID) (*userModel.UserModel, error) {
	u, ok := c.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

/* =========================
   Fixture
   ========================= */

var testNow = time.Date(2025, 6, 2, 3, 4, 5, 123456789, time.UTC)

type fixture struct {
	svc      *Service
	repo     *memRepo
	notifier *recNotifier
	store    *memStore
	catalog  *memCatalog
	clock    *time.Time

	sales, sales2, cmo, cmh, admin workflow.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		repo:     newMemRepo(),
		notifier: &recNotifier{},
		store:    &memStore{},
		sales:    workflow.Actor{ID: uuid.New(), Name: "Sari", Role: workflow.RoleSales},
		sales2:   workflow.Actor{ID: uuid.New(), Name: "Dodi", Role: workflow.RoleSales},
		cmo:      workflow.Actor{ID: uuid.New(), Name: "Andi", Role: workflow.RoleCMO},
		cmh:      workflow.Actor{ID: uuid.New(), Name: "Rina", Role: workflow.RoleCMH},
		admin:    workflow.Actor{ID: uuid.New(), Name: "Admin", Role: workflow.RoleAdmin},
	}
	now := testNow
	f.clock = &now

	f.catalog = &memCatalog{
		program: &programModel.ProgramModel{
			ProgramID:                 uuid.New(),
			ProgramName:               "Reguler",
			ProgramBrand:              "Honda",
			ProgramFinancingType:      programModel.FinancingKonvensional,
			ProgramDownPaymentPercent: decimal.RequireFromString("20"),
			ProgramIsActive:           true,
			ProgramTenors: []programModel.ProgramTenorModel{
				{ProgramTenorMonths: 12, ProgramTenorAnnualRate: decimal.RequireFromString("3")},
				{ProgramTenorMonths: 36, ProgramTenorAnnualRate: decimal.RequireFromString("5")},
			},
		},
		dealer: &dealerModel.DealerModel{DealerID: uuid.New(), DealerName: "Honda Sentosa", DealerBrand: "Honda", DealerIsActive: true},
		users: map[uuid.UUID]*userModel.UserModel{
			f.cmo.ID: {ID: f.cmo.ID, FullName: f.cmo.Name, Role: "cmo", IsActive: true},
			f.cmh.ID: {ID: f.cmh.ID, FullName: f.cmh.Name, Role: "cmh", IsActive: true},
		},
	}

	node, err := snowflake.NewNode(7)
	require.NoError(t, err)

	clock := func() time.Time { return *f.clock }
	svc, err := New(Deps{
		Repo:     f.repo,
		Engine:   workflow.NewEngine(workflow.WithClock(clock)),
		Notifier: f.notifier,
		Catalog:  f.catalog,
		Numbers:  node,
		Store:    f.store,
		Now:      clock,
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *fixture) tick() {
	next := f.clock.Add(time.Minute)
	f.clock = &next
}

func (f *fixture) createReq() dto.CreateOrderRequest {
	return dto.CreateOrderRequest{
		OrderCustomerName:  "  Budi Santoso ",
		OrderCustomerPhone: "08123456789",
		OrderUnitType:      "Vario 160",
		OrderDealerID:      f.catalog.dealer.DealerID,
		OrderProgramID:     f.catalog.program.ProgramID,
		OrderOTR:           30_000_000,
		OrderDownPayment:   6_000_000,
		OrderTenor:         36,
	}
}

func (f *fixture) create(t *testing.T) *model.OrderModel {
	t.Helper()
	o, err := f.svc.Create(context.Background(), f.sales, f.createReq())
	require.NoError(t, err)
	f.notifier.events = nil
	return o
}

func fiberCode(t *testing.T, err error) int {
	t.Helper()
	var fe *fiber.Error
	require.True(t, errors.As(err, &fe), "expected *fiber.Error, got %v", err)
	return fe.Code
}

/* =========================
   Create
   ========================= */

func TestCreate_ComputesInstallmentFromProgramRate(t *testing.T) {
	f := newFixture(t)

	o, err := f.svc.Create(context.Background(), f.sales, f.createReq())
	require.NoError(t, err)

	want, err := calculator.Installment(30_000_000, 6_000_000, 36, 5)
	require.NoError(t, err)

	assert.Equal(t, workflow.StatusBaru, o.OrderStatus)
	assert.Equal(t, want, o.OrderInstallment)
	assert.True(t, o.OrderAnnualRate.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, "Budi Santoso", o.OrderCustomerName)
	assert.Equal(t, "Honda", o.OrderBrand)
	assert.Equal(t, "Honda Sentosa", o.OrderDealerName)
	assert.Equal(t, f.sales.ID, o.OrderSalesID)
	assert.NotZero(t, o.OrderNumber)
	assert.Equal(t, testNow.Truncate(time.Microsecond), o.OrderUpdatedAt)

	require.Len(t, f.notifier.events, 1)
	ev := f.notifier.events[0]
	assert.Equal(t, model.EventOrderCreated, ev.Kind)
	assert.Equal(t, workflow.StatusBaru, ev.NewStatus)
	assert.Equal(t, f.sales.ID, ev.ActorID)
}

func TestCreate_DoesNotEnforceProgramMinimumDownPayment(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.OrderDownPayment = 0 // minimum program 20%

	o, err := f.svc.Create(context.Background(), f.sales, req)
	require.NoError(t, err)
	assert.Positive(t, o.OrderInstallment)
}

func TestCreate_RejectsTenorOutsideProgram(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.OrderTenor = 24

	_, err := f.svc.Create(context.Background(), f.sales, req)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
	assert.Empty(t, f.notifier.events)
}

func TestCreate_DownPaymentAboveOTRIsInvalid(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.OrderDownPayment = req.OrderOTR + 1

	_, err := f.svc.Create(context.Background(), f.sales, req)
	assert.ErrorIs(t, err, calculator.ErrInvalidInput)
}

func TestCreate_OnlySalesOrAdmin(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Create(context.Background(), f.cmo, f.createReq())
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))
}

func TestCreate_AssignsCMO(t *testing.T) {
	f := newFixture(t)
	req := f.createReq()
	req.OrderCMOID = &f.cmo.ID

	o, err := f.svc.Create(context.Background(), f.sales, req)
	require.NoError(t, err)
	require.NotNil(t, o.OrderCMOName)
	assert.Equal(t, "Andi", *o.OrderCMOName)

	req.OrderCMOID = &f.cmh.ID
	_, err = f.svc.Create(context.Background(), f.sales, req)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusUnprocessableEntity, fiberCode(t, err))
}

/* =========================
   Transition
   ========================= */

func TestTransition_ClaimPersistsAndNotifies(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	f.tick()

	res, err := f.svc.Transition(context.Background(), f.cmo, o.OrderID, dto.TransitionRequest{Action: "claim"})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusBaru, res.From)
	assert.Equal(t, workflow.StatusClaim, res.To)
	assert.True(t, res.StatusChanged)

	stored, err := f.repo.Load(context.Background(), o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusClaim, stored.OrderStatus)
	require.NotNil(t, stored.OrderClaimedBy)
	assert.Equal(t, f.cmo.ID, *stored.OrderClaimedBy)
	require.Len(t, stored.OrderNotes, 1)
	assert.Equal(t, workflow.StatusClaim, stored.OrderNotes[0].OrderNoteStatus)
	assert.Equal(t, "cmo", stored.OrderNotes[0].OrderNoteAuthorRole)

	require.Len(t, f.notifier.events, 1)
	ev := f.notifier.events[0]
	assert.Equal(t, model.EventStatusChanged, ev.Kind)
	assert.Equal(t, workflow.StatusClaim, ev.NewStatus)
	assert.Equal(t, f.sales.ID, ev.SalesID)
}

func TestTransition_AddNoteDoesNotNotify(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)

	res, err := f.svc.AddNote(context.Background(), f.cmh, o.OrderID, dto.NoteRequest{Note: "  cek ulang slip gaji "})
	require.NoError(t, err)
	assert.False(t, res.StatusChanged)
	assert.Equal(t, "cek ulang slip gaji", res.Note.OrderNoteText)
	assert.Equal(t, workflow.StatusBaru, res.Order.OrderStatus)
	assert.Empty(t, f.notifier.events)
}

func TestTransition_IllegalLeavesOrderUntouched(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)

	_, err := f.svc.Transition(context.Background(), f.cmh, o.OrderID, dto.TransitionRequest{Action: "claim"})
	require.Error(t, err)
	assert.ErrorIs(t, err, workflow.ErrIllegalTransition)

	stored, err := f.repo.Load(context.Background(), o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusBaru, stored.OrderStatus)
	assert.Empty(t, stored.OrderNotes)
	assert.Empty(t, f.notifier.events)
}

func TestTransition_StaleExpectedUpdatedAt(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	seen := o.OrderUpdatedAt

	f.tick()
	_, err := f.svc.Transition(context.Background(), f.cmo, o.OrderID, dto.TransitionRequest{Action: "claim", ExpectedUpdatedAt: &seen})
	require.NoError(t, err)

	// CMO kedua masih memegang timestamp lama
	other := workflow.Actor{ID: uuid.New(), Name: "Joko", Role: workflow.RoleCMO}
	f.tick()
	_, err = f.svc.Transition(context.Background(), other, o.OrderID, dto.TransitionRequest{
		Action: "submit_slik", SlikResult: "Clear", ExpectedUpdatedAt: &seen,
	})
	assert.ErrorIs(t, err, workflow.ErrStaleOrder)

	stored, err := f.repo.Load(context.Background(), o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusClaim, stored.OrderStatus)
	assert.Len(t, stored.OrderNotes, 1)
	assert.Len(t, f.notifier.events, 1)
}

func TestTransition_FullPathToApprove(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	ctx := context.Background()

	steps := []struct {
		actor workflow.Actor
		req   dto.TransitionRequest
		want  workflow.Status
	}{
		{f.cmo, dto.TransitionRequest{Action: "claim"}, workflow.StatusClaim},
		{f.cmo, dto.TransitionRequest{Action: "submit_slik", SlikResult: "Ada Catatan"}, workflow.StatusPertimbangkan},
		{f.cmh, dto.TransitionRequest{Action: "decide", Decision: "Approve", Reason: "penghasilan cukup"}, workflow.StatusApprove},
	}
	for _, st := range steps {
		f.tick()
		res, err := f.svc.Transition(ctx, st.actor, o.OrderID, st.req)
		require.NoError(t, err)
		assert.Equal(t, st.want, res.To)
	}

	stored, err := f.repo.Load(ctx, o.OrderID)
	require.NoError(t, err)
	require.NotNil(t, stored.OrderHasilSlik)
	assert.Equal(t, "Ada Catatan", *stored.OrderHasilSlik)
	require.NotNil(t, stored.OrderDecisionReason)
	assert.Equal(t, "penghasilan cukup", *stored.OrderDecisionReason)
	assert.Len(t, stored.OrderNotes, 3)
	assert.Len(t, f.notifier.events, 3)

	_, err = f.svc.AddNote(ctx, f.cmh, o.OrderID, dto.NoteRequest{Note: "sudah final"})
	assert.ErrorIs(t, err, workflow.ErrIllegalTransition)
}

func TestTransition_DecideWithoutReason(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	ctx := context.Background()

	_, err := f.svc.Transition(ctx, f.cmo, o.OrderID, dto.TransitionRequest{Action: "claim"})
	require.NoError(t, err)
	_, err = f.svc.Transition(ctx, f.cmo, o.OrderID, dto.TransitionRequest{Action: "submit_slik", SlikResult: "Ada Catatan"})
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, f.cmh, o.OrderID, dto.TransitionRequest{Action: "decide", Decision: "Reject", Reason: "  "})
	assert.ErrorIs(t, err, workflow.ErrInvalidCommand)

	stored, err := f.repo.Load(ctx, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusPertimbangkan, stored.OrderStatus)
}

/* =========================
   Visibility, patch, stats
   ========================= */

func TestGet_SalesOnlySeesOwnOrders(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	ctx := context.Background()

	_, err := f.svc.Get(ctx, f.sales2, o.OrderID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	d, err := f.svc.Get(ctx, f.cmo, o.OrderID)
	require.NoError(t, err)
	assert.Equal(t, []workflow.Action{workflow.ActionClaim, workflow.ActionAddNote}, d.AvailableActions)

	d, err = f.svc.Get(ctx, f.sales, o.OrderID)
	require.NoError(t, err)
	assert.Empty(t, d.AvailableActions)
}

func TestPatch_RecomputesInstallment(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)

	tenor := 12
	dp := int64(9_000_000)
	f.tick()
	got, err := f.svc.Patch(context.Background(), f.sales, o.OrderID, dto.PatchOrderRequest{
		OrderTenor:       &tenor,
		OrderDownPayment: &dp,
	})
	require.NoError(t, err)

	want, err := calculator.Installment(30_000_000, 9_000_000, 12, 3)
	require.NoError(t, err)
	assert.Equal(t, want, got.OrderInstallment)
	assert.True(t, got.OrderAnnualRate.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, workflow.StatusBaru, got.OrderStatus)
}

func TestPatch_SalesLockedAfterClaim(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	ctx := context.Background()

	_, err := f.svc.Transition(ctx, f.cmo, o.OrderID, dto.TransitionRequest{Action: "claim"})
	require.NoError(t, err)

	name := "Budi S."
	_, err = f.svc.Patch(ctx, f.sales, o.OrderID, dto.PatchOrderRequest{OrderCustomerName: &name})
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	got, err := f.svc.Patch(ctx, f.admin, o.OrderID, dto.PatchOrderRequest{OrderCustomerName: &name})
	require.NoError(t, err)
	assert.Equal(t, name, got.OrderCustomerName)
	assert.Equal(t, workflow.StatusClaim, got.OrderStatus)
}

func TestStats_ScopedForSales(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	o := f.create(t)
	f.create(t)
	_, err := f.svc.Create(ctx, f.sales2, f.createReq())
	require.NoError(t, err)

	_, err = f.svc.Transition(ctx, f.cmo, o.OrderID, dto.TransitionRequest{Action: "claim"})
	require.NoError(t, err)

	all, err := f.svc.Stats(ctx, f.admin, repository.ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, all.Total)
	assert.EqualValues(t, 2, all.ByStatus[workflow.StatusBaru])
	assert.EqualValues(t, 1, all.ByStatus[workflow.StatusClaim])
	assert.EqualValues(t, 3, all.CreatedToday)

	own, err := f.svc.Stats(ctx, f.sales, repository.ListFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, own.Total)
}

/* =========================
   Photos & delete
   ========================= */

func TestUploadPhoto_Permissions(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	ctx := context.Background()

	_, err := f.svc.UploadPhoto(ctx, f.cmo, o.OrderID, PhotoKTP, []byte("x"))
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	got, err := f.svc.UploadPhoto(ctx, f.sales, o.OrderID, PhotoKTP, []byte("x"))
	require.NoError(t, err)
	require.NotNil(t, got.OrderKTPPhotoURL)

	_, err = f.svc.UploadPhoto(ctx, f.cmo, o.OrderID, PhotoSurvey, []byte("x"))
	require.NoError(t, err)
	_, err = f.svc.UploadPhoto(ctx, f.cmo, o.OrderID, PhotoSurvey, []byte("y"))
	require.NoError(t, err)

	stored, err := f.repo.Load(ctx, o.OrderID)
	require.NoError(t, err)
	assert.Len(t, stored.OrderSurveyPhotos, 2)
	assert.Len(t, f.store.keys, 3)

	_, err = f.svc.UploadPhoto(ctx, f.sales, o.OrderID, PhotoKind("selfie"), nil)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusBadRequest, fiberCode(t, err))
}

func TestDelete_AdminOnly(t *testing.T) {
	f := newFixture(t)
	o := f.create(t)
	ctx := context.Background()

	err := f.svc.Delete(ctx, f.sales, o.OrderID)
	require.Error(t, err)
	assert.Equal(t, fiber.StatusForbidden, fiberCode(t, err))

	require.NoError(t, f.svc.Delete(ctx, f.admin, o.OrderID))
	_, err = f.svc.Get(ctx, f.admin, o.OrderID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
