package repository

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"kreditku_backend/internals/features/orders/model"
	"kreditku_backend/internals/features/orders/workflow"
)

// sqlLog mengumpulkan SQL yang dibangun gorm dalam mode DryRun.
type sqlLog struct {
	mu   sync.Mutex
	stmt []string
}

func (l *sqlLog) add(tx *gorm.DB) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.stmt = append(l.stmt, tx.Statement.SQL.String())
}

func (l *sqlLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.stmt...)
}

// dryRunDB: tidak pernah konek ke Postgres, hanya membangun SQL.
func dryRunDB(t *testing.T) (*gorm.DB, *sqlLog) {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=127.0.0.1 user=test dbname=test sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)

	log := &sqlLog{}
	require.NoError(t, db.Callback().Query().After("gorm:query").Register("test:sql_log", log.add))
	require.NoError(t, db.Callback().Update().After("gorm:update").Register("test:sql_log", log.add))
	return db, log
}

func TestLoadForUpdate_LocksOrderRow(t *testing.T) {
	db, log := dryRunDB(t)
	repo := NewGormRepository(db)

	_, err := repo.LoadForUpdate(context.Background(), uuid.New())
	require.NoError(t, err)

	stmts := log.all()
	require.NotEmpty(t, stmts)
	assert.Contains(t, stmts[0], `FROM "orders"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(stmts[0]), "FOR UPDATE"), stmts[0])

	// catatan dibaca tanpa lock
	for _, s := range stmts[1:] {
		assert.NotContains(t, s, "FOR UPDATE")
	}
}

func TestLoad_DoesNotLock(t *testing.T) {
	db, log := dryRunDB(t)
	repo := NewGormRepository(db)

	_, err := repo.Load(context.Background(), uuid.New())
	require.NoError(t, err)

	stmts := log.all()
	require.NotEmpty(t, stmts)
	for _, s := range stmts {
		assert.NotContains(t, s, "FOR UPDATE")
	}
}

func TestSave_ExpectedUpdatedAtGuardsWrite(t *testing.T) {
	db, log := dryRunDB(t)
	repo := NewGormRepository(db)

	o := &model.OrderModel{
		OrderID:        uuid.New(),
		OrderStatus:    workflow.StatusProses,
		OrderUpdatedAt: time.Now(),
	}
	expected := time.Now().Add(-time.Minute)

	// DryRun tidak menyentuh baris mana pun → diperlakukan sebagai stale
	err := repo.Save(context.Background(), o, &expected)
	assert.ErrorIs(t, err, workflow.ErrStaleOrder)

	stmts := log.all()
	require.Len(t, stmts, 1)
	sql := stmts[0]
	assert.True(t, strings.HasPrefix(sql, `UPDATE "orders" SET`), sql)
	assert.Contains(t, sql, "WHERE order_id = $")
	assert.Contains(t, sql, "AND order_updated_at = $")
	assert.Contains(t, sql, `"order_status"=$`)
	assert.NotContains(t, sql, `"order_created_at"=`)
	assert.NotContains(t, sql, `"order_sales_id"=`)
	assert.NotContains(t, sql, `"order_number"=`)
}

func TestSave_WithoutExpectedUpdatedAt(t *testing.T) {
	db, log := dryRunDB(t)
	repo := NewGormRepository(db)

	o := &model.OrderModel{OrderID: uuid.New(), OrderStatus: workflow.StatusBaru, OrderUpdatedAt: time.Now()}

	err := repo.Save(context.Background(), o, nil)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	stmts := log.all()
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], "WHERE order_id = $")
	assert.NotContains(t, stmts[0], "order_updated_at = $")
}
