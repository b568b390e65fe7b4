package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kreditku_backend/internals/features/notifications/model"
	"kreditku_backend/internals/features/orders/workflow"
	userModel "kreditku_backend/internals/features/users/user/model"
)

// Sink menyimpan baris notifikasi.
type Sink interface {
	Insert(ctx context.Context, rows []model.NotificationModel) error
}

// GormStore = Directory + Sink di atas Postgres.
type GormStore struct {
	DB *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{DB: db}
}

func (s *GormStore) ActiveUserIDs(ctx context.Context, role workflow.Role) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := s.DB.WithContext(ctx).
		Model(&userModel.UserModel{}).
		Where("role = ? AND is_active = ?", string(role), true).
		Pluck("id", &ids).Error
	return ids, err
}

func (s *GormStore) Insert(ctx context.Context, rows []model.NotificationModel) error {
	if len(rows) == 0 {
		return nil
	}
	return s.DB.WithContext(ctx).CreateInBatches(&rows, 500).Error
}

/* =========================
   Query (polling API)
   ========================= */

type ListQuery struct {
	Since      *time.Time
	UnreadOnly bool
	Limit      int
	Offset     int
}

func (s *GormStore) List(ctx context.Context, userID uuid.UUID, q ListQuery) ([]model.NotificationModel, int64, error) {
	tx := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ?", userID)
	if q.Since != nil {
		tx = tx.Where("notification_created_at > ?", *q.Since)
	}
	if q.UnreadOnly {
		tx = tx.Where("notification_is_read = ?", false)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var rows []model.NotificationModel
	err := tx.Order("notification_created_at DESC").
		Limit(q.Limit).Offset(q.Offset).
		Find(&rows).Error
	return rows, total, err
}

func (s *GormStore) UnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Count(&n).Error
	return n, err
}

// MarkRead hanya untuk notifikasi milik user; ErrRecordNotFound jika bukan.
func (s *GormStore) MarkRead(ctx context.Context, userID, id uuid.UUID, at time.Time) error {
	res := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_id = ? AND notification_user_id = ?", id, userID).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (s *GormStore) MarkAllRead(ctx context.Context, userID uuid.UUID, at time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).Model(&model.NotificationModel{}).
		Where("notification_user_id = ? AND notification_is_read = ?", userID, false).
		Updates(map[string]any{
			"notification_is_read": true,
			"notification_read_at": at,
		})
	return res.RowsAffected, res.Error
}

// PurgeReadBefore dipakai cron cleanup dan CLI.
func (s *GormStore) PurgeReadBefore(ctx context.Context, before time.Time) (int64, error) {
	res := s.DB.WithContext(ctx).
		Where("notification_is_read = ? AND notification_created_at < ?", true, before).
		Delete(&model.NotificationModel{})
	return res.RowsAffected, res.Error
}
