package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"kreditku_backend/internals/features/notifications/model"
	orderModel "kreditku_backend/internals/features/orders/model"
	"kreditku_backend/internals/features/orders/workflow"
)

// Directory menjawab "siapa saja user aktif dengan role X".
type Directory interface {
	ActiveUserIDs(ctx context.Context, role workflow.Role) ([]uuid.UUID, error)
}

// Recipients:
//   - order baru → semua CMO aktif (+ CMO yang ditunjuk)
//   - status berubah → sales pemilik + CMO yang claim, ditambah semua CMH jika masuk Pertimbangkan
//
// Aktor tidak pernah menerima notifikasi dari aksinya sendiri.
func Recipients(ctx context.Context, dir Directory, ev orderModel.Event) ([]uuid.UUID, error) {
	seen := map[uuid.UUID]bool{ev.ActorID: true, uuid.Nil: true}
	out := make([]uuid.UUID, 0, 4)
	add := func(ids ...uuid.UUID) {
		for _, id := range ids {
			if !seen[id] {
				seen[id] = true
				out = append(out, id)
			}
		}
	}

	switch ev.Kind {
	case orderModel.EventOrderCreated:
		if ev.CMOID != nil {
			add(*ev.CMOID)
		}
		cmos, err := dir.ActiveUserIDs(ctx, workflow.RoleCMO)
		if err != nil {
			return nil, err
		}
		add(cmos...)

	case orderModel.EventStatusChanged:
		add(ev.SalesID)
		if ev.ClaimedBy != nil {
			add(*ev.ClaimedBy)
		}
		if ev.NewStatus == workflow.StatusPertimbangkan {
			heads, err := dir.ActiveUserIDs(ctx, workflow.RoleCMH)
			if err != nil {
				return nil, err
			}
			add(heads...)
		}

	default:
		return nil, fmt.Errorf("jenis event tidak dikenal: %q", ev.Kind)
	}
	return out, nil
}

func title(ev orderModel.Event) string {
	switch ev.Kind {
	case orderModel.EventOrderCreated:
		return fmt.Sprintf("Order baru #%s: %s", ev.OrderNumber, ev.CustomerName)
	default:
		return fmt.Sprintf("Order #%s: %s → %s", ev.OrderNumber, ev.From, ev.NewStatus)
	}
}

func body(ev orderModel.Event) string {
	if ev.Note != "" {
		return fmt.Sprintf("%s (%s): %s", ev.ActorName, ev.ActorRole, ev.Note)
	}
	return fmt.Sprintf("oleh %s (%s)", ev.ActorName, ev.ActorRole)
}

// BuildRows menyusun satu NotificationModel per penerima.
func BuildRows(ev orderModel.Event, recipients []uuid.UUID) []model.NotificationModel {
	orderID := ev.OrderID
	rows := make([]model.NotificationModel, 0, len(recipients))
	for _, uid := range recipients {
		rows = append(rows, model.NotificationModel{
			NotificationUserID:  uid,
			NotificationOrderID: &orderID,
			NotificationKind:    string(ev.Kind),
			NotificationTitle:   title(ev),
			NotificationBody:    body(ev),
			NotificationMeta: map[string]any{
				"order_number": ev.OrderNumber.String(),
				"from":         string(ev.From),
				"status":       string(ev.NewStatus),
				"actor_id":     ev.ActorID.String(),
			},
		})
	}
	return rows
}
