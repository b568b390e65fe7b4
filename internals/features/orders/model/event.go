package model

import (
	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"

	"kreditku_backend/internals/features/orders/workflow"
)

type EventKind string

const (
	EventOrderCreated  EventKind = "order_created"
	EventStatusChanged EventKind = "status_changed"
)

// Event dikirim ke Notifier setelah order dibuat atau status berubah.
type Event struct {
	Kind         EventKind
	OrderID      uuid.UUID
	OrderNumber  snowflake.ID
	CustomerName string

	From      workflow.Status
	NewStatus workflow.Status

	ActorID   uuid.UUID
	ActorName string
	ActorRole workflow.Role
	Note      string

	// penerima potensial
	SalesID   uuid.UUID
	CMOID     *uuid.UUID
	ClaimedBy *uuid.UUID
}
