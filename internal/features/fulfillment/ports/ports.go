package ports

import (
	"context"
	"time"

	"fulfillment-admin/internal/features/fulfillment/domain"
)

// FulfillmentService defines the primary port for order fulfillment
// operations. Every action method validates, dispatches and returns the
// refreshed order snapshot.
type FulfillmentService interface {
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
	ListActions(ctx context.Context, orderID string) ([]domain.ActionOption, error)

	UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus, adminNotes string) (*domain.Order, error)
	MarkReady(ctx context.Context, orderID string, confirmed bool) (*domain.Order, error)
	MarkCollected(ctx context.Context, orderID, collectedBy string, idType domain.CollectorIDType, idNumber string) (*domain.Order, error)
	CreateShipment(ctx context.Context, orderID string, payload domain.CreateShipmentPayload) (*domain.Order, error)
	MarkDelivered(ctx context.Context, orderID, shipmentID string, deliveredAt time.Time, deliveryNotes, receivedBy string) (*domain.Order, error)
	CancelOrder(ctx context.Context, orderID, reason string, restoreInventory, initiateRefund bool, cancelledBy string) (*domain.Order, error)
}

// OrderStore defines the secondary port for reading orders from the remote
// order service, which remains the sole authority on order state.
type OrderStore interface {
	// GetOrder retrieves an order snapshot by its unique identifier.
	GetOrder(ctx context.Context, orderID string) (*domain.Order, error)
}

// ActionDispatcher defines the secondary port for sending validated action
// requests to the remote order service. A dispatch is optimistic: the remote
// side re-validates the transition and may decline it with
// domain.ErrRemoteRejected.
type ActionDispatcher interface {
	Dispatch(ctx context.Context, req domain.ActionRequest) error
}

// OrderCache defines the secondary port for short-lived order snapshot
// caching. Misses are reported as (nil, nil).
type OrderCache interface {
	Get(ctx context.Context, orderID string) (*domain.Order, error)
	Save(ctx context.Context, order *domain.Order) error
	Invalidate(ctx context.Context, orderID string) error
}
