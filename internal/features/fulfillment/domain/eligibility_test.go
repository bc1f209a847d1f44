package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func kinds(options []ActionOption) []ActionKind {
	out := make([]ActionKind, 0, len(options))
	for _, o := range options {
		out = append(out, o.Kind)
	}
	return out
}

func orderWith(status OrderStatus, method DeliveryMethod) *Order {
	return &Order{
		ID:             "ord-1",
		Status:         status,
		DeliveryMethod: method,
		Items:          []OrderItem{{ID: "item-1", Quantity: 2}},
	}
}

// TestEligibleActions_ClickAndCollectNeverShips verifies that shipment
// actions are never offered on pickup orders, whatever the status.
func TestEligibleActions_ClickAndCollectNeverShips(t *testing.T) {
	for _, status := range AllStatuses {
		o := orderWith(status, DeliveryMethodClickAndCollect)
		offered := kinds(EligibleActions(o))
		assert.NotContains(t, offered, ActionCreateShipment, "status %s", status)
		assert.NotContains(t, offered, ActionMarkDelivered, "status %s", status)
	}
}

// TestEligibleActions_HomeDeliveryNeverCollects verifies that collection
// actions are never offered on courier orders.
func TestEligibleActions_HomeDeliveryNeverCollects(t *testing.T) {
	for _, status := range AllStatuses {
		o := orderWith(status, DeliveryMethodHome)
		o.Shipments = []Shipment{{ID: "shp-1"}}
		offered := kinds(EligibleActions(o))
		assert.NotContains(t, offered, ActionMarkReady, "status %s", status)
		assert.NotContains(t, offered, ActionMarkCollected, "status %s", status)
	}
}

func TestEligibleActions_ConfirmedHomeDelivery(t *testing.T) {
	o := orderWith(OrderStatusConfirmed, DeliveryMethodHome)
	offered := kinds(EligibleActions(o))
	assert.Equal(t, []ActionKind{ActionUpdateStatus, ActionCreateShipment, ActionCancelOrder}, offered)
}

func TestEligibleActions_ReadyForCollection(t *testing.T) {
	o := orderWith(OrderStatusReadyForCollection, DeliveryMethodClickAndCollect)
	offered := kinds(EligibleActions(o))
	// No generic transitions exist from READY_FOR_COLLECTION, so the status
	// editor is absent; only the dedicated collection action and cancel remain.
	assert.Equal(t, []ActionKind{ActionMarkCollected, ActionCancelOrder}, offered)
}

func TestEligibleActions_CancelWindow(t *testing.T) {
	for _, status := range AllStatuses {
		for _, method := range bothMethods {
			o := orderWith(status, method)
			offered := kinds(EligibleActions(o))
			if status == OrderStatusDelivered || status == OrderStatusCancelled {
				assert.NotContains(t, offered, ActionCancelOrder, "status %s", status)
			} else {
				assert.Contains(t, offered, ActionCancelOrder, "status %s", status)
			}
		}
	}
}

func TestEligibleActions_MarkDelivered(t *testing.T) {
	t.Run("OfferedWhenShippedWithShipments", func(t *testing.T) {
		o := orderWith(OrderStatusShipped, DeliveryMethodHome)
		o.Shipments = []Shipment{{ID: "shp-1"}}
		assert.Contains(t, kinds(EligibleActions(o)), ActionMarkDelivered)
	})

	t.Run("NotOfferedWithoutShipments", func(t *testing.T) {
		o := orderWith(OrderStatusShipped, DeliveryMethodHome)
		assert.NotContains(t, kinds(EligibleActions(o)), ActionMarkDelivered)
	})

	t.Run("NotOfferedBeforeShipped", func(t *testing.T) {
		o := orderWith(OrderStatusProcessing, DeliveryMethodHome)
		o.Shipments = []Shipment{{ID: "shp-1"}}
		assert.NotContains(t, kinds(EligibleActions(o)), ActionMarkDelivered)
	})
}

func TestEligibleActions_MarkReady(t *testing.T) {
	t.Run("OfferedBeforeReady", func(t *testing.T) {
		o := orderWith(OrderStatusProcessing, DeliveryMethodClickAndCollect)
		assert.Contains(t, kinds(EligibleActions(o)), ActionMarkReady)
	})

	t.Run("NotOfferedOnceReadyOrCollected", func(t *testing.T) {
		for _, status := range []OrderStatus{OrderStatusReadyForCollection, OrderStatusCollected} {
			o := orderWith(status, DeliveryMethodClickAndCollect)
			assert.NotContains(t, kinds(EligibleActions(o)), ActionMarkReady, "status %s", status)
		}
	})
}

func TestEligibleActions_CreateShipmentWindow(t *testing.T) {
	for _, status := range AllStatuses {
		o := orderWith(status, DeliveryMethodHome)
		offered := kinds(EligibleActions(o))
		if status == OrderStatusConfirmed || status == OrderStatusProcessing {
			assert.Contains(t, offered, ActionCreateShipment, "status %s", status)
		} else {
			assert.NotContains(t, offered, ActionCreateShipment, "status %s", status)
		}
	}
}

func TestEligibleActions_Labels(t *testing.T) {
	o := orderWith(OrderStatusConfirmed, DeliveryMethodHome)
	for _, option := range EligibleActions(o) {
		assert.NotEmpty(t, option.Label)
		assert.NotEmpty(t, option.Icon)
	}
}
