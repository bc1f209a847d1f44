package domain

// OrderStatus represents the fulfillment state of an order.
type OrderStatus string

const (
	// OrderStatusPending indicates the order has been placed but not yet confirmed.
	OrderStatusPending OrderStatus = "PENDING"
	// OrderStatusConfirmed indicates the order has been confirmed by an administrator.
	OrderStatusConfirmed OrderStatus = "CONFIRMED"
	// OrderStatusProcessing indicates the order is being prepared.
	OrderStatusProcessing OrderStatus = "PROCESSING"
	// OrderStatusShipped indicates all items have been handed to a carrier.
	OrderStatusShipped OrderStatus = "SHIPPED"
	// OrderStatusPartiallyShipped indicates some, but not all, items have been dispatched.
	OrderStatusPartiallyShipped OrderStatus = "PARTIALLY_SHIPPED"
	// OrderStatusDelivered indicates the shipment reached the customer.
	OrderStatusDelivered OrderStatus = "DELIVERED"
	// OrderStatusCancelled indicates the order was cancelled before completion.
	OrderStatusCancelled OrderStatus = "CANCELLED"
	// OrderStatusReturned indicates the customer returned the delivered goods.
	OrderStatusReturned OrderStatus = "RETURNED"
	// OrderStatusRefunded indicates the payment was refunded. Terminal.
	OrderStatusRefunded OrderStatus = "REFUNDED"
	// OrderStatusReadyForCollection indicates a click-and-collect order is ready for pickup.
	OrderStatusReadyForCollection OrderStatus = "READY_FOR_COLLECTION"
	// OrderStatusCollected indicates a click-and-collect order was picked up by the customer.
	OrderStatusCollected OrderStatus = "COLLECTED"
)

// DeliveryMethod selects between the two physical fulfillment paths.
// It is fixed at order creation and never changes.
type DeliveryMethod string

const (
	// DeliveryMethodHome is courier-based home delivery.
	DeliveryMethodHome DeliveryMethod = "HOME_DELIVERY"
	// DeliveryMethodClickAndCollect is in-store pickup.
	DeliveryMethodClickAndCollect DeliveryMethod = "CLICK_AND_COLLECT"
)

// AllStatuses lists every order status. Useful for exhaustive checks.
var AllStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusPartiallyShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
	OrderStatusReturned,
	OrderStatusRefunded,
	OrderStatusReadyForCollection,
	OrderStatusCollected,
}

// IsValid reports whether s is part of the closed status enumeration.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusShipped, OrderStatusPartiallyShipped, OrderStatusDelivered,
		OrderStatusCancelled, OrderStatusReturned, OrderStatusRefunded,
		OrderStatusReadyForCollection, OrderStatusCollected:
		return true
	default:
		return false
	}
}

// IsValid reports whether m is a known delivery method.
func (m DeliveryMethod) IsValid() bool {
	return m == DeliveryMethodHome || m == DeliveryMethodClickAndCollect
}

// homeDeliveryTransitions is the generic status-edit table for courier orders.
var homeDeliveryTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:          {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:        {OrderStatusProcessing, OrderStatusShipped, OrderStatusCancelled},
	OrderStatusProcessing:       {OrderStatusShipped, OrderStatusPartiallyShipped, OrderStatusCancelled},
	OrderStatusShipped:          {OrderStatusDelivered, OrderStatusPartiallyShipped, OrderStatusCancelled},
	OrderStatusPartiallyShipped: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:        {OrderStatusReturned, OrderStatusRefunded},
	OrderStatusCancelled:        {OrderStatusRefunded},
	OrderStatusReturned:         {OrderStatusRefunded},
}

// clickAndCollectTransitions is the generic status-edit table for pickup orders.
// Progression into READY_FOR_COLLECTION and COLLECTED is reachable only through
// the dedicated MarkReady/MarkCollected actions, never through a generic status
// edit, so those states never appear as targets here.
var clickAndCollectTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusCancelled},
	OrderStatusCancelled:  {OrderStatusRefunded},
	OrderStatusReturned:   {OrderStatusRefunded},
}

// ValidTransitions returns the statuses an order may move to next via a generic
// status update, given its current status and delivery method.
//
// The function is total over the closed status set: terminal states and
// unknown inputs yield an empty slice, never an error. The returned slice is a
// copy and safe to mutate.
func ValidTransitions(current OrderStatus, method DeliveryMethod) []OrderStatus {
	var table map[OrderStatus][]OrderStatus

	switch method {
	case DeliveryMethodHome:
		table = homeDeliveryTransitions
	case DeliveryMethodClickAndCollect:
		table = clickAndCollectTransitions
	default:
		return nil
	}

	next := table[current]
	if len(next) == 0 {
		return nil
	}

	out := make([]OrderStatus, len(next))
	copy(out, next)
	return out
}

// CanTransition reports whether a generic status update from -> to is allowed
// for the given delivery method.
func CanTransition(from, to OrderStatus, method DeliveryMethod) bool {
	for _, s := range ValidTransitions(from, method) {
		if s == to {
			return true
		}
	}
	return false
}
