package domain

import (
	"strings"
	"time"
)

// ActionKind identifies one administrative fulfillment action. The set is
// closed: every switch over it in this module handles all kinds.
type ActionKind string

const (
	// ActionUpdateStatus relabels the order within the generic transition table.
	ActionUpdateStatus ActionKind = "UPDATE_STATUS"
	// ActionMarkReady marks a click-and-collect order ready for pickup.
	ActionMarkReady ActionKind = "MARK_READY"
	// ActionMarkCollected records the customer picking up a click-and-collect order.
	ActionMarkCollected ActionKind = "MARK_COLLECTED"
	// ActionCreateShipment records a dispatch event for a home-delivery order.
	ActionCreateShipment ActionKind = "CREATE_SHIPMENT"
	// ActionMarkDelivered marks an existing shipment as delivered.
	ActionMarkDelivered ActionKind = "MARK_DELIVERED"
	// ActionCancelOrder cancels the order.
	ActionCancelOrder ActionKind = "CANCEL_ORDER"
)

// CollectorIDType is the closed vocabulary of identity documents accepted
// when recording a collection.
type CollectorIDType string

const (
	CollectorIDDrivingLicence CollectorIDType = "DRIVING_LICENCE"
	CollectorIDPassport       CollectorIDType = "PASSPORT"
	CollectorIDNationalID     CollectorIDType = "NATIONAL_ID"
	CollectorIDOther          CollectorIDType = "OTHER"
)

// IsValid reports whether t is one of the accepted identity document types.
func (t CollectorIDType) IsValid() bool {
	switch t {
	case CollectorIDDrivingLicence, CollectorIDPassport, CollectorIDNationalID, CollectorIDOther:
		return true
	default:
		return false
	}
}

// ActionRequest is one validated administrative intent, ready for dispatch to
// the remote order service. Values are constructed only through the New*
// functions below, which couple construction with eligibility re-checking and
// payload validation: no ActionRequest exists in an invalid state.
type ActionRequest interface {
	// Kind identifies the action variant.
	Kind() ActionKind
	// Order returns the id of the order the action targets.
	Order() string
}

// MarkReadyRequest marks a click-and-collect order ready for pickup.
type MarkReadyRequest struct {
	OrderID string `json:"order_id"`
}

func (r *MarkReadyRequest) Kind() ActionKind { return ActionMarkReady }
func (r *MarkReadyRequest) Order() string    { return r.OrderID }

// NewMarkReadyRequest validates and builds a MarkReady action. The operator
// must explicitly confirm; the order must be click-and-collect and not
// already ready or collected.
func NewMarkReadyRequest(o *Order, confirmed bool) (*MarkReadyRequest, error) {
	if o.DeliveryMethod != DeliveryMethodClickAndCollect {
		return nil, newIneligibleError(ActionMarkReady, o, "only click-and-collect orders can be marked ready")
	}
	if o.Status == OrderStatusReadyForCollection || o.Status == OrderStatusCollected {
		return nil, newIneligibleError(ActionMarkReady, o, "order is already ready or collected")
	}
	if !confirmed {
		return nil, newValidationError("confirmed", "explicit confirmation is required")
	}
	return &MarkReadyRequest{OrderID: o.ID}, nil
}

// MarkCollectedRequest records the customer picking up their order, with the
// evidentiary identity fields the collection audit trail requires.
type MarkCollectedRequest struct {
	OrderID           string          `json:"order_id"`
	CollectedBy       string          `json:"collected_by"`
	CollectorIDType   CollectorIDType `json:"collector_id_type"`
	CollectorIDNumber string          `json:"collector_id_number"`
}

func (r *MarkCollectedRequest) Kind() ActionKind { return ActionMarkCollected }
func (r *MarkCollectedRequest) Order() string    { return r.OrderID }

// NewMarkCollectedRequest validates and builds a MarkCollected action.
func NewMarkCollectedRequest(o *Order, collectedBy string, idType CollectorIDType, idNumber string) (*MarkCollectedRequest, error) {
	if o.DeliveryMethod != DeliveryMethodClickAndCollect {
		return nil, newIneligibleError(ActionMarkCollected, o, "only click-and-collect orders can be collected")
	}
	if o.Status != OrderStatusReadyForCollection {
		return nil, newIneligibleError(ActionMarkCollected, o, "order is not ready for collection")
	}
	if strings.TrimSpace(collectedBy) == "" {
		return nil, newValidationError("collected_by", "collector name is required")
	}
	if !idType.IsValid() {
		return nil, newValidationError("collector_id_type", "must be one of DRIVING_LICENCE, PASSPORT, NATIONAL_ID, OTHER")
	}
	if strings.TrimSpace(idNumber) == "" {
		return nil, newValidationError("collector_id_number", "identity document number is required")
	}
	return &MarkCollectedRequest{
		OrderID:           o.ID,
		CollectedBy:       collectedBy,
		CollectorIDType:   idType,
		CollectorIDNumber: idNumber,
	}, nil
}

// UpdateStatusRequest relabels the order within the generic transition table.
type UpdateStatusRequest struct {
	OrderID    string      `json:"order_id"`
	NewStatus  OrderStatus `json:"new_status"`
	AdminNotes string      `json:"admin_notes,omitempty"`
}

func (r *UpdateStatusRequest) Kind() ActionKind { return ActionUpdateStatus }
func (r *UpdateStatusRequest) Order() string    { return r.OrderID }

// NewUpdateStatusRequest validates and builds a generic status update. The
// target status must differ from the current one and be present in the
// transition table for the order's delivery method.
func NewUpdateStatusRequest(o *Order, newStatus OrderStatus, adminNotes string) (*UpdateStatusRequest, error) {
	if newStatus == o.Status {
		return nil, newValidationError("new_status", "new status must differ from the current status")
	}
	if !CanTransition(o.Status, newStatus, o.DeliveryMethod) {
		return nil, newValidationError("new_status", "transition from "+string(o.Status)+" to "+string(newStatus)+" is not allowed")
	}
	return &UpdateStatusRequest{OrderID: o.ID, NewStatus: newStatus, AdminNotes: adminNotes}, nil
}

// ShipmentItemInput is one line of an operator-entered shipment.
type ShipmentItemInput struct {
	OrderItemID string `json:"order_item_id"`
	Quantity    int    `json:"quantity"`
}

// CreateShipmentPayload is the operator-supplied form for recording a
// dispatch event.
type CreateShipmentPayload struct {
	TrackingNumber string              `json:"tracking_number"`
	Carrier        string              `json:"carrier"`
	ShippingMethod string              `json:"shipping_method"`
	Notes          string              `json:"notes,omitempty"`
	Items          []ShipmentItemInput `json:"items"`
}

// CreateShipmentRequest records a dispatch event for a home-delivery order.
type CreateShipmentRequest struct {
	OrderID        string              `json:"order_id"`
	TrackingNumber string              `json:"tracking_number"`
	Carrier        string              `json:"carrier"`
	ShippingMethod string              `json:"shipping_method"`
	Notes          string              `json:"notes,omitempty"`
	Items          []ShipmentItemInput `json:"items"`
}

func (r *CreateShipmentRequest) Kind() ActionKind { return ActionCreateShipment }
func (r *CreateShipmentRequest) Order() string    { return r.OrderID }

// NewCreateShipmentRequest validates and builds a CreateShipment action.
// Tracking number, carrier and shipping method are required; at least one
// item must carry a positive quantity; no item may exceed its unshipped
// remainder, so the shipped total across all shipments never exceeds the
// ordered quantity.
func NewCreateShipmentRequest(o *Order, p CreateShipmentPayload) (*CreateShipmentRequest, error) {
	if o.DeliveryMethod != DeliveryMethodHome {
		return nil, newIneligibleError(ActionCreateShipment, o, "shipments apply to home-delivery orders only")
	}
	if o.Status != OrderStatusConfirmed && o.Status != OrderStatusProcessing {
		return nil, newIneligibleError(ActionCreateShipment, o, "order must be confirmed or processing")
	}
	if strings.TrimSpace(p.TrackingNumber) == "" {
		return nil, newValidationError("tracking_number", "tracking number is required")
	}
	if strings.TrimSpace(p.Carrier) == "" {
		return nil, newValidationError("carrier", "carrier is required")
	}
	if strings.TrimSpace(p.ShippingMethod) == "" {
		return nil, newValidationError("shipping_method", "shipping method is required")
	}

	positive := 0
	items := make([]ShipmentItemInput, 0, len(p.Items))
	for _, in := range p.Items {
		if in.Quantity < 0 {
			return nil, newValidationError("items", "quantity cannot be negative for item "+in.OrderItemID)
		}
		it, ok := o.Item(in.OrderItemID)
		if !ok {
			return nil, newValidationError("items", "unknown order item "+in.OrderItemID)
		}
		if remaining := o.RemainingQuantity(it.ID); in.Quantity > remaining {
			return nil, newValidationError("items", "quantity for item "+in.OrderItemID+" exceeds the unshipped quantity")
		}
		if in.Quantity > 0 {
			positive++
			items = append(items, in)
		}
	}
	if positive == 0 {
		return nil, newValidationError("items", "at least one item with a positive quantity is required")
	}

	return &CreateShipmentRequest{
		OrderID:        o.ID,
		TrackingNumber: p.TrackingNumber,
		Carrier:        p.Carrier,
		ShippingMethod: p.ShippingMethod,
		Notes:          p.Notes,
		Items:          items,
	}, nil
}

// MarkDeliveredRequest marks one existing shipment as delivered.
type MarkDeliveredRequest struct {
	OrderID       string    `json:"order_id"`
	ShipmentID    string    `json:"shipment_id"`
	DeliveredAt   time.Time `json:"delivered_at"`
	DeliveryNotes string    `json:"delivery_notes,omitempty"`
	ReceivedBy    string    `json:"received_by,omitempty"`
}

func (r *MarkDeliveredRequest) Kind() ActionKind { return ActionMarkDelivered }
func (r *MarkDeliveredRequest) Order() string    { return r.OrderID }

// NewMarkDeliveredRequest validates and builds a MarkDelivered action.
func NewMarkDeliveredRequest(o *Order, shipmentID string, deliveredAt time.Time, deliveryNotes, receivedBy string) (*MarkDeliveredRequest, error) {
	if o.DeliveryMethod != DeliveryMethodHome {
		return nil, newIneligibleError(ActionMarkDelivered, o, "deliveries apply to home-delivery orders only")
	}
	if len(o.Shipments) == 0 {
		return nil, newIneligibleError(ActionMarkDelivered, o, "order has no shipments")
	}
	if o.Status != OrderStatusShipped {
		return nil, newIneligibleError(ActionMarkDelivered, o, "order has not been shipped")
	}
	if strings.TrimSpace(shipmentID) == "" {
		return nil, newValidationError("shipment_id", "shipment selection is required")
	}
	if _, ok := o.FindShipment(shipmentID); !ok {
		return nil, newValidationError("shipment_id", "shipment "+shipmentID+" does not belong to this order")
	}
	if deliveredAt.IsZero() {
		return nil, newValidationError("delivered_at", "delivery timestamp is required")
	}
	return &MarkDeliveredRequest{
		OrderID:       o.ID,
		ShipmentID:    shipmentID,
		DeliveredAt:   deliveredAt,
		DeliveryNotes: deliveryNotes,
		ReceivedBy:    receivedBy,
	}, nil
}

// CancelOrderRequest cancels the order. Inventory restoration and refund
// initiation are independent flags the operator sets explicitly; neither is
// implied by cancellation itself.
type CancelOrderRequest struct {
	OrderID            string `json:"order_id"`
	CancellationReason string `json:"cancellation_reason"`
	RestoreInventory   bool   `json:"restore_inventory"`
	InitiateRefund     bool   `json:"initiate_refund"`
	CancelledBy        string `json:"cancelled_by"`
}

func (r *CancelOrderRequest) Kind() ActionKind { return ActionCancelOrder }
func (r *CancelOrderRequest) Order() string    { return r.OrderID }

// NewCancelOrderRequest validates and builds a CancelOrder action.
func NewCancelOrderRequest(o *Order, reason string, restoreInventory, initiateRefund bool, cancelledBy string) (*CancelOrderRequest, error) {
	if o.Status == OrderStatusDelivered || o.Status == OrderStatusCancelled {
		return nil, newIneligibleError(ActionCancelOrder, o, "delivered or already cancelled orders cannot be cancelled")
	}
	if strings.TrimSpace(reason) == "" {
		return nil, newValidationError("cancellation_reason", "cancellation reason is required")
	}
	if strings.TrimSpace(cancelledBy) == "" {
		return nil, newValidationError("cancelled_by", "operator name is required")
	}
	return &CancelOrderRequest{
		OrderID:            o.ID,
		CancellationReason: reason,
		RestoreInventory:   restoreInventory,
		InitiateRefund:     initiateRefund,
		CancelledBy:        cancelledBy,
	}, nil
}
