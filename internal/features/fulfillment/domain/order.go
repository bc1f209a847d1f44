package domain

import "time"

// Order represents an order snapshot read from the remote order store.
// It is the aggregate the fulfillment policy evaluates; this service never
// mutates it directly, it only dispatches action requests against it.
type Order struct {
	// ID is the opaque identifier of the order.
	ID string `json:"order_id"`
	// Number is the human-readable order number. Unique and immutable.
	Number string `json:"order_number"`
	// Status is the current fulfillment state.
	Status OrderStatus `json:"status"`
	// DeliveryMethod is fixed at order creation and never changes.
	DeliveryMethod DeliveryMethod `json:"delivery_method"`
	// Currency is the ISO currency code for the monetary fields.
	Currency string `json:"currency"`
	// Subtotal is the pre-tax, pre-shipping amount. Read-only here.
	Subtotal string `json:"subtotal"`
	// Tax is the total tax amount.
	Tax string `json:"tax"`
	// Shipping is the shipping charge.
	Shipping string `json:"shipping"`
	// Discount is the total discount applied.
	Discount string `json:"discount"`
	// Total is the grand total.
	Total string `json:"total"`
	// Items are the ordered line items. Immutable once the order exists.
	Items []OrderItem `json:"items"`
	// Shipments are the dispatch events recorded so far. Always empty for
	// click-and-collect orders.
	Shipments []Shipment `json:"shipments"`
	// Payments are the payment records. Read-only, display only.
	Payments []Payment `json:"payments"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// OrderItem is a single line item within an order.
type OrderItem struct {
	// ID is the line item identifier, referenced by shipment items.
	ID string `json:"order_item_id"`
	// ProductID references the purchased product.
	ProductID string `json:"product_id"`
	// Name is the product name at time of purchase.
	Name string `json:"name"`
	// SKU is the product SKU.
	SKU string `json:"sku"`
	// Quantity is the number of units ordered.
	Quantity int `json:"quantity"`
	// UnitPrice is the per-unit price.
	UnitPrice string `json:"unit_price"`
}

// Shipment is one dispatch event. Orders may accumulate several shipments
// (partial shipment), but a shipment is immutable once created in this
// service's view; only the remote store mutates it further.
type Shipment struct {
	// ID is the shipment identifier.
	ID string `json:"shipment_id"`
	// TrackingNumber is the carrier tracking identifier.
	TrackingNumber string `json:"tracking_number"`
	// Carrier is the carrier name.
	Carrier string `json:"carrier"`
	// ShippingMethod is the method description chosen at dispatch.
	ShippingMethod string `json:"shipping_method"`
	// Notes are optional free-text notes recorded at dispatch.
	Notes string `json:"notes,omitempty"`
	// Items maps order items to the quantity included in this shipment.
	Items []ShipmentItem `json:"items"`
	// CreatedAt is when the shipment was recorded.
	CreatedAt time.Time `json:"created_at"`
	// DeliveredAt is set once the shipment is marked delivered.
	DeliveredAt *time.Time `json:"delivered_at,omitempty"`
}

// ShipmentItem records how many units of one order item a shipment carries.
type ShipmentItem struct {
	// OrderItemID references the order line item.
	OrderItemID string `json:"order_item_id"`
	// Quantity is the number of units in this shipment.
	Quantity int `json:"quantity"`
}

// Payment is a payment record attached to the order. Referenced for display
// only; the fulfillment core never acts on it.
type Payment struct {
	// ID is the payment identifier.
	ID string `json:"payment_id"`
	// Method is the payment method display name.
	Method string `json:"method"`
	// Amount is the paid amount.
	Amount string `json:"amount"`
	// Status is the payment processor status.
	Status string `json:"status"`
	// CreatedAt is when the payment was recorded.
	CreatedAt time.Time `json:"created_at"`
}

// Item returns the line item with the given id, if present.
func (o *Order) Item(orderItemID string) (OrderItem, bool) {
	for _, it := range o.Items {
		if it.ID == orderItemID {
			return it, true
		}
	}
	return OrderItem{}, false
}

// FindShipment returns the shipment with the given id, if present.
func (o *Order) FindShipment(shipmentID string) (Shipment, bool) {
	for _, s := range o.Shipments {
		if s.ID == shipmentID {
			return s, true
		}
	}
	return Shipment{}, false
}

// ShippedQuantity sums the quantity of one order item across all shipments.
func (o *Order) ShippedQuantity(orderItemID string) int {
	total := 0
	for _, s := range o.Shipments {
		for _, si := range s.Items {
			if si.OrderItemID == orderItemID {
				total += si.Quantity
			}
		}
	}
	return total
}

// RemainingQuantity is the unshipped quantity of one order item. The sum of
// shipped quantities across shipments never exceeds the ordered quantity, so
// this is never negative for a consistent order.
func (o *Order) RemainingQuantity(orderItemID string) int {
	it, ok := o.Item(orderItemID)
	if !ok {
		return 0
	}
	remaining := it.Quantity - o.ShippedQuantity(orderItemID)
	if remaining < 0 {
		return 0
	}
	return remaining
}
