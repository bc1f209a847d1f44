package adapters

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fulfillment-admin/internal/core/config"
	"fulfillment-admin/internal/core/httpclient"
	"fulfillment-admin/internal/core/logger"
	"fulfillment-admin/internal/features/fulfillment/domain"

	"go.uber.org/zap"
)

// OrderAPIAdapter implements the OrderStore and ActionDispatcher ports
// against the commerce backend's admin REST API.
type OrderAPIAdapter struct {
	// client is the HTTP client used for API requests.
	client *http.Client
	// config holds the order service connection details.
	config config.OrdersAPIConfig
}

// NewOrderAPIAdapter creates a new OrderAPIAdapter with the default client.
func NewOrderAPIAdapter(cfg config.OrdersAPIConfig) *OrderAPIAdapter {
	return &OrderAPIAdapter{
		client: httpclient.NewClient(10 * time.Second),
		config: cfg,
	}
}

// NewOrderAPIAdapterWithClient creates an OrderAPIAdapter with a caller
// supplied HTTP client, e.g. one routed through the egress forwarder.
func NewOrderAPIAdapterWithClient(cfg config.OrdersAPIConfig, client *http.Client) *OrderAPIAdapter {
	return &OrderAPIAdapter{
		client: client,
		config: cfg,
	}
}

// GetOrder fetches an order from the order service and maps it to the
// domain entity.
func (a *OrderAPIAdapter) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	url := fmt.Sprintf("%s/api/v1/admin/orders/%s", a.config.URL, orderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("order service returned status: %d", resp.StatusCode)
	}

	var wire apiOrder
	if err := json.NewDecoder(resp.Body).Decode(&wire); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return mapToDomain(wire), nil
}

// Dispatch sends one validated action request to the order service. The
// remote side is the final arbiter: a conflict response maps to
// domain.ErrRemoteRejected and the caller must refresh its snapshot.
func (a *OrderAPIAdapter) Dispatch(ctx context.Context, req domain.ActionRequest) error {
	path, err := actionPath(req.Kind())
	if err != nil {
		return err
	}

	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal %s request: %w", req.Kind(), err)
	}

	url := fmt.Sprintf("%s/api/v1/admin/orders/%s/actions/%s", a.config.URL, req.Order(), path)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	a.authorize(httpReq)

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated || resp.StatusCode == http.StatusNoContent:
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrOrderNotFound
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusPreconditionFailed:
		return fmt.Errorf("%w: %s", domain.ErrRemoteRejected, remoteMessage(resp.Body))
	default:
		return fmt.Errorf("order service returned status %d for %s", resp.StatusCode, req.Kind())
	}
}

// HealthCheck verifies that the order service is reachable and credentials
// are valid.
func (a *OrderAPIAdapter) HealthCheck() error {
	url := fmt.Sprintf("%s/api/v1/admin/orders?per_page=1", a.config.URL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("health check failed to create request: %w", err)
	}
	a.authorize(req)

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("health check request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("health check failed with status: %d", resp.StatusCode)
	}

	return nil
}

// authorize attaches basic auth built from the configured key pair.
func (a *OrderAPIAdapter) authorize(req *http.Request) {
	authVal := make([]byte, 0, len(a.config.APIKey)+len(a.config.APISecret)+1)
	authVal = fmt.Appendf(authVal, "%s:%s", a.config.APIKey, a.config.APISecret)

	encoded := base64.StdEncoding.EncodeToString(authVal)
	req.Header.Add("Authorization", "Basic "+encoded)
}

// actionPath maps an action kind to its endpoint segment. The switch is
// exhaustive over the closed action set.
func actionPath(kind domain.ActionKind) (string, error) {
	switch kind {
	case domain.ActionUpdateStatus:
		return "update-status", nil
	case domain.ActionMarkReady:
		return "mark-ready", nil
	case domain.ActionMarkCollected:
		return "mark-collected", nil
	case domain.ActionCreateShipment:
		return "create-shipment", nil
	case domain.ActionMarkDelivered:
		return "mark-delivered", nil
	case domain.ActionCancelOrder:
		return "cancel", nil
	default:
		return "", fmt.Errorf("unknown action kind: %s", kind)
	}
}

// remoteMessage extracts the error message from a declined response body.
func remoteMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return "order state changed"
	}
	if payload.Message != "" {
		return payload.Message
	}
	if payload.Error != "" {
		return payload.Error
	}
	return "order state changed"
}

// mapToDomain converts a raw order service response into a domain Order.
func mapToDomain(wire apiOrder) *domain.Order {
	items := make([]domain.OrderItem, 0, len(wire.Items))
	for _, it := range wire.Items {
		items = append(items, domain.OrderItem{
			ID:        it.ID,
			ProductID: it.ProductID,
			Name:      it.Name,
			SKU:       it.SKU,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}

	shipments := make([]domain.Shipment, 0, len(wire.Shipments))
	for _, sh := range wire.Shipments {
		si := make([]domain.ShipmentItem, 0, len(sh.Items))
		for _, item := range sh.Items {
			si = append(si, domain.ShipmentItem{
				OrderItemID: item.OrderItemID,
				Quantity:    item.Quantity,
			})
		}
		shipments = append(shipments, domain.Shipment{
			ID:             sh.ID,
			TrackingNumber: sh.TrackingNumber,
			Carrier:        sh.Carrier,
			ShippingMethod: sh.ShippingMethod,
			Notes:          sh.Notes,
			Items:          si,
			CreatedAt:      sh.CreatedAt,
			DeliveredAt:    sh.DeliveredAt,
		})
	}

	payments := make([]domain.Payment, 0, len(wire.Payments))
	for _, p := range wire.Payments {
		payments = append(payments, domain.Payment{
			ID:        p.ID,
			Method:    p.Method,
			Amount:    p.Amount,
			Status:    p.Status,
			CreatedAt: p.CreatedAt,
		})
	}

	return &domain.Order{
		ID:             wire.ID,
		Number:         wire.Number,
		Status:         mapStatus(wire.Status),
		DeliveryMethod: mapDeliveryMethod(wire.DeliveryMethod),
		Currency:       wire.Currency,
		Subtotal:       wire.Subtotal,
		Tax:            wire.Tax,
		Shipping:       wire.Shipping,
		Discount:       wire.Discount,
		Total:          wire.Total,
		Items:          items,
		Shipments:      shipments,
		Payments:       payments,
		CreatedAt:      wire.CreatedAt,
	}
}

// mapStatus normalizes the backend's status representation into the single
// domain enumeration. Older backend screens emit small integer codes while
// newer ones emit string labels; both are accepted here, exactly once, at
// the boundary. Unrecognized values fall back to PENDING.
func mapStatus(raw interface{}) domain.OrderStatus {
	switch v := raw.(type) {
	case string:
		return mapStatusLabel(v)
	case float64:
		return mapStatusCode(int(v))
	default:
		return domain.OrderStatusPending
	}
}

func mapStatusLabel(label string) domain.OrderStatus {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "pending":
		return domain.OrderStatusPending
	case "confirmed":
		return domain.OrderStatusConfirmed
	case "processing":
		return domain.OrderStatusProcessing
	case "shipped":
		return domain.OrderStatusShipped
	case "partially_shipped", "partially-shipped":
		return domain.OrderStatusPartiallyShipped
	case "delivered":
		return domain.OrderStatusDelivered
	case "cancelled", "canceled":
		return domain.OrderStatusCancelled
	case "returned":
		return domain.OrderStatusReturned
	case "refunded":
		return domain.OrderStatusRefunded
	case "ready_for_collection", "ready-for-collection":
		return domain.OrderStatusReadyForCollection
	case "collected":
		return domain.OrderStatusCollected
	default:
		logger.Get().Warn("Unknown order status label", zap.String("status", label))
		return domain.OrderStatusPending
	}
}

// mapStatusCode maps the legacy numeric scheme. It has no CONFIRMED or
// PARTIALLY_SHIPPED codes; 7 and 8 are the collection statuses.
func mapStatusCode(code int) domain.OrderStatus {
	switch code {
	case 1:
		return domain.OrderStatusPending
	case 2:
		return domain.OrderStatusProcessing
	case 3:
		return domain.OrderStatusShipped
	case 4:
		return domain.OrderStatusDelivered
	case 5:
		return domain.OrderStatusCancelled
	case 6:
		return domain.OrderStatusRefunded
	case 7:
		return domain.OrderStatusReadyForCollection
	case 8:
		return domain.OrderStatusCollected
	default:
		logger.Get().Warn("Unknown order status code", zap.Int("code", code))
		return domain.OrderStatusPending
	}
}

func mapDeliveryMethod(raw string) domain.DeliveryMethod {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "click_and_collect", "click-and-collect", "pickup":
		return domain.DeliveryMethodClickAndCollect
	case "home_delivery", "home-delivery", "delivery":
		return domain.DeliveryMethodHome
	default:
		logger.Get().Warn("Unknown delivery method", zap.String("delivery_method", raw))
		return domain.DeliveryMethodHome
	}
}

// internal structs for mapping

// apiOrder represents the JSON structure of an order from the order service.
type apiOrder struct {
	// ID is the opaque order identifier.
	ID string `json:"id"`
	// Number is the human-readable order number.
	Number string `json:"order_number"`
	// Status is the order status; string label or legacy numeric code.
	Status interface{} `json:"status"`
	// DeliveryMethod selects home delivery or click and collect.
	DeliveryMethod string `json:"delivery_method"`
	// Currency is the ISO currency code.
	Currency string `json:"currency"`
	// Subtotal, Tax, Shipping, Discount and Total are decimal strings.
	Subtotal string `json:"subtotal"`
	Tax      string `json:"tax"`
	Shipping string `json:"shipping"`
	Discount string `json:"discount"`
	Total    string `json:"total"`
	// Items contains the ordered line items.
	Items []apiOrderItem `json:"items"`
	// Shipments contains dispatch events recorded so far.
	Shipments []apiShipment `json:"shipments"`
	// Payments contains payment records.
	Payments []apiPayment `json:"payments"`
	// CreatedAt is when the order was placed.
	CreatedAt time.Time `json:"created_at"`
}

// apiOrderItem represents a line item in the order service response.
type apiOrderItem struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	SKU       string `json:"sku"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
}

// apiShipment represents a shipment in the order service response.
type apiShipment struct {
	ID             string            `json:"id"`
	TrackingNumber string            `json:"tracking_number"`
	Carrier        string            `json:"carrier"`
	ShippingMethod string            `json:"shipping_method"`
	Notes          string            `json:"notes"`
	Items          []apiShipmentItem `json:"items"`
	CreatedAt      time.Time         `json:"created_at"`
	DeliveredAt    *time.Time        `json:"delivered_at"`
}

// apiShipmentItem maps one order item to a shipped quantity.
type apiShipmentItem struct {
	OrderItemID string `json:"order_item_id"`
	Quantity    int    `json:"quantity"`
}

// apiPayment represents a payment record in the order service response.
type apiPayment struct {
	ID        string    `json:"id"`
	Method    string    `json:"method"`
	Amount    string    `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}
