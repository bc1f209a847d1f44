package handler

import (
	"errors"
	"net/http"
	"time"

	"fulfillment-admin/internal/core/logger"
	"fulfillment-admin/internal/features/fulfillment/domain"
	"fulfillment-admin/internal/features/fulfillment/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// FulfillmentHandler handles HTTP requests for order fulfillment.
type FulfillmentHandler struct {
	service ports.FulfillmentService
}

// NewFulfillmentHandler creates a new FulfillmentHandler.
func NewFulfillmentHandler(service ports.FulfillmentService) *FulfillmentHandler {
	return &FulfillmentHandler{
		service: service,
	}
}

// ErrorResponse represents the structure of an error response.
type ErrorResponse struct {
	// Message is the error description.
	Message string `json:"message"`
	// Field names the offending payload field on validation failures.
	Field string `json:"field,omitempty"`
	// RayID is the unique request identifier for debugging.
	RayID string `json:"ray_id"`
}

// UpdateStatusDTO is the request body for a generic status update.
type UpdateStatusDTO struct {
	NewStatus  domain.OrderStatus `json:"new_status"`
	AdminNotes string             `json:"admin_notes"`
}

// MarkReadyDTO is the request body for marking an order ready for collection.
type MarkReadyDTO struct {
	Confirmed bool `json:"confirmed"`
}

// MarkCollectedDTO is the request body for recording a collection.
type MarkCollectedDTO struct {
	CollectedBy       string                 `json:"collected_by"`
	CollectorIDType   domain.CollectorIDType `json:"collector_id_type"`
	CollectorIDNumber string                 `json:"collector_id_number"`
}

// CreateShipmentDTO is the request body for recording a dispatch event.
type CreateShipmentDTO struct {
	TrackingNumber string                     `json:"tracking_number"`
	Carrier        string                     `json:"carrier"`
	ShippingMethod string                     `json:"shipping_method"`
	Notes          string                     `json:"notes"`
	Items          []domain.ShipmentItemInput `json:"items"`
}

// MarkDeliveredDTO is the request body for marking a shipment delivered.
type MarkDeliveredDTO struct {
	ShipmentID    string    `json:"shipment_id"`
	DeliveredAt   time.Time `json:"delivered_at"`
	DeliveryNotes string    `json:"delivery_notes"`
	ReceivedBy    string    `json:"received_by"`
}

// CancelOrderDTO is the request body for cancelling an order.
type CancelOrderDTO struct {
	CancellationReason string `json:"cancellation_reason"`
	RestoreInventory   bool   `json:"restore_inventory"`
	InitiateRefund     bool   `json:"initiate_refund"`
	CancelledBy        string `json:"cancelled_by"`
}

// GetOrder handles GET /admin/orders/:id.
// @Summary Get an order snapshot
// @Description Fetch the current order snapshot from the order service.
// @Tags Fulfillment
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} ErrorResponse
// @Router /admin/orders/{id} [get]
func (h *FulfillmentHandler) GetOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if orderID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Order ID is required",
			RayID:   rayID(c),
		})
	}

	order, err := h.service.GetOrder(c.Context(), orderID)
	if err != nil {
		return h.respondError(c, orderID, err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// ListActions handles GET /admin/orders/:id/actions.
// @Summary List eligible fulfillment actions
// @Description Computes the administrative actions currently legal on the order.
// @Tags Fulfillment
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} domain.ActionOption
// @Failure 404 {object} ErrorResponse
// @Router /admin/orders/{id}/actions [get]
func (h *FulfillmentHandler) ListActions(c *fiber.Ctx) error {
	orderID := c.Params("id")
	if orderID == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Message: "Order ID is required",
			RayID:   rayID(c),
		})
	}

	actions, err := h.service.ListActions(c.Context(), orderID)
	if err != nil {
		return h.respondError(c, orderID, err)
	}

	return c.Status(http.StatusOK).JSON(actions)
}

// UpdateStatus handles POST /admin/orders/:id/actions/update-status.
// @Summary Update the order status
// @Description Applies a generic status relabel within the transition table.
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body UpdateStatusDTO true "Status update"
// @Success 200 {object} domain.Order
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/orders/{id}/actions/update-status [post]
func (h *FulfillmentHandler) UpdateStatus(c *fiber.Ctx) error {
	var dto UpdateStatusDTO
	if err := c.BodyParser(&dto); err != nil {
		return badBody(c)
	}

	order, err := h.service.UpdateStatus(c.Context(), c.Params("id"), dto.NewStatus, dto.AdminNotes)
	if err != nil {
		return h.respondError(c, c.Params("id"), err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// MarkReady handles POST /admin/orders/:id/actions/mark-ready.
// @Summary Mark a click-and-collect order ready for pickup
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body MarkReadyDTO true "Confirmation"
// @Success 200 {object} domain.Order
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/orders/{id}/actions/mark-ready [post]
func (h *FulfillmentHandler) MarkReady(c *fiber.Ctx) error {
	var dto MarkReadyDTO
	if err := c.BodyParser(&dto); err != nil {
		return badBody(c)
	}

	order, err := h.service.MarkReady(c.Context(), c.Params("id"), dto.Confirmed)
	if err != nil {
		return h.respondError(c, c.Params("id"), err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// MarkCollected handles POST /admin/orders/:id/actions/mark-collected.
// @Summary Record the customer collecting their order
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body MarkCollectedDTO true "Collector identity"
// @Success 200 {object} domain.Order
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/orders/{id}/actions/mark-collected [post]
func (h *FulfillmentHandler) MarkCollected(c *fiber.Ctx) error {
	var dto MarkCollectedDTO
	if err := c.BodyParser(&dto); err != nil {
		return badBody(c)
	}

	order, err := h.service.MarkCollected(c.Context(), c.Params("id"), dto.CollectedBy, dto.CollectorIDType, dto.CollectorIDNumber)
	if err != nil {
		return h.respondError(c, c.Params("id"), err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// CreateShipment handles POST /admin/orders/:id/actions/create-shipment.
// @Summary Record a dispatch event
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body CreateShipmentDTO true "Shipment details"
// @Success 200 {object} domain.Order
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/orders/{id}/actions/create-shipment [post]
func (h *FulfillmentHandler) CreateShipment(c *fiber.Ctx) error {
	var dto CreateShipmentDTO
	if err := c.BodyParser(&dto); err != nil {
		return badBody(c)
	}

	order, err := h.service.CreateShipment(c.Context(), c.Params("id"), domain.CreateShipmentPayload{
		TrackingNumber: dto.TrackingNumber,
		Carrier:        dto.Carrier,
		ShippingMethod: dto.ShippingMethod,
		Notes:          dto.Notes,
		Items:          dto.Items,
	})
	if err != nil {
		return h.respondError(c, c.Params("id"), err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// MarkDelivered handles POST /admin/orders/:id/actions/mark-delivered.
// @Summary Mark a shipment as delivered
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body MarkDeliveredDTO true "Delivery details"
// @Success 200 {object} domain.Order
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/orders/{id}/actions/mark-delivered [post]
func (h *FulfillmentHandler) MarkDelivered(c *fiber.Ctx) error {
	var dto MarkDeliveredDTO
	if err := c.BodyParser(&dto); err != nil {
		return badBody(c)
	}

	order, err := h.service.MarkDelivered(c.Context(), c.Params("id"), dto.ShipmentID, dto.DeliveredAt, dto.DeliveryNotes, dto.ReceivedBy)
	if err != nil {
		return h.respondError(c, c.Params("id"), err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// CancelOrder handles POST /admin/orders/:id/actions/cancel.
// @Summary Cancel an order
// @Description Cancels the order; inventory restoration and refund initiation are explicit operator choices.
// @Tags Fulfillment
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param body body CancelOrderDTO true "Cancellation details"
// @Success 200 {object} domain.Order
// @Failure 409 {object} ErrorResponse
// @Failure 422 {object} ErrorResponse
// @Router /admin/orders/{id}/actions/cancel [post]
func (h *FulfillmentHandler) CancelOrder(c *fiber.Ctx) error {
	var dto CancelOrderDTO
	if err := c.BodyParser(&dto); err != nil {
		return badBody(c)
	}

	order, err := h.service.CancelOrder(c.Context(), c.Params("id"), dto.CancellationReason, dto.RestoreInventory, dto.InitiateRefund, dto.CancelledBy)
	if err != nil {
		return h.respondError(c, c.Params("id"), err)
	}

	return c.Status(http.StatusOK).JSON(order)
}

// respondError maps domain and transport errors to HTTP responses.
func (h *FulfillmentHandler) respondError(c *fiber.Ctx, orderID string, err error) error {
	ray := rayID(c)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(http.StatusUnprocessableEntity).JSON(ErrorResponse{
			Message: validationErr.Message,
			Field:   validationErr.Field,
			RayID:   ray,
		})
	}

	var ineligibleErr *domain.IneligibleActionError
	if errors.As(err, &ineligibleErr) {
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Message: ineligibleErr.Error(),
			RayID:   ray,
		})
	}

	if errors.Is(err, domain.ErrOrderNotFound) {
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Message: "Order not found",
			RayID:   ray,
		})
	}

	if errors.Is(err, domain.ErrRemoteRejected) {
		return c.Status(http.StatusConflict).JSON(ErrorResponse{
			Message: "Order changed on the server, refresh and retry",
			RayID:   ray,
		})
	}

	logger.Get().Error("Fulfillment request failed",
		zap.String("order_id", orderID),
		zap.String("ray_id", ray),
		zap.Error(err),
	)

	return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
		Message: "Internal Server Error",
		RayID:   ray,
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Message: "Invalid request body",
		RayID:   rayID(c),
	})
}

func rayID(c *fiber.Ctx) string {
	id, ok := c.Locals("requestid").(string)
	if !ok {
		return "unknown"
	}
	return id
}
