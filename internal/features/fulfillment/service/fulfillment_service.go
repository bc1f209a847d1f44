package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment-admin/internal/core/logger"
	"fulfillment-admin/internal/features/fulfillment/domain"
	"fulfillment-admin/internal/features/fulfillment/ports"

	"go.uber.org/zap"
)

// FulfillmentServiceImpl implements ports.FulfillmentService. It orchestrates
// fetch, eligibility, validation and dispatch against the remote order
// service, keeping a short-lived snapshot cache in between.
type FulfillmentServiceImpl struct {
	store      ports.OrderStore
	dispatcher ports.ActionDispatcher
	cache      ports.OrderCache
}

// NewFulfillmentService creates a new FulfillmentServiceImpl.
func NewFulfillmentService(store ports.OrderStore, dispatcher ports.ActionDispatcher, cache ports.OrderCache) *FulfillmentServiceImpl {
	return &FulfillmentServiceImpl{
		store:      store,
		dispatcher: dispatcher,
		cache:      cache,
	}
}

// GetOrder retrieves an order snapshot, read-through the cache.
func (s *FulfillmentServiceImpl) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	if cached, err := s.cache.Get(ctx, orderID); err == nil && cached != nil {
		return cached, nil
	} else if err != nil {
		logger.Get().Warn("Order cache read failed", zap.String("order_id", orderID), zap.Error(err))
	}

	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Save(ctx, order); err != nil {
		logger.Get().Warn("Order cache write failed", zap.String("order_id", orderID), zap.Error(err))
	}

	return order, nil
}

// ListActions computes the action menu for the order's current snapshot.
func (s *FulfillmentServiceImpl) ListActions(ctx context.Context, orderID string) ([]domain.ActionOption, error) {
	order, err := s.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return domain.EligibleActions(order), nil
}

// UpdateStatus applies a generic status relabel within the transition table.
func (s *FulfillmentServiceImpl) UpdateStatus(ctx context.Context, orderID string, newStatus domain.OrderStatus, adminNotes string) (*domain.Order, error) {
	return s.execute(ctx, orderID, func(o *domain.Order) (domain.ActionRequest, error) {
		return domain.NewUpdateStatusRequest(o, newStatus, adminNotes)
	})
}

// MarkReady marks a click-and-collect order ready for pickup.
func (s *FulfillmentServiceImpl) MarkReady(ctx context.Context, orderID string, confirmed bool) (*domain.Order, error) {
	return s.execute(ctx, orderID, func(o *domain.Order) (domain.ActionRequest, error) {
		return domain.NewMarkReadyRequest(o, confirmed)
	})
}

// MarkCollected records the customer collecting their order.
func (s *FulfillmentServiceImpl) MarkCollected(ctx context.Context, orderID, collectedBy string, idType domain.CollectorIDType, idNumber string) (*domain.Order, error) {
	return s.execute(ctx, orderID, func(o *domain.Order) (domain.ActionRequest, error) {
		return domain.NewMarkCollectedRequest(o, collectedBy, idType, idNumber)
	})
}

// CreateShipment records a dispatch event for a home-delivery order.
func (s *FulfillmentServiceImpl) CreateShipment(ctx context.Context, orderID string, payload domain.CreateShipmentPayload) (*domain.Order, error) {
	return s.execute(ctx, orderID, func(o *domain.Order) (domain.ActionRequest, error) {
		return domain.NewCreateShipmentRequest(o, payload)
	})
}

// MarkDelivered marks an existing shipment as delivered.
func (s *FulfillmentServiceImpl) MarkDelivered(ctx context.Context, orderID, shipmentID string, deliveredAt time.Time, deliveryNotes, receivedBy string) (*domain.Order, error) {
	return s.execute(ctx, orderID, func(o *domain.Order) (domain.ActionRequest, error) {
		return domain.NewMarkDeliveredRequest(o, shipmentID, deliveredAt, deliveryNotes, receivedBy)
	})
}

// CancelOrder cancels the order with the operator's explicit inventory and
// refund choices.
func (s *FulfillmentServiceImpl) CancelOrder(ctx context.Context, orderID, reason string, restoreInventory, initiateRefund bool, cancelledBy string) (*domain.Order, error) {
	return s.execute(ctx, orderID, func(o *domain.Order) (domain.ActionRequest, error) {
		return domain.NewCancelOrderRequest(o, reason, restoreInventory, initiateRefund, cancelledBy)
	})
}

// execute runs the shared action pipeline: fetch a fresh snapshot straight
// from the store, build and validate the request against it, dispatch, then
// invalidate the cache and return a refreshed snapshot.
//
// A rejected dispatch is never retried; the cache is dropped so the next read
// observes whatever state the remote side settled on.
func (s *FulfillmentServiceImpl) execute(ctx context.Context, orderID string, build func(*domain.Order) (domain.ActionRequest, error)) (*domain.Order, error) {
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	req, err := build(order)
	if err != nil {
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, req); err != nil {
		if invErr := s.cache.Invalidate(ctx, orderID); invErr != nil {
			logger.Get().Warn("Order cache invalidation failed", zap.String("order_id", orderID), zap.Error(invErr))
		}
		if errors.Is(err, domain.ErrRemoteRejected) {
			logger.Get().Info("Action rejected by order service",
				zap.String("order_id", orderID),
				zap.String("action", string(req.Kind())),
			)
			return nil, err
		}
		return nil, fmt.Errorf("service: failed to dispatch %s: %w", req.Kind(), err)
	}

	if err := s.cache.Invalidate(ctx, orderID); err != nil {
		logger.Get().Warn("Order cache invalidation failed", zap.String("order_id", orderID), zap.Error(err))
	}

	refreshed, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("service: action %s dispatched but refresh failed: %w", req.Kind(), err)
	}

	if err := s.cache.Save(ctx, refreshed); err != nil {
		logger.Get().Warn("Order cache write failed", zap.String("order_id", orderID), zap.Error(err))
	}

	return refreshed, nil
}
