package adapters

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"fulfillment-admin/internal/core/config"
	"fulfillment-admin/internal/features/fulfillment/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAdapter(serverURL string) *OrderAPIAdapter {
	return NewOrderAPIAdapter(config.OrdersAPIConfig{
		URL:       serverURL,
		APIKey:    "ck_test",
		APISecret: "cs_test",
	})
}

func TestOrderAPIAdapter_GetOrder(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.Equal(t, "/api/v1/admin/orders/ord-1", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": "ord-1",
				"order_number": "SO-10001",
				"status": "ready_for_collection",
				"delivery_method": "click_and_collect",
				"currency": "EUR",
				"total": "49.90",
				"items": [
					{"id": "item-1", "product_id": "prod-1", "name": "Mug", "sku": "MUG-01", "quantity": 2, "unit_price": "9.95"}
				]
			}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		order, err := adapter.GetOrder(context.Background(), "ord-1")

		require.NoError(t, err)
		assert.Equal(t, "ord-1", order.ID)
		assert.Equal(t, "SO-10001", order.Number)
		assert.Equal(t, domain.OrderStatusReadyForCollection, order.Status)
		assert.Equal(t, domain.DeliveryMethodClickAndCollect, order.DeliveryMethod)
		require.Len(t, order.Items, 1)
		assert.Equal(t, 2, order.Items[0].Quantity)

		expectedAuth := "Basic " + base64.StdEncoding.EncodeToString([]byte("ck_test:cs_test"))
		assert.Equal(t, expectedAuth, gotAuth)
	})

	t.Run("LegacyNumericStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "ord-2", "order_number": "SO-10002", "status": 3, "delivery_method": "home_delivery"}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		order, err := adapter.GetOrder(context.Background(), "ord-2")

		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusShipped, order.Status)
		assert.Equal(t, domain.DeliveryMethodHome, order.DeliveryMethod)
	})

	t.Run("UnknownStatusFallsBackToPending", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": "ord-3", "status": "limbo"}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		order, err := adapter.GetOrder(context.Background(), "ord-3")

		require.NoError(t, err)
		assert.Equal(t, domain.OrderStatusPending, order.Status)
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		order, err := adapter.GetOrder(context.Background(), "ord-missing")

		assert.Nil(t, order)
		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})

	t.Run("ServerError", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		_, err := adapter.GetOrder(context.Background(), "ord-1")

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func shippableOrder() *domain.Order {
	return &domain.Order{
		ID:             "ord-1",
		Status:         domain.OrderStatusConfirmed,
		DeliveryMethod: domain.DeliveryMethodHome,
		Items: []domain.OrderItem{
			{ID: "item-1", Quantity: 2},
		},
	}
}

func TestOrderAPIAdapter_Dispatch(t *testing.T) {
	t.Run("PostsToActionEndpoint", func(t *testing.T) {
		var gotPath, gotMethod string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotMethod = r.Method
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		req, err := domain.NewCreateShipmentRequest(shippableOrder(), domain.CreateShipmentPayload{
			TrackingNumber: "TRK-1",
			Carrier:        "DHL",
			ShippingMethod: "Standard",
			Items:          []domain.ShipmentItemInput{{OrderItemID: "item-1", Quantity: 1}},
		})
		require.NoError(t, err)

		adapter := newTestAdapter(server.URL)
		err = adapter.Dispatch(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, "/api/v1/admin/orders/ord-1/actions/create-shipment", gotPath)
	})

	t.Run("ConflictMapsToRemoteRejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			w.Write([]byte(`{"message": "order already shipped"}`))
		}))
		defer server.Close()

		order := shippableOrder()
		req, err := domain.NewCancelOrderRequest(order, "customer request", false, false, "admin@shop")
		require.NoError(t, err)

		adapter := newTestAdapter(server.URL)
		err = adapter.Dispatch(context.Background(), req)

		assert.ErrorIs(t, err, domain.ErrRemoteRejected)
		assert.Contains(t, err.Error(), "order already shipped")
	})

	t.Run("PreconditionFailedMapsToRemoteRejection", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusPreconditionFailed)
		}))
		defer server.Close()

		order := shippableOrder()
		req, err := domain.NewUpdateStatusRequest(order, domain.OrderStatusProcessing, "")
		require.NoError(t, err)

		adapter := newTestAdapter(server.URL)
		err = adapter.Dispatch(context.Background(), req)

		assert.ErrorIs(t, err, domain.ErrRemoteRejected)
	})

	t.Run("NotFound", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		order := shippableOrder()
		req, err := domain.NewUpdateStatusRequest(order, domain.OrderStatusProcessing, "")
		require.NoError(t, err)

		adapter := newTestAdapter(server.URL)
		err = adapter.Dispatch(context.Background(), req)

		assert.ErrorIs(t, err, domain.ErrOrderNotFound)
	})
}

func TestActionPath(t *testing.T) {
	cases := map[domain.ActionKind]string{
		domain.ActionUpdateStatus:   "update-status",
		domain.ActionMarkReady:      "mark-ready",
		domain.ActionMarkCollected:  "mark-collected",
		domain.ActionCreateShipment: "create-shipment",
		domain.ActionMarkDelivered:  "mark-delivered",
		domain.ActionCancelOrder:    "cancel",
	}

	for kind, want := range cases {
		path, err := actionPath(kind)
		require.NoError(t, err)
		assert.Equal(t, want, path)
	}

	_, err := actionPath(domain.ActionKind("REPAINT_ORDER"))
	assert.Error(t, err)
}

func TestMapDeliveryMethod(t *testing.T) {
	cases := map[string]domain.DeliveryMethod{
		"click_and_collect": domain.DeliveryMethodClickAndCollect,
		"click-and-collect": domain.DeliveryMethodClickAndCollect,
		"pickup":            domain.DeliveryMethodClickAndCollect,
		"home_delivery":     domain.DeliveryMethodHome,
		"home-delivery":     domain.DeliveryMethodHome,
		"delivery":          domain.DeliveryMethodHome,
		"  Home_Delivery  ": domain.DeliveryMethodHome,
	}

	for raw, want := range cases {
		assert.Equal(t, want, mapDeliveryMethod(raw), "label %q", raw)
	}

	// Unrecognized and empty values warn and fall back to home delivery.
	assert.Equal(t, domain.DeliveryMethodHome, mapDeliveryMethod("teleport"))
	assert.Equal(t, domain.DeliveryMethodHome, mapDeliveryMethod(""))
}

func TestOrderAPIAdapter_HealthCheck(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "1", r.URL.Query().Get("per_page"))
			w.Write([]byte(`[]`))
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		assert.NoError(t, adapter.HealthCheck())
	})

	t.Run("Unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		adapter := newTestAdapter(server.URL)
		err := adapter.HealthCheck()
		require.Error(t, err)
		assert.False(t, errors.Is(err, domain.ErrOrderNotFound))
	})
}
