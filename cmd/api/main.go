package main

import (
	"context"
	"log"
	"time"

	"fulfillment-admin/internal/core/cache"
	"fulfillment-admin/internal/core/config"
	"fulfillment-admin/internal/core/httpclient"
	"fulfillment-admin/internal/core/logger"
	"fulfillment-admin/internal/core/proxy"
	"fulfillment-admin/internal/core/server"
	"fulfillment-admin/internal/features/fulfillment/adapters"
	fulfillmenthandler "fulfillment-admin/internal/features/fulfillment/handler"
	fulfillmentservice "fulfillment-admin/internal/features/fulfillment/service"

	"go.uber.org/zap"
)

// @title Fulfillment Admin API
// @version 1.0
// @description Administrative API for order fulfillment: status transitions, shipments, collection and cancellation.
// @contact.name API Support
// @contact.email support@fulfillment-admin.local
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Outbound client, optionally routed through the egress forwarder.
	client := httpclient.NewClient(10 * time.Second)
	if cfg.Proxy.UpstreamURL != "" {
		forwarder, err := proxy.NewForwardingProxy(cfg.Proxy.UpstreamURL)
		if err != nil {
			l.Fatal("Invalid outbound proxy configuration", zap.Error(err))
		}
		localAddr, err := forwarder.Start(context.Background())
		if err != nil {
			l.Fatal("Failed to start egress forwarder", zap.Error(err))
		}
		defer forwarder.Stop()

		client, err = httpclient.NewClientWithProxy(10*time.Second, localAddr)
		if err != nil {
			l.Fatal("Failed to build proxied client", zap.Error(err))
		}
		l.Info("Outbound traffic routed through egress forwarder", zap.String("local_addr", localAddr))
	}

	// Order service adapter and startup health check.
	orderAPI := adapters.NewOrderAPIAdapterWithClient(cfg.OrdersAPI, client)
	if err := orderAPI.HealthCheck(); err != nil {
		l.Fatal("Order service health check failed", zap.Error(err))
	}
	l.Info("Order service connection verified")

	// Redis-backed order snapshot cache.
	redisCache, err := cache.NewRedisAdapter(cfg.Cache.RedisURL)
	if err != nil {
		l.Fatal("Failed to create Redis adapter", zap.Error(err))
	}
	defer redisCache.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := redisCache.Ping(pingCtx); err != nil {
		cancel()
		l.Fatal("Redis ping failed", zap.Error(err))
	}
	cancel()

	snapshotCache := adapters.NewRedisOrderCache(redisCache, time.Duration(cfg.Cache.OrderTTLSeconds)*time.Second)

	// Fulfillment service and handler.
	svc := fulfillmentservice.NewFulfillmentService(orderAPI, orderAPI, snapshotCache)
	hdl := fulfillmenthandler.NewFulfillmentHandler(svc)

	srv := server.New(cfg)

	// Register routes.
	orders := srv.App.Group("/admin/orders")
	orders.Get("/:id", hdl.GetOrder)
	orders.Get("/:id/actions", hdl.ListActions)
	orders.Post("/:id/actions/update-status", hdl.UpdateStatus)
	orders.Post("/:id/actions/mark-ready", hdl.MarkReady)
	orders.Post("/:id/actions/mark-collected", hdl.MarkCollected)
	orders.Post("/:id/actions/create-shipment", hdl.CreateShipment)
	orders.Post("/:id/actions/mark-delivered", hdl.MarkDelivered)
	orders.Post("/:id/actions/cancel", hdl.CancelOrder)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
