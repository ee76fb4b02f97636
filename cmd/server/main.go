package main

import (
	"net/http"

	"checkout-be/internal/cart"
	"checkout-be/internal/checkout"
	"checkout-be/internal/config"
	"checkout-be/internal/customer"
	"checkout-be/internal/db"
	"checkout-be/internal/gateway"
	"checkout-be/internal/logger"
	"checkout-be/internal/middleware"
	"checkout-be/internal/order"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	paystack := gateway.NewPaystackClient(cfg.PaystackSecretKey)
	cartSnap := cart.NewSnapshot(database)
	orderStore := order.NewStore(database)
	profiles := customer.NewRepository(database)

	reconciler := checkout.NewReconciler(paystack, cartSnap, orderStore, profiles, cfg.Currency)
	handler := checkout.NewHandler(reconciler, orderStore)

	mux := http.NewServeMux()
	mux.HandleFunc("/checkout/verify", handler.VerifyPayment)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	chain := logger.RequestIDMiddleware(
		middleware.AuthMiddleware(cfg.JWTSecretKey)(
			middleware.RateLimitMiddleware(
				middleware.LoggingMiddleware(mux),
			),
		),
	)

	logger.L().Info("checkout service listening",
		zap.String("port", cfg.AppPort),
		zap.String("env", cfg.AppEnv),
		zap.String("currency", cfg.Currency),
	)

	if err := http.ListenAndServe(":"+cfg.AppPort, chain); err != nil {
		logger.L().Fatal("server stopped", zap.Error(err))
	}
}
