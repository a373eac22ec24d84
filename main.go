package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"bookstore-service/handlers"
	"bookstore-service/internal/auth"
	"bookstore-service/internal/config"
	"bookstore-service/internal/orders"
	"bookstore-service/internal/payment"
	"bookstore-service/internal/products"
	"bookstore-service/internal/stores/kafka"
	"bookstore-service/internal/stores/mongodb"
	"bookstore-service/internal/uploads"
	"bookstore-service/internal/users"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	// Missing .env is fine in containers where env comes from the runtime.
	_ = godotenv.Load()
	cfg := config.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	keys, err := auth.NewKeys(cfg.JWTSecret)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	db, err := mongodb.Open(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return err
	}

	userConf, err := users.NewConf(db)
	if err != nil {
		return err
	}
	productConf, err := products.NewConf(db)
	if err != nil {
		return err
	}
	orderConf, err := orders.NewConf(db)
	if err != nil {
		return err
	}

	// Exactly one gateway implementation is wired: Razorpay when keys are
	// present, otherwise the in-process fake for local development.
	var gateway payment.Gateway
	if cfg.RazorpayKeyID != "" && cfg.RazorpayKeySecret != "" {
		gateway, err = payment.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
		if err != nil {
			return err
		}
	} else {
		slog.Warn("razorpay keys not set, using fake payment gateway")
		gateway = &payment.Fake{}
	}

	var producer orders.Producer
	if len(cfg.KafkaBrokers) > 0 {
		kafkaConf, err := kafka.NewConf(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer kafkaConf.Close()
		producer = kafkaConf
	} else {
		slog.Warn("kafka brokers not set, order-paid events disabled")
	}

	orderService, err := orders.NewService(orderConf, productConf, userConf, gateway, producer)
	if err != nil {
		return err
	}

	var uploadConf *uploads.Conf
	if cfg.ImageKitPublicKey != "" && cfg.ImageKitPrivateKey != "" {
		uploadConf, err = uploads.NewConf(cfg.ImageKitPublicKey, cfg.ImageKitPrivateKey)
		if err != nil {
			return err
		}
	} else {
		slog.Warn("imagekit keys not set, upload auth disabled")
	}

	h := handlers.NewHandler(orderService, productConf, userConf, uploadConf, keys, cfg.RazorpayWebhookSecret)
	router := handlers.API(cfg.EndpointPrefix, h)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	slog.Info("starting bookstore-service", slog.String("addr", cfg.HTTPAddr))
	return server.ListenAndServe()
}
