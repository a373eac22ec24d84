package config

import (
	"os"
	"strings"
)

type Config struct {
	HTTPAddr       string
	EndpointPrefix string

	MongoURI string
	MongoDB  string

	JWTSecret string

	RazorpayKeyID         string
	RazorpayKeySecret     string
	RazorpayWebhookSecret string

	KafkaBrokers []string

	ImageKitPublicKey  string
	ImageKitPrivateKey string
}

func Load() Config {
	return Config{
		HTTPAddr:       getenv("HTTP_ADDR", ":8080"),
		EndpointPrefix: getenv("SERVICE_ENDPOINT_PREFIX", "/v1"),

		MongoURI: getenv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:  getenv("MONGO_DB", "bookstore"),

		JWTSecret: getenv("JWT_SECRET", ""),

		RazorpayKeyID:         getenv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getenv("RAZORPAY_KEY_SECRET", ""),
		RazorpayWebhookSecret: getenv("RAZORPAY_WEBHOOK_SECRET", ""),

		// Empty means the order-paid producer stays disabled.
		KafkaBrokers: splitCSV(getenv("KAFKA_BROKERS", "")),

		ImageKitPublicKey:  getenv("IMAGEKIT_PUBLIC_KEY", ""),
		ImageKitPrivateKey: getenv("IMAGEKIT_PRIVATE_KEY", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
