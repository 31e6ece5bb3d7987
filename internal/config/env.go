package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr string
	GinMode string

	DBUser string
	DBPass string
	DBHost string
	DBName string

	JWTSecret string

	PaymentBaseURL   string
	PaymentKeyID     string
	PaymentKeySecret string
	PaymentCurrency  string

	// Pending bookings older than this are swept, cancelled and their
	// capacity released. Zero disables the sweeper.
	BookingTTL time.Duration
}

func LoadEnv() Env {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	env := Env{
		AppAddr:          getenv("APP_ADDR", ":8080"),
		GinMode:          getenv("GIN_MODE", ""),
		DBUser:           getenv("DB_USER", "root"),
		DBPass:           getenv("DB_PASS", ""),
		DBHost:           getenv("DB_HOST", "127.0.0.1:3306"),
		DBName:           getenv("DB_NAME", "freight_app"),
		JWTSecret:        getenv("JWT_SECRET", "super-secret-key-change-me"),
		PaymentBaseURL:   getenv("PAYMENT_BASE_URL", "https://api.razorpay.com/v1"),
		PaymentKeyID:     getenv("PAYMENT_KEY_ID", ""),
		PaymentKeySecret: getenv("PAYMENT_KEY_SECRET", ""),
		PaymentCurrency:  getenv("PAYMENT_CURRENCY", "INR"),
	}

	if raw := getenv("BOOKING_TTL_MINUTES", ""); raw != "" {
		if mins, err := strconv.Atoi(raw); err == nil && mins > 0 {
			env.BookingTTL = time.Duration(mins) * time.Minute
		}
	}

	return env
}

func getenv(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
