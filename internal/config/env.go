package config

import (
	"os"
	"strconv"
	"strings"

	_ "github.com/joho/godotenv/autoload"
)

type Env struct {
	AppAddr string
	GinMode string

	DBDSN string

	JWTSecret   string
	JWTTTLHours int

	// Stay policy defaults. Bookings snapshot these at creation time.
	CheckInHour  int
	CheckOutHour int
	TimeZone     string

	// Requests per second allowed per client IP; also used as the burst size.
	RateLimitPerSec float64
}

func LoadEnv() Env {
	appAddr := strings.TrimSpace(os.Getenv("APP_ADDR"))
	if appAddr == "" {
		appAddr = ":8080"
	}

	dsn := strings.TrimSpace(os.Getenv("DB_DSN"))
	if dsn == "" {
		dsn = "root:@tcp(127.0.0.1:3306)/hotel?parseTime=true&charset=utf8mb4&timeout=5s&readTimeout=30s&writeTimeout=30s"
	}

	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret == "" {
		secret = "super-secret-key-change-me"
	}

	tz := strings.TrimSpace(os.Getenv("STAY_TIME_ZONE"))
	if tz == "" {
		tz = "Africa/Cairo"
	}

	return Env{
		AppAddr:         appAddr,
		GinMode:         strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:           dsn,
		JWTSecret:       secret,
		JWTTTLHours:     envInt("JWT_TTL_HOURS", 24),
		CheckInHour:     envInt("STAY_CHECK_IN_HOUR", 12),
		CheckOutHour:    envInt("STAY_CHECK_OUT_HOUR", 11),
		TimeZone:        tz,
		RateLimitPerSec: envFloat("RATE_LIMIT_PER_SEC", 5),
	}
}

func envInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def
	}
	return v
}
