package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB      *sql.DB
	SMTP    SMTPConfig
	Gateway GatewayConfig
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// GatewayConfig holds the payment gateway verification settings.
type GatewayConfig struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

var AppConfig *Config

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

// Init loads .env when present, connects the database pool and builds the
// application configuration.
func Init() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	psqlInfo := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s connect_timeout=60",
		getEnv("DB_HOST", "localhost"),
		getEnvInt("DB_PORT", 5432),
		getEnv("DB_USERNAME", "postgres"),
		getEnv("DB_PASSWORD", "postgres"),
		getEnv("DB_DATABASE", "socialite"),
		getEnv("DB_SSL_MODE", "disable"),
	)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection: ", err)
	}

	AppConfig = &Config{
		DB: db,
		SMTP: SMTPConfig{
			Host:     getEnv("MAILER_HOST", "smtp.example.com"),
			Port:     getEnvInt("EMAIL_PORT", 587),
			Username: getEnv("EMAIL_USER", "socialite_mailer"),
			Password: getEnv("EMAIL_PASS", ""),
			From:     getEnv("EMAIL_SENDER", `"Socialite.io" <no-reply@socialite.io>`),
		},
		Gateway: GatewayConfig{
			BaseURL:   getEnv("PAYMENT_GATEWAY_URL", "https://api.flutterwave.com/v3"),
			SecretKey: getEnv("PAYMENT_GATEWAY_SECRET", ""),
			Timeout:   time.Duration(getEnvInt("PAYMENT_GATEWAY_TIMEOUT_SECONDS", 15)) * time.Second,
		},
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}
