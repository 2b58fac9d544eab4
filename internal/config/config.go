package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	HTTPPort    string

	RazorpayKeyID     string
	RazorpayKeySecret string

	FirebaseProjectID string
	// Optional service account key file; empty falls back to application
	// default credentials.
	FirebaseCredentialsFile string

	RedisAddr     string
	RedisPassword string

	// Optional integrations; empty disables them.
	KafkaBrokers  []string
	StorageBucket string

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Load reads configuration from the environment. Outside production a .env
// file is loaded first, matching how the service is run in development.
func Load() (*Config, error) {
	env := getEnv("APP_ENV", "development")
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("no .env file found, using system environment variables")
		}
	}

	cfg := &Config{
		Environment:             env,
		HTTPPort:                getEnv("HTTP_PORT", "10000"),
		RazorpayKeyID:           os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret:       os.Getenv("RAZORPAY_KEY_SECRET"),
		FirebaseProjectID:       os.Getenv("FIREBASE_PROJECT_ID"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		RedisAddr:               getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		StorageBucket:           os.Getenv("STORAGE_BUCKET"),
		RequestTimeout:          30 * time.Second,
		ShutdownTimeout:         10 * time.Second,
	}
	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	var missing []string
	for name, value := range map[string]string{
		"RAZORPAY_KEY_ID":     cfg.RazorpayKeyID,
		"RAZORPAY_KEY_SECRET": cfg.RazorpayKeySecret,
		"FIREBASE_PROJECT_ID": cfg.FirebaseProjectID,
	} {
		if value == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
