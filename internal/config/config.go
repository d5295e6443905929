package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress       string
	DatabaseURI      string
	GatewayAddress   string
	GatewaySecretKey string
	NotifierAddress  string
	CallbackURL      string
	JWTSecret        string
	RedisAddr        string
	Currency         string
	LogLevel         string
	ReceiptWorkers   int
	ReceiptQueueSize int
	ShutdownTimeout  time.Duration
}

const (
	defaultRunAddress       = ":8080"
	defaultJWTSecret        = "change-me-in-production"
	defaultCurrency         = "NGN"
	defaultLogLevel         = "info"
	defaultReceiptWorkers   = 2
	defaultReceiptQueueSize = 64
	defaultShutdownTimeout  = 10 * time.Second
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:       getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:      getString(lookup, "DATABASE_URI", ""),
		GatewayAddress:   getString(lookup, "GATEWAY_ADDRESS", ""),
		GatewaySecretKey: getString(lookup, "GATEWAY_SECRET_KEY", ""),
		NotifierAddress:  getString(lookup, "NOTIFIER_ADDRESS", ""),
		CallbackURL:      getString(lookup, "CALLBACK_URL", ""),
		JWTSecret:        getString(lookup, "JWT_SECRET", defaultJWTSecret),
		RedisAddr:        getString(lookup, "REDIS_ADDR", ""),
		Currency:         getString(lookup, "CURRENCY", defaultCurrency),
		LogLevel:         getString(lookup, "LOG_LEVEL", defaultLogLevel),
		ReceiptWorkers:   getInt(lookup, "RECEIPT_WORKERS", defaultReceiptWorkers),
		ReceiptQueueSize: getInt(lookup, "RECEIPT_QUEUE_SIZE", defaultReceiptQueueSize),
		ShutdownTimeout:  getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
	}

	fs := flag.NewFlagSet("chopnow", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	shutdownTimeoutStr := cfg.ShutdownTimeout.String()

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.GatewayAddress, "g", cfg.GatewayAddress, "Payment gateway base URL")
	fs.StringVar(&cfg.NotifierAddress, "n", cfg.NotifierAddress, "Notification service base URL")
	fs.StringVar(&cfg.CallbackURL, "callback-url", cfg.CallbackURL, "Hosted checkout callback URL")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.RedisAddr, "redis", cfg.RedisAddr, "Redis address for shared attempt counters")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Currency code for receipts")
	fs.IntVar(&cfg.ReceiptWorkers, "receipt-workers", cfg.ReceiptWorkers, "Number of concurrent receipt dispatchers")
	fs.IntVar(&cfg.ReceiptQueueSize, "receipt-queue", cfg.ReceiptQueueSize, "Receipt dispatch queue size")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error
	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = string(content)
	}

	if secretFile, ok := lookup("GATEWAY_SECRET_KEY_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read gateway secret file: %w", err)
		}
		cfg.GatewaySecretKey = string(content)
	}

	if cfg.ReceiptWorkers <= 0 {
		cfg.ReceiptWorkers = defaultReceiptWorkers
	}

	if cfg.ReceiptQueueSize <= 0 {
		cfg.ReceiptQueueSize = defaultReceiptQueueSize
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.GatewayAddress == "" {
		return nil, fmt.Errorf("gateway address must be provided")
	}

	if cfg.GatewaySecretKey == "" {
		return nil, fmt.Errorf("gateway secret key must be provided")
	}

	if cfg.NotifierAddress == "" {
		return nil, fmt.Errorf("notifier address must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
