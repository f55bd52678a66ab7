package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. Optional integrations
// (MySQL, Redis, RabbitMQ) leave their fields empty when unused.
type Config struct {
	Env           string // application environment (e.g. "dev", "prod")
	Port          string // HTTP port to listen on
	JWTSecret     string // secret used to sign session tokens
	SessionTTLMin int    // session lifetime in minutes

	StoreBackend string // record store backend: "file", "mysql" or "memory"
	DataDir      string // data directory for the file backend

	DBUser string // MySQL username (mysql backend)
	DBPass string // MySQL password (optional)
	DBHost string // MySQL host
	DBPort string // MySQL port
	DBName string // MySQL database name

	RedisAddr     string // Redis address for the session store (optional)
	RedisPassword string // Redis password (optional)
	RedisDB       int    // Redis database number

	RabbitURL string // AMQP URL for lifecycle events (optional)

	SeedDemoData bool // install demo fixtures into empty collections
}

// Load reads configuration from the environment. Required variables
// are enforced by must(); missing ones abort startup with a fatal log.
func Load() Config {
	cfg := Config{
		Env:           must("APP_ENV"),
		Port:          must("APP_PORT"),
		JWTSecret:     must("JWT_SECRET"),
		SessionTTLMin: mustInt("SESSION_TTL_MIN"),
		StoreBackend:  getDefault("STORE_BACKEND", "file"),
		DataDir:       getDefault("DATA_DIR", "data"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RabbitURL:     os.Getenv("RABBITMQ_URL"),
		SeedDemoData:  os.Getenv("SEED_DEMO_DATA") == "true",
	}
	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		if n, err := strconv.Atoi(dbStr); err == nil {
			cfg.RedisDB = n
		}
	}
	if cfg.StoreBackend == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS")
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value to an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// getDefault returns the variable's value or a fallback when unset.
func getDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
