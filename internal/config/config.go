package config

import (
	"crypto/rand"
	"encoding/base64"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendFilesystem = "filesystem"
	BackendCookie     = "cookie"
	BackendRedis      = "redis"
)

type Config struct {
	Port     string
	LogLevel slog.Level

	SessionBackend string
	SessionDir     string
	SessionMaxAge  int // seconds
	SessionKey     []byte
	CSRFKey        []byte
	CookieDomain   string
	CookieSecure   bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	CatalogPath string // YAML file, embedded catalog when empty
	CatalogDB   string // SQLite file, wins over CatalogPath

	TemplatesDir string
	StaticDir    string
	CORSOrigins  []string

	OrderRatePerMinute int
	OrderBurst         int
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8585"),
		LogLevel:       parseLevel(getEnv("LOG_LEVEL", "debug")),
		SessionBackend: strings.ToLower(getEnv("SESSION_BACKEND", BackendFilesystem)),
		SessionDir:     getEnv("SESSION_DIR", os.TempDir()),
		SessionMaxAge:  getEnvInt("SESSION_MAX_AGE", 7*24*int(time.Hour/time.Second)),
		CookieDomain:   getEnv("COOKIE_DOMAIN", ""),
		CookieSecure:   getEnv("COOKIE_SECURE", "false") == "true",

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		CatalogPath: getEnv("CATALOG_PATH", ""),
		CatalogDB:   getEnv("CATALOG_DB", ""),

		TemplatesDir: getEnv("TEMPLATES_DIR", "templates"),
		StaticDir:    getEnv("STATIC_DIR", "static"),
		CORSOrigins:  splitList(getEnv("CORS_ORIGINS", "*")),

		OrderRatePerMinute: getEnvInt("ORDER_RATE_PER_MINUTE", 10),
		OrderBurst:         getEnvInt("ORDER_BURST", 3),
	}

	switch cfg.SessionBackend {
	case BackendFilesystem, BackendCookie, BackendRedis:
	default:
		slog.Error("Unknown SESSION_BACKEND. Falling back to filesystem.", "SESSION_BACKEND", cfg.SessionBackend)
		cfg.SessionBackend = BackendFilesystem
	}

	cfg.SessionKey = loadKey("SESSION_KEY", "Sessions will be invalid on restart.")
	cfg.CSRFKey = loadKey("CSRF_KEY", "This key will change on each restart.")

	// Make sure port is valid
	if _, err := strconv.Atoi(cfg.Port); err != nil {
		slog.Error("Invalid PORT environment variable. Falling back to default.", "PORT", os.Getenv("PORT"))
		cfg.Port = "8585"
	}

	return cfg, nil
}

// loadKey decodes a base64 key of at least 32 bytes, generating a random
// development key otherwise.
func loadKey(name, consequence string) []byte {
	raw := os.Getenv(name)
	if raw == "" {
		slog.Warn(name+" environment variable not set. Generating a random key for development. "+consequence, "key", name)
		return generateRandomBytes(32)
	}
	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil || len(decoded) < 32 {
		slog.Warn(name+" is invalid or too short (min 32 bytes). Generating a random key for development.", "key", name)
		return generateRandomBytes(32)
	}
	return decoded
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists || raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		slog.Warn("Invalid numeric environment variable. Falling back to default.", "key", key, "value", raw, "default", defaultValue)
		return defaultValue
	}
	return v
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelDebug
	}
	return l
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// generateRandomBytes uses crypto/rand; it only fails if the OS entropy source does.
func generateRandomBytes(n int) []byte {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		slog.Error("Failed to read random bytes", "error", err)
		panic(err)
	}
	return b
}
