package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Storage backends selectable with STORE_BACKEND.
const (
	BackendMemory   = "memory"
	BackendLocal    = "local"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendS3       = "s3"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	StoreBackend  string
	StoreKey      string
	LocalStoreDir string
	SQLitePath    string
	DatabaseURL   string
	AWSRegion     string
	S3Bucket      string
	S3Prefix      string
	SSEKMSKeyID   string

	HistoryLimit int

	ChromePath    string
	ExportTimeout time.Duration
	ExportRate    float64
	ExportBurst   int
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))
	dbURL := os.Getenv("DATABASE_URL")
	backend := normalizeBackend(getEnv("STORE_BACKEND", BackendLocal))

	if backend == BackendPostgres && dbURL == "" {
		log.Printf("DATABASE_URL is required for the postgres store backend")
	}

	return Config{
		Port:            getEnv("PORT", "8080"),
		Env:             env,
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		StoreBackend:    backend,
		StoreKey:        getEnv("STORE_KEY", "resume-builder-data"),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		SQLitePath:      getEnv("SQLITE_PATH", "./data/resume.db"),
		DatabaseURL:     dbURL,
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),
		HistoryLimit:    getEnvInt("HISTORY_LIMIT", 50),
		ChromePath:      getEnv("CHROME_PATH", ""),
		ExportTimeout:   getEnvDuration("EXPORT_TIMEOUT", 60*time.Second),
		ExportRate:      getEnvFloat("EXPORT_RATE", 0.2),
		ExportBurst:     getEnvInt("EXPORT_BURST", 3),
	}
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		log.Printf("config %s invalid int %q, using %d", key, raw, def)
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Printf("config %s invalid number %q, using %v", key, raw, def)
		return def
	}
	return val
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := time.ParseDuration(raw)
	if err != nil || val <= 0 {
		log.Printf("config %s invalid duration %q, using %s", key, raw, def)
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizeBackend(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "memory", "mem":
		return BackendMemory
	case "sqlite", "sqlite3":
		return BackendSQLite
	case "postgres", "postgresql", "pg":
		return BackendPostgres
	case "s3":
		return BackendS3
	default:
		return BackendLocal
	}
}
