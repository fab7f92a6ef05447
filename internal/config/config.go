package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata" // REFERENCE_TZ debe resolverse aunque el host no traiga zoneinfo

	"github.com/joho/godotenv"
)

// Drivers de almacenamiento soportados.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

type Config struct {
	HTTPAddr     string
	DBDriver     string
	DBDSN        string
	SQLitePath   string
	ReferenceTZ  string
	SessionKey   string
	SessionTTL   time.Duration
	RedisAddr    string
	RedisPass    string
	CORSOrigins  []string
	LogLevel     string
	LogFormat    string
	AppName      string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load lee .env (si existe) y luego el entorno.
// Un .env ausente no es error: en producción todo viene del entorno.
func Load() Config {
	_ = godotenv.Load()
	return FromEnv()
}

func FromEnv() Config {
	addr := getenv("HTTP_ADDR", "")
	if addr == "" {
		addr = ":" + getenv("PORT", "3000")
	}

	dsn := getenv("DB_DSN", getenv("DATABASE_URL", ""))
	driver := strings.ToLower(getenv("DB_DRIVER", ""))
	if driver == "" {
		driver = DriverMemory
		if dsn != "" {
			driver = DriverPostgres
		}
	}

	return Config{
		HTTPAddr:     addr,
		DBDriver:     driver,
		DBDSN:        dsn,
		SQLitePath:   getenv("SQLITE_PATH", "medremind.db"),
		ReferenceTZ:  getenv("REFERENCE_TZ", "America/Sao_Paulo"),
		SessionKey:   getenv("SESSION_SECRET", ""),
		SessionTTL:   getenvDuration("SESSION_TTL", 24*time.Hour),
		RedisAddr:    getenv("REDIS_ADDR", ""),
		RedisPass:    getenv("REDIS_PASSWORD", ""),
		CORSOrigins:  getenvList("CORS_ORIGINS", []string{"*"}),
		LogLevel:     getenv("LOG_LEVEL", "info"),
		LogFormat:    getenv("LOG_FORMAT", "text"),
		AppName:      getenv("APP_NAME", "medication-reminder"),
		ReadTimeout:  getenvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout: getenvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
	}
}

// Validate detecta combinaciones que no pueden arrancar.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required for driver %q", c.DBDriver)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for driver %q", c.DBDriver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	if _, err := time.LoadLocation(c.ReferenceTZ); err != nil {
		return fmt.Errorf("invalid REFERENCE_TZ %q: %w", c.ReferenceTZ, err)
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	return nil
}

func getenv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	if val := os.Getenv(key + "_SECONDS"); val != "" {
		if seconds, err := strconv.Atoi(val); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return fallback
}

func getenvList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if strings.TrimSpace(val) == "" {
		return fallback
	}
	out := make([]string, 0)
	for _, part := range strings.Split(val, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
