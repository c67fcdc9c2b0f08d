package config // package config loads application configuration from environment variables

import (
	"log" // log is used to report configuration errors and halt execution
	"os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Required values are enforced by must();
// optional values fall back to defaults so a bare dev environment still
// boots (with Redis, RabbitMQ and the admin surface disabled).
type Config struct {
	Env               string // application environment ("dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	JWTSecret         string // secret used to sign admin session tokens (optional)
	AdminPasswordHash string // bcrypt hash of the admin password (optional)
	AdminTokenTTLMin  int    // admin token time-to-live in minutes
	FallbackStorePath string // path of the degraded-mode reaction file store
	NotifyAccessKey   string // relay access key the notification worker posts with
}

// Load reads configuration values from environment variables and returns
// a Config.  Missing required variables cause the program to exit with a
// fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"),
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		AdminTokenTTLMin:  atoiDef("ADMIN_TOKEN_TTL_MIN", 60),
		FallbackStorePath: getenv("FALLBACK_STORE_PATH", "data/reactions.json"),
		NotifyAccessKey:   os.Getenv("NOTIFY_ACCESS_KEY"),
	}
}

// IsProd reports whether the server runs in production mode.  Error
// responses include a details field only when this is false.
func (c Config) IsProd() bool { return c.Env == "prod" }

// AdminEnabled reports whether the admin surface can be served.  Both
// the signing secret and the password hash must be configured.
func (c Config) AdminEnabled() bool {
	return c.JWTSecret != "" && c.AdminPasswordHash != ""
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// atoiDef reads an optional integer variable, falling back to def when
// the variable is unset or not a number.
func atoiDef(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if n := atoi(v); n > 0 {
		return n
	}
	return def
}
