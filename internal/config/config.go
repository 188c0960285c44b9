package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strings"
	"time"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Persistence is file-based, so instead of
// database credentials the config carries the data directory where the
// order workbook and the keyed JSON stores live.
type Config struct {
	Env             string        // application environment (e.g. "dev", "prod")
	Port            string        // HTTP port to listen on
	DataDir         string        // directory holding the store files
	WebDir          string        // directory holding the static landing page
	OperatorSecret  string        // secret used to sign operator tokens
	OperatorTTLMin  int           // operator token time-to-live in minutes
	Operators       []string      // operator ids used to seed the pool file
	PendingOrderTTL time.Duration // purge pending orders older than this; 0 disables the janitor
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:             must("APP_ENV"),
		Port:            must("APP_PORT"),
		DataDir:         getenv("DATA_DIR", "data"),
		WebDir:          getenv("WEB_DIR", "web"),
		OperatorSecret:  must("OPERATOR_SECRET"),
		OperatorTTLMin:  envInt("OPERATOR_TOKEN_TTL_MIN", 720),
		Operators:       splitList(getenv("OPERATORS", "operator")),
		PendingOrderTTL: envDur("PENDING_ORDER_TTL", 0),
	}
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

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
