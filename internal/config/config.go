package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort int
	LogLevel   string

	DatabaseURL string

	JWTAccessSecret  []byte
	JWTRefreshSecret []byte
	CookieSecure     bool

	// TrustProxy honours X-Forwarded-For from loopback and private-network peers.
	TrustProxy bool
	// PublicScheme is the scheme browsers use to reach the portal, for the CSRF origin check.
	PublicScheme string

	KafkaBrokers []string
	KafkaTopic   string

	Location        *time.Location
	LoginRatePerMin int
}

// Load reads .env when present and falls back to the process environment.
func Load() Config {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	access := os.Getenv("JWT_SECRET")
	refresh := EnvDefault("JWT_REFRESH_SECRET", "")
	if refresh == "" && access != "" {
		refresh = access + ".refresh"
	}

	return Config{
		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret:  []byte(access),
		JWTRefreshSecret: []byte(refresh),
		CookieSecure:     EnvBoolDefault("COOKIE_SECURE", true),

		TrustProxy:   EnvBoolDefault("TRUST_PROXY", false),
		PublicScheme: strings.ToLower(os.Getenv("PUBLIC_SCHEME")),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   EnvDefault("KAFKA_TOPIC", "portal_events"),

		Location:        LocationDefault(os.Getenv("TIMEZONE"), "Africa/Blantyre"),
		LoginRatePerMin: EnvIntDefault("LOGIN_RATE_PER_MIN", 10),
	}
}

// Configured reports whether the two required values are present.
// Without them the server runs in setup mode.
func (c Config) Configured() bool {
	return c.DatabaseURL != "" && len(c.JWTAccessSecret) > 0
}

// Missing lists the required variables that are not set.
func (c Config) Missing() []string {
	var out []string
	if c.DatabaseURL == "" {
		out = append(out, "DATABASE_URL")
	}
	if len(c.JWTAccessSecret) == 0 {
		out = append(out, "JWT_SECRET")
	}
	return out
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func LocationDefault(name, def string) *time.Location {
	if name == "" {
		name = def
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("notice: unknown TIMEZONE %q, using UTC", name)
		return time.UTC
	}
	return loc
}
