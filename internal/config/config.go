package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	ServerPort string

	// AuthSecret is the shared symmetric secret the external identity
	// provider signs tokens with. BETTER_AUTH_SECRET takes priority over
	// JWT_SECRET so deployments can share a secret with a Better Auth
	// frontend without renaming anything.
	AuthSecret         string
	TokenExpiryMinutes int

	// RequireRegisteredUser makes task creation insist that the token
	// subject exists in the local users table.
	RequireRegisteredUser bool

	DBMaxOpenConns    int
	DBConnMaxLifetime int // seconds, pool recycle
	MigratePath       string

	CORSOrigins []string

	LogLevel string
	LogJSON  bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("⚠️  No .env file found, using system environment variables")
	}

	secret := os.Getenv("BETTER_AUTH_SECRET")
	if secret == "" {
		secret = getEnv("JWT_SECRET", "supersecretkey")
	}

	return &Config{
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "todo_user"),
		DBPassword:            getEnv("DB_PASSWORD", "todo_pass"),
		DBName:                getEnv("DB_NAME", "todo_db"),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		AuthSecret:            secret,
		TokenExpiryMinutes:    getEnvInt("JWT_EXPIRY_MINUTES", 1440),
		RequireRegisteredUser: getEnvBool("REQUIRE_REGISTERED_USER", true),
		DBMaxOpenConns:        getEnvInt("DB_MAX_OPEN_CONNS", 10),
		DBConnMaxLifetime:     getEnvInt("DB_CONN_MAX_LIFETIME_SECONDS", 300),
		MigratePath:           getEnv("MIGRATE_PATH", "migrations"),
		CORSOrigins: getEnvList("CORS_ORIGINS",
			"http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
		LogJSON:  getEnvBool("LOG_JSON", false),
	}
}

// DatabaseURL renders the URL form of the DSN, used by the migration runner.
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if value, exists := os.LookupEnv(key); exists {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultVal
}

func getEnvList(key, defaultVal string) []string {
	raw := getEnv(key, defaultVal)
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
