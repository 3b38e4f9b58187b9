package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Token    TokenConfig
	Reminder ReminderConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

// TokenConfig holds the signing secret and validity window for issued
// bearer tokens. The secret is loaded once at startup and must never be
// logged.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

type ReminderConfig struct {
	// Schedule is a cron expression controlling how often the reminder
	// sweep runs.
	Schedule string
	// ClassWindow is how far ahead of a class start attendees are reminded.
	ClassWindow time.Duration
	// MembershipWindow is how far ahead of a membership expiry the
	// member is notified.
	MembershipWindow time.Duration
}

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", "0.0.0.0"),
			Port:         getEnvAsInt("SERVER_PORT", 8080),
			ReadTimeout:  time.Duration(getEnvAsInt("SERVER_READ_TIMEOUT", 30)) * time.Second,
			WriteTimeout: time.Duration(getEnvAsInt("SERVER_WRITE_TIMEOUT", 30)) * time.Second,
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvAsInt("DB_PORT", 5432),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", "postgres"),
			Database:     getEnv("DB_NAME", "gymmanager"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		},
		Token: TokenConfig{
			Secret: getEnv("TOKEN_SECRET", "change-me-in-production-please"),
			TTL:    time.Duration(getEnvAsInt("TOKEN_TTL_HOURS", 72)) * time.Hour,
		},
		Reminder: ReminderConfig{
			Schedule:         getEnv("REMINDER_SCHEDULE", "@hourly"),
			ClassWindow:      time.Duration(getEnvAsInt("REMINDER_CLASS_WINDOW_HOURS", 24)) * time.Hour,
			MembershipWindow: time.Duration(getEnvAsInt("REMINDER_MEMBERSHIP_WINDOW_DAYS", 7)) * 24 * time.Hour,
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" port=" + strconv.Itoa(c.Port) +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Database +
		" sslmode=" + c.SSLMode
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
