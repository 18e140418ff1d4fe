package app

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is read from an optional YAML file named by TASKFLOW_CONFIG, then
// overridden by environment variables.
type Config struct {
	Issuer      string `yaml:"issuer"`       // Issuer claim for tokens (default: taskflow)
	Algorithm   string `yaml:"algorithm"`    // Access token signing algorithm, EdDSA or ES256 (default: EdDSA)
	NumKeys     int    `yaml:"num_keys"`     // Signing keys generated at startup (default: 1, max: 10)
	ResetSecret string `yaml:"reset_secret"` // HMAC secret for reset tokens and code hashes; random per process when empty

	DatabaseFile string `yaml:"database_file"` // SQLite database path (default: taskflow.db)
	PepperFile   string `yaml:"pepper_file"`   // Password pepper path (default: pepper)

	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`  // default: 15m
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"` // default: 7 days, also the cookie max age
	OTPTTL          time.Duration `yaml:"otp_ttl"`           // default: 10m
	ResetTokenTTL   time.Duration `yaml:"reset_token_ttl"`   // default: 15m
	CookieSecure    bool          `yaml:"cookie_secure"`

	Mail MailConfig `yaml:"mail"`

	Env                  string        `yaml:"env"`        // dev, staging, production (default: dev)
	LogLevel             string        `yaml:"log_level"`  // debug, info, warn, error (default: info)
	LogFormat            string        `yaml:"log_format"` // json or text (default: json)
	Port                 int           `yaml:"port"`       // default: 8080
	ShutdownGracePeriod  time.Duration `yaml:"shutdown_grace_period"`
	HousekeepingInterval time.Duration `yaml:"housekeeping_interval"`
	StreamHeartbeat      time.Duration `yaml:"stream_heartbeat"`
}

type MailConfig struct {
	Driver string `yaml:"driver"` // log, smtp or resend (default: log)
	From   string `yaml:"from"`

	SMTPHost string `yaml:"smtp_host"`
	SMTPPort string `yaml:"smtp_port"`
	SMTPUser string `yaml:"smtp_user"`
	SMTPPass string `yaml:"smtp_pass"`

	ResendAPIKey string `yaml:"resend_api_key"`
}

// IsProduction reports whether error details must be hidden from clients.
func (c Config) IsProduction() bool {
	env := strings.ToLower(c.Env)
	return env == "production" || env == "prod"
}

func defaultConfig() Config {
	return Config{
		Issuer:               "taskflow",
		Algorithm:            "EdDSA",
		NumKeys:              1,
		DatabaseFile:         "taskflow.db",
		PepperFile:           "pepper",
		AccessTokenTTL:       15 * time.Minute,
		RefreshTokenTTL:      7 * 24 * time.Hour,
		OTPTTL:               10 * time.Minute,
		ResetTokenTTL:        15 * time.Minute,
		Mail:                 MailConfig{Driver: "log", From: "TaskFlow <no-reply@taskflow.local>", SMTPPort: "587"},
		Env:                  "dev",
		LogLevel:             "info",
		LogFormat:            "json",
		Port:                 8080,
		ShutdownGracePeriod:  10 * time.Second,
		HousekeepingInterval: time.Hour,
		StreamHeartbeat:      25 * time.Second,
	}
}

func LoadConfig() (Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("TASKFLOW_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Issuer = getEnvOrDefault("TASKFLOW_ISSUER", cfg.Issuer)
	cfg.Algorithm = getEnvOrDefault("TASKFLOW_ALGORITHM", cfg.Algorithm)
	cfg.NumKeys = getEnvIntOrDefault("TASKFLOW_NUM_KEYS", cfg.NumKeys)
	cfg.ResetSecret = getEnvOrDefault("TASKFLOW_RESET_SECRET", cfg.ResetSecret)
	cfg.DatabaseFile = getEnvOrDefault("TASKFLOW_DATABASE_FILE", cfg.DatabaseFile)
	cfg.PepperFile = getEnvOrDefault("TASKFLOW_PEPPER_FILE", cfg.PepperFile)

	cfg.AccessTokenTTL = getEnvDurationOrDefault("ACCESS_TOKEN_TTL", cfg.AccessTokenTTL)
	cfg.RefreshTokenTTL = getEnvDurationOrDefault("REFRESH_TOKEN_TTL", cfg.RefreshTokenTTL)
	cfg.OTPTTL = getEnvDurationOrDefault("OTP_TTL", cfg.OTPTTL)
	cfg.ResetTokenTTL = getEnvDurationOrDefault("RESET_TOKEN_TTL", cfg.ResetTokenTTL)
	cfg.CookieSecure = getEnvBoolOrDefault("COOKIE_SECURE", cfg.CookieSecure)

	cfg.Mail.Driver = getEnvOrDefault("MAIL_DRIVER", cfg.Mail.Driver)
	cfg.Mail.From = getEnvOrDefault("MAIL_FROM", cfg.Mail.From)
	cfg.Mail.SMTPHost = getEnvOrDefault("SMTP_HOST", cfg.Mail.SMTPHost)
	cfg.Mail.SMTPPort = getEnvOrDefault("SMTP_PORT", cfg.Mail.SMTPPort)
	cfg.Mail.SMTPUser = getEnvOrDefault("SMTP_USER", cfg.Mail.SMTPUser)
	cfg.Mail.SMTPPass = getEnvOrDefault("SMTP_PASS", cfg.Mail.SMTPPass)
	cfg.Mail.ResendAPIKey = getEnvOrDefault("RESEND_API_KEY", cfg.Mail.ResendAPIKey)

	cfg.Env = getEnvOrDefault("ENV", cfg.Env)
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", cfg.LogLevel)
	cfg.LogFormat = getEnvOrDefault("LOG_FORMAT", cfg.LogFormat)
	cfg.Port = getEnvIntOrDefault("PORT", cfg.Port)
	cfg.ShutdownGracePeriod = getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", cfg.ShutdownGracePeriod)
	cfg.HousekeepingInterval = getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", cfg.HousekeepingInterval)
	cfg.StreamHeartbeat = getEnvDurationOrDefault("STREAM_HEARTBEAT", cfg.StreamHeartbeat)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Mail.Driver {
	case "log":
	case "smtp":
		if c.Mail.SMTPHost == "" {
			return fmt.Errorf("config: SMTP_HOST is required for the smtp mail driver")
		}
	case "resend":
		if c.Mail.ResendAPIKey == "" {
			return fmt.Errorf("config: RESEND_API_KEY is required for the resend mail driver")
		}
	default:
		return fmt.Errorf("config: unknown mail driver %q (supported: log, smtp, resend)", c.Mail.Driver)
	}
	if c.ResetSecret != "" && len(c.ResetSecret) < 32 {
		return fmt.Errorf("config: TASKFLOW_RESET_SECRET must be at least 32 bytes")
	}
	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		return fmt.Errorf("config: token lifetimes must be positive")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if b, err := strconv.ParseBool(value); err == nil {
		return b
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
