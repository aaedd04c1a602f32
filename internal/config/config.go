package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port        string
	Env         string
	LogLevel    string
	DatabaseURL string

	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// Appointment wall-clock times are interpreted in this IANA location.
	AppointmentTimezone string
	SlotHorizonDays     int
	MeetingBaseURL      string
	ReminderLead        time.Duration
	ReminderMinDelay    time.Duration

	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string

	// EventBridge Scheduler target for reminder tasks.
	ReminderScheduleGroup string
	ReminderTargetArn     string
	ReminderRoleArn       string

	CreditLedgerURL   string
	CreditLedgerToken string

	CORSAllowedOrigins []string

	// Per-IP request cap on the /api routes; zero disables limiting.
	APIRateLimit      float64
	APIRateLimitBurst int

	// SendGrid Email Configuration
	SendGridAPIKey    string
	SendGridFromEmail string
	SendGridFromName  string

	// SES Email Configuration
	SESFromEmail string
	SESFromName  string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "redis:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AppointmentTimezone: getEnv("APPOINTMENT_TZ", "America/Sao_Paulo"),
		SlotHorizonDays:     getEnvAsInt("SLOT_HORIZON_DAYS", 7),
		MeetingBaseURL:      getEnv("MEETING_BASE_URL", "https://meet.jit.si"),
		ReminderLead:        getEnvAsDuration("REMINDER_LEAD", 30*time.Minute),
		ReminderMinDelay:    getEnvAsDuration("REMINDER_MIN_DELAY", 2*time.Minute),

		AWSRegion:           getEnv("AWS_REGION", "us-east-2"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),

		ReminderScheduleGroup: getEnv("REMINDER_SCHEDULE_GROUP", "default"),
		ReminderTargetArn:     getEnv("REMINDER_TARGET_ARN", ""),
		ReminderRoleArn:       getEnv("REMINDER_ROLE_ARN", ""),

		CreditLedgerURL:   getEnv("CREDIT_LEDGER_URL", ""),
		CreditLedgerToken: getEnv("CREDIT_LEDGER_TOKEN", ""),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),

		APIRateLimit:      getEnvAsFloat("API_RATE_LIMIT", 10),
		APIRateLimitBurst: getEnvAsInt("API_RATE_LIMIT_BURST", 20),

		SendGridAPIKey:    getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail: getEnv("SENDGRID_FROM_EMAIL", ""),
		SendGridFromName:  getEnv("SENDGRID_FROM_NAME", "Juridia"),

		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "Juridia"),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
