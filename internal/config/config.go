package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultPort           = "8080"
	defaultAppEnv         = "dev"
	defaultLogLevel       = "info"
	defaultLogFormat      = "json"
	defaultSessionCookie  = "pc_session"
	defaultEmailFrom      = "hello@pixelcraft.agency"
	defaultAdminBaseURL   = "http://localhost:8080/admin"
	defaultNotifyTimeout  = "30s"
	defaultSessionSecret  = "change-me-session-secret"
	defaultHTTPTimeoutRaw = "10s"
)

// Notifier carries the outbound-channel credentials. Every field is optional;
// an empty value means the matching channel is skipped, never an error.
type Notifier struct {
	CRMURL         string
	CRMToken       string
	EmailAPIURL    string
	EmailAPIKey    string
	EmailFrom      string
	InternalEmail  string
	ChatWebhookURL string
	AdminBaseURL   string
	HTTPTimeout    time.Duration
	DispatchBudget time.Duration
}

type Config struct {
	AppEnv string
	Port   string

	// DatabaseURL may be empty: the intake workflow then runs in degraded
	// mode and synthesizes backup quote ids.
	DatabaseURL string

	SessionSecret string
	SessionCookie string

	LogLevel  string
	LogFormat string

	CORSAllowedOrigins []string

	Notifier Notifier
}

func Load() (*Config, error) {
	cfg := &Config{
		AppEnv:        strings.ToLower(getEnv("APP_ENV", defaultAppEnv)),
		Port:          getEnv("PORT", defaultPort),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionSecret: getEnv("SESSION_JWT_SECRET", defaultSessionSecret),
		SessionCookie: getEnv("SESSION_COOKIE_NAME", defaultSessionCookie),
		LogLevel:      getEnv("LOG_LEVEL", defaultLogLevel),
		LogFormat:     getEnv("LOG_FORMAT", defaultLogFormat),
	}

	if raw := strings.TrimSpace(os.Getenv("CORS_ALLOWED_ORIGINS")); raw != "" {
		cfg.CORSAllowedOrigins = strings.Split(raw, ",")
	}

	httpTimeout, err := parseDurationEnv("NOTIFY_HTTP_TIMEOUT", defaultHTTPTimeoutRaw)
	if err != nil {
		return nil, err
	}
	dispatchBudget, err := parseDurationEnv("NOTIFY_DISPATCH_BUDGET", defaultNotifyTimeout)
	if err != nil {
		return nil, err
	}

	cfg.Notifier = Notifier{
		CRMURL:         strings.TrimSpace(os.Getenv("CRM_API_URL")),
		CRMToken:       strings.TrimSpace(os.Getenv("CRM_API_TOKEN")),
		EmailAPIURL:    strings.TrimSpace(os.Getenv("EMAIL_API_URL")),
		EmailAPIKey:    strings.TrimSpace(os.Getenv("EMAIL_API_KEY")),
		EmailFrom:      getEnv("EMAIL_FROM", defaultEmailFrom),
		InternalEmail:  strings.TrimSpace(os.Getenv("INTERNAL_NOTIFY_EMAIL")),
		ChatWebhookURL: strings.TrimSpace(os.Getenv("CHAT_WEBHOOK_URL")),
		AdminBaseURL:   getEnv("ADMIN_BASE_URL", defaultAdminBaseURL),
		HTTPTimeout:    httpTimeout,
		DispatchBudget: dispatchBudget,
	}

	if cfg.AppEnv == "prod" && cfg.SessionSecret == defaultSessionSecret {
		return nil, fmt.Errorf("SESSION_JWT_SECRET must be set in prod")
	}

	return cfg, nil
}

// InitLogger builds the global zap logger from the log config.
func InitLogger(cfg *Config) error {
	var zapCfg zap.Config
	if cfg.LogFormat == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("config: parse log level: %w", err)
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return fmt.Errorf("config: build logger: %w", err)
	}
	zap.ReplaceGlobals(logger)

	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key, fallback string) (time.Duration, error) {
	raw := getEnv(key, fallback)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: invalid duration %q", key, raw)
	}
	return d, nil
}
