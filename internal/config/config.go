// Package config loads service configuration from the environment.
package config

import (
	"context"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Capability names one outbound provider whose credentials are checked
// before every call.
type Capability string

const (
	CapabilityChat     Capability = "chat"
	CapabilityEmail    Capability = "email"
	CapabilityWhatsApp Capability = "whatsapp"
)

const defaultProviderTimeoutMS = 30000

// Config holds the service configuration.
type Config struct {
	// Server settings
	HTTPPort int
	LogLevel string

	// Generative AI
	GoogleAPIKey    string
	GeminiModel     string
	GeminiBaseURL   string
	ProviderTimeout time.Duration

	// SMTP
	EmailHost string
	EmailPort int
	EmailUser string
	EmailPass string

	// Twilio WhatsApp
	TwilioAccountSID  string
	TwilioAuthToken   string
	TwilioPhoneNumber string

	// Optional AWS-backed sources
	ParamPrefix    string
	BorrowersTable string
	BorrowersFile  string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		HTTPPort:          getEnvInt("HTTP_PORT", 8080),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		GoogleAPIKey:      getEnv("GOOGLE_API_KEY", ""),
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiBaseURL:     getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		ProviderTimeout:   providerTimeout(getEnvInt("PROVIDER_TIMEOUT_MS", defaultProviderTimeoutMS)),
		EmailHost:         getEnv("EMAIL_HOST", ""),
		EmailPort:         getEnvInt("EMAIL_PORT", 465),
		EmailUser:         getEnv("EMAIL_USER", ""),
		EmailPass:         getEnv("EMAIL_PASS", ""),
		TwilioAccountSID:  getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:   getEnv("TWILIO_AUTH_TOKEN", ""),
		TwilioPhoneNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		ParamPrefix:       strings.TrimRight(getEnv("PARAM_PREFIX", ""), "/"),
		BorrowersTable:    getEnv("BORROWERS_TABLE", ""),
		BorrowersFile:     getEnv("BORROWERS_FILE", ""),
	}
}

// Missing returns the environment names of the credentials capability c
// needs but does not have. An empty result means the provider may be called.
func (c *Config) Missing(capability Capability) []string {
	var required []struct{ name, value string }
	switch capability {
	case CapabilityChat:
		required = []struct{ name, value string }{
			{"GOOGLE_API_KEY", c.GoogleAPIKey},
		}
	case CapabilityEmail:
		required = []struct{ name, value string }{
			{"EMAIL_HOST", c.EmailHost},
			{"EMAIL_USER", c.EmailUser},
			{"EMAIL_PASS", c.EmailPass},
		}
	case CapabilityWhatsApp:
		required = []struct{ name, value string }{
			{"TWILIO_ACCOUNT_SID", c.TwilioAccountSID},
			{"TWILIO_AUTH_TOKEN", c.TwilioAuthToken},
			{"TWILIO_PHONE_NUMBER", c.TwilioPhoneNumber},
		}
	default:
		return []string{"unknown capability " + string(capability)}
	}

	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	return missing
}

// ParamGetter is satisfied by *paramstore.Client.
type ParamGetter interface {
	GetParameters(ctx context.Context, names []string) (map[string]string, error)
}

// ResolveSecrets fills empty credential fields from SSM parameters under
// ParamPrefix. Values already set in the environment win. A lookup failure
// is logged and leaves the fields empty so the capability check reports it.
func (c *Config) ResolveSecrets(ctx context.Context, getter ParamGetter, logger *slog.Logger) {
	if getter == nil || c.ParamPrefix == "" {
		return
	}
	if logger == nil {
		logger = slog.Default()
	}

	fields := map[string]*string{
		c.ParamPrefix + "/google-api-key":     &c.GoogleAPIKey,
		c.ParamPrefix + "/email-pass":         &c.EmailPass,
		c.ParamPrefix + "/twilio-account-sid": &c.TwilioAccountSID,
		c.ParamPrefix + "/twilio-auth-token":  &c.TwilioAuthToken,
	}
	var names []string
	for name, field := range fields {
		if *field == "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return
	}

	values, err := getter.GetParameters(ctx, names)
	if err != nil {
		logger.Warn("failed to resolve secrets from parameter store", "prefix", c.ParamPrefix, "err", err)
		return
	}
	for _, name := range names {
		if v, ok := values[name]; ok {
			*fields[name] = v
		}
	}
	logger.Info("resolved secrets from parameter store", "requested", len(names), "found", len(values))
}

// SlogLevel maps LogLevel onto a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// UsesAWS reports whether any AWS-backed source is configured.
func (c *Config) UsesAWS() bool {
	return c.ParamPrefix != "" || c.BorrowersTable != ""
}

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

// providerTimeout never yields a zero timeout, which http.Client reads as "no limit".
func providerTimeout(ms int) time.Duration {
	if ms <= 0 {
		ms = defaultProviderTimeoutMS
	}
	return time.Duration(ms) * time.Millisecond
}
