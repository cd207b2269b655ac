package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// RelaySMTPConfig is the optional SMTP fallback of the contact relay.
type RelaySMTPConfig struct {
	Host        string `env:"SMTP_HOST"`
	Port        int    `env:"SMTP_PORT" env-default:"587"`
	Username    string `env:"SMTP_USERNAME"`
	Password    string `env:"SMTP_PASSWORD"`
	SenderEmail string `env:"SMTP_SENDER_EMAIL"`
	Encryption  string `env:"SMTP_ENCRYPTION" env-default:"tls"`
	ServerName  string `env:"SMTP_SERVER_NAME"`
}

// RelayConfig holds the configuration of the contact relay.
type RelayConfig struct {
	ServiceName  string          `env:"RELAY_SERVICE_NAME" env-default:"contact-relay"`
	Port         string          `env:"RELAY_PORT" env-default:"8081"`
	ResendAPIKey string          `env:"RESEND_API_KEY"`
	ContactEmail string          `env:"CONTACT_EMAIL" env-default:"ayyavu.ayyavupromoters@gmail.com"`
	FromEmail    string          `env:"RELAY_FROM_EMAIL" env-default:"onboarding@resend.dev"`
	SMTP         RelaySMTPConfig
	MetricsPort  string          `env:"RELAY_METRICS_PORT"`
}

// LoadRelayConfig reads the relay configuration from the environment.
func LoadRelayConfig() (*RelayConfig, error) {
	var cfg RelayConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read relay config: %w", err)
	}
	return &cfg, nil
}

// SMTPConfigured reports whether the SMTP fallback has the required settings.
func (c *RelayConfig) SMTPConfigured() bool {
	return c.SMTP.Host != "" && c.SMTP.Port != 0 && c.SMTP.SenderEmail != ""
}
