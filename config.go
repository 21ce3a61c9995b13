package main

import (
	"fmt"
	"unicode/utf8"

	"github.com/caarlos0/env/v7"

	"zultys-gsm7/gsm7"
)

// ServiceConfig is read from the environment (and .env, see main).
type ServiceConfig struct {
	WebListen     string `env:"WEB_LISTEN" envDefault:"0.0.0.0:3000"`
	APIKey        string `env:"API_KEY"`
	ProxyProtocol bool   `env:"HAPROXY_PROXY_PROTOCOL" envDefault:"false"`

	MetricsPath   string `env:"METRICS_PATH" envDefault:"/metrics"`
	MetricsListen string `env:"METRICS_LISTEN"`

	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
	LokiURL      string `env:"LOKI_URL"`
	LokiUsername string `env:"LOKI_USERNAME"`
	LokiPassword string `env:"LOKI_PASSWORD"`

	Strict         bool   `env:"GSM7_STRICT" envDefault:"false"`
	Replacement    string `env:"GSM7_REPLACEMENT"`
	MaxInputLength int    `env:"GSM7_MAX_INPUT_LENGTH" envDefault:"0"`
	ValidateInput  bool   `env:"GSM7_VALIDATE_INPUT" envDefault:"false"`
	Normalize      bool   `env:"GSM7_NORMALIZE" envDefault:"false"`
}

// LoadConfig parses the service configuration. A nil environment reads the
// process environment.
func LoadConfig(environment map[string]string) (ServiceConfig, error) {
	var cfg ServiceConfig
	opts := env.Options{Environment: environment}
	if err := env.Parse(&cfg, opts); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}

// Codec returns the codec defaults configured for the service.
func (c ServiceConfig) Codec() (gsm7.Config, error) {
	cfg := gsm7.DefaultConfig()
	cfg.Strict = c.Strict
	cfg.MaxInputLength = c.MaxInputLength
	cfg.ValidateInput = c.ValidateInput
	cfg.Normalize = c.Normalize
	if c.Replacement != "" {
		r, err := parseReplacement(c.Replacement)
		if err != nil {
			return cfg, fmt.Errorf("GSM7_REPLACEMENT: %w", err)
		}
		cfg.ReplacementChar = r
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// parseReplacement accepts exactly one valid character.
func parseReplacement(s string) (rune, error) {
	if utf8.RuneCountInString(s) != 1 {
		return 0, fmt.Errorf("replacement must be a single character, got %q", s)
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError && s != string(utf8.RuneError) {
		return 0, fmt.Errorf("replacement %q is not valid UTF-8", s)
	}
	return r, nil
}
