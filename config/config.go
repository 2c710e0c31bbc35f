package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"adres-api/sorgu"
)

// Config is built once at startup and never mutated afterwards.
type Config struct {
	Env        string `validate:"required"`
	Version    string `validate:"required"`
	LogLevel   string `validate:"oneof=debug info warn error"`
	Host       string
	Port       int    `validate:"min=1,max=65535"`
	CORSOrigin string // boşsa istek Origin'i yansıtılır

	Upstream Upstream
}

type Upstream struct {
	URL         string        `validate:"required,url"`
	Timeout     time.Duration `validate:"gt=0"`
	UserAgent   string        `validate:"required"`
	InsecureTLS bool
	Debug       bool
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ClientConfig maps the upstream section onto the lookup client.
func (c Config) ClientConfig() sorgu.ClientConfig {
	return sorgu.ClientConfig{
		BaseURL:     c.Upstream.URL,
		Timeout:     c.Upstream.Timeout,
		UserAgent:   c.Upstream.UserAgent,
		InsecureTLS: c.Upstream.InsecureTLS,
		Debug:       c.Upstream.Debug,
	}
}

// Load reads the optional .env files (existing environment wins) and then
// the environment itself.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromViper(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("APP_VERSION", "1.0")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 5000)
	v.SetDefault("CORS_ORIGIN", "")
	v.SetDefault("UPSTREAM_URL", sorgu.DefaultBaseURL)
	v.SetDefault("UPSTREAM_TIMEOUT", sorgu.DefaultTimeout.String())
	v.SetDefault("UPSTREAM_USER_AGENT", sorgu.DefaultUserAgent)
	v.SetDefault("UPSTREAM_INSECURE_TLS", false)
	v.SetDefault("UPSTREAM_DEBUG", false)
	return v
}

// FromViper builds and validates a Config from an already populated viper
// instance.
func FromViper(v *viper.Viper) (Config, error) {
	timeout, err := parseTimeout(v.GetString("UPSTREAM_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid config: UPSTREAM_TIMEOUT: %w", err)
	}

	cfg := Config{
		Env:        v.GetString("APP_ENV"),
		Version:    v.GetString("APP_VERSION"),
		LogLevel:   v.GetString("LOG_LEVEL"),
		Host:       v.GetString("HOST"),
		Port:       v.GetInt("PORT"),
		CORSOrigin: v.GetString("CORS_ORIGIN"),
		Upstream: Upstream{
			URL:         v.GetString("UPSTREAM_URL"),
			Timeout:     timeout,
			UserAgent:   v.GetString("UPSTREAM_USER_AGENT"),
			InsecureTLS: v.GetBool("UPSTREAM_INSECURE_TLS"),
			Debug:       v.GetBool("UPSTREAM_DEBUG"),
		},
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// parseTimeout accepts Go durations ("30s", "1m") and bare numbers, which
// are read as seconds.
func parseTimeout(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(n * float64(time.Second)), nil
	}
	return time.ParseDuration(s)
}
