package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:5000", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://api.kahin.org/kahinapi/guncel-adres", cfg.Upstream.URL)
	assert.Equal(t, 30*time.Second, cfg.Upstream.Timeout)
	assert.Contains(t, cfg.Upstream.UserAgent, "Mozilla/5.0")
	assert.False(t, cfg.Upstream.InsecureTLS)
}

func TestFromViper_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("UPSTREAM_URL", "http://localhost:9999/adres")
	t.Setenv("UPSTREAM_TIMEOUT", "5s")
	t.Setenv("UPSTREAM_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := FromViper(newViper())
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Port)
	assert.Equal(t, "http://localhost:9999/adres", cfg.Upstream.URL)
	assert.Equal(t, 5*time.Second, cfg.Upstream.Timeout)
	assert.True(t, cfg.Upstream.Debug)

	cc := cfg.ClientConfig()
	assert.Equal(t, cfg.Upstream.URL, cc.BaseURL)
	assert.Equal(t, 5*time.Second, cc.Timeout)
	assert.True(t, cc.Debug)
}

func TestFromViper_Invalid(t *testing.T) {
	tests := map[string]func(v *viper.Viper){
		"bad url":       func(v *viper.Viper) { v.Set("UPSTREAM_URL", "not a url") },
		"zero timeout":  func(v *viper.Viper) { v.Set("UPSTREAM_TIMEOUT", "0s") },
		"port too big":  func(v *viper.Viper) { v.Set("PORT", 70000) },
		"bad log level": func(v *viper.Viper) { v.Set("LOG_LEVEL", "loud") },
		"bad timeout":   func(v *viper.Viper) { v.Set("UPSTREAM_TIMEOUT", "yarım dakika") },
		"negative secs": func(v *viper.Viper) { v.Set("UPSTREAM_TIMEOUT", "-5") },
	}

	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			v := newViper()
			mutate(v)
			_, err := FromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestFromViper_UnitlessTimeoutIsSeconds(t *testing.T) {
	tests := map[string]time.Duration{
		"30":   30 * time.Second,
		"1.5":  1500 * time.Millisecond,
		"2m":   2 * time.Minute,
		" 45 ": 45 * time.Second,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			v := newViper()
			v.Set("UPSTREAM_TIMEOUT", in)

			cfg, err := FromViper(v)
			require.NoError(t, err)
			assert.Equal(t, want, cfg.Upstream.Timeout)
		})
	}
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("APP_VERSION=2.3\nHOST=127.0.0.1\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("APP_VERSION")
		os.Unsetenv("HOST")
	})

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "2.3", cfg.Version)
	assert.Equal(t, "127.0.0.1:5000", cfg.Addr())
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "yok.env"))
	require.NoError(t, err)
}
