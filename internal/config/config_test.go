package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tcp_snm/algodex/internal/algo_errors"
)

func clearEnv(t *testing.T) {
	t.Helper()
	homedir.DisableCache = true
	for _, key := range []string{
		KeyAPIBaseURL, KeyAPIToken, KeyAPITimeout, KeyAPIRPS, KeyAPIBurst,
		KeyPort, KeyListenHost, KeyDetailCacheSize, KeyLogLevel, KeyLogFormat,
		"JWT_SECRET",
	} {
		t.Setenv(key, "")
	}
	// Setenv restores the variable afterwards, Unsetenv makes it absent
	t.Setenv(KeyRefreshCron, "")
	require.NoError(t, os.Unsetenv(KeyRefreshCron))
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "algodex.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default, *cfg)
	assert.Equal(t, ":8080", cfg.ListenAddress())
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, strings.Join([]string{
		"api_base_url: http://problems.internal:9000",
		"api_timeout: 3s",
		"port: \"9090\"",
		"refresh_cron: \"@every 1m\"",
		"log_level: debug",
	}, "\n"))

	t.Setenv(KeyPort, "7070")
	t.Setenv(KeyAPIRPS, "2.5")
	t.Setenv("JWT_SECRET", "shh")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://problems.internal:9000", cfg.APIBaseURL)
	assert.Equal(t, 3*time.Second, cfg.APITimeout)
	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, 2.5, cfg.APIRPS)
	assert.Equal(t, "shh", cfg.JWTSecret)
	assert.Equal(t, "@every 1m", cfg.RefreshCron)
	assert.Equal(t, "debug", cfg.LogLevel)
	// untouched keys keep defaults
	assert.Equal(t, Default.APIBurst, cfg.APIBurst)

	opts := cfg.RemoteOptions()
	assert.Equal(t, cfg.APIBaseURL, opts.BaseURL)
	assert.Equal(t, 3*time.Second, opts.Timeout)
}

func TestLoadEmptyCronDisables(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(KeyRefreshCron, "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "", cfg.RefreshCron)
}

func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())

	t.Setenv(KeyLogFormat, "xml")
	_, err := Load("")
	require.ErrorIs(t, err, algo_errors.ErrInvalidInput)
	assert.Contains(t, err.Error(), "log_format")

	t.Setenv(KeyLogFormat, "")
	t.Setenv(KeyAPIBaseURL, "not a url")
	_, err = Load("")
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)
}

func TestLoadIgnoresUnparsableNumbers(t *testing.T) {
	clearEnv(t)
	t.Setenv("HOME", t.TempDir())
	t.Setenv(KeyAPIBurst, "many")
	t.Setenv(KeyAPITimeout, "soon")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default.APIBurst, cfg.APIBurst)
	assert.Equal(t, Default.APITimeout, cfg.APITimeout)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	clearEnv(t)
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeFile(t, "api_timeout: [not, a, duration]")
	_, err := Load(path)
	assert.ErrorIs(t, err, algo_errors.ErrInvalidInput)
}

func TestConfigureLogging(t *testing.T) {
	defer log.SetFormatter(log.StandardLogger().Formatter)
	defer log.SetLevel(log.GetLevel())

	ConfigureLogging(&Config{LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, log.DebugLevel, log.GetLevel())
	assert.IsType(t, &log.JSONFormatter{}, log.StandardLogger().Formatter)

	ConfigureLogging(&Config{LogLevel: "nonsense", LogFormat: "text"})
	assert.Equal(t, log.InfoLevel, log.GetLevel())
	assert.IsType(t, &log.TextFormatter{}, log.StandardLogger().Formatter)
}
