package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/go-homedir"
	log "github.com/sirupsen/logrus"
	"github.com/tcp_snm/algodex/internal/algo_errors"
	"github.com/tcp_snm/algodex/internal/remote_api"
	"github.com/tcp_snm/algodex/internal/service"
	"github.com/tcp_snm/algodex/internal/service/problem_service"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when no --config flag is given. A missing file is fine.
const DefaultPath = "~/.algodex.yaml"

const (
	KeyAPIBaseURL      = "API_BASE_URL"
	KeyAPIToken        = "API_TOKEN"
	KeyAPITimeout      = "API_TIMEOUT"
	KeyAPIRPS          = "API_RPS"
	KeyAPIBurst        = "API_BURST"
	KeyPort            = "PORT"
	KeyListenHost      = "API_URL"
	KeyRefreshCron     = "REFRESH_CRON"
	KeyDetailCacheSize = "DETAIL_CACHE_SIZE"
	KeyLogLevel        = "LOG_LEVEL"
	KeyLogFormat       = "LOG_FORMAT"
)

// Default is the configuration used before the file and environment apply.
var Default = Config{
	APIBaseURL:      remote_api.DefaultBaseURL,
	APITimeout:      remote_api.DefaultTimeout,
	APIRPS:          10,
	APIBurst:        5,
	Port:            "8080",
	RefreshCron:     "@every 5m",
	DetailCacheSize: problem_service.DefaultDetailCacheSize,
	LogLevel:        "info",
	LogFormat:       "text",
}

type Config struct {
	APIBaseURL      string        `yaml:"api_base_url" json:"api_base_url" validate:"required,url"`
	APIToken        string        `yaml:"api_token" json:"api_token"`
	APITimeout      time.Duration `yaml:"api_timeout" json:"api_timeout" validate:"gt=0s"`
	APIRPS          float64       `yaml:"api_rps" json:"api_rps" validate:"gte=0"`
	APIBurst        int           `yaml:"api_burst" json:"api_burst" validate:"gte=0"`
	Port            string        `yaml:"port" json:"port" validate:"required,numeric"`
	ListenHost      string        `yaml:"listen_host" json:"listen_host"`
	JWTSecret       string        `yaml:"jwt_secret" json:"jwt_secret"`
	RefreshCron     string        `yaml:"refresh_cron" json:"refresh_cron"`
	DetailCacheSize int           `yaml:"detail_cache_size" json:"detail_cache_size" validate:"gte=0"`
	LogLevel        string        `yaml:"log_level" json:"log_level" validate:"oneof=trace debug info warn warning error fatal panic"`
	LogFormat       string        `yaml:"log_format" json:"log_format" validate:"oneof=text json"`
}

// Load builds the configuration from defaults, the YAML file at path, and
// the environment (including a .env file), in increasing precedence.
func Load(path string) (*Config, error) {
	// .env is optional
	if err := godotenv.Load(); err == nil {
		log.Debug("loaded .env file")
	}

	cfg := Default
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("%w, cannot expand config path %q, %w", algo_errors.ErrInvalidInput, path, err)
	}

	file, err := os.Open(expanded)
	switch {
	case err == nil:
		defer file.Close()
		fromFile, readErr := NewFromReader(file, cfg)
		if readErr != nil {
			return nil, fmt.Errorf("%w, config file %s, %w", algo_errors.ErrInvalidInput, expanded, readErr)
		}
		cfg = *fromFile
		log.WithField("path", expanded).Debug("loaded config file")
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// no file, defaults and environment only
	default:
		return nil, fmt.Errorf("%w, cannot open config file %s, %w", algo_errors.ErrInvalidInput, expanded, err)
	}

	applyEnv(&cfg)

	if err := service.ValidateInput(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewFromReader decodes YAML over base. Keys absent from the document keep
// the base values.
func NewFromReader(r io.Reader, base Config) (*Config, error) {
	c := base

	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}
	if err := yaml.Unmarshal(bytes, &c); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	return &c, nil
}

func applyEnv(cfg *Config) {
	cfg.APIBaseURL = getenvDefault(KeyAPIBaseURL, cfg.APIBaseURL)
	cfg.APIToken = getenvDefault(KeyAPIToken, cfg.APIToken)
	cfg.APITimeout = parseDurationDefault(KeyAPITimeout, cfg.APITimeout)
	cfg.APIRPS = parseFloatDefault(KeyAPIRPS, cfg.APIRPS)
	cfg.APIBurst = parseIntDefault(KeyAPIBurst, cfg.APIBurst)
	cfg.Port = getenvDefault(KeyPort, cfg.Port)
	cfg.ListenHost = getenvDefault(KeyListenHost, cfg.ListenHost)
	cfg.JWTSecret = getenvDefault(service.KeyJWTSecret, cfg.JWTSecret)
	cfg.DetailCacheSize = parseIntDefault(KeyDetailCacheSize, cfg.DetailCacheSize)
	cfg.LogLevel = getenvDefault(KeyLogLevel, cfg.LogLevel)
	cfg.LogFormat = getenvDefault(KeyLogFormat, cfg.LogFormat)

	// an explicitly empty REFRESH_CRON disables scheduled refreshes
	if val, ok := os.LookupEnv(KeyRefreshCron); ok {
		cfg.RefreshCron = val
	}
}

func getenvDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseIntDefault(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
		log.Warnf("ignoring invalid %s=%q, using %d", key, val, fallback)
	}
	return fallback
}

func parseFloatDefault(key string, fallback float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
		log.Warnf("ignoring invalid %s=%q, using %v", key, val, fallback)
	}
	return fallback
}

func parseDurationDefault(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
		log.Warnf("ignoring invalid %s=%q, using %s", key, val, fallback)
	}
	return fallback
}

// ConfigureLogging applies the log level and format to the global logger.
func ConfigureLogging(cfg *Config) {
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, using info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if cfg.LogFormat == "json" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp: true,
	})
}

// RemoteOptions returns the remote api client options for this configuration.
func (c *Config) RemoteOptions() remote_api.Options {
	return remote_api.Options{
		BaseURL: c.APIBaseURL,
		Token:   c.APIToken,
		Timeout: c.APITimeout,
		RPS:     c.APIRPS,
		Burst:   c.APIBurst,
	}
}

// ListenAddress is the host:port the serve command binds to.
func (c *Config) ListenAddress() string {
	return c.ListenHost + ":" + c.Port
}
