package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"moviegrip/internal/domain"
	"moviegrip/internal/eventbus"
)

// EnvPrefix is the prefix for environment overrides (MOVIEGRIP_TMDB_API_KEY, ...)
const EnvPrefix = "MOVIEGRIP"

// Config represents the application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb" toml:"tmdb"`
	Cache   CacheConfig   `mapstructure:"cache" toml:"cache"`
	UI      UISettings    `mapstructure:"ui" toml:"ui"`
	Logging LoggingConfig `mapstructure:"logging" toml:"logging"`
}

// TMDBConfig holds catalog API settings
type TMDBConfig struct {
	APIKey       string `mapstructure:"api_key" toml:"api_key"`
	AccessToken  string `mapstructure:"access_token" toml:"access_token"` // v4 read access token, preferred over APIKey
	BaseURL      string `mapstructure:"base_url" toml:"base_url"`
	ImageBaseURL string `mapstructure:"image_base_url" toml:"image_base_url"`
	Language     string `mapstructure:"language" toml:"language"`
	IncludeAdult bool   `mapstructure:"include_adult" toml:"include_adult"`
	Timeout      int    `mapstructure:"timeout" toml:"timeout"` // seconds
}

// CacheConfig controls result caching in the fetcher
type CacheConfig struct {
	StaleSeconds int `mapstructure:"stale_seconds" toml:"stale_seconds"` // age after which a success is refetched
	GCSeconds    int `mapstructure:"gc_seconds" toml:"gc_seconds"`       // age after which an entry is dropped
	MaxEntries   int `mapstructure:"max_entries" toml:"max_entries"`
}

// StaleTime returns the freshness window as a duration
func (c CacheConfig) StaleTime() time.Duration {
	return time.Duration(c.StaleSeconds) * time.Second
}

// GCTime returns the eviction window as a duration
func (c CacheConfig) GCTime() time.Duration {
	return time.Duration(c.GCSeconds) * time.Second
}

// UISettings represents UI-related configuration
type UISettings struct {
	PageRange        int  `mapstructure:"page_range" toml:"page_range"`
	MarginPages      int  `mapstructure:"margin_pages" toml:"margin_pages"`
	KeepPreviousData bool `mapstructure:"keep_previous_data" toml:"keep_previous_data"`
	ToastSeconds     int  `mapstructure:"toast_seconds" toml:"toast_seconds"`
}

// ToastDuration returns how long a notification stays on screen
func (u UISettings) ToastDuration() time.Duration {
	return time.Duration(u.ToastSeconds) * time.Second
}

// LoggingConfig configures the file logger
type LoggingConfig struct {
	Level      string `mapstructure:"level" toml:"level"`
	Format     string `mapstructure:"format" toml:"format"`
	Path       string `mapstructure:"path" toml:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days" toml:"max_age_days"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for filePath.
// An empty filePath resolves to <user config dir>/moviegrip/config.toml.
func NewConfigService(filePath string) ConfigService {
	if filePath == "" {
		filePath = DefaultPath()
	}
	return &configService{filePath: filePath}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(filePath string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(filePath).(*configService)
	cs.bus = bus
	return cs
}

// DefaultDir returns the directory holding moviegrip's config and logs
func DefaultDir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "moviegrip")
}

// DefaultPath returns the default config file location
func DefaultPath() string {
	return filepath.Join(DefaultDir(), "config.toml")
}

// Path returns the file this service reads and writes
func (cs *configService) Path() string {
	return cs.filePath
}

// Load reads the service's file, writing a default one first if none exists
func (cs *configService) Load() (*Config, error) {
	if _, err := os.Stat(cs.filePath); errors.Is(err, fs.ErrNotExist) {
		if err := cs.SaveToPath(DefaultConfig(), cs.filePath); err != nil {
			return nil, err
		}
	}

	cfg, err := cs.LoadFromPath(cs.filePath)
	if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigLoadedEvent{Path: cs.filePath})
	}

	return cfg, nil
}

// Save writes the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(domain.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from path layered as
// defaults < file < .env < environment
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	// A missing .env is the normal case
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("toml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return decode(v)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// 0600: the file may hold an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional names used by TMDB tooling
	_ = v.BindEnv("tmdb.api_key", EnvPrefix+"_TMDB_API_KEY", "TMDB_API_KEY")
	_ = v.BindEnv("tmdb.access_token", EnvPrefix+"_TMDB_ACCESS_TOKEN", "TMDB_TOKEN")

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	v.SetDefault("tmdb.api_key", d.TMDB.APIKey)
	v.SetDefault("tmdb.access_token", d.TMDB.AccessToken)
	v.SetDefault("tmdb.base_url", d.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", d.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.language", d.TMDB.Language)
	v.SetDefault("tmdb.include_adult", d.TMDB.IncludeAdult)
	v.SetDefault("tmdb.timeout", d.TMDB.Timeout)

	v.SetDefault("cache.stale_seconds", d.Cache.StaleSeconds)
	v.SetDefault("cache.gc_seconds", d.Cache.GCSeconds)
	v.SetDefault("cache.max_entries", d.Cache.MaxEntries)

	v.SetDefault("ui.page_range", d.UI.PageRange)
	v.SetDefault("ui.margin_pages", d.UI.MarginPages)
	v.SetDefault("ui.keep_previous_data", d.UI.KeepPreviousData)
	v.SetDefault("ui.toast_seconds", d.UI.ToastSeconds)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.path", d.Logging.Path)
	v.SetDefault("logging.max_size_mb", d.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", d.Logging.MaxBackups)
	v.SetDefault("logging.max_age_days", d.Logging.MaxAgeDays)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb.base_url is required")
	}
	if cfg.TMDB.Timeout <= 0 {
		return fmt.Errorf("tmdb.timeout must be positive, got %d", cfg.TMDB.Timeout)
	}
	if cfg.Cache.MaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive, got %d", cfg.Cache.MaxEntries)
	}
	if cfg.Cache.StaleSeconds < 0 || cfg.Cache.GCSeconds < 0 {
		return fmt.Errorf("cache durations must not be negative")
	}
	if cfg.UI.PageRange < 1 {
		return fmt.Errorf("ui.page_range must be at least 1, got %d", cfg.UI.PageRange)
	}
	if cfg.UI.MarginPages < 0 {
		return fmt.Errorf("ui.margin_pages must not be negative, got %d", cfg.UI.MarginPages)
	}

	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			Language:     "en-US",
			Timeout:      15,
		},
		Cache: CacheConfig{
			StaleSeconds: 300,
			GCSeconds:    1800,
			MaxEntries:   200,
		},
		UI: UISettings{
			PageRange:        5,
			MarginPages:      1,
			KeepPreviousData: true,
			ToastSeconds:     3,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Path:   DefaultDir(),
		},
	}
}
