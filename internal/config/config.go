package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// Defaults.
const (
	DefaultAPIURL   = "http://localhost:3000/api"
	DefaultWebURL   = "http://localhost:5173"
	DefaultPageSize = 10
)

// Config holds the client settings.
type Config struct {
	Environment string        `mapstructure:"environment"`
	APIURL      string        `mapstructure:"api_url"`
	WebURL      string        `mapstructure:"web_url"`
	DataDir     string        `mapstructure:"data_dir"`
	LogLevel    string        `mapstructure:"log_level"`
	Timeout     time.Duration `mapstructure:"timeout"`
	PageSize    int           `mapstructure:"page_size"`
}

// Load reads configuration from defaults, an optional config file, a .env
// file in the working directory and QKIT_* environment variables, in
// increasing order of precedence. configFile may be empty.
func Load(configFile string) (*Config, error) {
	godotenv.Load() //nolint:errcheck // a missing .env is the normal case

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".qkit"))
		}
	}

	v.SetEnvPrefix("QKIT")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the client cannot run with.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("config: api_url is required")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("config: page_size must be positive, got %d", c.PageSize)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("config: timeout must be positive, got %s", c.Timeout)
	}
	return nil
}

// StoragePath is the file holding the token and cached display fields.
func (c *Config) StoragePath() string {
	return filepath.Join(c.DataDir, "storage.json")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")
	v.SetDefault("api_url", DefaultAPIURL)
	v.SetDefault("web_url", DefaultWebURL)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log_level", "info")
	v.SetDefault("timeout", "30s")
	v.SetDefault("page_size", DefaultPageSize)
}

// defaultDataDir returns ~/.qkit, or .qkit when the home dir is unknown.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qkit"
	}
	return filepath.Join(home, ".qkit")
}
