package config

import (
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/spf13/viper"
)

// DefaultFeedURL points at the official Notepad++ releases feed.
const DefaultFeedURL = "https://api.github.com/repos/notepad-plus-plus/notepad-plus-plus/releases/latest"

type Config struct {
	FeedURL            string `mapstructure:"feed_url"`
	HTTPTimeoutSeconds int    `mapstructure:"http_timeout_seconds"`
	DownloadDir        string `mapstructure:"download_dir"`
	LogLevel           string `mapstructure:"log_level"`
	LogFormat          string `mapstructure:"log_format"`
}

func Default() *Config {
	return &Config{
		FeedURL:            DefaultFeedURL,
		HTTPTimeoutSeconds: 10,
		DownloadDir:        os.TempDir(),
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

// HTTPTimeout returns the feed/download timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

func Load(cfgFile string) (*Config, error) {
	defaults := Default()

	v := viper.New()

	// Defaults registered through viper so env overrides are visible to
	// Unmarshal, not just Get.
	v.SetDefault("feed_url", defaults.FeedURL)
	v.SetDefault("http_timeout_seconds", defaults.HTTPTimeoutSeconds)
	v.SetDefault("download_dir", defaults.DownloadDir)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("log_format", defaults.LogFormat)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("npp-updater")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir())
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("NPPUP")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Explicit empty values fall back to the defaults.
	if cfg.FeedURL == "" {
		cfg.FeedURL = defaults.FeedURL
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = defaults.DownloadDir
	}

	return cfg, nil
}

func configDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("ProgramData"), "npp-updater")
	case "darwin":
		return "/Library/Application Support/npp-updater"
	default:
		return "/etc/npp-updater"
	}
}
