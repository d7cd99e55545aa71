// Package config loads the application configuration from defaults, an
// optional YAML file and PORTFOLIO_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"portfolio/app/models"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. PORTFOLIO_SITE_URL.
const EnvPrefix = "PORTFOLIO"

// Config is the full application configuration.
type Config struct {
	Site       models.SiteConfig `mapstructure:"site"`
	Projects   []models.Project  `mapstructure:"projects" validate:"dive"`
	ContentDir string            `mapstructure:"contentDir" validate:"required"`
	DataDir    string            `mapstructure:"dataDir"`
	InMemory   bool              `mapstructure:"inMemory"`
	Addr       string            `mapstructure:"addr" validate:"required"`
	Watch      bool              `mapstructure:"watch"`
	LogLevel   string            `mapstructure:"logLevel" validate:"oneof=debug info warn error"`
}

var defaults = map[string]interface{}{
	"site.name":        "Rayan Kazi",
	"site.description": "My personal website and blog",
	"site.url":         "http://localhost:8080",
	"site.author":      "rocketburst",
	"site.email":       "",
	"site.github":      "https://github.com/rocketburst/",
	"site.language":    "en",
	"contentDir":       "content/posts",
	"dataDir":          "data/badger",
	"inMemory":         false,
	"addr":             ":8080",
	"watch":            false,
	"logLevel":         "info",
}

// Load reads the configuration. When cfgFile is empty, ./config.yaml is used
// if present. The second result names the file that was read, if any.
func Load(cfgFile string) (*Config, string, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	used := ""
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || cfgFile != "" {
			return nil, "", fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		used = v.ConfigFileUsed()
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if len(cfg.Projects) == 0 {
		cfg.Projects = append([]models.Project(nil), models.DefaultProjects...)
	}
	cfg.Site.URL = strings.TrimRight(cfg.Site.URL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, "", err
	}
	return &cfg, used, nil
}

// Validate checks the configuration, including the nested site and projects.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
