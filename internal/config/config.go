// Package config loads the toolkit configuration once, at startup, into an
// explicit struct that gets threaded into constructors. Nothing reads the
// environment mid-check.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Local probe target construction.
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`

	// BaseURL overrides host:port when probing a deployed instance.
	BaseURL string `mapstructure:"base_url"`

	// AuthSecret signs debug tokens; empty disables the token command.
	AuthSecret string `mapstructure:"jwt_secret"`

	// BearerToken authorizes API smoke calls.
	BearerToken string `mapstructure:"smoke_token"`

	// Env is the deployment mode flag, used only for logging.
	Env string `mapstructure:"node_env"`

	HTTPTimeout  time.Duration `mapstructure:"http_timeout"`
	BuildTimeout time.Duration `mapstructure:"build_timeout"`

	LogDir   string `mapstructure:"log_dir"`
	LogLevel string `mapstructure:"log_level"`
}

// Load reads an optional YAML file and the environment. Path may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	v.SetDefault("host", "localhost")
	v.SetDefault("port", 3000)
	v.SetDefault("base_url", "")
	v.SetDefault("jwt_secret", "")
	v.SetDefault("smoke_token", "")
	v.SetDefault("node_env", "development")
	v.SetDefault("http_timeout", "5s")
	v.SetDefault("build_timeout", "120s")
	v.SetDefault("log_dir", "logs")
	v.SetDefault("log_level", "info")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Target returns the probe base URL: BaseURL when set, otherwise the local
// host:port target.
func (c *Config) Target() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	return fmt.Sprintf("http://%s:%d", c.Host, c.Port)
}
