package config

import (
	"strings"
	"time"

	ierr "github.com/billforge/billforge/internal/errors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DeploymentMode selects which surfaces the binary runs.
type DeploymentMode string

const (
	ModeLocal DeploymentMode = "local"
	ModeAPI   DeploymentMode = "api"
)

// Configuration is the root application configuration, loaded from
// config files and BILLFORGE_* environment variables via viper.
type Configuration struct {
	Deployment DeploymentConfig `mapstructure:"deployment"`
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	BillingAPI BillingAPIConfig `mapstructure:"billing_api"`
	Cache      CacheConfig      `mapstructure:"cache"`
}

type DeploymentConfig struct {
	Mode DeploymentMode `mapstructure:"mode" default:"api"`
}

type ServerConfig struct {
	Address string `mapstructure:"address" default:":8080"`
}

type LoggingConfig struct {
	Level string `mapstructure:"level" default:"info"`
}

// BillingAPIConfig configures the remote billing service client.
type BillingAPIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	APIKey     string        `mapstructure:"api_key"`
	Timeout    time.Duration `mapstructure:"timeout" default:"30s"`
	MaxRetries int           `mapstructure:"max_retries" default:"3"`
}

type CacheConfig struct {
	Enabled bool          `mapstructure:"enabled" default:"true"`
	TTL     time.Duration `mapstructure:"ttl" default:"30s"`
}

// NewConfig loads configuration from ./config, the environment and an
// optional .env file.
func NewConfig() (*Configuration, error) {
	// .env is optional, used for local development only
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, ierr.WithError(err).
				WithHint("Failed to read configuration file").
				Mark(ierr.ErrSystem)
		}
	}

	var cfg Configuration
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to parse configuration").
			Mark(ierr.ErrSystem)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(ModeAPI))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", "info")
	v.SetDefault("billing_api.timeout", "30s")
	v.SetDefault("billing_api.max_retries", 3)
	v.SetDefault("cache.enabled", true)
	v.SetDefault("cache.ttl", "30s")
}

// Validate checks configuration invariants that viper cannot express.
func (c *Configuration) Validate() error {
	if c.Deployment.Mode == ModeAPI && c.BillingAPI.BaseURL == "" {
		return ierr.NewError("billing_api.base_url is required").
			WithHint("Set BILLFORGE_BILLING_API_BASE_URL or billing_api.base_url in config").
			Mark(ierr.ErrValidation)
	}
	return nil
}

// GetDefaultConfig returns a configuration suitable for tests and
// scripts that do not reach the remote billing service.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: "debug"},
		BillingAPI: BillingAPIConfig{
			BaseURL:    "http://localhost:9090",
			Timeout:    30 * time.Second,
			MaxRetries: 3,
		},
		Cache: CacheConfig{Enabled: true, TTL: 30 * time.Second},
	}
}
