package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Amazon  AmazonConfig  `mapstructure:"amazon"`
	Walmart WalmartConfig `mapstructure:"walmart"`
	OpenAI  OpenAIConfig  `mapstructure:"openai"`
	JWT     JWTConfig     `mapstructure:"jwt"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
}

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // debug, release, test
}

// AmazonConfig holds Product Advertising API credentials.
type AmazonConfig struct {
	AccessKey    string `mapstructure:"access_key"`
	SecretKey    string `mapstructure:"secret_key"`
	AssociateTag string `mapstructure:"associate_tag"`
	Region       string `mapstructure:"region"`
	BaseURL      string `mapstructure:"base_url"` // empty = derive from region
}

// Configured reports whether every required credential is present.
// Callers must check this before building a signed request.
func (a AmazonConfig) Configured() bool {
	return a.AccessKey != "" && a.SecretKey != "" && a.AssociateTag != ""
}

// Host returns the PA-API endpoint host for the configured region.
func (a AmazonConfig) Host() string {
	if a.Region == "" || a.Region == "us-east-1" {
		return "webservices.amazon.com"
	}
	return "webservices.amazon." + a.Region
}

// Endpoint returns the PA-API base URL, honoring an explicit override.
func (a AmazonConfig) Endpoint() string {
	if a.BaseURL != "" {
		return a.BaseURL
	}
	return "https://" + a.Host()
}

// WalmartConfig holds affiliate API credentials.
type WalmartConfig struct {
	ClientID     string `mapstructure:"client_id"`
	ClientSecret string `mapstructure:"client_secret"`
	BaseURL      string `mapstructure:"base_url"`
}

// Configured reports whether both credentials are present.
func (w WalmartConfig) Configured() bool {
	return w.ClientID != "" && w.ClientSecret != ""
}

// OpenAIConfig holds the assistant completion provider settings.
type OpenAIConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url"`
	Model   string `mapstructure:"model"`
}

// Configured reports whether the API key is present.
func (o OpenAIConfig) Configured() bool {
	return o.APIKey != ""
}

type JWTConfig struct {
	Secret string        `mapstructure:"secret"`
	Expiry time.Duration `mapstructure:"expiry"`
	Issuer string        `mapstructure:"issuer"`
}

type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: PACK_.
// Nested keys use underscore: PACK_AMAZON_ACCESS_KEY, PACK_WALMART_CLIENT_ID, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("amazon.access_key", "")
	v.SetDefault("amazon.secret_key", "")
	v.SetDefault("amazon.associate_tag", "")
	v.SetDefault("amazon.region", "us-east-1")
	v.SetDefault("walmart.client_id", "")
	v.SetDefault("walmart.client_secret", "")
	v.SetDefault("walmart.base_url", "https://developer.api.walmart.com/api-proxy/service")
	v.SetDefault("openai.api_key", "")
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("jwt.expiry", "24h")
	v.SetDefault("jwt.issuer", "packstack-gateway")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.cache_ttl", "5m")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: PACK_AMAZON_ACCESS_KEY -> amazon.access_key
	v.SetEnvPrefix("PACK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}
