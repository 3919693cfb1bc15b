package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DefaultIAMURL        = "https://iam.cloud.ibm.com/identity/token"
	DefaultGenerationURL = "https://us-south.ml.cloud.ibm.com/ml/v1/text/generation?version=2023-05-29"
	DefaultModelID       = "ibm/granite-3-8b-instruct"
	DefaultSystemPrompt  = "You are Granite, an AI language model developed by IBM in 2024. " +
		"You are a cautious assistant. You carefully follow instructions. " +
		"You are helpful and harmless and you follow ethical guidelines and promote positive behavior."
)

var (
	ErrMissingAPIKey    = errors.New("watsonx.api_key is required (set WATSONX_API_KEY)")
	ErrMissingProjectID = errors.New("watsonx.project_id is required (set WATSONX_PROJECT_ID)")
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Redis    RedisConfig    `mapstructure:"redis"`
	IAM      IAMConfig      `mapstructure:"iam"`
	Watsonx  WatsonxConfig  `mapstructure:"watsonx"`
	Sessions SessionsConfig `mapstructure:"sessions"`
}

type ServerConfig struct {
	Port        int    `mapstructure:"port"`
	MetricsPort int    `mapstructure:"metrics_port"`
	SecretKey   string `mapstructure:"secret_key"`
	BodyLimit   int    `mapstructure:"body_limit"`
}

type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TLS      bool   `mapstructure:"tls"`
}

type IAMConfig struct {
	URL            string               `mapstructure:"url"`
	Timeout        time.Duration        `mapstructure:"timeout"`
	TokenCache     TokenCacheConfig     `mapstructure:"token_cache"`
	CircuitBreaker CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

// TokenCacheConfig enables reuse of IAM tokens until shortly before they expire.
// Off by default: every query then performs its own token exchange.
type TokenCacheConfig struct {
	Enabled bool          `mapstructure:"enabled"`
	Skew    time.Duration `mapstructure:"skew"`
}

type WatsonxConfig struct {
	URL                 string               `mapstructure:"url"`
	APIKey              string               `mapstructure:"api_key"`
	ProjectID           string               `mapstructure:"project_id"`
	ModelID             string               `mapstructure:"model_id"`
	SystemPrompt        string               `mapstructure:"system_prompt"`
	ModerationThreshold float64              `mapstructure:"moderation_threshold"`
	Timeout             time.Duration        `mapstructure:"timeout"`
	CircuitBreaker      CircuitBreakerConfig `mapstructure:"circuit_breaker"`
}

type CircuitBreakerConfig struct {
	Enabled     bool          `mapstructure:"enabled"`
	MaxFailures uint32        `mapstructure:"max_failures"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

type SessionsConfig struct {
	TTL         time.Duration `mapstructure:"ttl"`
	MaxMessages int           `mapstructure:"max_messages"`
}

var globalConfig Config

// Load reads config.yaml from configPath (falling back to ./config and .), overlays
// environment variables and validates the result.
func Load(configPath string) error {
	v := viper.New()
	setDefaultValues(v)

	if err := loadConfigFile(v, configPath, "config", &globalConfig); err != nil {
		return err
	}

	return globalConfig.Validate()
}

func loadConfigFile(v *viper.Viper, configPath, fileName string, out interface{}) error {
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only resolves keys viper already knows about.
	_ = v.BindEnv("watsonx.api_key")
	_ = v.BindEnv("watsonx.project_id")
	_ = v.BindEnv("server.secret_key")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return fmt.Errorf("error reading config file %s.yaml: %w", fileName, err)
		}
	}

	hook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(out, hook); err != nil {
		return fmt.Errorf("failed to unmarshal %s config: %w", fileName, err)
	}

	return nil
}

func setDefaultValues(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.metrics_port", 9090)
	v.SetDefault("server.body_limit", 1024*1024)
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("redis.port", 6379)
	v.SetDefault("iam.url", DefaultIAMURL)
	v.SetDefault("iam.timeout", 30*time.Second)
	v.SetDefault("iam.token_cache.enabled", false)
	v.SetDefault("iam.token_cache.skew", 60*time.Second)
	v.SetDefault("iam.circuit_breaker.enabled", false)
	v.SetDefault("iam.circuit_breaker.max_failures", 5)
	v.SetDefault("iam.circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("watsonx.url", DefaultGenerationURL)
	v.SetDefault("watsonx.model_id", DefaultModelID)
	v.SetDefault("watsonx.system_prompt", DefaultSystemPrompt)
	v.SetDefault("watsonx.moderation_threshold", 0.5)
	v.SetDefault("watsonx.timeout", 30*time.Second)
	v.SetDefault("watsonx.circuit_breaker.enabled", false)
	v.SetDefault("watsonx.circuit_breaker.max_failures", 5)
	v.SetDefault("watsonx.circuit_breaker.timeout", 30*time.Second)
	v.SetDefault("sessions.ttl", 24*time.Hour)
	v.SetDefault("sessions.max_messages", 100)
}

// Validate fails when a secret or identifier that has no safe default is missing.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Watsonx.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if strings.TrimSpace(c.Watsonx.ProjectID) == "" {
		return ErrMissingProjectID
	}
	if c.Watsonx.ModerationThreshold < 0 || c.Watsonx.ModerationThreshold > 1 {
		return fmt.Errorf("watsonx.moderation_threshold must be within [0,1], got %v", c.Watsonx.ModerationThreshold)
	}
	if c.IAM.Timeout <= 0 || c.Watsonx.Timeout <= 0 {
		return errors.New("iam.timeout and watsonx.timeout must be positive")
	}
	return nil
}

func GetConfig() *Config {
	return &globalConfig
}
