package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Fetcher    FetcherConfig    `mapstructure:"fetcher"`
	Analysis   AnalysisConfig   `mapstructure:"analysis"`
	HostFinder HostFinderConfig `mapstructure:"hostfinder"`
	DNS        DNSConfig        `mapstructure:"dns"`
	Whois      WhoisConfig      `mapstructure:"whois"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig configures the HTTP API server.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// FetcherConfig configures the primary page fetch and the auxiliary probes.
type FetcherConfig struct {
	UserAgent    string        `mapstructure:"user_agent"`
	Timeout      time.Duration `mapstructure:"timeout"`
	ProbeTimeout time.Duration `mapstructure:"probe_timeout"`
	MaxRedirects int           `mapstructure:"max_redirects"`
	MaxBodyBytes int64         `mapstructure:"max_body_bytes"`

	// TLSVerify defaults to false: the analyzer accepts self-signed and
	// otherwise misconfigured certificates so that such sites can still be
	// analyzed. That trades away MITM protection for the fetch, so
	// operators who only target well-configured sites should enable it.
	TLSVerify bool `mapstructure:"tls_verify"`
}

// AnalysisConfig bounds a whole analysis run.
type AnalysisConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// HostFinderConfig configures the hosting-provider lookup API client.
// APIKey is sourced from WEBANALYZER_HOSTFINDER_API_KEY and must never be
// committed to a config file.
type HostFinderConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	APIKey    string        `mapstructure:"api_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	RateLimit float64       `mapstructure:"rate_limit"`
	RateBurst int           `mapstructure:"rate_burst"`
}

// DNSConfig configures the DNS enrichment lookups.
type DNSConfig struct {
	Resolver string        `mapstructure:"resolver"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// WhoisConfig configures the domain-registration enrichment lookups.
type WhoisConfig struct {
	Timeout time.Duration `mapstructure:"timeout"`
}

// LoggerConfig configures zap and the optional rotating file sink.
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	LogFile    string `mapstructure:"log_file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// SetDefaults initializes default values for all configuration parameters.
func SetDefaults(v *viper.Viper) {
	// -- Server --
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.shutdown_timeout", "5s")

	// -- Fetcher --
	v.SetDefault("fetcher.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	v.SetDefault("fetcher.timeout", "15s")
	v.SetDefault("fetcher.probe_timeout", "5s")
	v.SetDefault("fetcher.max_redirects", 5)
	v.SetDefault("fetcher.max_body_bytes", 5*1024*1024)
	v.SetDefault("fetcher.tls_verify", false)

	// -- Analysis --
	v.SetDefault("analysis.request_timeout", "30s")

	// -- HostFinder --
	v.SetDefault("hostfinder.base_url", "https://www.who-hosts-this.com/APIEndpoint/Detect")
	v.SetDefault("hostfinder.timeout", "5s")
	v.SetDefault("hostfinder.rate_limit", 2.0)
	v.SetDefault("hostfinder.rate_burst", 4)

	// -- DNS --
	v.SetDefault("dns.resolver", "1.1.1.1:53")
	v.SetDefault("dns.timeout", "5s")

	// -- Whois --
	v.SetDefault("whois.timeout", "5s")

	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)
}

// FromViper creates a configuration instance from a viper object.
func FromViper(v *viper.Viper) (*Config, error) {
	// Bind environment variables for sensitive data.
	v.BindEnv("hostfinder.api_key", "WEBANALYZER_HOSTFINDER_API_KEY")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// NewDefault creates a configuration populated with default values.
func NewDefault() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Fetcher.Timeout <= 0 {
		return fmt.Errorf("fetcher.timeout must be positive, got %s", c.Fetcher.Timeout)
	}
	if c.Fetcher.ProbeTimeout <= 0 {
		return fmt.Errorf("fetcher.probe_timeout must be positive, got %s", c.Fetcher.ProbeTimeout)
	}
	if c.Fetcher.MaxRedirects < 0 {
		return fmt.Errorf("fetcher.max_redirects must not be negative, got %d", c.Fetcher.MaxRedirects)
	}
	if c.Fetcher.MaxBodyBytes <= 0 {
		return fmt.Errorf("fetcher.max_body_bytes must be positive, got %d", c.Fetcher.MaxBodyBytes)
	}
	if c.Fetcher.UserAgent == "" {
		return fmt.Errorf("fetcher.user_agent must not be empty")
	}
	if c.Analysis.RequestTimeout <= 0 {
		return fmt.Errorf("analysis.request_timeout must be positive, got %s", c.Analysis.RequestTimeout)
	}
	if c.HostFinder.BaseURL == "" {
		return fmt.Errorf("hostfinder.base_url must not be empty")
	}
	if c.HostFinder.RateLimit <= 0 {
		return fmt.Errorf("hostfinder.rate_limit must be positive, got %f", c.HostFinder.RateLimit)
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logger.format must be console or json, got %q", c.Logger.Format)
	}
	return nil
}
