package config

import (
	"time"

	"github.com/kbukum/restkit/httpclient"
	"github.com/kbukum/restkit/logger"
	"github.com/kbukum/restkit/lro"
	"github.com/kbukum/restkit/resilience"
)

// Config is the complete configuration of a restkit client.
type Config struct {
	Name        string        `yaml:"name" mapstructure:"name" validate:"required"`
	Environment string        `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string        `yaml:"version" mapstructure:"version"`
	Logging     logger.Config `yaml:"logging" mapstructure:"logging"`

	HTTP    HTTPConfig        `yaml:"http" mapstructure:"http"`
	Polling lro.PollingConfig `yaml:"polling" mapstructure:"polling"`
	Paging  PagingConfig      `yaml:"paging" mapstructure:"paging"`
}

// HTTPConfig configures the transport.
type HTTPConfig struct {
	BaseURL         string            `yaml:"base_url" mapstructure:"base_url" validate:"omitempty,url"`
	Timeout         time.Duration     `yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	Headers         map[string]string `yaml:"headers" mapstructure:"headers"`
	RequestIDHeader string            `yaml:"request_id_header" mapstructure:"request_id_header"`
	UserAgent       string            `yaml:"user_agent" mapstructure:"user_agent"`

	// BearerToken and APIKey are mutually exclusive static credentials.
	BearerToken  string `yaml:"bearer_token" mapstructure:"bearer_token" validate:"excluded_with=APIKey"`
	APIKey       string `yaml:"api_key" mapstructure:"api_key"`
	APIKeyHeader string `yaml:"api_key_header" mapstructure:"api_key_header"`

	// Retry enables transport retries of transient failures when set.
	Retry *resilience.RetryConfig `yaml:"retry" mapstructure:"retry"`
}

// PagingConfig sets the default page body property names.
type PagingConfig struct {
	ItemProperty     string `yaml:"item_property" mapstructure:"item_property"`
	NextLinkProperty string `yaml:"next_link_property" mapstructure:"next_link_property"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Environment == "" {
		c.Environment = "development"
	}
	if c.Logging.ServiceName == "" && c.Name != "" {
		c.Logging.ServiceName = c.Name
	}
	c.Logging.ApplyDefaults()

	if c.Polling == (lro.PollingConfig{}) {
		c.Polling = lro.DefaultPollingConfig()
	}
	c.Polling.ApplyDefaults()

	if c.HTTP.Retry != nil && c.HTTP.Retry.RetryIf == nil {
		c.HTTP.Retry.RetryIf = httpclient.IsRetryable
	}
}

// Validate checks struct constraints and the logging section.
func (c *Config) Validate() error {
	if err := Validate(c); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// AdapterConfig converts the HTTP section into a transport configuration.
func (c *Config) AdapterConfig() httpclient.Config {
	cfg := httpclient.Config{
		Name:            c.Name,
		BaseURL:         c.HTTP.BaseURL,
		Timeout:         c.HTTP.Timeout,
		Headers:         c.HTTP.Headers,
		RequestIDHeader: c.HTTP.RequestIDHeader,
		UserAgent:       c.HTTP.UserAgent,
		Retry:           c.HTTP.Retry,
	}
	switch {
	case c.HTTP.BearerToken != "":
		cfg.Auth = httpclient.BearerAuth(c.HTTP.BearerToken)
	case c.HTTP.APIKey != "":
		cfg.Auth = httpclient.APIKeyAuth(c.HTTP.APIKey, c.HTTP.APIKeyHeader)
	}
	return cfg
}
