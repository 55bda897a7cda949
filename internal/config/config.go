package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultPath is used when no config file is given on the command line
	DefaultPath = "config.yaml"

	// DefaultMaxConcurrency caps the number of in-flight balance requests
	DefaultMaxConcurrency = 32

	// DefaultUnit is the label printed after each whole-unit balance
	DefaultUnit = "SOL"

	envPrefix = "SOLBALANCE"
)

// Config holds all configuration for the balance reporter.
type Config struct {
	// Required
	RPCURL  string   `mapstructure:"rpc_url"`
	Wallets []string `mapstructure:"wallets"`

	// Optional knobs
	MaxConcurrency    int           `mapstructure:"max_concurrency"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RetryCount        int           `mapstructure:"retry_count"`
	Unit              string        `mapstructure:"unit"`
	ValidateAddresses bool          `mapstructure:"validate_addresses"`
	LogLevel          string        `mapstructure:"log_level"`
}

// Load reads the YAML configuration file at path from the OS filesystem.
// An empty path falls back to DefaultPath.
//
// String knobs can be overridden from the environment:
//   - SOLBALANCE_RPC_URL
//   - SOLBALANCE_REQUEST_TIMEOUT
//   - SOLBALANCE_LOG_LEVEL
func Load(path string) (*Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs is Load on an arbitrary filesystem.
func LoadFs(fsys afero.Fs, path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	v := viper.New()
	v.SetFs(fsys)
	v.SetConfigFile(path)
	// Always YAML, whatever the extension
	v.SetConfigType("yaml")

	v.SetDefault("max_concurrency", DefaultMaxConcurrency)
	v.SetDefault("request_timeout", time.Duration(0))
	v.SetDefault("retry_count", 0)
	v.SetDefault("unit", DefaultUnit)
	v.SetDefault("validate_addresses", false)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{"rpc_url", "request_timeout", "log_level"} {
		if err := v.BindEnv(key); err != nil {
			return nil, newParseError(path, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			return nil, newNotFoundError(path, err)
		}
		return nil, newParseError(path, err)
	}

	// rpc_url and wallets are never defaulted
	for _, key := range []string{"rpc_url", "wallets"} {
		if !v.IsSet(key) {
			return nil, newParseError(path, fmt.Errorf("missing required field %q", key))
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config, strictDecoding); err != nil {
		return nil, newParseError(path, err)
	}

	if err := config.validate(); err != nil {
		return nil, newParseError(path, err)
	}

	return config, nil
}

// strictDecoding turns off mapstructure's weak typing so that a scalar is
// never silently promoted to a list and numbers never become strings.
func strictDecoding(dc *mapstructure.DecoderConfig) {
	dc.WeaklyTypedInput = false
	dc.DecodeHook = mapstructure.StringToTimeDurationHookFunc()
}

func (c *Config) validate() error {
	c.RPCURL = strings.TrimSpace(c.RPCURL)
	if c.RPCURL == "" {
		return errors.New("rpc_url must not be empty")
	}
	if c.Wallets == nil {
		c.Wallets = []string{}
	}
	if c.MaxConcurrency < 0 {
		return fmt.Errorf("max_concurrency must be >= 0, got %d", c.MaxConcurrency)
	}
	if c.RetryCount < 0 {
		return fmt.Errorf("retry_count must be >= 0, got %d", c.RetryCount)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be >= 0, got %s", c.RequestTimeout)
	}
	if c.Unit == "" {
		c.Unit = DefaultUnit
	}
	return nil
}
