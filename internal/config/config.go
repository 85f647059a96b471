package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/spf13/viper"

	"github.com/eleven-am/envcheck/internal/validate"
)

const EnvPrefix = "ENVCHECK"

type Config struct {
	// Region and Profile fall back to the AWS shared config when empty.
	Region  string `mapstructure:"region"`
	Profile string `mapstructure:"profile"`

	Ports       []int         `default:"[5432, 443]" mapstructure:"ports"`
	MinFreeIPs  int           `default:"5" mapstructure:"min_free_ips"`
	WarnFreeIPs int           `default:"20" mapstructure:"warn_free_ips"`
	Timeout     time.Duration `default:"2m" mapstructure:"timeout"`
	Verbose     bool          `mapstructure:"verbose"`
}

// Load builds the configuration from defaults, the optional file at path and
// ENVCHECK_* environment variables, in increasing order of precedence.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := defaults.Set(&cfg); err != nil {
		return nil, fmt.Errorf("apply config defaults: %w", err)
	}

	v := viper.New()
	v.SetDefault("region", cfg.Region)
	v.SetDefault("profile", cfg.Profile)
	v.SetDefault("ports", cfg.Ports)
	v.SetDefault("min_free_ips", cfg.MinFreeIPs)
	v.SetDefault("warn_free_ips", cfg.WarnFreeIPs)
	v.SetDefault("timeout", cfg.Timeout)
	v.SetDefault("verbose", cfg.Verbose)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	var errs []error
	if c.Region != "" {
		if _, err := validate.Region(c.Region); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Profile != "" {
		if _, err := validate.ProfileName(c.Profile); err != nil {
			errs = append(errs, err)
		}
	}
	for _, port := range c.Ports {
		if err := validate.Port(port); err != nil {
			errs = append(errs, err)
		}
	}
	if c.MinFreeIPs < 0 {
		errs = append(errs, fmt.Errorf("min_free_ips must not be negative: %w", validate.ErrInvalidArgument))
	}
	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be positive: %w", validate.ErrInvalidArgument))
	}
	return errors.Join(errs...)
}
