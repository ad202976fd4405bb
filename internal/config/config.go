// Package config loads the mailutil configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/zostay/go-mailutil/dns"
	"github.com/zostay/go-mailutil/submit"
)

// EnvPrefix is prepended to environment variables that override the file, as
// in MAILUTIL_SMTP_RELAY for smtp.relay.
const EnvPrefix = "MAILUTIL"

// DNS holds the resolver settings.
type DNS struct {
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
	PreferGo     bool          `mapstructure:"prefer_go" yaml:"prefer_go"`
	StrictErrors bool          `mapstructure:"strict_errors" yaml:"strict_errors"`
}

// SMTP holds the settings for sending mail.
type SMTP struct {
	// Relay is the host[:port] of a smart host. Leave it empty to deliver
	// straight to the mail exchangers of each recipient.
	Relay string `mapstructure:"relay" yaml:"relay"`

	Port        int           `mapstructure:"port" yaml:"port"`
	DialTimeout time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	Helo        string        `mapstructure:"helo" yaml:"helo"`
	Username    string        `mapstructure:"username" yaml:"username"`
	Secret      string        `mapstructure:"secret" yaml:"secret"`
	StartTLS    bool          `mapstructure:"starttls" yaml:"starttls"`
}

// Config is the top-level configuration.
type Config struct {
	DNS  DNS  `mapstructure:"dns" yaml:"dns"`
	SMTP SMTP `mapstructure:"smtp" yaml:"smtp"`
}

// DefaultPath returns ~/.config/mailutil/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "mailutil", "config.yaml")
}

// Load reads the configuration at path. A missing file is not an error; the
// defaults and any MAILUTIL_* environment variables still apply.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// every key needs a default for the environment to be seen by Unmarshal
	v.SetDefault("dns.timeout", dns.DefaultTimeout)
	v.SetDefault("dns.prefer_go", false)
	v.SetDefault("dns.strict_errors", false)
	v.SetDefault("smtp.relay", "")
	v.SetDefault("smtp.port", submit.DefaultPort)
	v.SetDefault("smtp.dial_timeout", submit.DefaultDialTimeout)
	v.SetDefault("smtp.helo", "")
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.secret", "")
	v.SetDefault("smtp.starttls", false)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// Resolver returns the settings for dns.New.
func (c *Config) Resolver() dns.Config {
	return dns.Config{
		Timeout:      c.DNS.Timeout,
		PreferGo:     c.DNS.PreferGo,
		StrictErrors: c.DNS.StrictErrors,
	}
}

// Submit returns the settings for submit.New.
func (c *Config) Submit() submit.Config {
	return submit.Config{
		Relay:       c.SMTP.Relay,
		Port:        c.SMTP.Port,
		DialTimeout: c.SMTP.DialTimeout,
		HeloName:    c.SMTP.Helo,
		Username:    c.SMTP.Username,
		Secret:      c.SMTP.Secret,
		StartTLS:    c.SMTP.StartTLS,
	}
}
