// Package config holds the jbovlaste2json settings.
//
// Settings come from an optional YAML file and the environment, with
// the environment taking priority; unset fields take their env-default.
package config

import (
	"net/url"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/pkg/errors"
)

// Config is the command configuration.
type Config struct {
	// Username and Password are jbovlaste login credentials. They are
	// only needed when the export is fetched from BaseURL.
	Username string `yaml:"username" env:"JBOVLASTE_USERNAME"`
	Password string `yaml:"password" env:"JBOVLASTE_PASSWORD"`

	BaseURL string        `yaml:"base_url" env:"JBOVLASTE_BASE_URL" env-default:"https://jbovlaste.lojban.org"`
	Lang    string        `yaml:"lang"     env:"JBOVLASTE_LANG"     env-default:"en"`
	Timeout time.Duration `yaml:"timeout"  env:"JBOVLASTE_TIMEOUT"  env-default:"10m"`

	// Input is a local export file read instead of fetching one.
	Input string `yaml:"input" env:"JBOVLASTE_INPUT"`
	// Output is the JSON output file; stdout if empty.
	Output string `yaml:"output" env:"JBOVLASTE_OUTPUT"`
	Indent string `yaml:"indent" env:"JBOVLASTE_INDENT"`
}

// Option modifies a loaded Config before it is validated
type Option func(*Config)

// Load reads the YAML file at path (if path is not empty) and the
// environment, applies opts and validates the result.
func Load(path string, opts ...Option) (*Config, error) {
	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, errors.Wrapf(err, "config: file %s", path)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, errors.Wrapf(err, "config: read %s", path)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, errors.Wrap(err, "config: read env")
	}

	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config: validate")
	}
	return &cfg, nil
}

// Validate checks the configuration is usable
func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return errors.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.Input != "" {
		return nil
	}
	if c.Username == "" {
		return errors.New("missing JBOVLASTE_USERNAME")
	}
	if c.Password == "" {
		return errors.New("missing JBOVLASTE_PASSWORD")
	}
	if c.Lang == "" {
		return errors.New("missing export language")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return errors.Wrap(err, "base url")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return errors.Errorf("base url %q must be an absolute http(s) URL", c.BaseURL)
	}
	return nil
}

// Help returns the environment variable summary for usage output
func Help() string {
	var cfg Config
	help, _ := cleanenv.GetDescription(&cfg, nil)
	return help
}
