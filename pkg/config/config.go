// Package config holds the resolved runtime settings of tless.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-yaml"
)

const (
	DefaultPrompt       = "$ "
	DefaultPollInterval = 10 * time.Millisecond
	DefaultScrollback   = 1000
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	// Prompt is the shell prompt.
	Prompt string
	// PollInterval is the interval at which a quitting pager checks for the
	// shell prompt.
	PollInterval time.Duration
	// Scrollback is the number of output lines kept by the shell.
	Scrollback int
	// QuitIfOneScreen is the default of less -F.
	QuitIfOneScreen bool
	// NoColor disables all styling.
	NoColor bool
}

func NewConfig() *Config {
	c := &Config{}
	c.EnsureDefaults()

	return c
}

// EnsureDefaults fills unset fields with their defaults.
func (c *Config) EnsureDefaults() {
	if c.Prompt == "" {
		c.Prompt = DefaultPrompt
	}
	if c.PollInterval == 0 {
		c.PollInterval = DefaultPollInterval
	}
	if c.Scrollback == 0 {
		c.Scrollback = DefaultScrollback
	}
}

func (c *Config) Validate() error {
	var errs []error

	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll interval must be positive, got %s", c.PollInterval))
	}
	if c.Scrollback <= 0 {
		errs = append(errs, fmt.Errorf("scrollback must be positive, got %d", c.Scrollback))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	return nil
}

// document is the YAML form of [Config].
type document struct {
	Prompt          string `yaml:"prompt"`
	PollInterval    string `yaml:"pollInterval"`
	Scrollback      int    `yaml:"scrollback"`
	QuitIfOneScreen bool   `yaml:"quitIfOneScreen"`
	NoColor         bool   `yaml:"noColor"`
}

func (c *Config) MarshalYAML() ([]byte, error) {
	b := &bytes.Buffer{}
	enc := yaml.NewEncoder(b)

	err := enc.Encode(document{
		Prompt:          c.Prompt,
		PollInterval:    c.PollInterval.String(),
		Scrollback:      c.Scrollback,
		QuitIfOneScreen: c.QuitIfOneScreen,
		NoColor:         c.NoColor,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal yaml: %w", err)
	}

	return b.Bytes(), nil
}
