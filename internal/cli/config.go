package cli

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/mcoot/competeinator/internal/factory"
)

// Output formats
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Config holds CLI configuration
type Config struct {
	factory.EnvConfig

	Output  string `env:"OUTPUT" envDefault:"text"`
	Verbose bool   `env:"VERBOSE"`
}

// LoadConfig reads COMPETE_* environment variables. Flags applied later
// take precedence.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: factory.EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// Validate checks flag values that cobra cannot
func (c *Config) Validate() error {
	switch c.Output {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q: must be text, json or yaml", c.Output)
	}
}
