// Package koanf loads service configuration from a YAML file with
// environment variable overrides.
package koanf

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/shaulkr/ragcontent"
)

// EnvPrefix namespaces the environment variables recognized by Load.
const EnvPrefix = "RAGCONTENT_"

// Load builds a Config from defaults, an optional YAML file and environment
// variables, in increasing order of precedence.
//
// Environment variables are the uppercased option names under the prefix:
// RAGCONTENT_PING_URL overrides ping_url, RAGCONTENT_LISTEN_ADDR overrides
// listen_addr, and so on.
//
// An empty path skips the file layer. A non-empty path must exist.
func Load(path string) (*ragcontent.Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := ragcontent.DefaultConfig()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
