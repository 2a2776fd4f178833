package cli

import (
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] for YAML config files.
//
// The top level of the file must be a mapping of flag names to values.
// Flag names may use either hyphens or underscores:
//
//	log-level: debug
//	log_format: text
//	log-pretty: true
//
// Command-line flags override config file values. A file that fails to
// parse, or whose top level is not a mapping, contributes no values.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var raw map[string]any

	if err := yaml.NewDecoder(r).Decode(&raw); err != nil {
		// An unreadable config never blocks the CLI.
		return yamlConfig{}, nil
	}

	cfg := make(yamlConfig, len(raw))
	for key, value := range raw {
		cfg[key] = flagValue(value)
	}

	return cfg, nil
}

// yamlConfig implements [kong.Resolver] over a flat mapping.
type yamlConfig map[string]any

// Validate implements [kong.Resolver].
func (c yamlConfig) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c yamlConfig) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if value, ok := c[flag.Name]; ok {
		return value, nil
	}

	// Accept underscores where the flag name uses hyphens.
	if value, ok := c[strings.ReplaceAll(flag.Name, "-", "_")]; ok {
		return value, nil
	}

	return nil, nil
}

// flagValue converts a decoded YAML value into the representation kong
// expects: numbers as strings, everything else as decoded.
func flagValue(v any) any {
	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case uint64:
		return strconv.FormatUint(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', -1, 64)
	default:
		return v
	}
}
