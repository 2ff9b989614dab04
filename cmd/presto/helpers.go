package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/jdgilhuly/presto/pkg/parameter"
	"github.com/jdgilhuly/presto/pkg/provider"
)

// loadDotEnv loads environment variables from path. Missing files are ignored.
// Variables already set in the environment are kept.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func unknownProviderError(name string) error {
	return fmt.Errorf("Unknown provider '%s'. Use 'presto providers' to see available providers.", name)
}

func notConfiguredError(name, envKey, configPath string) error {
	return fmt.Errorf(`Provider '%[1]s' is not configured.

You can configure it using either option:

Option 1: Set the %[2]s environment variable:
    export %[2]s=your-api-key

Option 2: Add to your configuration file (%[3]s):
    providers:
      %[1]s:
        api_key: your-api-key`, name, envKey, configPath)
}

func configurationError(err error) error {
	return fmt.Errorf("Configuration error: %w", err)
}

// generationError prefixes failures that are not the caller's choice of
// model.
func generationError(err error) error {
	var modelErr *provider.InvalidModelError
	if errors.As(err, &modelErr) {
		return err
	}
	return fmt.Errorf("Failed to generate response - %w", err)
}

// parseParams turns key=value flags into Params, coercing each value by the
// kind of the matching definition. Names the set does not define are kept as
// strings so the provider reports them.
func parseParams(set parameter.Set, raw []string) (parameter.Params, error) {
	params := parameter.Params{}
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid parameter %q, expected key=value", kv)
		}

		def, known := set.Lookup(name)
		if !known {
			params[name] = parameter.String(value)
			continue
		}
		v, err := parameter.Parse(def.Kind(), value)
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", name, err)
		}
		params[name] = v
	}
	return params, nil
}
