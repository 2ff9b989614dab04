package config

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

const (
	// EnvConfigPath names the directory holding config.yml.
	EnvConfigPath = "PRESTO_CONFIG_PATH"
	// FileName is the config file name inside the config directory.
	FileName = "config.yml"
	// DefaultProvider is used when the file names none.
	DefaultProvider = "openrouter"
)

//go:embed config.schema.json
var schemaJSON []byte

// Config holds the presto configuration file contents.
type Config struct {
	DefaultProvider string                    `yaml:"default_provider"`
	Timeout         time.Duration             `yaml:"timeout"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig holds configuration for a single provider.
type ProviderConfig struct {
	APIKey    string `yaml:"api_key"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	Model     string `yaml:"model"`
}

// Default returns a Config populated with sensible defaults.
func Default() *Config {
	return &Config{
		DefaultProvider: DefaultProvider,
		Timeout:         60 * time.Second,
		Providers:       make(map[string]ProviderConfig),
	}
}

// Dir returns $PRESTO_CONFIG_PATH, or ~/.config/presto when it is unset.
func Dir() string {
	if dir := os.Getenv(EnvConfigPath); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "presto")
	}
	return filepath.Join(home, ".config", "presto")
}

// DefaultPath returns the config file location inside Dir.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// Load reads and parses a YAML config file at the given path. The document
// is checked against the embedded JSON Schema before it is decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}

	if err := checkSchema(data); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	return cfg, nil
}

// LoadOrDefault loads config from the given path. If the file does not exist,
// it returns the default configuration. Other errors (e.g. parse failures)
// are still returned.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	return cfg, nil
}

// checkSchema validates the structure of a raw YAML document. An empty
// document passes.
func checkSchema(data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing YAML: %w", err)
	}
	if doc == nil {
		return nil
	}

	// Round-trip through JSON so the validator sees plain JSON values.
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("converting YAML: %w", err)
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return fmt.Errorf("converting YAML: %w", err)
	}

	sch, err := compiledSchema()
	if err != nil {
		return err
	}
	return sch.Validate(inst)
}

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaJSON))
	if err != nil {
		return nil, fmt.Errorf("invalid config schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("config.schema.json", doc); err != nil {
		return nil, fmt.Errorf("invalid config schema: %w", err)
	}
	sch, err := c.Compile("config.schema.json")
	if err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	return sch, nil
})

// EnvKey returns the environment variable consulted for providerName's key:
// the configured api_key_env, or <NAME>_API_KEY.
func (c *Config) EnvKey(providerName string) string {
	if p, ok := c.Providers[providerName]; ok && p.APIKeyEnv != "" {
		return p.APIKeyEnv
	}
	return strings.ToUpper(providerName) + "_API_KEY"
}

// ProviderAPIKey returns the API key for providerName. A non-empty
// environment variable wins over the file's api_key. It returns "" when
// neither is set.
func (c *Config) ProviderAPIKey(providerName string) string {
	if key := os.Getenv(c.EnvKey(providerName)); key != "" {
		return key
	}
	return c.Providers[providerName].APIKey
}

// Provider returns the file settings for providerName, if any.
func (c *Config) Provider(providerName string) (ProviderConfig, bool) {
	p, ok := c.Providers[providerName]
	return p, ok
}

// Validate checks semantic constraints the schema cannot express and returns
// a descriptive error if any are violated. known lists the accepted provider
// identifiers.
func (c *Config) Validate(known []string) error {
	var errs []error

	if c.Timeout <= 0 {
		errs = append(errs, fmt.Errorf("timeout must be > 0, got %s", c.Timeout))
	}
	if c.DefaultProvider != "" && !slices.Contains(known, c.DefaultProvider) {
		errs = append(errs, fmt.Errorf("default_provider %q is not a known provider", c.DefaultProvider))
	}
	for name := range c.Providers {
		if !slices.Contains(known, name) {
			errs = append(errs, fmt.Errorf("provider %q is not a known provider", name))
		}
	}

	return errors.Join(errs...)
}

// Cache memoizes the config loaded from a path. It is safe for concurrent
// use.
type Cache struct {
	path string

	mu  sync.Mutex
	cfg *Config
}

// NewCache returns a Cache for path. An empty path means DefaultPath at the
// time of the first load.
func NewCache(path string) *Cache {
	return &Cache{path: path}
}

// Path returns the file the cache reads.
func (c *Cache) Path() string {
	if c.path == "" {
		return DefaultPath()
	}
	return c.path
}

// Get returns the cached config, loading it on first use. A missing file
// yields the defaults.
func (c *Cache) Get() (*Config, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg != nil {
		return c.cfg, nil
	}
	cfg, err := LoadOrDefault(c.Path())
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	c.cfg = cfg
	return cfg, nil
}

// Reload drops the cached config so the next Get reads the file again.
func (c *Cache) Reload() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = nil
}
