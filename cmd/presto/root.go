package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jdgilhuly/presto/pkg/client"
	"github.com/jdgilhuly/presto/pkg/config"
	"github.com/jdgilhuly/presto/pkg/provider"
)

// app carries the state shared by all commands of one invocation.
type app struct {
	v        *viper.Viper
	registry *provider.Registry
	cache    *config.Cache
	out      io.Writer
	errOut   io.Writer

	// extraProviderOpts is appended to every provider constructed.
	extraProviderOpts []provider.Option
}

func newApp(out, errOut io.Writer) *app {
	return &app{
		v:        viper.New(),
		registry: provider.DefaultRegistry(),
		out:      out,
		errOut:   errOut,
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "presto",
		Short: "Generate text with OpenRouter, OpenAI or Anthropic",
		Long: `A command-line client for text-generation APIs.

Providers are configured with <PROVIDER>_API_KEY environment variables or
the config file at $PRESTO_CONFIG_PATH/config.yml (default
~/.config/presto/config.yml). Use 'presto providers' to see which
providers are configured.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
	}

	root.PersistentFlags().StringP("provider", "p", "", "Provider to use (defaults to config or openrouter)")
	root.PersistentFlags().BoolP("verbose", "v", false, "Show verbose output")
	root.PersistentFlags().String("config", "", "Path to config file (default $PRESTO_CONFIG_PATH/config.yml)")
	root.PersistentFlags().String("env-file", ".env", "Environment file loaded before running")

	_ = a.v.BindPFlag("provider", root.PersistentFlags().Lookup("provider"))
	_ = a.v.BindPFlag("verbose", root.PersistentFlags().Lookup("verbose"))
	_ = a.v.BindPFlag("config", root.PersistentFlags().Lookup("config"))
	_ = a.v.BindPFlag("env_file", root.PersistentFlags().Lookup("env-file"))

	root.AddCommand(a.generateCmd())
	root.AddCommand(a.modelsCmd())
	root.AddCommand(a.paramsCmd())
	root.AddCommand(a.providersCmd())
	root.AddCommand(a.versionCmd())

	root.SetOut(a.out)
	root.SetErr(a.errOut)
	return root
}

// init runs once flags are parsed.
func (a *app) init() error {
	a.v.SetEnvPrefix("PRESTO")
	a.v.AutomaticEnv()

	if err := loadDotEnv(a.v.GetString("env_file")); err != nil {
		return err
	}
	if a.cache == nil {
		a.cache = config.NewCache(a.v.GetString("config"))
	}
	return nil
}

func (a *app) verbose() bool { return a.v.GetBool("verbose") }

func (a *app) logger() *slog.Logger {
	level := slog.LevelWarn
	if a.verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(a.errOut, &slog.HandlerOptions{Level: level}))
}

// loadConfig returns the cached config file, validated against the
// registered provider names.
func (a *app) loadConfig() (*config.Config, error) {
	cfg, err := a.cache.Get()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(a.registry.Names()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", a.cache.Path(), err)
	}
	return cfg, nil
}

// providerName returns --provider, then PRESTO_PROVIDER, then the config
// file's default_provider.
func (a *app) providerName(cfg *config.Config) string {
	if name := a.v.GetString("provider"); name != "" {
		return name
	}
	if cfg.DefaultProvider != "" {
		return cfg.DefaultProvider
	}
	return config.DefaultProvider
}

// newClient resolves the provider, checks it is configured and builds a
// client for it.
func (a *app) newClient() (*client.Client, string, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, "", err
	}

	name := a.providerName(cfg)
	if !a.registry.Has(name) {
		return nil, name, unknownProviderError(name)
	}

	key := cfg.ProviderAPIKey(name)
	if key == "" {
		return nil, name, notConfiguredError(name, cfg.EnvKey(name), a.cache.Path())
	}

	opts := []provider.Option{
		provider.WithLogger(a.logger()),
		provider.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if pc, ok := cfg.Provider(name); ok && pc.BaseURL != "" {
		opts = append(opts, provider.WithBaseURL(pc.BaseURL))
	}
	opts = append(opts, a.extraProviderOpts...)

	c, err := client.New(name, key, client.WithRegistry(a.registry), client.WithProviderOptions(opts...))
	if err != nil {
		return nil, name, configurationError(err)
	}
	return c, name, nil
}

// model returns the --model flag, the config file's model for the provider,
// or the provider default.
func (a *app) model(flag string, c *client.Client, providerName string) string {
	if flag != "" {
		return flag
	}
	if cfg, err := a.loadConfig(); err == nil {
		if pc, ok := cfg.Provider(providerName); ok && pc.Model != "" {
			return pc.Model
		}
	}
	return c.DefaultModel()
}
