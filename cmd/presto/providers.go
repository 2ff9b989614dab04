package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdgilhuly/presto/pkg/config"
)

type providersReport struct {
	Providers           []string `json:"providers"`
	DefaultProvider     string   `json:"default_provider"`
	ConfiguredProviders []string `json:"configured_providers"`
}

func (a *app) providersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List available providers",
		Args:  cobra.NoArgs,
		RunE:  a.runProviders,
	}
	cmd.Flags().StringP("format", "f", formatText, "Output format (text, json)")
	return cmd
}

func (a *app) runProviders(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON); err != nil {
		return err
	}

	// Not validated: the listing works even when the file names unknown providers.
	cfg, err := a.cache.Get()
	if err != nil {
		return err
	}
	defaultProvider := cfg.DefaultProvider
	if defaultProvider == "" {
		defaultProvider = config.DefaultProvider
	}

	report := providersReport{
		Providers:           a.registry.Names(),
		DefaultProvider:     defaultProvider,
		ConfiguredProviders: []string{},
	}
	for _, name := range report.Providers {
		if cfg.ProviderAPIKey(name) != "" {
			report.ConfiguredProviders = append(report.ConfiguredProviders, name)
		}
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, report)
	}

	fmt.Fprintln(out, headerStyle.Render("Available providers:"))
	for _, name := range report.Providers {
		label := name
		if name == report.DefaultProvider {
			label += " " + defaultStyle.Render("(default)")
		}
		status := mutedStyle.Render("not configured")
		if cfg.ProviderAPIKey(name) != "" {
			status = okStyle.Render("configured")
		}
		fmt.Fprintf(out, "  %s - %s\n", label, status)
	}
	return nil
}
