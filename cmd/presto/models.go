package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) modelsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "models",
		Short: "List available models for a provider",
		Args:  cobra.NoArgs,
		RunE:  a.runModels,
	}
	cmd.Flags().StringP("format", "f", formatText, "Output format (text, json)")
	return cmd
}

func (a *app) runModels(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON); err != nil {
		return err
	}

	c, providerName, err := a.newClient()
	if err != nil {
		return err
	}

	models, err := c.AvailableModels(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if format == formatJSON {
		return writeJSON(out, models)
	}

	fmt.Fprintf(out, "%s\n", headerStyle.Render("Available models for "+providerName+":"))
	for _, m := range models {
		if a.verbose() {
			printVerboseModel(out, m)
		} else {
			printBasicModel(out, m)
		}
	}
	return nil
}
