package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) paramsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "List the parameters a model accepts",
		Long: `List the parameters accepted by a model of the selected provider,
with their types, defaults and constraints. Use these names with
'presto generate --param key=value'.`,
		Args: cobra.NoArgs,
		RunE: a.runParams,
	}
	cmd.Flags().StringP("model", "m", "", "Model to describe (defaults to provider default)")
	cmd.Flags().StringP("format", "f", formatText, "Output format (text, json, yaml)")
	return cmd
}

func (a *app) runParams(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON, formatYAML); err != nil {
		return err
	}

	c, providerName, err := a.newClient()
	if err != nil {
		return err
	}

	modelFlag, _ := cmd.Flags().GetString("model")
	model := a.model(modelFlag, c, providerName)
	reps := c.AvailableParameters(model).Representations()

	out := cmd.OutOrStdout()
	switch format {
	case formatJSON:
		return writeJSON(out, reps)
	case formatYAML:
		return writeYAML(out, reps)
	}

	fmt.Fprintf(out, "%s\n", headerStyle.Render(fmt.Sprintf("Parameters for %s (%s):", model, providerName)))
	fmt.Fprintln(out, paramsTable(reps))
	return nil
}
