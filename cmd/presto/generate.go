package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) generateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate PROMPT",
		Short: "Generate text using an AI model",
		Long: `Send PROMPT to the selected provider and print the generated text.

Additional parameters are passed with --param key=value and are checked
against the parameters the model accepts (see 'presto params'):

  presto generate "Write a haiku" -m gpt-4o -P temperature=0.2 -P max_tokens=60`,
		Args: cobra.ExactArgs(1),
		RunE: a.runGenerate,
	}
	cmd.Flags().StringP("model", "m", "", "Model to use (defaults to provider default)")
	cmd.Flags().StringP("format", "f", formatText, "Output format (text, json)")
	cmd.Flags().StringArrayP("param", "P", nil, "Generation parameter as key=value (repeatable)")
	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, formatText, formatJSON); err != nil {
		return err
	}

	c, providerName, err := a.newClient()
	if err != nil {
		return err
	}

	modelFlag, _ := cmd.Flags().GetString("model")
	model := a.model(modelFlag, c, providerName)

	rawParams, _ := cmd.Flags().GetStringArray("param")
	params, err := parseParams(c.AvailableParameters(model), rawParams)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if a.verbose() {
		fmt.Fprintf(out, "Using provider: %s\n", providerName)
		fmt.Fprintf(out, "Using model: %s\n", model)
		fmt.Fprintln(out, "Generating response...")
	}

	resp, err := c.GenerateText(cmd.Context(), args[0], model, params)
	if err != nil {
		return generationError(err)
	}
	if len(resp.Choices) == 0 {
		return errors.New("Unexpected error occurred: the response contained no choices")
	}

	if format == formatJSON {
		return writeJSON(out, resp)
	}

	fmt.Fprintln(out, "\n"+headerStyle.Render("Response:"))
	fmt.Fprintln(out, resp.Text())
	if a.verbose() {
		printUsage(out, model, resp.Usage)
	}
	return nil
}
