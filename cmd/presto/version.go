package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jdgilhuly/presto/pkg/version"
)

func (a *app) versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			info := version.Get()
			out := cmd.OutOrStdout()

			switch output {
			case "json":
				s, err := info.ToJSONIndent()
				if err != nil {
					return err
				}
				fmt.Fprintln(out, s)
			case "short":
				fmt.Fprintln(out, info.ShortString())
			case "text":
				fmt.Fprintln(out, info.Text())
			default:
				return fmt.Errorf("unsupported output %q (want text, json, short)", output)
			}
			return nil
		},
	}
	cmd.Flags().StringP("output", "o", "text", "Output format (text, json, short)")
	return cmd
}
