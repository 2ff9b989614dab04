package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/gosuri/uitable"
	"gopkg.in/yaml.v3"

	"github.com/jdgilhuly/presto/pkg/parameter"
	"github.com/jdgilhuly/presto/pkg/provider"
)

var (
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("1"))
	headerStyle  = lipgloss.NewStyle().Bold(true)
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	defaultStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string, allowed ...string) error {
	if slices.Contains(allowed, format) {
		return nil
	}
	return fmt.Errorf("unsupported format %q (want %s)", format, strings.Join(allowed, ", "))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func printBasicModel(w io.Writer, m provider.Model) {
	if m.Name != "" && m.Name != m.ID {
		fmt.Fprintf(w, "  - %s (%s)\n", m.ID, m.Name)
		return
	}
	fmt.Fprintf(w, "  - %s\n", m.ID)
}

func printVerboseModel(w io.Writer, m provider.Model) {
	fmt.Fprintf(w, "  %s:\n", m.ID)
	if m.Name != "" {
		fmt.Fprintf(w, "    name: %s\n", m.Name)
	}
	if m.Description != "" {
		fmt.Fprintf(w, "    description: %s\n", m.Description)
	}
	if m.ContextLength > 0 {
		fmt.Fprintf(w, "    context_length: %d\n", m.ContextLength)
	}
	if m.Pricing != nil && (m.Pricing.Prompt > 0 || m.Pricing.Completion > 0) {
		fmt.Fprintf(w, "    pricing: $%g/1k tokens\n", m.Pricing.Prompt)
		fmt.Fprintf(w, "    completion pricing: $%g/1k tokens\n", m.Pricing.Completion)
	}
	fmt.Fprintln(w)
}

func printUsage(w io.Writer, model string, u *provider.Usage) {
	if u == nil {
		return
	}
	fmt.Fprintf(w, "\nTokens: %d prompt, %d completion, %d total\n", u.PromptTokens, u.CompletionTokens, u.TotalTokens)
	if cost := provider.EstimateCost(model, u); cost > 0 {
		fmt.Fprintf(w, "Estimated cost: $%.6f\n", cost)
	}
}

// paramsTable renders parameter definitions as an aligned table.
func paramsTable(reps []parameter.Representation) string {
	table := uitable.New()
	table.MaxColWidth = 60
	table.Wrap = true
	table.AddRow(headerStyle.Render("NAME"), headerStyle.Render("TYPE"), headerStyle.Render("DEFAULT"),
		headerStyle.Render("CONSTRAINTS"), headerStyle.Render("DESCRIPTION"))
	for _, r := range reps {
		def := "-"
		if r.Default != nil {
			def = fmt.Sprint(r.Default)
			if f, ok := r.Default.(float64); ok {
				def = parameter.Float(f).String()
			}
		}
		table.AddRow(r.Name, string(r.Type), def, describeConstraints(r.Type, r.Constraints), r.Description)
	}
	return table.String()
}

func describeConstraints(kind parameter.Kind, c *parameter.Constraints) string {
	if c == nil {
		return "-"
	}
	bound := func(f float64) string {
		if kind == parameter.KindInteger {
			return fmt.Sprintf("%g", f)
		}
		return parameter.Float(f).String()
	}

	var parts []string
	switch {
	case c.Min != nil && c.Max != nil:
		parts = append(parts, bound(*c.Min)+".."+bound(*c.Max))
	case c.Min != nil:
		parts = append(parts, ">= "+bound(*c.Min))
	case c.Max != nil:
		parts = append(parts, "<= "+bound(*c.Max))
	}
	switch {
	case c.MinLength != nil && c.MaxLength != nil:
		parts = append(parts, fmt.Sprintf("%d..%d chars", *c.MinLength, *c.MaxLength))
	case c.MinLength != nil:
		parts = append(parts, fmt.Sprintf(">= %d chars", *c.MinLength))
	case c.MaxLength != nil:
		parts = append(parts, fmt.Sprintf("<= %d chars", *c.MaxLength))
	}
	if len(c.Values) > 0 {
		parts = append(parts, "one of "+strings.Join(c.Values, "|"))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}
