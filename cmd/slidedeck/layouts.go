package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slidedeck/internal/services"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Inspect the presentation layout catalog",
}

var layoutsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available layouts",
	Args:  cobra.NoArgs,
	RunE:  runLayoutsList,
}

var layoutsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a layout with its schema and default content",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsShow,
}

var layoutsValidateCmd = &cobra.Command{
	Use:   "validate <id> <file.json>",
	Short: "Validate layout content against the layout schema",
	Args:  cobra.ExactArgs(2),
	RunE:  runLayoutsValidate,
}

var validateWithDefaults bool

func init() {
	layoutsValidateCmd.Flags().BoolVar(&validateWithDefaults, "with-defaults", false, "Fill fields missing from the file with the layout defaults before validating")

	layoutsCmd.AddCommand(layoutsListCmd)
	layoutsCmd.AddCommand(layoutsShowCmd)
	layoutsCmd.AddCommand(layoutsValidateCmd)
}

var layoutIDStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true)

func layoutCatalog() (*services.LayoutCatalogService, error) {
	registry, err := initializeServices(envProvider, viper.GetString("env-file"))
	if err != nil {
		return nil, err
	}
	return registry.LayoutCatalogService()
}

func runLayoutsList(cmd *cobra.Command, _ []string) error {
	catalog, err := layoutCatalog()
	if err != nil {
		return err
	}
	layouts, err := catalog.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, layout := range layouts {
		fmt.Fprintf(out, "%s  %s\n", layoutIDStyle.Render(layout.ID), layout.Name)
		if layout.Description != "" {
			fmt.Fprintf(out, "    %s\n", mutedStyle.Render(layout.Description))
		}
	}
	return nil
}

func runLayoutsShow(cmd *cobra.Command, args []string) error {
	catalog, err := layoutCatalog()
	if err != nil {
		return err
	}
	layout, err := catalog.Get(args[0])
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(layout)
}

func runLayoutsValidate(cmd *cobra.Command, args []string) error {
	catalog, err := layoutCatalog()
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[1], err)
	}

	if validateWithDefaults {
		content, err = withLayoutDefaults(catalog, args[0], content)
		if err != nil {
			return err
		}
	}

	violations, err := catalog.Validate(args[0], content)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(violations) == 0 {
		fmt.Fprintln(out, okStyle.Render("valid"))
		return nil
	}

	fmt.Fprintln(out, errorStyle.Render("invalid"))
	for _, violation := range violations {
		fmt.Fprintf(out, "  - %s\n", violation)
	}
	return fmt.Errorf("%s: %d schema violation(s)", args[1], len(violations))
}

// withLayoutDefaults merges the layout defaults beneath the top-level fields of
// content.
func withLayoutDefaults(catalog *services.LayoutCatalogService, id string, content []byte) ([]byte, error) {
	defaults, err := catalog.Defaults(id)
	if err != nil {
		return nil, err
	}

	var fields map[string]interface{}
	if err := json.Unmarshal(content, &fields); err != nil {
		return nil, fmt.Errorf("layout content must be a JSON object: %w", err)
	}
	for key, value := range fields {
		defaults[key] = value
	}
	return json.Marshal(defaults)
}
