package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slidedeck/internal/services"
	"slidedeck/pkg/decktypes"
)

// errMissingKey is returned by check when no credential is configured. The
// warning has already been printed, so main only sets the exit code.
var errMissingKey = errors.New("required LLM credential is not configured")

var (
	checkVerify bool
	checkJSON   bool
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check whether the active LLM provider's credential is configured",
	Long: `Resolve the active LLM provider from the user config file and environment and
report whether its required credential is present. Exits with status 1 when it
is missing. With --verify the credential is also tried against the provider.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkVerify, "verify", false, "Verify the credential with the provider")
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "Print the result as JSON")
}

var (
	labelStyle = lipgloss.NewStyle().Bold(true).Width(12)
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// checkReport is the --json output of check.
type checkReport struct {
	decktypes.Resolution
	Verified    *bool  `json:"verified,omitempty"`
	VerifyError string `json:"verifyError,omitempty"`
}

func runCheck(cmd *cobra.Command, _ []string) error {
	registry, err := initializeServices(envProvider, viper.GetString("env-file"))
	if err != nil {
		return err
	}
	config, err := registry.ConfigurationService()
	if err != nil {
		return err
	}

	resolution := config.Resolve()

	var verifyErr error
	verified := false
	if checkVerify && resolution.HasKey {
		verifier, err := registry.VerificationService()
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		resolution, verifyErr = verifier.VerifyActive(ctx)
		verified = verifyErr == nil
	}

	out := cmd.OutOrStdout()
	if checkJSON {
		report := checkReport{Resolution: resolution}
		if checkVerify && resolution.HasKey {
			report.Verified = &verified
			if verifyErr != nil {
				report.VerifyError = verifyErr.Error()
			}
		}
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(report); err != nil {
			return err
		}
	} else {
		printResolution(out, resolution)
		if !resolution.HasKey {
			if err := printMissingKeyWarning(out, registry, resolution); err != nil {
				return err
			}
		} else if checkVerify {
			if verifyErr != nil {
				fmt.Fprintln(out, labelStyle.Render("Verified:"), errorStyle.Render(verifyErr.Error()))
			} else {
				fmt.Fprintln(out, labelStyle.Render("Verified:"), okStyle.Render("yes"))
			}
		}
	}

	if !resolution.HasKey {
		return errMissingKey
	}
	if verifyErr != nil {
		return fmt.Errorf("credential verification failed: %w", verifyErr)
	}
	return nil
}

func printResolution(out io.Writer, resolution decktypes.Resolution) {
	provider := string(resolution.Requirement.Provider)
	if resolution.Provider == decktypes.ProviderDefault {
		provider += mutedStyle.Render(" (default)")
	}
	source := string(resolution.Source)
	if source == "" {
		source = "none"
	}
	status := okStyle.Render("yes")
	if !resolution.HasKey {
		status = errorStyle.Render("no")
	}

	fmt.Fprintln(out, labelStyle.Render("Provider:"), provider)
	fmt.Fprintln(out, labelStyle.Render("Key:"), resolution.Requirement.Key)
	fmt.Fprintln(out, labelStyle.Render("Source:"), source)
	fmt.Fprintln(out, labelStyle.Render("Has key:"), status)
}

func printMissingKeyWarning(out io.Writer, registry *services.Registry, resolution decktypes.Resolution) error {
	markdown, err := registry.MarkdownService()
	if err != nil {
		return err
	}
	rendered, err := markdown.RenderMissingKeyWarning(resolution)
	if err != nil {
		return err
	}
	fmt.Fprint(out, rendered)
	return nil
}
