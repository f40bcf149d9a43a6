// Package main provides the slidedeck CLI application entry point.
// slidedeck serves the presentation generator's backend helper API and checks
// LLM credential configuration from the command line.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	deckcontext "slidedeck/internal/context"
	"slidedeck/internal/logger"
)

// envProvider is the environment the services resolve against.
var envProvider deckcontext.EnvProvider = deckcontext.OSEnv{}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "slidedeck",
	Short: "slidedeck - presentation generator backend helper",
	Long: `slidedeck serves the presentation generator's helper API and reports whether
the credential required by the configured LLM provider is available.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errMissingKey) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().String("log-level", "", "Set log level (debug|info|warn|error) [default: info]")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to file instead of stderr")
	rootCmd.PersistentFlags().String("env-file", "", "Read missing environment variables from this .env file")

	// Bind flags to viper
	for _, name := range []string{"log-level", "log-file", "env-file"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			fmt.Fprintf(os.Stderr, "Error binding %s flag: %v\n", name, err)
			os.Exit(1)
		}
	}

	viper.SetEnvPrefix("SLIDEDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Add subcommands
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(layoutsCmd)
	rootCmd.AddCommand(versionCmd)

	// Configure logger before any command execution
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	if err := logger.Configure(viper.GetString("log-level"), viper.GetString("log-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Error configuring logger: %v\n", err)
		os.Exit(1)
	}
}
