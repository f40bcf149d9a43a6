package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"slidedeck/internal/httpapi"
	"slidedeck/internal/logger"
	"slidedeck/internal/version"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the HTTP API server exposing /api/has-required-key, the layout catalog,
version information and a health check.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	if err := viper.BindPFlag("addr", serveCmd.Flags().Lookup("addr")); err != nil {
		logger.Fatal("Error binding addr flag", "error", err)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := version.ValidateVersion(); err != nil {
		return err
	}
	logger.Info("Starting slidedeck", "version", version.GetVersion(), "development", version.IsDevelopment())

	registry, err := initializeServices(envProvider, viper.GetString("env-file"))
	if err != nil {
		return err
	}

	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	return httpapi.Serve(ctx, viper.GetString("addr"), registry)
}
