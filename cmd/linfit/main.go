package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"linfit/internal"
	"linfit/internal/config"
	"linfit/internal/container"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "warning: failed to read .env: %v\n", err)
	}

	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "linfit",
		Short:         "Generate noisy linear data, fit it with least squares and show the result",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newFitCmd(),
	)
	return rootCmd
}

// setup loads configuration and builds the dependency container the same
// way for every subcommand
func setup() (*container.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	internal.DefaultLogger = logger

	c, err := container.New(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create application container: %w", err)
	}
	return c, nil
}
