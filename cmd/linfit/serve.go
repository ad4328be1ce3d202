package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"linfit/internal/config"
	"linfit/ui"
)

func newServeCmd() *cobra.Command {
	var mode string
	var dashboardPort, formPort string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard, the form front end, or both",
		Long: `Serve the web front ends.

  dashboard  sidebar of parameters, reruns on every change (default port 7860)
  form       single form with a, b, noise and n (default port 7861)
  both       both front ends, each on its own port

Settings come from defaults, then the TOML file named by LINFIT_CONFIG, then
environment variables, then these flags.

Example: linfit serve --mode both --dashboard-port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := setup()
			if err != nil {
				return err
			}
			cfg, logger := c.Config, c.Logger

			if cmd.Flags().Changed("mode") {
				m, err := config.ParseMode(mode)
				if err != nil {
					return err
				}
				cfg.Server.Mode = m
			}
			if cmd.Flags().Changed("dashboard-port") {
				cfg.Server.DashboardPort = dashboardPort
			}
			if cmd.Flags().Changed("form-port") {
				cfg.Server.FormPort = formPort
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			opts := c.UIOptions()
			g, ctx := errgroup.WithContext(ctx)

			if cfg.Server.Mode == config.ModeDashboard || cfg.Server.Mode == config.ModeBoth {
				dashboard, err := ui.NewApp(opts)
				if err != nil {
					return err
				}
				g.Go(func() error { return dashboard.Start(ctx, ":"+cfg.Server.DashboardPort) })
			}
			if cfg.Server.Mode == config.ModeForm || cfg.Server.Mode == config.ModeBoth {
				form, err := ui.NewServer(opts)
				if err != nil {
					return err
				}
				g.Go(func() error { return form.Start(ctx, ":"+cfg.Server.FormPort) })
			}

			err = g.Wait()
			if err == nil || err == context.Canceled {
				logger.Info("Server stopped")
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&mode, "mode", string(config.ModeDashboard), "Front end to serve: dashboard|form|both")
	cmd.Flags().StringVar(&dashboardPort, "dashboard-port", "7860", "Dashboard port")
	cmd.Flags().StringVar(&formPort, "form-port", "7861", "Form front end port")
	return cmd
}
