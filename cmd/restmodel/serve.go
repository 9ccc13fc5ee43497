package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/ersonp/restmodel/internal/application/rest"
	"github.com/ersonp/restmodel/internal/infrastructure/config"
)

// serveOptions are flag overrides applied on top of the loaded config. Zero
// values mean the configured value stands.
type serveOptions struct {
	host   string
	port   int
	debug  bool
	noSeed bool
}

func (o serveOptions) apply(cfg *config.Config) {
	if o.host != "" {
		cfg.Server.Host = o.host
	}
	if o.port != 0 {
		cfg.Server.Port = o.port
	}
	if o.debug {
		cfg.Server.Debug = true
	}
	if o.noSeed {
		cfg.Server.Seed = false
	}
}

func newServeCmd() *cobra.Command {
	var opts serveOptions

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  "Starts the HTTP server exposing every registered entity type and relationship, serving JSON and XML.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.host, "host", "", "Listen host (overrides config)")
	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Listen port (overrides config)")
	cmd.Flags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&opts.noSeed, "no-seed", false, "Start with an empty store")

	return cmd
}

func runServe(ctx context.Context, opts serveOptions) error {
	return withDeps(opts, func(d *Deps) error {
		server := rest.NewServer(d.Config.Server.Addr(), d.Dispatcher.Handler(), d.Log)
		return server.Run(ctx)
	})
}
