package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	arkresolver "github.com/dasch-swiss/ark-resolver"
	"github.com/dasch-swiss/ark-resolver/serve"
	"github.com/dasch-swiss/ark-resolver/settings"
)

// newServeCmd creates the serve command, which runs the HTTP resolver
// until interrupted.
func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the ARK resolution HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			s, err := settings.Load(ctx, *configPath)
			if err != nil {
				return err
			}
			cfg := s.Config()

			logger := newLogger(os.Stderr, cfg.LogLevel)
			resolver, err := arkresolver.New(s, arkresolver.WithLogger(logger))
			if err != nil {
				return err
			}

			var cache *serve.RedirectCache
			if cfg.RedisAddr != "" {
				cache, err = serve.NewRedirectCache(cfg.RedisAddr, cfg.RedisTTL)
				if err != nil {
					return err
				}
				defer cache.Close()
				logger.Info("redirect cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.RedisTTL)
			}

			srv, err := serve.New(serve.Config{
				Resolver: resolver,
				Logger:   logger,
				Cache:    cache,
				Version:  Version,
			})
			if err != nil {
				return err
			}
			return srv.Run(ctx)
		},
	}
}
