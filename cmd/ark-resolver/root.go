package main

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	arkresolver "github.com/dasch-swiss/ark-resolver"
	"github.com/dasch-swiss/ark-resolver/settings"
)

// newRootCmd creates the root ark-resolver command with all subcommands
// registered.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "ark-resolver",
		Short:         "ark-resolver - ARK identifier codec and redirect resolver",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the config file directory")

	root.AddCommand(newServeCmd(&configPath))
	root.AddCommand(newResolveCmd(&configPath))
	root.AddCommand(newFormatCmd(&configPath))
	return root
}

// loadResolver builds the resolver from config for one-shot commands,
// logging to stderr at the configured level.
func loadResolver(ctx context.Context, configPath string) (*arkresolver.Resolver, error) {
	s, err := settings.Load(ctx, configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(os.Stderr, s.Config().LogLevel)
	return arkresolver.New(s, arkresolver.WithLogger(logger))
}

func newLogger(w io.Writer, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lvl}))
}
