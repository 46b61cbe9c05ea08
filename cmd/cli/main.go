package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/climatetracker/internal/client/cli"
	"github.com/dmitrijs2005/climatetracker/internal/client/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ct",
		Short: "Climate Impact Tracker client",
		Long: `Interactive client for the Climate Impact Tracker server.

Flags -c, -a, -i and -t are read by the configuration loader.`,
		// Flags are handled by the config package.
		DisableFlagParsing: true,
		SilenceUsage:       true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.NewApp(config.LoadConfig())
			if err != nil {
				return err
			}
			app.Run(cmd.Context())
			return nil
		},
	}

	root.AddCommand(&cobra.Command{
		Use:                "ping",
		Short:              "Check that the server is reachable",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cli.NewApp(config.LoadConfig())
			if err != nil {
				return err
			}
			if err := app.Ping(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "OK")
			return nil
		},
	})

	return root
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		log.Printf("%v", err)
		os.Exit(1)
	}
}
