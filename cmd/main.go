package main

import (
	"fmt"
	"os"

	"gamerental/config"
	"gamerental/utils"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := &config.Config{}

	root := &cobra.Command{
		Use:           "gamerental",
		Short:         "Board-game rental API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			*cfg = *loaded
			utils.InitLogger(utils.LoggerOptions{
				Level:   cfg.LogLevel,
				File:    cfg.LogFile,
				Release: cfg.IsRelease(),
			})
			return nil
		},
	}

	serve := newServeCmd(cfg)
	// Bare invocation serves, with migrations.
	root.RunE = serve.RunE
	root.AddCommand(serve, newMigrateCmd(cfg))
	return root
}
