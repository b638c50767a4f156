// Package main is the entry point for the wuttodo CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"wuttodo/internal/config"
	"wuttodo/internal/identity"
	"wuttodo/internal/lifecycle"
	"wuttodo/internal/store"
	"wuttodo/internal/ui"
)

// version is set at build time using -ldflags.
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := config.ResolveConfigPath()

	root := &cobra.Command{
		Use:           "wuttodo",
		Short:         "Personal task tracker with due-date buckets",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openApp(configPath)
			if err != nil {
				return err
			}
			defer st.Close()
			return ui.Run(cfg, identity.Static(cfg.User), st, st)
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", configPath, "config file path")

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Run one retention sweep over completed tasks and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, st, err := openApp(configPath)
			if err != nil {
				return err
			}
			defer st.Close()

			user, ok := identity.Static(cfg.User).Current()
			if !ok {
				return nil
			}
			tasks, err := st.FetchTasks(user)
			if err != nil {
				return err
			}
			sweeper := lifecycle.NewSweeper(st, cfg.RetentionDays)
			n := sweeper.Sweep(context.Background(), user, tasks, time.Now())
			fmt.Printf("expired %d completed task(s)\n", n)
			return nil
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the wuttodo version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("wuttodo " + version)
		},
	}

	root.AddCommand(sweep, versionCmd)
	return root.Execute()
}

func openApp(configPath string) (config.Config, *store.Store, error) {
	cfg, err := config.LoadOrCreate(configPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	st, err := store.Open(cfg.DBPath)
	if err != nil {
		return cfg, nil, fmt.Errorf("open database: %w", err)
	}
	return cfg, st, nil
}
