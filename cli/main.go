package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"escrutinio"
	"escrutinio/report"
	"escrutinio/rest"
)

type config struct {
	DBPath string `env:"ESCRUTINIO_DB" envDefault:"escrutinio.db"`
	Addr   string `env:"ESCRUTINIO_ADDR" envDefault:":8080"`
}

func main() {
	if err := execRootCmd(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func execRootCmd(args []string) error {
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	rootCmd := &cobra.Command{
		Use:           "escrutinio",
		Short:         "Ballot-station tally engine",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		newServeCmd(&cfg),
		newReportCmd(&cfg),
		newResetCmd(&cfg),
	)
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func newServeCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the tally API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, store, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			slog.Info("serving", "addr", cfg.Addr, "db", cfg.DBPath)
			return rest.NewRouter(repo).Run(cfg.Addr)
		},
	}
}

func newReportCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Print ranking and summary tables for the stored snapshot",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, store, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			stats := escrutinio.ComputeStats(repo.Snapshot())
			sr := report.NewStatsReport(stats)
			sr.PrintRankingTable(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout())
			sr.PrintSummaryTable(cmd.OutOrStdout())
			return nil
		},
	}
}

func newResetCmd(cfg *config) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Discard all candidates, anforas and results",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, store, err := openRepository(cfg)
			if err != nil {
				return err
			}
			defer store.Close()
			repo.Reset()
			slog.Info("snapshot reset", "db", cfg.DBPath)
			return nil
		},
	}
}

func openRepository(cfg *config) (*escrutinio.Repository, *escrutinio.BoltStore, error) {
	store, err := escrutinio.OpenBoltStore(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	repo := escrutinio.NewRepository(store, slog.Default())
	repo.Load()
	return repo, store, nil
}
