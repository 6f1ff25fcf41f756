package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/victhorio/cachebench/bench"
	"github.com/victhorio/cachebench/bench/report"
)

var historyFlags struct {
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past benchmark runs",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 20, "number of runs to show (0 for all)")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := bench.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open run history at %s: %w", cfg.DBPath, err)
	}
	defer store.Close()

	runs, err := store.Runs(historyFlags.limit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet. Try `cachebench run` first.")
		return nil
	}

	fmt.Println(report.History(runs))
	return nil
}
