package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootFlags struct {
	region string
	db     string
}

var rootCmd = &cobra.Command{
	Use:   "cachebench",
	Short: "Measure what Bedrock prompt caching actually saves",
	Long: `cachebench replays a fixed multi-turn support conversation against
Amazon Bedrock models with and without a prompt cache point, reads the
usage counters off every response, and turns them into session costs and
monthly projections so the two modes can be compared side by side.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.region, "region", "", "AWS region (default from env)")
	rootCmd.PersistentFlags().StringVar(&rootFlags.db, "db", "", "run history database path (default from env)")
}

func main() {
	// A missing .env is fine; real environment variables win either way.
	_ = godotenv.Load()

	log.SetFlags(0)

	if err := rootCmd.Execute(); err != nil {
		log.Printf("error: %v", err)
		os.Exit(1)
	}
}
