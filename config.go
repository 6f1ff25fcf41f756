package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/kelseyhightower/envconfig"
)

// Config carries the environment-level knobs. AWS credentials themselves come
// from the default chain (env, shared config, SSO, instance role).
type Config struct {
	Region              string        `envconfig:"AWS_REGION" default:"us-east-1"`
	DBPath              string        `envconfig:"CACHEBENCH_DB"`
	ConversationsPerDay int           `envconfig:"CACHEBENCH_CONVERSATIONS_PER_DAY" default:"1000"`
	Pace                time.Duration `envconfig:"CACHEBENCH_PACE" default:"2s"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("loadConfig: %w", err)
	}

	// Global flags win over the environment.
	if rootFlags.region != "" {
		cfg.Region = rootFlags.region
	}
	if rootFlags.db != "" {
		cfg.DBPath = rootFlags.db
	}

	if cfg.DBPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		cfg.DBPath = filepath.Join(home, ".cachebench", "runs.db")
	}

	return cfg, nil
}

func newBedrockClient(ctx context.Context, region string) (*bedrockruntime.Client, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return bedrockruntime.NewFromConfig(awsCfg), nil
}
