// Package cli implements the lakesync command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/spf13/cobra"

	"lakesync/internal/config"
)

// Execute runs the CLI. A precondition failure (bad credentials, missing
// required configuration) surfaces here as a non-zero exit; per-entity-kind
// failures inside a sync run never do.
func Execute() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := newRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd() *cobra.Command {
	var envFile string

	rootCmd := &cobra.Command{
		Use:           "lakesync",
		Short:         "Tenant operational-data synchronizer",
		Long:          "Moves per-tenant operational records from the data-lake catalog into the relational store, and stages raw source collections into the lake.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "optional .env file loaded before the environment")

	rootCmd.AddCommand(newSyncCmd(&envFile))
	rootCmd.AddCommand(newIngestCmd(&envFile))
	return rootCmd
}

// loadConfig applies the .env file (environment takes precedence) and loads
// configuration from the environment.
func loadConfig(envFile string) (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}
	return config.LoadFromEnv()
}

// newLogger builds the process logger. Components receive it at
// construction and tag their own records.
func newLogger(cfg *config.Config) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
}

// awsClientConfig resolves AWS client configuration: static credentials from
// the environment when present, the SDK default chain otherwise.
func awsClientConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}
	if cfg.AWSAccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, cfg.AWSSessionToken,
			),
		))
	}
	return awsconfig.LoadDefaultConfig(ctx, opts...)
}
