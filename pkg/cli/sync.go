package cli

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	_ "github.com/go-sql-driver/mysql" // relational target driver
	"github.com/spf13/cobra"

	"lakesync/internal/service/catalog"
	"lakesync/internal/service/load"
	"lakesync/internal/service/results"
	"lakesync/internal/service/storage"
	syncsvc "lakesync/internal/service/sync"
	"lakesync/internal/service/transform"
)

func newSyncCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Run the query-transform-load pipeline once",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("configuration: %w", err)
			}
			logger := newLogger(cfg).With("process", "etl")

			plan, err := cfg.ResolvePlan()
			if err != nil {
				return fmt.Errorf("resolve sync plan: %w", err)
			}

			awsCfg, err := awsClientConfig(ctx, cfg)
			if err != nil {
				return fmt.Errorf("aws configuration: %w", err)
			}

			engine := catalog.NewAthenaEngine(
				athena.NewFromConfig(awsCfg), cfg.CatalogDatabase, cfg.OutputLocation())
			store := storage.NewS3Store(s3.NewFromConfig(awsCfg))

			svc := syncsvc.NewService(
				catalog.NewExecutor(engine, logger),
				catalog.NewWaiter(engine, cfg.PollMaxAttempts, cfg.PollInterval, logger),
				results.NewFetcher(store, cfg.ResultBucket, logger),
				transform.New(logger),
				load.New("mysql", cfg.MySQL.DSN(), logger),
				plan,
				logger,
			)
			svc.Run(ctx)

			logger.Info("program finished successfully")
			return nil
		},
	}
}
