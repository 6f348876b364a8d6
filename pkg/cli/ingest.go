package cli

import (
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"lakesync/internal/config"
	"lakesync/internal/service/ingest"
	"lakesync/internal/service/storage"
)

func newIngestCmd(envFile *string) *cobra.Command {
	var (
		collection string
		prefix     string
		all        bool
		schedule   string
	)

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Stage raw source collections into the data lake",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			if err := cfg.ValidateIngest(); err != nil {
				return fmt.Errorf("configuration: %w", err)
			}

			var sources []config.SourceSpec
			switch {
			case all:
				if len(cfg.Sources) == 0 {
					return fmt.Errorf("--all requires SOURCE_COLLECTIONS to be configured")
				}
				sources = cfg.Sources
			case collection != "" && prefix != "":
				sources = []config.SourceSpec{{Collection: collection, Prefix: prefix}}
			default:
				return fmt.Errorf("either --all or both --collection and --prefix are required")
			}

			logger := newLogger(cfg).With("process", "ingesta")

			awsCfg, err := awsClientConfig(ctx, cfg)
			if err != nil {
				return fmt.Errorf("aws configuration: %w", err)
			}

			stager := ingest.NewStager(
				ingest.NewDynamoScanner(dynamodb.NewFromConfig(awsCfg)),
				storage.NewS3Store(s3.NewFromConfig(awsCfg)),
				cfg.StagingBucket,
				logger,
			)

			if schedule != "" {
				sched := ingest.NewScheduler(stager, sources, logger)
				if err := sched.Start(schedule); err != nil {
					return fmt.Errorf("start schedule %q: %w", schedule, err)
				}
				<-ctx.Done()
				sched.Stop()
				return nil
			}

			if _, err := stager.StageAll(ctx, sources); err != nil {
				return err
			}
			logger.Info("program finished successfully")
			return nil
		},
	}

	cmd.Flags().StringVar(&collection, "collection", "", "source collection to scan")
	cmd.Flags().StringVar(&prefix, "prefix", "", "staging prefix for the collection's pages")
	cmd.Flags().BoolVar(&all, "all", false, "stage every collection from SOURCE_COLLECTIONS")
	cmd.Flags().StringVar(&schedule, "schedule", "", "cron expression to run staging periodically")
	return cmd
}
