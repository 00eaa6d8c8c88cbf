package main

import (
	"context"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Ramsey-B/thistle/config"
	"github.com/Ramsey-B/thistle/internal/appctx"
	"github.com/Ramsey-B/thistle/pkg/catalog"
	"github.com/Ramsey-B/thistle/pkg/database"
	"github.com/Ramsey-B/thistle/pkg/events"
	"github.com/Ramsey-B/thistle/pkg/kafka"
	"github.com/Ramsey-B/thistle/pkg/logging"
	"github.com/Ramsey-B/thistle/pkg/processor"
	"github.com/Ramsey-B/thistle/pkg/tracing"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts config.RunOptions
	var configPath string

	cmd := &cobra.Command{
		Use:   "thistle <input-file>",
		Short: "Merge duplicate catalog records listed in a delimited file",
		Long: `Merge duplicate bibliographic records in batch.

Each input line is one merge group: the first field is the master record id,
the remaining fields are the duplicates to fold into it. The catalog performs
the actual merge (holdings, holds, orders, subscriptions, reserves, ILL
requests, recalls and tags move to the master; the duplicates are deleted).
Runs are dry-run by default; pass --commit to merge for real. The exit status
is non-zero when any group fails.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputPath = args[0]
			return run(cmd.Context(), configPath, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Commit, "commit", false, "Perform the merges (default is dry-run)")
	cmd.Flags().BoolVarP(&opts.Verbose, "verbose", "v", false, "Narrate every decision per group")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "Also append log output to this file")
	cmd.Flags().StringVarP(&opts.Delimiter, "delimiter", "d", ",", "Field delimiter (single character)")
	cmd.Flags().StringVar(&opts.FrameworkCode, "framework", "", "Framework code to apply to merged records")
	cmd.Flags().BoolVar(&opts.ForceDefaultFramework, "force-default-framework", false, "Apply the default framework to merged records")
	cmd.Flags().StringVarP(&opts.UserID, "user", "u", "", "Patron id merges are attributed to in the catalog audit log")
	cmd.Flags().BoolVar(&opts.Trace, "trace", false, "Log completed spans for debugging")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Optional YAML config file overlaying the environment")

	return cmd
}

func run(ctx context.Context, configPath string, opts config.RunOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	level := cfg.LogLevel
	if opts.Verbose {
		level = "debug"
	}
	logger, closeLogs, err := logging.New(logging.Options{
		Level:   level,
		Pretty:  cfg.PrettyLogs,
		LogFile: opts.LogFile,
	})
	if err != nil {
		return err
	}
	defer closeLogs()

	if opts.Trace {
		shutdown := tracing.Init(logger)
		defer func() { _ = shutdown(context.Background()) }()
	}

	runID := uuid.NewString()
	ctx = appctx.SetRunID(ctx, runID)
	logger = logger.WithField("run_id", runID)

	db, err := database.Connect(ctx, cfg.DatabaseConfig(), logger)
	if err != nil {
		return err
	}
	defer db.Close()

	store := catalog.NewPostgresStore(db, logger)

	if opts.UserID != "" {
		user, err := store.GetUser(ctx, opts.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			return errors.Wrapf(catalog.ErrUserNotFound, "patron %s", opts.UserID)
		}
		ctx = appctx.SetUserID(ctx, user.ID)
		ctx = appctx.SetUserName(ctx, user.DisplayName)
		logger.WithFields(map[string]any{
			"user_id":   user.ID,
			"user_name": user.DisplayName,
		}).Info("Attributing merges to user")
	}

	var emitter processor.MergeEventEmitter
	if cfg.KafkaEventsEnabled && opts.Commit {
		producer := kafka.NewProducer(cfg.ProducerConfig(), logger)
		defer producer.Close()
		emitter = events.NewEmitter(producer, logger)
	}

	if !opts.Commit {
		logger.Info("Running in dry-run mode, no records will be modified")
	}

	proc := processor.NewProcessor(store, opts.FrameworkPolicy(), opts.Commit, logger)
	runner := processor.NewRunner(proc, emitter, logger)

	stats, err := runner.Run(ctx, opts.InputPath, opts.DelimiterRune())
	if err != nil {
		return err
	}
	if stats.Failed > 0 {
		return fmt.Errorf("%d of %d group(s) failed", stats.Failed, stats.Groups)
	}
	return nil
}
