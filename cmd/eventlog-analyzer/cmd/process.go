package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/openshift-assisted/eventlog-analyzer/internal/common"
	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
	"github.com/openshift-assisted/eventlog-analyzer/internal/correlation"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo/processingerror"
	"github.com/openshift-assisted/eventlog-analyzer/internal/factory"
	"github.com/openshift-assisted/eventlog-analyzer/internal/log"
	"github.com/openshift-assisted/eventlog-analyzer/internal/processing"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

const shutdownTimeout = 10 * time.Second

var reset bool

// processCmd represents the process command
var processCmd = &cobra.Command{
	Use:   "process",
	Short: "Load the event log, correlate events and store durations and alerts",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := log.Logger()

		// Set max procs based on cpu limits
		err := common.SetMaxProcs()
		if err != nil {
			return err
		}

		// Set max memory
		err = common.SetMemLimit()
		if err != nil {
			logger.V(1).Info("Go memlimit not set", "reason", err.Error())
		}

		// Listen to sigterm and interrupt signals
		ctx := common.SetupSignalHandler(cmd.Context())

		return runProcess(ctx, *conf, reset)
	},
}

func init() {
	processCmd.Flags().BoolVar(&reset, "reset", false, "delete every stored result before processing")

	rootCmd.AddCommand(processCmd)
}

func runProcess(ctx context.Context, conf config.Config, reset bool) error {
	logger := log.Logger()
	runID := uuid.NewString()

	logger = logger.WithValues("run", runID)

	var closers []common.CloseFunc
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		common.Close(shutdownCtx, closers...)
	}()

	// Load the whole batch before touching the store
	source, closeSource, err := factory.CreateEventSource(ctx, conf.Input)
	if err != nil {
		return fmt.Errorf("failed to create event source: %w", err)
	}

	closers = append(closers, closeSource)

	events, err := source.LoadEvents(ctx)
	if err != nil {
		return err
	}

	logger.V(1).Info("Events loaded", "count", len(events), "input", conf.Input.Kind)

	batch := correlation.NewBatch(events, conf.Correlation.Threshold)

	// Store
	store, closeStore, err := factory.CreateResultStore(ctx, conf.Store)
	if err != nil {
		return fmt.Errorf("failed to create result store: %w", err)
	}

	closers = append(closers, closeStore)

	err = store.EnsureSchema(ctx)
	if err != nil {
		return fmt.Errorf("failed to prepare result store: %w", err)
	}

	if reset {
		err = store.Reset(ctx)
		if err != nil {
			return fmt.Errorf("failed to reset result store: %w", err)
		}

		logger.V(0).Info("Result store reset")
	}

	// Pipeline
	registry := prometheus.NewRegistry()

	mainProcessing, err := factory.DecorateProcessing(processing.NewMain(store, batch, conf.DefaultTimeout), registry, conf.Processing.Retry)
	if err != nil {
		return fmt.Errorf("failed to create processing: %w", err)
	}

	var deadLetter pipeline.ErrorProcessing

	if conf.DeadLetterQueue.Bucket != "" {
		s3Client, err := factory.CreateS3Client(ctx, conf.DeadLetterQueue)
		if err != nil {
			return fmt.Errorf("failed to create dead letter queue client: %w", err)
		}

		writer := processingerror.NewS3Writer(s3Client, clockwork.NewRealClock(), conf.DeadLetterQueue.Bucket, conf.DeadLetterQueue.KeyPrefix, runID)
		deadLetter = processing.NewMainError(writer)
	}

	errorProcessing, err := factory.DecorateErrorProcessing(deadLetter, registry, conf.Processing.Retry)
	if err != nil {
		return fmt.Errorf("failed to create error processing: %w", err)
	}

	runner := pipeline.NewRunner[entity.Event](mainProcessing, errorProcessing, pipeline.Mode(conf.Processing.Mode)).WithLogger(logger)

	// Run
	summary, runErr := runner.Run(ctx, batch.Events())

	pushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err = factory.PushMetrics(pushCtx, conf.Metrics.PushGateway, registry)
	if err != nil {
		logger.Error(err, "Failed to push metrics")
	}

	if runErr != nil {
		return fmt.Errorf("processing stopped after %d of %d records: %w", summary.Processed+summary.Failed, summary.Total, runErr)
	}

	logger.V(0).Info("Processing stopped", "processed", summary.Processed, "failed", summary.Failed)

	return nil
}
