package processing

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openshift-assisted/eventlog-analyzer/internal/correlation"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/internal/log"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

// Outcome of one record, used as metric label.
const (
	OutcomeCreated  = "created"
	OutcomeUpdated  = "updated"
	OutcomeUnpaired = "unpaired"
	OutcomeSkipped  = "skipped"
)

// Main applies one event to the result store.
//
// The first record of an id creates its row. A later FINISHED record completes the row once,
// with the duration of the id's first distinct pair. Both writes are conditional on the store side,
// so replaying a batch or running two batches concurrently leaves the rows unchanged.
type Main struct {
	store   repo.ResultStore
	batch   *correlation.Batch
	timeout time.Duration

	outcomes *prometheus.CounterVec
	alerts   prometheus.Counter
}

func NewMain(store repo.ResultStore, batch *correlation.Batch, timeout time.Duration) Main {
	return Main{
		store:   store,
		batch:   batch,
		timeout: timeout,
	}
}

// WithMetrics registers the outcome and alert counters.
func (m Main) WithMetrics(registry prometheus.Registerer, config pipeline.MetricsConfig) (Main, error) {
	outcomes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "record_outcome_total",
		Help:      "Record counter by outcome.",
	}, []string{"outcome"})

	alerts := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "alert_total",
		Help:      "Results flagged with an alert.",
	})

	for _, collector := range []prometheus.Collector{outcomes, alerts} {
		err := registry.Register(collector)
		if err != nil {
			return m, fmt.Errorf("failed to register metric: %w", err)
		}
	}

	m.outcomes = outcomes
	m.alerts = alerts

	return m, nil
}

func (m Main) Process(ctx context.Context, event entity.Event) error {
	logger := log.Logger().WithValues("id", event.ID, "state", event.State)

	created, err := m.insert(ctx, event)
	if err != nil {
		return err
	}

	if created {
		logger.V(2).Info("Result created")
		m.observe(OutcomeCreated)

		return nil
	}

	apply, err := m.shouldApplyUpdate(ctx, event)
	if err != nil {
		return err
	}

	if !apply {
		logger.V(3).Info("Nothing to update")
		m.observe(OutcomeSkipped)

		return nil
	}

	correlated := m.batch.Correlate(event.ID)
	if !correlated.Paired {
		logger.V(2).Info("No pair for id")
		m.observe(OutcomeUnpaired)

		return nil
	}

	updated, err := m.update(ctx, event.ID, correlated)
	if err != nil {
		return err
	}

	// Lost the race against another run, which wrote the same values
	if !updated {
		m.observe(OutcomeSkipped)

		return nil
	}

	m.observe(OutcomeUpdated)

	if correlated.Alert {
		logger.V(1).Info("Duration above threshold", "duration", correlated.Duration, "threshold", m.batch.Threshold())

		if m.alerts != nil {
			m.alerts.Inc()
		}

		return nil
	}

	logger.V(2).Info("Result updated", "duration", correlated.Duration)

	return nil
}

// shouldApplyUpdate is true iff the row exists, the event is FINISHED and the stored duration is unset.
func (m Main) shouldApplyUpdate(ctx context.Context, event entity.Event) (bool, error) {
	if event.State != entity.StateFinished {
		return false, nil
	}

	exists, err := m.withTimeout(ctx, func(ctx context.Context) (bool, error) {
		return m.store.Exists(ctx, event.ID)
	})
	if err != nil || !exists {
		return false, err
	}

	return m.withTimeout(ctx, func(ctx context.Context) (bool, error) {
		return m.store.DurationUnset(ctx, event.ID)
	})
}

func (m Main) insert(ctx context.Context, event entity.Event) (bool, error) {
	return m.withTimeout(ctx, func(ctx context.Context) (bool, error) {
		return m.store.Insert(ctx, entity.NewResult(event))
	})
}

func (m Main) update(ctx context.Context, id string, correlated correlation.Correlation) (bool, error) {
	return m.withTimeout(ctx, func(ctx context.Context) (bool, error) {
		return m.store.UpdateDurationAndAlert(ctx, id, correlated.Duration, correlated.Alert)
	})
}

func (m Main) withTimeout(ctx context.Context, fn func(ctx context.Context) (bool, error)) (bool, error) {
	if m.timeout <= 0 {
		return fn(ctx)
	}

	ctx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	return fn(ctx)
}

func (m Main) observe(outcome string) {
	if m.outcomes == nil {
		return
	}

	m.outcomes.WithLabelValues(outcome).Inc()
}
