package pipeline

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

// Decorators wrap a Processing and are stacked by the caller, outermost first.

// Fan-out Processing

type fanOut[Payload any] struct {
	procs []Processing[Payload]
}

// NewParallelProcessing hands the same payload to every processing concurrently.
// A failing branch does not cancel the others: all of them run and their errors are joined.
func NewParallelProcessing[Payload any](p ...Processing[Payload]) Processing[Payload] {
	return fanOut[Payload]{
		procs: p,
	}
}

func (p fanOut[Payload]) Process(ctx context.Context, payload Payload) error {
	var group errgroup.Group

	errs := make([]error, len(p.procs))

	for i, proc := range p.procs {
		group.Go(func() error {
			errs[i] = proc.Process(ctx, payload)

			return nil
		})
	}

	_ = group.Wait()

	return errors.Join(errs...)
}

// Panic recovery Processing

const panicSource = "panic"

type panicRecovery[Payload any] struct {
	processing Processing[Payload]
}

// NewPanicHandlerProcessing converts a panic into an ErrProcessingError of category PanicCategory.
// The goroutine stack is attached as an additional input.
func NewPanicHandlerProcessing[Payload any](p Processing[Payload]) Processing[Payload] {
	return panicRecovery[Payload]{
		processing: p,
	}
}

func (p panicRecovery[Payload]) Process(ctx context.Context, payload Payload) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}

		err = NewErrProcessingError(
			fmt.Errorf("%w: %v", ErrPanic, r),
			PanicCategory,
			[]Input{{Source: panicSource, Key: "stack", Value: debug.Stack()}},
		)
	}()

	return p.processing.Process(ctx, payload)
}

// Retry Processing

type RetryConfig struct {
	// MaxAttempt includes the first call: 0 and 1 both mean a single call
	MaxAttempt uint
	// Delay is the fixed pause between two attempts
	Delay time.Duration
}

type retryProcessing[Payload any] struct {
	processing Processing[Payload]
	config     RetryConfig
}

// NewRetryProcessing calls p again while it fails with an error marked by ErrRetryableError.
// Any other error is returned at once.
func NewRetryProcessing[Payload any](p Processing[Payload], config RetryConfig) Processing[Payload] {
	return retryProcessing[Payload]{
		processing: p,
		config:     config,
	}
}

func (p retryProcessing[Payload]) Process(ctx context.Context, payload Payload) error {
	attempts := max(p.config.MaxAttempt, 1)
	if attempts == 1 {
		return p.processing.Process(ctx, payload)
	}

	return retry.Do(
		func() error {
			return p.processing.Process(ctx, payload)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.RetryIf(IsRetryable),
		retry.DelayType(retry.FixedDelay),
		retry.Delay(p.config.Delay),
		retry.LastErrorOnly(true),
	)
}

// Duration Metric Processing

const (
	outcomeSuccess = "success"
	outcomeFailure = "failure"
)

type MetricsConfig struct {
	Namespace string
	Buckets   []float64
}

type durationDecorator[Payload any] struct {
	processing Processing[Payload]
	histogram  *prometheus.HistogramVec
	clock      clockwork.Clock
}

// NewDurationMetricsDecoratorProcessing observes the time spent in p, labelled by outcome.
func NewDurationMetricsDecoratorProcessing[Payload any](p Processing[Payload], registry prometheus.Registerer, clock clockwork.Clock, config MetricsConfig) (Processing[Payload], error) {
	buckets := config.Buckets
	if len(buckets) == 0 {
		// a record is a handful of store round trips
		buckets = []float64{1, 2, 5, 10, 20, 50, 100, 200, 500, 1000}
	}

	histogram := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: config.Namespace,
		Name:      "processing_duration_milliseconds",
		Help:      "Time taken to process one record, in milliseconds.",
		Buckets:   buckets,
	}, []string{"outcome"})

	err := registry.Register(histogram)
	if err != nil {
		return nil, fmt.Errorf("failed to register metric: %w", err)
	}

	return durationDecorator[Payload]{
		processing: p,
		histogram:  histogram,
		clock:      clock,
	}, nil
}

func (p durationDecorator[Payload]) Process(ctx context.Context, payload Payload) error {
	start := p.clock.Now()

	err := p.processing.Process(ctx, payload)

	outcome := outcomeSuccess
	if err != nil {
		outcome = outcomeFailure
	}

	p.histogram.WithLabelValues(outcome).Observe(float64(p.clock.Since(start)) / float64(time.Millisecond))

	return err
}

// Error Metric Processing

type errorCountProcessing struct {
	counter *prometheus.CounterVec
}

// NewErrorCountProcessing counts processing errors by category. An empty category counts as UnknownCategory.
func NewErrorCountProcessing(registry prometheus.Registerer, config MetricsConfig) (Processing[ErrProcessingError], error) {
	counter := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: config.Namespace,
		Name:      "processing_error_total",
		Help:      "Failed records by error category.",
	}, []string{"category"})

	err := registry.Register(counter)
	if err != nil {
		return nil, fmt.Errorf("failed to register metric: %w", err)
	}

	return errorCountProcessing{
		counter: counter,
	}, nil
}

func (p errorCountProcessing) Process(ctx context.Context, processingError ErrProcessingError) error {
	category := processingError.Category
	if category == "" {
		category = UnknownCategory
	}

	p.counter.WithLabelValues(category).Inc()

	return nil
}
