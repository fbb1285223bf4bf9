package factory

import (
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/processing"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

/*
 * DecorateProcessing decorates the processing as follow:
 *
 * panic --> duration --> retry --> count by state --> main (insert if absent, update if unset)
 */
func DecorateProcessing(mainProcessing processing.Main, registry prometheus.Registerer, conf config.Retry) (pipeline.Processing[entity.Event], error) {
	main, err := mainProcessing.WithMetrics(registry, pipeline.MetricsConfig{Namespace: "main"})
	if err != nil {
		return nil, fmt.Errorf("failed to create main processing metrics: %w", err)
	}

	ret, err := processing.NewCountData(main, registry, pipeline.MetricsConfig{Namespace: "main"})
	if err != nil {
		return nil, fmt.Errorf("failed to create data count processing: %w", err)
	}

	ret = pipeline.NewRetryProcessing(ret, pipeline.RetryConfig{MaxAttempt: conf.MaxAttempt, Delay: conf.Delay})

	ret, err = pipeline.NewDurationMetricsDecoratorProcessing(ret, registry, clockwork.NewRealClock(), pipeline.MetricsConfig{Namespace: "main"})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration metrics processor: %w", err)
	}

	ret = pipeline.NewPanicHandlerProcessing(ret)

	return ret, nil
}

/*
 * DecorateErrorProcessing decorates the error processing as follow:
 *
 *										---> retry --> main (dlq, if any)
 *	panic --> duration --> parallel ---|
 *										---> error count
 */
func DecorateErrorProcessing(mainProcessing pipeline.ErrorProcessing, registry prometheus.Registerer, conf config.Retry) (pipeline.ErrorProcessing, error) {
	errorCount, err := pipeline.NewErrorCountProcessing(registry, pipeline.MetricsConfig{Namespace: "error"})
	if err != nil {
		return nil, fmt.Errorf("failed to create error count processing: %w", err)
	}

	ret := errorCount

	if mainProcessing != nil {
		dlq := pipeline.NewRetryProcessing[pipeline.ErrProcessingError](mainProcessing, pipeline.RetryConfig{MaxAttempt: conf.MaxAttempt, Delay: conf.Delay})

		ret = pipeline.NewParallelProcessing(dlq, errorCount)
	}

	ret, err = pipeline.NewDurationMetricsDecoratorProcessing(ret, registry, clockwork.NewRealClock(), pipeline.MetricsConfig{Namespace: "error"})
	if err != nil {
		return nil, fmt.Errorf("failed to create duration metrics processor: %w", err)
	}

	ret = pipeline.NewPanicHandlerProcessing(ret)

	return ret, nil
}
