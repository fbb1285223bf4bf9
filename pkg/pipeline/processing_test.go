package pipeline_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/prometheus/client_golang/prometheus"
	promdto "github.com/prometheus/client_model/go"
	"go.uber.org/mock/gomock"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline/mock"
)

// Helper

var (
	finished = entity.Event{
		ID:        "scsmbstgra",
		Type:      "APPLICATION_LOG",
		Host:      "12345",
		State:     entity.StateFinished,
		Timestamp: time.UnixMilli(1491377495217).UTC(),
	}

	errOneError = errors.New("error for testing purpose")
	oneCategory = "category1"

	errStoreDown   = repo.NewConnectionError(errors.New("connection refused"), "failed to insert %s", finished.ID)
	errConstraint  = repo.NewOperationError(errors.New("value too long for type character varying(255)"), "failed to insert %s", finished.ID)
	errMalformed   = repo.NewIngestionError(errors.New("unexpected EOF"), "failed to decode record")
	panicReason    = "nil store"
	retryConfig    = pipeline.RetryConfig{MaxAttempt: 3, Delay: time.Millisecond}
	retryDisabled  = pipeline.RetryConfig{}
	histogramName  = "test_processing_duration_milliseconds"
	errorCountName = "test_processing_error_total"
)

type panicProcessing struct{}

func (p panicProcessing) Process(ctx context.Context, event entity.Event) error {
	panic(panicReason)
}

type slowProcessing struct {
	clock clockwork.FakeClock

	sleep time.Duration
	err   error
}

func (s *slowProcessing) Process(ctx context.Context, event entity.Event) error {
	s.clock.Advance(s.sleep)

	return s.err
}

func gather(registry *prometheus.Registry, name string) []*promdto.Metric {
	families, err := registry.Gather()
	Expect(err).NotTo(HaveOccurred())

	for _, family := range families {
		if family.GetName() == name {
			return family.GetMetric()
		}
	}

	return nil
}

func withLabel(metrics []*promdto.Metric, name, value string) *promdto.Metric {
	for _, metric := range metrics {
		for _, label := range metric.GetLabel() {
			if label.GetName() == name && label.GetValue() == value {
				return metric
			}
		}
	}

	return nil
}

// Go Test
func TestPipeline(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Pipeline test suite")
}

// Retry

var _ = Describe("Retrying a record", func() {
	var ctrl *gomock.Controller
	var proc *mock.MockProcessing[entity.Event]

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		proc = mock.NewMockProcessing[entity.Event](ctrl)
	})

	Context("with 3 attempts", func() {
		var retry pipeline.Processing[entity.Event]

		BeforeEach(func() {
			retry = pipeline.NewRetryProcessing[entity.Event](proc, retryConfig)
		})

		When("the store comes back before the last attempt", func() {
			BeforeEach(func() {
				gomock.InOrder(
					proc.EXPECT().Process(gomock.Any(), finished).Return(errStoreDown).Times(2),
					proc.EXPECT().Process(gomock.Any(), finished).Return(nil).Times(1),
				)
			})

			It("should succeed", func(ctx SpecContext) {
				Expect(retry.Process(ctx, finished)).To(Succeed())
			})
		})

		When("the store stays unreachable", func() {
			BeforeEach(func() {
				proc.EXPECT().Process(gomock.Any(), finished).Return(errStoreDown).Times(3)
			})

			It("should return the connection error with its category", func(ctx SpecContext) {
				err := retry.Process(ctx, finished)
				Expect(err).To(MatchError(repo.ErrStoreConnection))
				Expect(err).To(MatchError(pipeline.ErrRetryableError))

				processingError := pipeline.ErrProcessingError{}
				Expect(errors.As(err, &processingError)).To(BeTrue())
				Expect(processingError.Category).To(Equal(repo.CategoryStoreConnection))
			})
		})

		DescribeTable("should not retry errors that another attempt cannot fix",
			func(ctx SpecContext, returned error, sentinel error) {
				proc.EXPECT().Process(gomock.Any(), finished).Return(returned).Times(1)

				err := retry.Process(ctx, finished)
				Expect(err).To(MatchError(sentinel))
				Expect(pipeline.IsRetryable(err)).To(BeFalse())
			},
			Entry("store operation", errConstraint, repo.ErrStoreOperation),
			Entry("ingestion", errMalformed, repo.ErrIngestion),
			Entry("plain error", errOneError, errOneError),
		)

		When("the context is cancelled between attempts", func() {
			It("should stop retrying", func(ctx SpecContext) {
				cancellable, cancel := context.WithCancel(ctx)
				defer cancel()

				proc.EXPECT().Process(gomock.Any(), finished).DoAndReturn(func(context.Context, entity.Event) error {
					cancel()

					return errStoreDown
				}).Times(1)

				Expect(retry.Process(cancellable, finished)).NotTo(Succeed())
			})
		})
	})

	Context("without attempts configured", func() {
		It("should call the processing once", func(ctx SpecContext) {
			proc.EXPECT().Process(gomock.Any(), finished).Return(errStoreDown).Times(1)

			err := pipeline.NewRetryProcessing[entity.Event](proc, retryDisabled).Process(ctx, finished)
			Expect(err).To(MatchError(repo.ErrStoreConnection))
		})
	})
})

// Panic

var _ = Describe("Recovering from a panic", func() {
	It("should return a panic ErrProcessingError carrying the stack", func(ctx SpecContext) {
		err := pipeline.NewPanicHandlerProcessing[entity.Event](panicProcessing{}).Process(ctx, finished)
		Expect(err).To(MatchError(pipeline.ErrPanic))
		Expect(err.Error()).To(ContainSubstring(panicReason))

		processingError := pipeline.ErrProcessingError{}
		Expect(errors.As(err, &processingError)).To(BeTrue())
		Expect(processingError.Category).To(Equal(pipeline.PanicCategory))
		Expect(processingError.AdditionalInputs).To(HaveLen(1))
		Expect(processingError.AdditionalInputs[0].Source).To(Equal("panic"))
		Expect(string(processingError.AdditionalInputs[0].Value)).To(ContainSubstring("panicProcessing"))
	})

	It("should return store errors untouched", func(ctx SpecContext) {
		ctrl := gomock.NewController(GinkgoT())
		proc := mock.NewMockProcessing[entity.Event](ctrl)
		proc.EXPECT().Process(gomock.Any(), finished).Return(errConstraint).Times(1)

		err := pipeline.NewPanicHandlerProcessing[entity.Event](proc).Process(ctx, finished)
		Expect(err).To(Equal(error(errConstraint)))
	})

	When("the runner processes a panicking record", func() {
		It("should forward the panic category and the record to the error processing", func(ctx SpecContext) {
			ctrl := gomock.NewController(GinkgoT())
			errProc := mock.NewMockErrorProcessing(ctrl)

			var captured pipeline.ErrProcessingError
			errProc.EXPECT().Process(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e pipeline.ErrProcessingError) error {
				captured = e

				return nil
			}).Times(1)

			runner := pipeline.NewRunner[entity.Event](pipeline.NewPanicHandlerProcessing[entity.Event](panicProcessing{}), errProc, pipeline.ModeBestEffort)

			summary, err := runner.Run(ctx, []entity.Event{finished})
			Expect(err).NotTo(HaveOccurred())
			Expect(summary).To(Equal(pipeline.Summary{Total: 1, Failed: 1}))

			Expect(captured.Category).To(Equal(pipeline.PanicCategory))
			Expect(captured.Record).NotTo(BeNil())
			Expect(captured.Record.Key).To(Equal("0"))

			var record entity.Event
			Expect(json.Unmarshal(captured.Record.Value, &record)).To(Succeed())
			Expect(record.ID).To(Equal(finished.ID))
			Expect(record.State).To(Equal(entity.StateFinished))
			Expect(record.Timestamp.Equal(finished.Timestamp)).To(BeTrue())
		})
	})
})

// Fan-out

var _ = Describe("Fanning out a processing error", func() {
	var ctrl *gomock.Controller
	var deadLetter *mock.MockErrorProcessing
	var registry *prometheus.Registry
	var fanOut pipeline.ErrorProcessing
	var processingError pipeline.ErrProcessingError

	BeforeEach(func() {
		Expect(errors.As(errStoreDown, &processingError)).To(BeTrue())

		ctrl = gomock.NewController(GinkgoT())
		deadLetter = mock.NewMockErrorProcessing(ctrl)
		registry = prometheus.NewPedanticRegistry()

		count, err := pipeline.NewErrorCountProcessing(registry, pipeline.MetricsConfig{Namespace: "test"})
		Expect(err).NotTo(HaveOccurred())

		fanOut = pipeline.NewParallelProcessing[pipeline.ErrProcessingError](deadLetter, count)
	})

	When("the dead letter write fails", func() {
		It("should still count the error and return the failure", func(ctx SpecContext) {
			deadLetter.EXPECT().Process(gomock.Any(), processingError).Return(errOneError).Times(1)

			Expect(fanOut.Process(ctx, processingError)).To(MatchError(errOneError))

			metric := withLabel(gather(registry, errorCountName), "category", repo.CategoryStoreConnection)
			Expect(metric).NotTo(BeNil())
			Expect(metric.GetCounter().GetValue()).To(Equal(1.0))
		})
	})

	When("several branches fail", func() {
		It("should return every error", func(ctx SpecContext) {
			other := mock.NewMockErrorProcessing(ctrl)

			deadLetter.EXPECT().Process(gomock.Any(), processingError).Return(errOneError).Times(1)
			other.EXPECT().Process(gomock.Any(), processingError).Return(errConstraint).Times(1)

			err := pipeline.NewParallelProcessing[pipeline.ErrProcessingError](deadLetter, other).Process(ctx, processingError)
			Expect(err).To(MatchError(errOneError))
			Expect(err).To(MatchError(repo.ErrStoreOperation))
		})
	})

	When("every branch succeeds", func() {
		It("should succeed", func(ctx SpecContext) {
			deadLetter.EXPECT().Process(gomock.Any(), processingError).Return(nil).Times(1)

			Expect(fanOut.Process(ctx, processingError)).To(Succeed())
		})
	})
})

// Duration metric

var _ = Describe("Measuring record duration", func() {
	It("should observe milliseconds by outcome", func(ctx SpecContext) {
		registry := prometheus.NewPedanticRegistry()
		fakeClock := clockwork.NewFakeClock()
		proc := &slowProcessing{clock: fakeClock}

		measured, err := pipeline.NewDurationMetricsDecoratorProcessing[entity.Event](proc, registry, fakeClock, pipeline.MetricsConfig{
			Namespace: "test",
			Buckets:   []float64{5, 50},
		})
		Expect(err).NotTo(HaveOccurred())

		proc.sleep = 2 * time.Millisecond
		for i := 0; i < 3; i++ {
			Expect(measured.Process(ctx, finished)).To(Succeed())
		}

		proc.sleep = 1500 * time.Microsecond
		proc.err = errStoreDown
		Expect(measured.Process(ctx, finished)).To(MatchError(repo.ErrStoreConnection))

		metrics := gather(registry, histogramName)
		Expect(metrics).To(HaveLen(2))

		By("checking the successful records")
		success := withLabel(metrics, "outcome", "success").GetHistogram()
		Expect(success.GetSampleCount()).To(Equal(uint64(3)))
		Expect(success.GetSampleSum()).To(BeNumerically("~", 6.0, 1e-9))
		Expect(success.GetBucket()[0].GetCumulativeCount()).To(Equal(uint64(3)))

		By("checking the failed record")
		failure := withLabel(metrics, "outcome", "failure").GetHistogram()
		Expect(failure.GetSampleCount()).To(Equal(uint64(1)))
		Expect(failure.GetSampleSum()).To(BeNumerically("~", 1.5, 1e-9))
	})
})

// Error count metric

var _ = Describe("Counting errors", func() {
	It("should count by category", func(ctx SpecContext) {
		registry := prometheus.NewPedanticRegistry()

		count, err := pipeline.NewErrorCountProcessing(registry, pipeline.MetricsConfig{Namespace: "test"})
		Expect(err).NotTo(HaveOccurred())

		for _, e := range []error{errStoreDown, errStoreDown, errConstraint} {
			processingError := pipeline.ErrProcessingError{}
			Expect(errors.As(e, &processingError)).To(BeTrue())
			Expect(count.Process(ctx, processingError)).To(Succeed())
		}

		Expect(count.Process(ctx, pipeline.NewErrProcessingError(errOneError, "", nil))).To(Succeed())

		metrics := gather(registry, errorCountName)
		Expect(metrics).To(HaveLen(3))
		Expect(withLabel(metrics, "category", repo.CategoryStoreConnection).GetCounter().GetValue()).To(Equal(2.0))
		Expect(withLabel(metrics, "category", repo.CategoryStoreOperation).GetCounter().GetValue()).To(Equal(1.0))
		Expect(withLabel(metrics, "category", pipeline.UnknownCategory).GetCounter().GetValue()).To(Equal(1.0))
	})
})
