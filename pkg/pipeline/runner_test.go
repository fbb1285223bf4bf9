package pipeline_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"go.uber.org/mock/gomock"

	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline/mock"
)

type Record struct {
	ID string `json:"id"`
}

var _ = Describe("Testing Runner", func() {
	var ctrl *gomock.Controller
	var proc *mock.MockProcessing[Record]
	var errProc *mock.MockErrorProcessing

	records := []Record{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		proc = mock.NewMockProcessing[Record](ctrl)
		errProc = mock.NewMockErrorProcessing(ctrl)
	})

	Context("in best-effort mode", func() {
		var runner pipeline.Runner[Record]

		BeforeEach(func() {
			runner = pipeline.NewRunner[Record](proc, errProc, pipeline.ModeBestEffort).WithLogger(GinkgoLogr)
		})

		When("every record succeeds", func() {
			BeforeEach(func() {
				gomock.InOrder(
					proc.EXPECT().Process(gomock.Any(), records[0]).Return(nil).Times(1),
					proc.EXPECT().Process(gomock.Any(), records[1]).Return(nil).Times(1),
					proc.EXPECT().Process(gomock.Any(), records[2]).Return(nil).Times(1),
				)
			})

			It("should process all records in order", func(ctx SpecContext) {
				summary, err := runner.Run(ctx, records)
				Expect(err).NotTo(HaveOccurred())
				Expect(summary).To(Equal(pipeline.Summary{Total: 3, Processed: 3}))
			})
		})

		When("the second record fails", func() {
			var captured pipeline.ErrProcessingError

			BeforeEach(func() {
				proc.EXPECT().Process(gomock.Any(), records[0]).Return(nil).Times(1)
				proc.EXPECT().Process(gomock.Any(), records[1]).Return(pipeline.NewErrProcessingError(errOneError, oneCategory, nil)).Times(1)
				proc.EXPECT().Process(gomock.Any(), records[2]).Return(nil).Times(1)

				errProc.EXPECT().Process(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pErr pipeline.ErrProcessingError) error {
					captured = pErr

					return nil
				}).Times(1)
			})

			It("should report the failure and continue", func(ctx SpecContext) {
				summary, err := runner.Run(ctx, records)
				Expect(err).NotTo(HaveOccurred())
				Expect(summary).To(Equal(pipeline.Summary{Total: 3, Processed: 2, Failed: 1}))

				By("keeping the category and attaching the record")
				Expect(captured.Category).To(Equal(oneCategory))
				Expect(captured).To(MatchError(errOneError))
				Expect(captured.Record).NotTo(BeNil())
				Expect(captured.Record.Key).To(Equal("1"))
				Expect(captured.Record.Value).To(MatchJSON(`{"id":"b"}`))
			})
		})

		When("a generic error is returned and the error pipeline fails", func() {
			BeforeEach(func() {
				proc.EXPECT().Process(gomock.Any(), gomock.Any()).Return(errOneError).Times(3)
				errProc.EXPECT().Process(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, pErr pipeline.ErrProcessingError) error {
					Expect(pErr.Category).To(Equal(pipeline.UnknownCategory))

					return errors.New("dlq unavailable")
				}).Times(3)
			})

			It("should still process every record", func(ctx SpecContext) {
				summary, err := runner.Run(ctx, records)
				Expect(err).NotTo(HaveOccurred())
				Expect(summary.Failed).To(Equal(3))
			})
		})
	})

	Context("in fail-fast mode", func() {
		var runner pipeline.Runner[Record]

		BeforeEach(func() {
			runner = pipeline.NewRunner[Record](proc, errProc, pipeline.ModeFailFast)
		})

		When("the second record fails", func() {
			BeforeEach(func() {
				proc.EXPECT().Process(gomock.Any(), records[0]).Return(nil).Times(1)
				proc.EXPECT().Process(gomock.Any(), records[1]).Return(errOneError).Times(1)
				errProc.EXPECT().Process(gomock.Any(), gomock.Any()).Return(nil).Times(1)
			})

			It("should stop the batch", func(ctx SpecContext) {
				summary, err := runner.Run(ctx, records)
				Expect(err).To(HaveOccurred())
				Expect(err).To(MatchError(pipeline.ErrBatchAborted))
				Expect(err).To(MatchError(errOneError))
				Expect(summary).To(Equal(pipeline.Summary{Total: 3, Processed: 1, Failed: 1}))
			})
		})
	})

	When("the context is already cancelled", func() {
		It("should not process anything", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			runner := pipeline.NewRunner[Record](proc, errProc, pipeline.ModeBestEffort)

			summary, err := runner.Run(ctx, records)
			Expect(err).To(MatchError(context.Canceled))
			Expect(summary.Processed).To(BeZero())
		})
	})

	When("no error processing is configured", func() {
		BeforeEach(func() {
			proc.EXPECT().Process(gomock.Any(), gomock.Any()).Return(errOneError).Times(3)
		})

		It("should only count failures", func(ctx SpecContext) {
			runner := pipeline.NewRunner[Record](proc, nil, pipeline.ModeBestEffort)

			summary, err := runner.Run(ctx, records)
			Expect(err).NotTo(HaveOccurred())
			Expect(summary.Failed).To(Equal(3))
		})
	})
})
