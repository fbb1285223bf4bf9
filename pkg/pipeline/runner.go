package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/go-logr/logr"
)

type Mode string

const (
	// ModeBestEffort reports a failed record and moves on to the next one
	ModeBestEffort Mode = "best-effort"
	// ModeFailFast stops the batch on the first failed record
	ModeFailFast Mode = "fail-fast"
)

const recordSource = "batch"

type Summary struct {
	Total     int
	Processed int
	Failed    int
}

// Runner feeds a bounded, ordered batch of payloads to a Processing, one at a time.
type Runner[Payload any] struct {
	processing      Processing[Payload]
	errorProcessing ErrorProcessing
	mode            Mode

	logger *logr.Logger
}

func NewRunner[Payload any](processing Processing[Payload], errorProcessing ErrorProcessing, mode Mode) Runner[Payload] {
	return Runner[Payload]{
		processing:      processing,
		errorProcessing: errorProcessing,
		mode:            mode,
	}
}

func (r Runner[Payload]) WithLogger(logger logr.Logger) Runner[Payload] {
	r.logger = &logger

	return r
}

func (r Runner[Payload]) Run(ctx context.Context, payloads []Payload) (Summary, error) {
	summary := Summary{Total: len(payloads)}

	r.logInfo(0, "Start processing", "records", len(payloads), "mode", r.mode)

	for i, payload := range payloads {
		// Termination signal: stop before the next record
		err := ctx.Err()
		if err != nil {
			r.logInfo(0, "Context expired", "position", i)

			return summary, err
		}

		r.logInfo(3, "Processing record", "position", i)

		err = r.processing.Process(ctx, payload)
		if err == nil {
			summary.Processed++

			continue
		}

		summary.Failed++

		r.processError(ctx, i, payload, err)

		if r.mode == ModeFailFast {
			return summary, fmt.Errorf("%w at record %d: %w", ErrBatchAborted, i, err)
		}
	}

	r.logInfo(0, "Processing done", "total", summary.Total, "processed", summary.Processed, "failed", summary.Failed)

	return summary, nil
}

func (r Runner[Payload]) processError(ctx context.Context, position int, payload Payload, pipelineError error) {
	// If context has been cancelled, the error pipeline would fail as well
	err := ctx.Err()
	if err != nil {
		r.logInfo(1, "Not processing error, context has been cancelled")

		return
	}

	r.logError(pipelineError, "Processing failed", "position", position)

	processingError := createProcessingError(pipelineError)
	processingError.Record = r.makeRecordInput(position, payload)

	if r.errorProcessing == nil {
		return
	}

	err = r.errorProcessing.Process(ctx, processingError)
	if err != nil {
		r.logError(err, "Error pipeline failed")
		r.dumpErrorContext(processingError)
	}
}

func (r Runner[Payload]) makeRecordInput(position int, payload Payload) *Input {
	value, err := json.Marshal(payload)
	if err != nil {
		r.logError(err, "failed to marshal record", "position", position)
	}

	return &Input{
		Source: recordSource,
		Key:    strconv.Itoa(position),
		Value:  value,
	}
}

func (r Runner[Payload]) dumpErrorContext(err ErrProcessingError) {
	if r.logger == nil {
		return
	}

	r.logger.Error(err,
		"Failed to process record",
		"record.position", err.Record.Key,
		"record.payload", string(err.Record.Value),
		"additionalInputs", err.AdditionalInputs,
		"category", err.Category,
	)
}

func (r Runner[Payload]) logInfo(level int, msg string, keysAndValues ...any) {
	if r.logger == nil {
		return
	}

	r.logger.V(level).Info(msg, keysAndValues...)
}

func (r Runner[Payload]) logError(err error, msg string, keysAndValues ...any) {
	if r.logger == nil {
		return
	}

	r.logger.Error(err, msg, keysAndValues...)
}

func createProcessingError(err error) ErrProcessingError {
	ret := ErrProcessingError{}
	if errors.As(err, &ret) {
		return ret
	}

	return NewErrProcessingError(err, UnknownCategory, nil)
}
