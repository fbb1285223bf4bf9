package processing

import (
	"context"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

const categoryDeadLetter = "dead_letter"

// MainError writes a failed record to the dead letter queue.
type MainError struct {
	writer repo.ProcessingErrorWriter
}

func NewMainError(writer repo.ProcessingErrorWriter) MainError {
	return MainError{
		writer: writer,
	}
}

func (m MainError) Process(ctx context.Context, pErr pipeline.ErrProcessingError) error {
	err := m.writer.WriteProcessingError(ctx, pErr)
	if err != nil {
		return pipeline.NewRetryableErrProcessingError(err, categoryDeadLetter, nil)
	}

	return nil
}
