package repo

import (
	"errors"
	"fmt"

	"github.com/openshift-assisted/eventlog-analyzer/internal/common"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

const (
	CategoryStoreConnection = "store_connection"
	CategoryStoreOperation  = "store_operation"
	CategoryIngestion       = "ingestion"
)

var (
	ErrStoreConnection = errors.New("store connection error")
	ErrStoreOperation  = errors.New("store operation error")
	ErrIngestion       = errors.New("ingestion error")
)

// NewConnectionError flags a failure to reach the store. It is retryable.
func NewConnectionError(err error, reason string, args ...interface{}) pipeline.ErrProcessingError {
	return common.NewRetryableErrProcessingError(fmt.Errorf("%w: %w", ErrStoreConnection, err), CategoryStoreConnection, nil, reason, args...)
}

// NewOperationError flags a failure reported by the store itself (constraint, syntax, bad data).
func NewOperationError(err error, reason string, args ...interface{}) pipeline.ErrProcessingError {
	return common.NewErrProcessingError(fmt.Errorf("%w: %w", ErrStoreOperation, err), CategoryStoreOperation, nil, reason, args...)
}

// NewIngestionError flags unreadable or malformed input. It aborts the batch.
func NewIngestionError(err error, reason string, args ...interface{}) pipeline.ErrProcessingError {
	return common.NewErrProcessingError(fmt.Errorf("%w: %w", ErrIngestion, err), CategoryIngestion, nil, reason, args...)
}
