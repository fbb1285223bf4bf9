package repo

import (
	"context"
	"time"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

//go:generate mockgen -source=interfaces.go -package=mock -destination=./mock/mock_repo.go

type ProcessingErrorWriter interface {
	WriteProcessingError(ctx context.Context, pErr pipeline.ErrProcessingError) error
}

// EventSource loads a complete, finite batch of events.
type EventSource interface {
	LoadEvents(ctx context.Context) ([]entity.Event, error)
}

type ResultWriter interface {
	// Insert creates the row if no row exists for the id. It reports whether a row was created.
	Insert(ctx context.Context, result entity.Result) (bool, error)
	// UpdateDurationAndAlert sets duration and alert only if the row exists and its duration is unset.
	// It reports whether the row changed.
	UpdateDurationAndAlert(ctx context.Context, id string, duration time.Duration, alert bool) (bool, error)
}

type ResultReader interface {
	Exists(ctx context.Context, id string) (bool, error)
	// DurationUnset is true iff the row exists and has no duration.
	DurationUnset(ctx context.Context, id string) (bool, error)
	QueryAlerts(ctx context.Context) ([]entity.Result, error)
	QueryAll(ctx context.Context) ([]entity.Result, error)
}

type ResultAdmin interface {
	EnsureSchema(ctx context.Context) error
	Reset(ctx context.Context) error
}

type ResultStore interface {
	ResultWriter
	ResultReader
	ResultAdmin
}
