package processingerror

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/common/version"

	"github.com/openshift-assisted/eventlog-analyzer/internal/log"
	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

const (
	unknownHostname = "<unknown>"

	keyTemplate = "<prefix>/<year>/<month>/<day>/<run>/<position>.json"
)

var ErrNilRecord = errors.New("nil record")

type PutObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Writer struct {
	s3client PutObjectAPI
	clock    clockwork.Clock

	bucket string
	prefix string
	runID  string

	hostname string
}

// NewS3Writer creates a writer storing one object per failed record. runID groups the objects of one batch run.
func NewS3Writer(s3client PutObjectAPI, clock clockwork.Clock, bucket string, prefix string, runID string) S3Writer {
	hostname, err := os.Hostname()
	if err != nil {
		log.Logger().Error(err, "failed to get hostname, falling backing to "+unknownHostname)

		hostname = unknownHostname
	}

	return S3Writer{
		s3client: s3client,
		clock:    clock,
		bucket:   bucket,
		prefix:   strings.TrimSuffix(prefix, "/"),
		runID:    runID,
		hostname: hostname,
	}
}

func (r S3Writer) WriteProcessingError(ctx context.Context, pErr pipeline.ErrProcessingError) error {
	// Create ProcessingError
	obj, err := r.createProcessingError(pErr)
	if err != nil {
		return fmt.Errorf("failed to create local model: %w", err)
	}

	// Marshal ProcessingError
	b, err := json.Marshal(obj)
	if err != nil {
		return fmt.Errorf("failed to marshal local model: %w", err)
	}

	// Compute object key
	key, err := r.computeObjectKey(obj)
	if err != nil {
		return fmt.Errorf("failed to compute object key: %w", err)
	}

	// Write file
	params := &s3.PutObjectInput{
		Bucket: &r.bucket,
		Key:    &key,
		Body:   bytes.NewReader(b),
	}

	_, err = r.s3client.PutObject(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to write in s3: %w", err)
	}

	return nil
}

func (r S3Writer) createProcessingError(pErr pipeline.ErrProcessingError) (ProcessingError, error) {
	if pErr.Record == nil {
		return ProcessingError{}, ErrNilRecord
	}

	ret := ProcessingError{
		ProcessingContext: ProcessingContext{
			Component: Component{
				Version:  version.Version,
				Branch:   version.Branch,
				Revision: version.Revision,
			},
			RunID: r.runID,
			Time:  r.clock.Now().UTC(),
			Host:  r.hostname,
		},
		Sources: Sources{
			Main: Source{
				Origin:   pErr.Record.Source,
				Position: pErr.Record.Key,
				Payload:  pErr.Record.Value,
			},
			Additional: make([]KeyValue, 0, len(pErr.AdditionalInputs)),
		},
		Reason: Reason{
			Category: pErr.Category,
			Error:    pErr.Error(),
		},
	}

	for _, kv := range pErr.AdditionalInputs {
		ret.Sources.Additional = append(ret.Sources.Additional, KeyValue{
			Key:   kv.Key,
			Value: kv.Value,
		})
	}

	return ret, nil
}

func (r S3Writer) computeObjectKey(obj ProcessingError) (string, error) {
	if obj.Sources.Main.Position == "" {
		return "", ErrNilRecord
	}

	processedAt := obj.ProcessingContext.Time

	template := strings.NewReplacer(
		"<prefix>", r.prefix,
		"<year>", fmt.Sprintf("%04d", processedAt.Year()),
		"<month>", fmt.Sprintf("%02d", processedAt.Month()),
		"<day>", fmt.Sprintf("%02d", processedAt.Day()),
		"<run>", r.runID,
		"<position>", obj.Sources.Main.Position,
	)

	return template.Replace(keyTemplate), nil
}
