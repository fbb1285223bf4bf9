package source

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
)

type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Source reads the events of one object.
type S3Source struct {
	s3client GetObjectAPI

	bucket string
	key    string
}

func NewS3Source(s3client GetObjectAPI, bucket string, key string) S3Source {
	return S3Source{
		s3client: s3client,
		bucket:   bucket,
		key:      key,
	}
}

func (s S3Source) LoadEvents(ctx context.Context) ([]entity.Event, error) {
	params := &s3.GetObjectInput{
		Bucket: &s.bucket,
		Key:    &s.key,
	}

	output, err := s.s3client.GetObject(ctx, params)
	if err != nil {
		return nil, repo.NewIngestionError(err, "failed to get s3://%s/%s", s.bucket, s.key)
	}
	defer output.Body.Close()

	ret, err := Decode(output.Body)
	if err != nil {
		return nil, repo.NewIngestionError(err, "failed to read s3://%s/%s", s.bucket, s.key)
	}

	return ret, nil
}
