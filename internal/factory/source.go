package factory

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/eventlog-analyzer/internal/common"
	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo/source"
)

func CreateEventSource(ctx context.Context, conf config.Input) (repo.EventSource, common.CloseFunc, error) {
	switch conf.Kind {
	case config.InputKindFile:
		return source.NewFileSource(conf.File.Path), nil, nil
	case config.InputKindS3:
		s3Client, err := CreateS3Client(ctx, conf.S3.S3)
		if err != nil {
			return nil, nil, err
		}

		return source.NewS3Source(s3Client, conf.S3.Bucket, conf.S3.Key), nil, nil
	case config.InputKindKafka:
		client, closeClient, err := CreateKafkaClient(conf.Kafka)
		if err != nil {
			return nil, nil, err
		}

		consumer, err := sarama.NewConsumerFromClient(client)
		if err != nil {
			_ = closeClient(ctx)

			return nil, nil, fmt.Errorf("failed to create kafka consumer: %w", err)
		}

		// consumer first, it does not own the client
		shutdown := func(ctx context.Context) error {
			err := consumer.Close()
			if err != nil {
				_ = closeClient(ctx)

				return fmt.Errorf("failed to close kafka consumer: %w", err)
			}

			return closeClient(ctx)
		}

		return source.NewKafkaSource(client, consumer, clockwork.NewRealClock(), conf.Kafka.Topic, conf.Kafka.IdleTimeout), shutdown, nil
	default:
		return nil, nil, fmt.Errorf("unexpected input kind %q", conf.Kind)
	}
}
