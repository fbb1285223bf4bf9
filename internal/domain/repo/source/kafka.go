package source

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/jonboulle/clockwork"

	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/entity"
	"github.com/openshift-assisted/eventlog-analyzer/internal/domain/repo"
	"github.com/openshift-assisted/eventlog-analyzer/internal/log"
)

// OffsetReader is the part of sarama.Client used to bound the snapshot.
type OffsetReader interface {
	GetOffset(topic string, partitionID int32, time int64) (int64, error)
}

const defaultIdleTimeout = 5 * time.Second

// KafkaSource reads a bounded snapshot of a topic: every partition from its oldest offset
// up to the high water mark seen when LoadEvents starts. Messages produced afterwards are ignored.
//
// Offsets below the high water mark are not always delivered (transaction markers, compacted
// or expired tail), so a partition is also considered drained once no message arrived for idleTimeout.
type KafkaSource struct {
	offsets  OffsetReader
	consumer sarama.Consumer
	clock    clockwork.Clock

	topic       string
	idleTimeout time.Duration
}

func NewKafkaSource(offsets OffsetReader, consumer sarama.Consumer, clock clockwork.Clock, topic string, idleTimeout time.Duration) KafkaSource {
	if idleTimeout <= 0 {
		idleTimeout = defaultIdleTimeout
	}

	return KafkaSource{
		offsets:     offsets,
		consumer:    consumer,
		clock:       clock,
		topic:       topic,
		idleTimeout: idleTimeout,
	}
}

func (s KafkaSource) LoadEvents(ctx context.Context) ([]entity.Event, error) {
	partitions, err := s.consumer.Partitions(s.topic)
	if err != nil {
		return nil, repo.NewIngestionError(err, "failed to list partitions of %s", s.topic)
	}

	var ret []entity.Event

	for _, partition := range partitions {
		events, err := s.loadPartition(ctx, partition)
		if err != nil {
			return nil, repo.NewIngestionError(err, "failed to read %s/%d", s.topic, partition)
		}

		ret = append(ret, events...)
	}

	return ret, nil
}

func (s KafkaSource) loadPartition(ctx context.Context, partition int32) ([]entity.Event, error) {
	logger := log.Logger().WithValues("topic", s.topic, "partition", partition)

	oldest, err := s.offsets.GetOffset(s.topic, partition, sarama.OffsetOldest)
	if err != nil {
		return nil, fmt.Errorf("failed to get oldest offset: %w", err)
	}

	// next offset to be written, the snapshot stops right before it
	highWaterMark, err := s.offsets.GetOffset(s.topic, partition, sarama.OffsetNewest)
	if err != nil {
		return nil, fmt.Errorf("failed to get newest offset: %w", err)
	}

	if highWaterMark <= oldest {
		logger.V(2).Info("Empty partition")

		return nil, nil
	}

	logger.V(2).Info("Reading partition", "from", oldest, "to", highWaterMark)

	pc, err := s.consumer.ConsumePartition(s.topic, partition, oldest)
	if err != nil {
		return nil, fmt.Errorf("failed to consume partition: %w", err)
	}
	defer pc.Close()

	var ret []entity.Event

	idle := s.clock.NewTimer(s.idleTimeout)
	defer idle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-idle.Chan():
			logger.V(1).Info("No message before the high water mark, partition drained", "idleTimeout", s.idleTimeout, "count", len(ret))

			return ret, nil
		case cErr, ok := <-pc.Errors():
			if !ok {
				return nil, fmt.Errorf("partition consumer closed before offset %d", highWaterMark)
			}

			return nil, cErr
		case msg, ok := <-pc.Messages():
			if !ok {
				return nil, fmt.Errorf("partition consumer closed before offset %d", highWaterMark)
			}

			// the offset right before the bound was skipped, this one is newer than the snapshot
			if msg.Offset >= highWaterMark {
				return ret, nil
			}

			events, err := Decode(bytes.NewReader(msg.Value))
			if err != nil {
				return nil, fmt.Errorf("invalid message at offset %d: %w", msg.Offset, err)
			}

			ret = append(ret, events...)

			if msg.Offset >= highWaterMark-1 {
				return ret, nil
			}

			if !idle.Stop() {
				<-idle.Chan()
			}

			idle.Reset(s.idleTimeout)
		}
	}
}
