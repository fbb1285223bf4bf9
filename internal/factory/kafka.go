package factory

import (
	"context"
	"crypto/tls"
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/IBM/sarama"

	"github.com/openshift-assisted/eventlog-analyzer/internal/common"
	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
)

const clientIDPrefix = "eventlog-analyzer"

// CreateKafkaClient creates a client able to read a topic from the oldest offset.
// SASL/SCRAM-SHA-512 is enabled when credentials are set.
func CreateKafkaClient(kafkaConfig config.Kafka) (sarama.Client, common.CloseFunc, error) {
	conf, err := createKafkaConfig(kafkaConfig)
	if err != nil {
		return nil, nil, err
	}

	urls := strings.Split(kafkaConfig.Broker.URLs, ",")

	ret, err := sarama.NewClient(urls, conf)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	shutdown := func(context.Context) error {
		return ret.Close()
	}

	return ret, shutdown, nil
}

func createKafkaConfig(kafkaConfig config.Kafka) (*sarama.Config, error) {
	conf := sarama.NewConfig()

	conf.Consumer.Return.Errors = true
	conf.Consumer.Offsets.Initial = sarama.OffsetOldest

	conf.ClientID = computeClientID()

	version, err := sarama.ParseKafkaVersion(kafkaConfig.Broker.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to parse kafka version: %w", err)
	}

	conf.Version = version

	if kafkaConfig.Broker.TLS {
		conf.Net.TLS.Enable = true
		conf.Net.TLS.Config = &tls.Config{MinVersion: tls.VersionTLS12}
	}

	creds := kafkaConfig.Broker.Creds
	if creds.User != "" && creds.Password != "" {
		conf.Net.SASL.Enable = true
		conf.Net.SASL.Handshake = true
		conf.Net.SASL.User = creds.User
		conf.Net.SASL.Password = creds.Password
		conf.Net.SASL.Mechanism = sarama.SASLTypeSCRAMSHA512
		conf.Net.SASL.SCRAMClientGeneratorFunc = func() sarama.SCRAMClient {
			return &scramClient{HashGeneratorFcn: sha512Generator}
		}
	}

	err = conf.Validate()
	if err != nil {
		return nil, fmt.Errorf("invalid kafka config: %w", err)
	}

	return conf, nil
}

func computeClientID() string {
	prefix, err := os.Hostname()
	if err != nil {
		prefix = clientIDPrefix
	}

	return fmt.Sprintf("%s-%x", prefix, rand.Int31())
}
