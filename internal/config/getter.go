package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/openshift-assisted/eventlog-analyzer/pkg/pipeline"
)

const prefix = "EVENTLOG"

var (
	ErrInvalidConfig = errors.New("invalid config")

	conf Config
)

// Parse reads the configuration file given as parameter.
func Parse(confFile string) (*Config, error) {
	setDefault()

	viper.SetEnvPrefix(prefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	if len(confFile) > 0 {
		viper.SetConfigFile(confFile)

		err := viper.ReadInConfig()
		if err != nil {
			return &conf, fmt.Errorf("failed to read config file %v: %w", confFile, err)
		}
	}

	err := viper.Unmarshal(&conf)
	if err != nil {
		return &conf, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	err = conf.Validate()
	if err != nil {
		return &conf, err
	}

	return &conf, nil
}

func (c Config) Validate() error {
	switch pipeline.Mode(c.Processing.Mode) {
	case pipeline.ModeBestEffort, pipeline.ModeFailFast:
	default:
		return fmt.Errorf("%w: unexpected processing mode %q", ErrInvalidConfig, c.Processing.Mode)
	}

	if c.Correlation.Threshold < 0 {
		return fmt.Errorf("%w: negative correlation threshold %v", ErrInvalidConfig, c.Correlation.Threshold)
	}

	switch c.Input.Kind {
	case InputKindFile, InputKindS3, InputKindKafka:
	default:
		return fmt.Errorf("%w: unexpected input kind %q", ErrInvalidConfig, c.Input.Kind)
	}

	switch c.Store.Kind {
	case StoreKindPostgres, StoreKindValkey, StoreKindMemory:
	default:
		return fmt.Errorf("%w: unexpected store kind %q", ErrInvalidConfig, c.Store.Kind)
	}

	return nil
}

func setDefault() {
	viper.SetDefault("logs.level", 4)
	viper.SetDefault("logs.encoder", EncoderTypeConsole)
	viper.SetDefault("defaultTimeout", "8s")
	viper.SetDefault("correlation.threshold", "4ms")
	viper.SetDefault("processing.mode", string(pipeline.ModeBestEffort))
	viper.SetDefault("processing.retry.maxAttempt", 1)
	viper.SetDefault("processing.retry.delay", "100ms")
	viper.SetDefault("input.kind", InputKindFile)
	viper.SetDefault("input.file.path", "logfile.txt")
	viper.SetDefault("input.kafka.broker.version", "3.6.0")
	viper.SetDefault("input.kafka.idleTimeout", "5s")
	viper.SetDefault("store.kind", StoreKindPostgres)
	viper.SetDefault("store.postgres.table", "event")
	viper.SetDefault("store.valkey.keyPrefix", "eventlog")
	viper.SetDefault("metrics.pushGateway.job", "eventlog_analyzer")

	// No default value, registered so that EVENTLOG_* env variables are unmarshalled
	for _, key := range []string{
		"metrics.pushGateway.url",
		"input.s3.bucket",
		"input.s3.key",
		"input.s3.region",
		"input.s3.baseEndpoint",
		"input.s3.creds.accessKeyID",
		"input.s3.creds.secretAccessKey",
		"input.kafka.broker.urls",
		"input.kafka.broker.creds.user",
		"input.kafka.broker.creds.password",
		"input.kafka.topic",
		"store.postgres.dsn",
		"store.valkey.url",
		"store.valkey.creds.password",
		"deadLetterQueue.bucket",
		"deadLetterQueue.keyPrefix",
		"deadLetterQueue.region",
		"deadLetterQueue.baseEndpoint",
		"deadLetterQueue.creds.accessKeyID",
		"deadLetterQueue.creds.secretAccessKey",
	} {
		viper.SetDefault(key, "")
	}
}
