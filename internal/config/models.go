package config

import "time"

type Config struct {
	DefaultTimeout  time.Duration
	Metrics         Metrics
	Logs            Logs
	Correlation     Correlation
	Processing      Processing
	Input           Input
	Store           Store
	DeadLetterQueue S3
}

type Metrics struct {
	PushGateway PushGateway
}

type PushGateway struct {
	URL string
	Job string
}

type Logs struct {
	Level   int
	Encoder EncoderType
}

type EncoderType string

const (
	EncoderTypeJson    EncoderType = "json"
	EncoderTypeConsole EncoderType = "console"
)

type Correlation struct {
	// Threshold above which a duration raises an alert
	Threshold time.Duration
}

type Processing struct {
	Mode  string
	Retry Retry
}

type Retry struct {
	MaxAttempt uint
	Delay      time.Duration
}

type InputKind string

const (
	InputKindFile  InputKind = "file"
	InputKindS3    InputKind = "s3"
	InputKindKafka InputKind = "kafka"
)

type Input struct {
	Kind  InputKind
	File  File
	S3    S3Object
	Kafka Kafka
}

type File struct {
	Path string
}

type S3Object struct {
	S3  `mapstructure:",squash"`
	Key string
}

type S3 struct {
	Bucket       string
	KeyPrefix    string
	BaseEndpoint string
	Region       string
	UsePathStyle bool
	Creds        AWSCreds
}

type AWSCreds struct {
	AccessKeyID     string
	SecretAccessKey string
}

func (c AWSCreds) String() string {
	if c.AccessKeyID != "" && c.SecretAccessKey != "" {
		return "creds set"
	}

	return "no creds"
}

type Kafka struct {
	Broker KafkaBroker
	Topic  string
	// IdleTimeout ends the read of a partition when no message arrives before its snapshot bound.
	IdleTimeout time.Duration
}

type KafkaBroker struct {
	URLs    string
	Version string
	TLS     bool
	Creds   KafkaCreds
}

type KafkaCreds struct {
	User     string
	Password string
}

func (c KafkaCreds) String() string {
	if c.User != "" && c.Password != "" {
		return "scram creds set"
	}

	return "no creds"
}

type StoreKind string

const (
	StoreKindPostgres StoreKind = "postgres"
	StoreKindValkey   StoreKind = "valkey"
	StoreKindMemory   StoreKind = "memory"
)

type Store struct {
	Kind     StoreKind
	Postgres Postgres
	Valkey   Valkey
}

type Postgres struct {
	DSN   PostgresDSN
	Table string
}

type PostgresDSN string

func (d PostgresDSN) String() string {
	if d != "" {
		return "dsn set"
	}

	return "no dsn"
}

type Valkey struct {
	URL       string
	KeyPrefix string
	Creds     ValkeyCreds
}

type ValkeyCreds struct {
	Password string
}

func (c ValkeyCreds) String() string {
	if c.Password != "" {
		return "password set"
	}

	return "no password"
}
