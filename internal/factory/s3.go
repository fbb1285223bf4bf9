package factory

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/logging"
	"github.com/go-logr/logr"

	"github.com/openshift-assisted/eventlog-analyzer/internal/config"
	"github.com/openshift-assisted/eventlog-analyzer/internal/log"
)

// CreateS3Client uses the static credentials of conf if set, the default AWS chain otherwise.
func CreateS3Client(ctx context.Context, conf config.S3) (*s3.Client, error) {
	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(conf.Region),
		awsconfig.WithLogger(AWSLogger{log.Logger()}),
		awsconfig.WithClientLogMode(aws.LogRetries),
	}

	if conf.Creds.AccessKeyID != "" && conf.Creds.SecretAccessKey != "" {
		options = append(options, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(conf.Creds.AccessKeyID, conf.Creds.SecretAccessKey, ""),
		))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return nil, fmt.Errorf("failed to create aws config: %w", err)
	}

	if conf.BaseEndpoint != "" {
		awsConfig.BaseEndpoint = aws.String(normalizeEndpoint(conf.BaseEndpoint))
	}

	ret := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		o.UsePathStyle = conf.UsePathStyle
	})

	return ret, nil
}

func normalizeEndpoint(endpoint string) string {
	if strings.HasPrefix(endpoint, "http://") || strings.HasPrefix(endpoint, "https://") {
		return endpoint
	}

	return fmt.Sprintf("https://%s", endpoint)
}

// AWSLogger routes the SDK logs to logr: warnings at level 0, debug at level 3.
type AWSLogger struct {
	logger logr.Logger
}

func (a AWSLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	level := 0

	switch classification {
	case logging.Debug:
		level = 3
	case logging.Warn:
		level = 0
	default:
		return
	}

	a.logger.V(level).Info(fmt.Sprintf(format, v...), "component", "aws")
}
