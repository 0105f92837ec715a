package config

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
)

// NewAWSConfig builds the shared AWS client configuration for the configured
// region. Static credentials from the environment take precedence; otherwise
// the SDK default chain (instance profile, shared config) applies.
func NewAWSConfig(ctx context.Context, cfg *AppConfig) (aws.Config, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.AWSRegion),
	}

	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("config: load aws config: %w", err)
	}
	return awsCfg, nil
}

// NewS3Client returns an S3 client bound to the shared AWS configuration.
func NewS3Client(awsCfg aws.Config) *s3.Client {
	return s3.NewFromConfig(awsCfg)
}

// NewTranscribeClient returns a Transcribe client bound to the shared AWS
// configuration.
func NewTranscribeClient(awsCfg aws.Config) *transcribe.Client {
	return transcribe.NewFromConfig(awsCfg)
}
