// Package staging durably places audio content into object storage before a
// transcription job is submitted against it, and validates caller-supplied
// object references.
package staging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/sirupsen/logrus"

	"medialabs/transcribe-gateway/internal/apperrors"
	"medialabs/transcribe-gateway/models"
	"medialabs/transcribe-gateway/utils"
)

// s3API is the slice of the S3 client the service uses. The concrete
// *s3.Client satisfies it; tests substitute a fake.
type s3API interface {
	HeadBucket(ctx context.Context, in *s3.HeadBucketInput, opts ...func(*s3.Options)) (*s3.HeadBucketOutput, error)
	CreateBucket(ctx context.Context, in *s3.CreateBucketInput, opts ...func(*s3.Options)) (*s3.CreateBucketOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, opts ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, in *s3.HeadObjectInput, opts ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
}

// Service stages audio content in S3.
type Service struct {
	client s3API
	bucket string
	region string
	retry  utils.RetryConfig
	logger *logrus.Logger
}

// NewService creates a staging service bound to a single bucket and region.
func NewService(client s3API, bucket, region string, logger *logrus.Logger) *Service {
	return &Service{
		client: client,
		bucket: bucket,
		region: region,
		retry:  utils.DefaultRetryConfig(),
		logger: logger,
	}
}

// EnsureBucket creates the staging bucket if it does not exist yet. Safe to
// call on every submission: an existing bucket is success.
func (s *Service) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return apperrors.Storage(fmt.Sprintf("Could not check staging bucket %s", s.bucket)).WithCause(err)
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint.
	if s.region != "us-east-1" {
		input.CreateBucketConfiguration = &s3types.CreateBucketConfiguration{
			LocationConstraint: s3types.BucketLocationConstraint(s.region),
		}
	}

	_, err = s.client.CreateBucket(ctx, input)
	if err != nil {
		var owned *s3types.BucketAlreadyOwnedByYou
		if errors.As(err, &owned) {
			return nil
		}
		return apperrors.Storage(fmt.Sprintf("Could not create staging bucket %s", s.bucket)).WithCause(err)
	}

	s.logger.Infof("Created staging bucket %s in %s", s.bucket, s.region)
	return nil
}

// Stage uploads content under the given key and returns its locator. The
// object is durably readable once this returns: S3 PutObject is atomic, so a
// failed attempt never leaves a partial object behind. Transient failures are
// retried with backoff up to the configured budget.
func (s *Service) Stage(ctx context.Context, content []byte, key, contentType string) (models.StagedObject, error) {
	size := int64(len(content))

	err := utils.RetryFunc(ctx, s.retry, func() error {
		_, putErr := s.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:        aws.String(s.bucket),
			Key:           aws.String(key),
			Body:          bytes.NewReader(content),
			ContentType:   aws.String(contentType),
			ContentLength: aws.Int64(size),
		})
		if putErr != nil {
			s.logger.Warnf("Upload attempt for %s failed: %v", key, putErr)
		}
		return putErr
	})
	if err != nil {
		return models.StagedObject{}, apperrors.Storage(fmt.Sprintf("Could not stage audio content under %s", key)).WithCause(err)
	}

	staged := models.StagedObject{
		Bucket:      s.bucket,
		Key:         key,
		Size:        size,
		ContentType: contentType,
	}
	s.logger.Infof("Staged %d bytes at %s", size, staged.URI())
	return staged, nil
}

// ResolveExisting validates that a caller-supplied s3:// reference points at
// a readable object and returns its locator.
func (s *Service) ResolveExisting(ctx context.Context, uri string) (models.StagedObject, error) {
	bucket, key, err := ParseURI(uri)
	if err != nil {
		return models.StagedObject{}, err
	}

	head, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if isNotFound(err) {
			return models.StagedObject{}, apperrors.NotFound(fmt.Sprintf("No object found at %s", uri)).WithCause(err)
		}
		return models.StagedObject{}, apperrors.Storage(fmt.Sprintf("Could not read object at %s", uri)).WithCause(err)
	}

	staged := models.StagedObject{Bucket: bucket, Key: key}
	if head.ContentLength != nil {
		staged.Size = *head.ContentLength
	}
	if head.ContentType != nil {
		staged.ContentType = *head.ContentType
	}
	return staged, nil
}

// ParseURI splits an s3://bucket/key locator into its parts.
func ParseURI(uri string) (bucket, key string, err error) {
	rest, ok := strings.CutPrefix(uri, "s3://")
	if !ok {
		return "", "", apperrors.Validation("S3 URI must start with s3://")
	}
	bucket, key, ok = strings.Cut(rest, "/")
	if !ok || bucket == "" || key == "" {
		return "", "", apperrors.Validation("S3 URI must be of the form s3://bucket/key")
	}
	return bucket, key, nil
}

// isNotFound matches the modeled S3 not-found errors plus the bare NotFound
// code that HeadBucket and HeadObject return.
func isNotFound(err error) bool {
	var notFound *s3types.NotFound
	var noSuchKey *s3types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NotFound" || code == "NoSuchKey" || code == "NoSuchBucket"
	}
	return false
}
