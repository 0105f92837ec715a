package transcribe

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	ttypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/sirupsen/logrus"

	"medialabs/transcribe-gateway/internal/apperrors"
	"medialabs/transcribe-gateway/models"
)

// Poller answers status queries with a single round trip to the external job
// registry. It keeps no local state: the registry is the source of truth and
// its job statuses only move forward, so a terminal status observed once is
// what every later poll observes too. Cadence is entirely the caller's
// concern; this is a pure request/response check.
type Poller struct {
	client transcribeAPI
	logger *logrus.Logger
}

// NewPoller creates a status poller backed by the given registry client.
func NewPoller(client transcribeAPI, logger *logrus.Logger) *Poller {
	return &Poller{client: client, logger: logger}
}

// Poll fetches the job's current state from the registry. When the job has
// completed, the returned job carries the locator of the result payload.
func (p *Poller) Poll(ctx context.Context, jobName string) (*models.TranscriptionJob, error) {
	out, err := p.client.GetTranscriptionJob(ctx, &transcribe.GetTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
	})
	if err != nil {
		// The registry reports an unknown, expired, or mistyped job name as a
		// bad request rather than a dedicated not-found error.
		var badReq *ttypes.BadRequestException
		var notFound *ttypes.NotFoundException
		if errors.As(err, &badReq) || errors.As(err, &notFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("No transcription job found with name %s", jobName)).WithCause(err)
		}
		return nil, apperrors.Internal("Could not check transcription job status").WithCause(err)
	}

	external := out.TranscriptionJob
	if external == nil {
		return nil, apperrors.Internal("Job registry returned an empty job record")
	}

	job := &models.TranscriptionJob{
		JobName: jobName,
		Status:  mapStatus(external.TranscriptionJobStatus),
	}
	if external.TranscriptionJobName != nil {
		job.ExternalID = *external.TranscriptionJobName
	}
	if external.Media != nil && external.Media.MediaFileUri != nil {
		job.SourceURI = *external.Media.MediaFileUri
	}
	if external.CreationTime != nil {
		job.CreatedAt = *external.CreationTime
	}

	switch job.Status {
	case models.JobStatusCompleted:
		if external.Transcript == nil || external.Transcript.TranscriptFileUri == nil {
			return nil, apperrors.ResultParse("Completed job has no transcript location")
		}
		job.ResultLocator = external.Transcript.TranscriptFileUri
	case models.JobStatusFailed:
		reason := "Unknown failure"
		if external.FailureReason != nil {
			reason = *external.FailureReason
		}
		job.FailureReason = &reason
	}

	p.logger.Debugf("Polled job %s: %s", jobName, job.Status)
	return job, nil
}

func mapStatus(status ttypes.TranscriptionJobStatus) models.JobStatus {
	switch status {
	case ttypes.TranscriptionJobStatusCompleted:
		return models.JobStatusCompleted
	case ttypes.TranscriptionJobStatusFailed:
		return models.JobStatusFailed
	default:
		// QUEUED and IN_PROGRESS both read as processing to clients.
		return models.JobStatusProcessing
	}
}
