// Package transcribe submits transcription jobs to the external speech
// recognition service, polls their status, and parses completed results.
package transcribe

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/transcribe"
	ttypes "github.com/aws/aws-sdk-go-v2/service/transcribe/types"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"medialabs/transcribe-gateway/internal/apperrors"
	"medialabs/transcribe-gateway/models"
)

// JobNamePrefix is the human-readable prefix of every client-facing job name.
const JobNamePrefix = "transcribe-"

// transcribeAPI is the slice of the Transcribe client this package uses. The
// concrete *transcribe.Client satisfies it; tests substitute a fake.
type transcribeAPI interface {
	StartTranscriptionJob(ctx context.Context, in *transcribe.StartTranscriptionJobInput, opts ...func(*transcribe.Options)) (*transcribe.StartTranscriptionJobOutput, error)
	GetTranscriptionJob(ctx context.Context, in *transcribe.GetTranscriptionJobInput, opts ...func(*transcribe.Options)) (*transcribe.GetTranscriptionJobOutput, error)
}

// Orchestrator submits transcription jobs with automatic language
// identification across a fixed candidate set.
type Orchestrator struct {
	client           transcribeAPI
	defaultLanguages []string
	logger           *logrus.Logger
}

// NewOrchestrator creates an orchestrator. defaultLanguages is the candidate
// locale set used when the caller supplies no hints.
func NewOrchestrator(client transcribeAPI, defaultLanguages []string, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		client:           client,
		defaultLanguages: defaultLanguages,
		logger:           logger,
	}
}

// Submit starts a transcription job against the staged object at locator.
// Every call creates a new, distinct external job; the generated name's
// random suffix makes collisions practically negligible, not impossible.
// On failure no job record exists anywhere.
func (o *Orchestrator) Submit(ctx context.Context, locator string, languageHints []string) (*models.TranscriptionJob, error) {
	jobName := JobNamePrefix + uuid.NewString()

	hints := languageHints
	if len(hints) == 0 {
		hints = o.defaultLanguages
	}
	languageOptions := make([]ttypes.LanguageCode, 0, len(hints))
	for _, lang := range hints {
		languageOptions = append(languageOptions, ttypes.LanguageCode(lang))
	}

	input := &transcribe.StartTranscriptionJobInput{
		TranscriptionJobName: aws.String(jobName),
		Media:                &ttypes.Media{MediaFileUri: aws.String(locator)},
		MediaFormat:          MediaFormatForURI(locator),
		IdentifyLanguage:     aws.Bool(true),
		LanguageOptions:      languageOptions,
	}

	out, err := o.client.StartTranscriptionJob(ctx, input)
	if err != nil {
		var limitErr *ttypes.LimitExceededException
		if errors.As(err, &limitErr) {
			return nil, apperrors.Submission("Transcription quota exceeded, try again later").WithCause(err)
		}
		var badReq *ttypes.BadRequestException
		if errors.As(err, &badReq) {
			return nil, apperrors.Submission("Transcription service rejected the media").WithCause(err)
		}
		return nil, apperrors.Submission("Could not start transcription job").WithCause(err)
	}

	job := &models.TranscriptionJob{
		JobName:       jobName,
		SourceURI:     locator,
		Status:        models.JobStatusSubmitted,
		CreatedAt:     time.Now().UTC(),
		LanguageHints: hints,
	}
	if out.TranscriptionJob != nil && out.TranscriptionJob.TranscriptionJobName != nil {
		job.ExternalID = *out.TranscriptionJob.TranscriptionJobName
	}

	o.logger.Infof("Started transcription job %s for %s", jobName, locator)
	return job, nil
}

// MediaFormatForURI infers the media format from the locator's file
// extension, defaulting to wav for anything unrecognized.
func MediaFormatForURI(uri string) ttypes.MediaFormat {
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(uri), "."))
	switch ext {
	case "mp3", "mp4", "wav", "flac", "ogg", "webm", "amr":
		return ttypes.MediaFormat(ext)
	default:
		return ttypes.MediaFormatWav
	}
}

// ValidJobName reports whether name has the shape this service generates.
func ValidJobName(name string) bool {
	suffix, ok := strings.CutPrefix(name, JobNamePrefix)
	if !ok || suffix == "" {
		return false
	}
	for _, r := range suffix {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-' || r == '_' || r == '.':
		default:
			return false
		}
	}
	return true
}
