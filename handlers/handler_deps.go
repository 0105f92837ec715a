package handlers

import (
	"context"

	"github.com/sirupsen/logrus"

	"medialabs/transcribe-gateway/config"
	"medialabs/transcribe-gateway/models"
)

// Stager defines the staging operations handlers expect from object storage.
type Stager interface {
	EnsureBucket(ctx context.Context) error
	Stage(ctx context.Context, content []byte, key, contentType string) (models.StagedObject, error)
	ResolveExisting(ctx context.Context, uri string) (models.StagedObject, error)
}

// JobSubmitter starts a transcription job against staged content.
type JobSubmitter interface {
	Submit(ctx context.Context, locator string, languageHints []string) (*models.TranscriptionJob, error)
}

// StatusPoller performs one status round trip against the external job
// registry. It is an interface so a push-based completion notifier could be
// substituted later without changing the request contract.
type StatusPoller interface {
	Poll(ctx context.Context, jobName string) (*models.TranscriptionJob, error)
}

// ResultFetcher fetches and parses the result payload of a completed job.
type ResultFetcher interface {
	WhenComplete(ctx context.Context, job *models.TranscriptionJob) (*models.TranscriptionResult, error)
}

// ApplicationHandler holds shared dependencies for handlers.
type ApplicationHandler struct {
	Stager    Stager
	Submitter JobSubmitter
	Poller    StatusPoller
	Results   ResultFetcher
	Logger    *logrus.Logger
	Config    *config.AppConfig
}

// NewApplicationHandler creates a new ApplicationHandler with the given dependencies.
func NewApplicationHandler(stager Stager, submitter JobSubmitter, poller StatusPoller, results ResultFetcher, logger *logrus.Logger, cfg *config.AppConfig) *ApplicationHandler {
	return &ApplicationHandler{
		Stager:    stager,
		Submitter: submitter,
		Poller:    poller,
		Results:   results,
		Logger:    logger,
		Config:    cfg,
	}
}
