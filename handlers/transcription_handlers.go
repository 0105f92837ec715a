package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"medialabs/transcribe-gateway/internal/apperrors"
	"medialabs/transcribe-gateway/internal/transcribe"
	"medialabs/transcribe-gateway/models"
	"medialabs/transcribe-gateway/utils"
)

// SubmitByReferenceRequest defines the expected JSON structure for submitting
// an already-stored object for transcription.
type SubmitByReferenceRequest struct {
	S3URI         string   `json:"s3_uri" validate:"required,startswith=s3://"`
	LanguageHints []string `json:"language_hints,omitempty" validate:"omitempty,dive,min=2"`
}

var validate = validator.New()

// SubmitTranscription handles POST /transcribe. The body is either raw audio
// bytes (Content-Type audio/*) or JSON referencing an existing object; both
// normalize into a TranscriptionRequest before any side effect happens. The
// job is only started here; completion is observed via the status route.
func (h *ApplicationHandler) SubmitTranscription(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), h.Config.RequestTimeout)
	defer cancel()

	contentType := strings.ToLower(strings.TrimSpace(c.Get(fiber.HeaderContentType)))

	switch {
	case strings.HasPrefix(contentType, "audio/"):
		body := c.Body()
		if len(body) == 0 {
			return utils.RespondWithError(c, fiber.StatusBadRequest, "Request body is empty")
		}
		if int64(len(body)) > h.Config.MaxUploadBytes {
			return utils.RespondWithError(c, fiber.StatusBadRequest,
				fmt.Sprintf("Maximum upload size is %d bytes. Use an s3_uri reference for larger files.", h.Config.MaxUploadBytes))
		}
		return h.process(ctx, c, models.TranscriptionRequest{Content: body, ContentType: contentType})

	case strings.HasPrefix(contentType, fiber.MIMEApplicationJSON):
		payload := new(SubmitByReferenceRequest)
		if err := c.BodyParser(payload); err != nil {
			h.Logger.Warnf("Error parsing submission payload: %v", err)
			return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid request body: %v", err))
		}
		if err := validate.Struct(payload); err != nil {
			h.Logger.Warnf("Validation error for submission payload: %v", err)
			return utils.RespondWithError(c, fiber.StatusBadRequest,
				fmt.Sprintf("Validation failed: %s", strings.Join(utils.FormatValidationErrors(err), "; ")))
		}
		return h.process(ctx, c, models.TranscriptionRequest{S3URI: payload.S3URI, LanguageHints: payload.LanguageHints})

	default:
		h.Logger.Warnf("Rejected submission with content type %q", contentType)
		return utils.RespondWithError(c, fiber.StatusBadRequest,
			"Use Content-Type audio/* for file upload or application/json for an s3_uri reference")
	}
}

// process stages the request's content (or resolves its reference) and starts
// the transcription job against the resulting locator.
func (h *ApplicationHandler) process(ctx context.Context, c *fiber.Ctx, req models.TranscriptionRequest) error {
	var staged models.StagedObject
	var err error

	if req.S3URI != "" {
		staged, err = h.Stager.ResolveExisting(ctx, req.S3URI)
		if err != nil {
			h.Logger.Warnf("Could not resolve referenced object %s: %v", req.S3URI, err)
			return utils.RespondWithAppError(c, err)
		}
	} else {
		key := fmt.Sprintf("api-uploads/upload-%s.%s", uuid.NewString(), extensionForContentType(req.ContentType))

		if err := h.Stager.EnsureBucket(ctx); err != nil {
			h.Logger.Errorf("Bucket check failed: %v", err)
			return utils.RespondWithAppError(c, err)
		}
		staged, err = h.Stager.Stage(ctx, req.Content, key, req.ContentType)
		if err != nil {
			h.Logger.Errorf("Staging failed for %s: %v", key, err)
			return utils.RespondWithAppError(c, err)
		}
	}

	job, err := h.Submitter.Submit(ctx, staged.URI(), req.LanguageHints)
	if err != nil {
		h.Logger.Errorf("Job submission failed for %s: %v", staged.URI(), err)
		return utils.RespondWithAppError(c, err)
	}

	h.Logger.Infof("Accepted transcription job %s for %s", job.JobName, job.SourceURI)
	return utils.RespondWithJSON(c, fiber.StatusAccepted, fiber.Map{
		"status":   "processing",
		"job_name": job.JobName,
		"s3_uri":   job.SourceURI,
		"message":  fmt.Sprintf("Transcription started. Check status at: GET /transcribe/%s", job.JobName),
	})
}

// GetTranscriptionStatus handles GET /transcribe/:jobName with one round trip
// to the job registry, plus a result fetch only when the job has completed.
func (h *ApplicationHandler) GetTranscriptionStatus(c *fiber.Ctx) error {
	jobName := c.Params("jobName")
	if !transcribe.ValidJobName(jobName) {
		return utils.RespondWithError(c, fiber.StatusBadRequest, "Invalid job name format")
	}

	ctx, cancel := context.WithTimeout(c.Context(), h.Config.RequestTimeout)
	defer cancel()

	job, err := h.Poller.Poll(ctx, jobName)
	if err != nil {
		appErr := apperrors.FromError(err)
		if appErr.Kind == apperrors.KindNotFound {
			h.Logger.Warnf("Status check for unknown job %s", jobName)
		} else {
			h.Logger.Errorf("Status check failed for job %s: %v", jobName, err)
		}
		return utils.RespondWithAppError(c, err)
	}

	if !job.Status.IsTerminal() {
		return utils.RespondWithJSON(c, fiber.StatusAccepted, fiber.Map{
			"status":   "processing",
			"job_name": jobName,
			"message":  "Transcription still in progress",
		})
	}

	if job.Status == models.JobStatusFailed {
		reason := "Unknown error"
		if job.FailureReason != nil {
			reason = *job.FailureReason
		}
		h.Logger.Warnf("Job %s failed: %s", jobName, reason)
		return utils.RespondWithJSON(c, fiber.StatusInternalServerError, fiber.Map{
			"status":   "failed",
			"job_name": jobName,
			"message":  reason,
		})
	}

	result, err := h.Results.WhenComplete(ctx, job)
	if err != nil {
		h.Logger.Errorf("Result fetch failed for job %s: %v", jobName, err)
		return utils.RespondWithAppError(c, err)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, fiber.Map{
		"status":     "completed",
		"job_name":   jobName,
		"transcript": result.Transcript,
		"language":   result.LanguageCode,
	})
}
