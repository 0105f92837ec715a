package models

import (
	"fmt"
	"time"
)

// JobStatus represents the lifecycle stage of a transcription job.
type JobStatus string

const (
	JobStatusSubmitted  JobStatus = "submitted"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsTerminal reports whether the job reached a terminal state.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// TranscriptionRequest is the validated submit payload. It only lives for the
// duration of a single submit call: either Content+ContentType for a direct
// upload, or S3URI referencing an already-stored object.
type TranscriptionRequest struct {
	Content       []byte
	ContentType   string
	S3URI         string
	LanguageHints []string
}

// StagedObject describes a durably stored audio object. It is never mutated
// after the staging call that created it returns.
type StagedObject struct {
	Bucket      string `json:"bucket"`
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"content_type"`
}

// URI renders the object locator in s3://bucket/key form.
func (o StagedObject) URI() string {
	return fmt.Sprintf("s3://%s/%s", o.Bucket, o.Key)
}

// TranscriptionJob tracks a submitted transcription against the external job
// registry. JobName is the client-facing correlation token; ExternalID is the
// registry's own identifier for the same job.
type TranscriptionJob struct {
	JobName       string    `json:"job_name"`
	ExternalID    string    `json:"external_id,omitempty"`
	SourceURI     string    `json:"s3_uri"`
	Status        JobStatus `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	LanguageHints []string  `json:"language_hints,omitempty"`
	ResultLocator *string   `json:"result_locator,omitempty"` // set only once Status is completed
	FailureReason *string   `json:"failure_reason,omitempty"` // set only once Status is failed
}
