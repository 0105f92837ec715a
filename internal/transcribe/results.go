package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"medialabs/transcribe-gateway/internal/apperrors"
	"medialabs/transcribe-gateway/models"
)

// maxResultBytes bounds how much of a result payload is read into memory.
const maxResultBytes = 32 * 1024 * 1024

// ResultAdapter fetches and parses the raw result payload of a completed job.
// The payload lives at a pre-signed HTTPS location issued by the registry, so
// a plain HTTP client is all that is needed to read it.
type ResultAdapter struct {
	httpClient *http.Client
	logger     *logrus.Logger
}

// NewResultAdapter creates a result adapter with a bounded HTTP client.
func NewResultAdapter(timeout time.Duration, logger *logrus.Logger) *ResultAdapter {
	return &ResultAdapter{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// transcriptDocument mirrors the registry's result payload schema, limited to
// the fields this service extracts.
type transcriptDocument struct {
	JobName string `json:"jobName"`
	Results struct {
		LanguageCode           string `json:"language_code"`
		LanguageIdentification []struct {
			Code  string `json:"code"`
			Score string `json:"score"`
		} `json:"language_identification"`
		Transcripts []struct {
			Transcript string `json:"transcript"`
		} `json:"transcripts"`
		Items []struct {
			Type         string `json:"type"`
			StartTime    string `json:"start_time"`
			EndTime      string `json:"end_time"`
			Alternatives []struct {
				Content string `json:"content"`
			} `json:"alternatives"`
		} `json:"items"`
	} `json:"results"`
}

// WhenComplete fetches the result payload for a completed job and shapes it
// into a TranscriptionResult. A malformed payload is an internal error, not a
// failed transcription.
func (r *ResultAdapter) WhenComplete(ctx context.Context, job *models.TranscriptionJob) (*models.TranscriptionResult, error) {
	if job.Status != models.JobStatusCompleted || job.ResultLocator == nil {
		return nil, apperrors.ResultParse(fmt.Sprintf("Job %s has no result to fetch", job.JobName))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, *job.ResultLocator, nil)
	if err != nil {
		return nil, apperrors.ResultParse("Completed job carries an invalid result location").WithCause(err)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.Storage("Could not fetch transcription result").WithCause(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.Storage(fmt.Sprintf("Result fetch returned status %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResultBytes))
	if err != nil {
		return nil, apperrors.Storage("Could not read transcription result").WithCause(err)
	}

	var doc transcriptDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, apperrors.ResultParse("Transcription result payload is not valid JSON").WithCause(err)
	}
	if len(doc.Results.Transcripts) == 0 {
		return nil, apperrors.ResultParse("Transcription result payload has no transcript")
	}

	result := &models.TranscriptionResult{
		Transcript:   doc.Results.Transcripts[0].Transcript,
		LanguageCode: doc.Results.LanguageCode,
		CompletedAt:  time.Now().UTC(),
	}
	if result.LanguageCode == "" {
		result.LanguageCode = "unknown"
	}

	if len(doc.Results.LanguageIdentification) > 0 {
		if score, err := strconv.ParseFloat(doc.Results.LanguageIdentification[0].Score, 64); err == nil {
			result.Confidence = score
		}
	}

	for _, item := range doc.Results.Items {
		if item.Type != "pronunciation" || len(item.Alternatives) == 0 {
			continue
		}
		start, err1 := strconv.ParseFloat(item.StartTime, 64)
		end, err2 := strconv.ParseFloat(item.EndTime, 64)
		if err1 != nil || err2 != nil {
			continue
		}
		result.Words = append(result.Words, models.WordTiming{
			Word:      item.Alternatives[0].Content,
			StartTime: start,
			EndTime:   end,
		})
	}

	r.logger.Infof("Parsed transcription result for job %s (%s, %d words)", job.JobName, result.LanguageCode, len(result.Words))
	return result, nil
}
