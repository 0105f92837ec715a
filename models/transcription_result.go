package models

import "time"

// TranscriptionResult is the parsed output of a completed transcription job.
type TranscriptionResult struct {
	Transcript   string       `json:"transcript"`
	LanguageCode string       `json:"language"`
	Confidence   float64      `json:"confidence,omitempty"`
	Words        []WordTiming `json:"words,omitempty"`
	CompletedAt  time.Time    `json:"completed_at"`
}

// WordTiming is a single word with its position in the audio, in seconds.
type WordTiming struct {
	Word      string  `json:"word"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}
