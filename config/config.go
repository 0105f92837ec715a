package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Default configuration values. The language candidates are the fixed set
// offered to the transcription service for automatic language identification.
const (
	DefaultPort           = "8080"
	DefaultRegion         = "eu-west-1"
	DefaultBucket         = "media-labs-audio-transcribe"
	DefaultMaxUploadBytes = int64(10 * 1024 * 1024) // 10 MB; larger files must come in as s3_uri references
	DefaultRequestTimeout = 30 * time.Second
)

// DefaultLanguageOptions returns the candidate locales for automatic
// language identification.
func DefaultLanguageOptions() []string {
	return []string{"en-US", "uk-UA", "pl-PL", "de-DE", "fr-FR"}
}

// AppConfig holds everything the service reads from the environment. It is
// built once in main and passed into each component; nothing reads env vars
// after startup.
type AppConfig struct {
	Port            string
	AWSRegion       string
	BucketName      string
	MaxUploadBytes  int64
	RequestTimeout  time.Duration
	LanguageOptions []string

	// Optional static credentials. When empty the SDK default chain is used.
	AWSAccessKeyID     string
	AWSSecretAccessKey string
}

// Load reads configuration from the environment, loading a local .env file
// first if one exists.
func Load() (*AppConfig, error) {
	// A missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg := &AppConfig{
		Port:               envOrDefault("PORT", DefaultPort),
		AWSRegion:          envOrDefault("AWS_DEFAULT_REGION", DefaultRegion),
		BucketName:         envOrDefault("TRANSCRIBE_BUCKET", DefaultBucket),
		MaxUploadBytes:     DefaultMaxUploadBytes,
		RequestTimeout:     DefaultRequestTimeout,
		LanguageOptions:    DefaultLanguageOptions(),
		AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
		AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	}

	if raw := os.Getenv("MAX_UPLOAD_BYTES"); raw != "" {
		size, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || size <= 0 {
			return nil, fmt.Errorf("config: invalid MAX_UPLOAD_BYTES %q", raw)
		}
		cfg.MaxUploadBytes = size
	}

	if raw := os.Getenv("REQUEST_TIMEOUT"); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout <= 0 {
			return nil, fmt.Errorf("config: invalid REQUEST_TIMEOUT %q", raw)
		}
		cfg.RequestTimeout = timeout
	}

	if raw := os.Getenv("LANGUAGE_OPTIONS"); raw != "" {
		var langs []string
		for _, lang := range strings.Split(raw, ",") {
			if lang = strings.TrimSpace(lang); lang != "" {
				langs = append(langs, lang)
			}
		}
		if len(langs) == 0 {
			return nil, fmt.Errorf("config: LANGUAGE_OPTIONS is set but empty")
		}
		cfg.LanguageOptions = langs
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
