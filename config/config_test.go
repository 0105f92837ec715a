package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AWSRegion != DefaultRegion {
		t.Errorf("region %s, want %s", cfg.AWSRegion, DefaultRegion)
	}
	if cfg.BucketName != DefaultBucket {
		t.Errorf("bucket %s, want %s", cfg.BucketName, DefaultBucket)
	}
	if cfg.MaxUploadBytes != DefaultMaxUploadBytes {
		t.Errorf("max upload %d, want %d", cfg.MaxUploadBytes, DefaultMaxUploadBytes)
	}
	if cfg.RequestTimeout != DefaultRequestTimeout {
		t.Errorf("timeout %s, want %s", cfg.RequestTimeout, DefaultRequestTimeout)
	}
	if len(cfg.LanguageOptions) != 5 {
		t.Errorf("expected 5 language candidates, got %v", cfg.LanguageOptions)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("AWS_DEFAULT_REGION", "us-east-1")
	t.Setenv("TRANSCRIBE_BUCKET", "my-audio")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("REQUEST_TIMEOUT", "45s")
	t.Setenv("LANGUAGE_OPTIONS", "en-US, de-DE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AWSRegion != "us-east-1" || cfg.BucketName != "my-audio" {
		t.Errorf("region/bucket: %s/%s", cfg.AWSRegion, cfg.BucketName)
	}
	if cfg.MaxUploadBytes != 1048576 {
		t.Errorf("max upload %d", cfg.MaxUploadBytes)
	}
	if cfg.RequestTimeout != 45*time.Second {
		t.Errorf("timeout %s", cfg.RequestTimeout)
	}
	if len(cfg.LanguageOptions) != 2 || cfg.LanguageOptions[1] != "de-DE" {
		t.Errorf("language options %v", cfg.LanguageOptions)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("MAX_UPLOAD_BYTES", "not-a-number")
	if _, err := Load(); err == nil {
		t.Error("expected error for invalid MAX_UPLOAD_BYTES")
	}
	t.Setenv("MAX_UPLOAD_BYTES", "")

	t.Setenv("REQUEST_TIMEOUT", "-3s")
	if _, err := Load(); err == nil {
		t.Error("expected error for negative REQUEST_TIMEOUT")
	}
}
