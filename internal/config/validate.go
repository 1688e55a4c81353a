package config

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// ValidationError describes one or more configuration problems.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "configuration invalid"
	}
	return "configuration invalid: " + strings.Join(e.Problems, "; ")
}

// Validate checks the configuration for structural problems. It returns a
// *ValidationError listing every issue found.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ReportsDir) == "" {
		problems = append(problems, "paths.reports_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		problems = append(problems, "paths.archive_dir must be set")
	}

	if c.Transcriber.Language != "" {
		if _, err := language.Parse(c.Transcriber.Language); err != nil {
			problems = append(problems, fmt.Sprintf("transcriber.language %q is not a valid language tag", c.Transcriber.Language))
		}
	}
	if c.Transcriber.TimeoutSeconds < 0 {
		problems = append(problems, "transcriber.timeout_seconds must not be negative")
	}
	if c.Transcriber.RetryAttempts < 0 {
		problems = append(problems, "transcriber.retry_attempts must not be negative")
	}
	if c.Transcriber.BatchSize < 0 {
		problems = append(problems, "transcriber.batch_size must not be negative")
	}
	if c.Transcriber.BaseURL != "" && !strings.HasPrefix(c.Transcriber.BaseURL, "http://") && !strings.HasPrefix(c.Transcriber.BaseURL, "https://") {
		problems = append(problems, "transcriber.base_url must be an http(s) URL")
	}

	switch c.Logging.Format {
	case "", "pretty", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q must be pretty or json", c.Logging.Format))
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("logging.level %q must be debug, info, warn, or error", c.Logging.Level))
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}

// RequireTranscriber ensures the settings needed for API calls are present.
// It is checked by commands that talk to the transcription service, not by
// Load, so that analysis-only commands work without credentials.
func (c *Config) RequireTranscriber() error {
	if strings.TrimSpace(c.Transcriber.APIKey) == "" {
		return errors.New("transcriber.api_key must be set to re-transcribe audio")
	}
	return nil
}
