package config

// Default returns the repository defaults. Paths are expanded during Load.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir:    "~/transcheck/data",
			ReportsDir: "~/transcheck/reports",
			ArchiveDir: "~/transcheck/archive",
			LogDir:     "~/transcheck/logs",
		},
		Transcriber: Transcriber{
			BaseURL:        "https://api.deepinfra.com/v1/openai/audio/transcriptions",
			Model:          "openai/whisper-large-v3",
			Language:       "id",
			TimeoutSeconds: 60,
			RetryAttempts:  3,
			BatchSize:      3,
		},
		Logging: Logging{
			Format: "pretty",
			Level:  "info",
		},
	}
}
