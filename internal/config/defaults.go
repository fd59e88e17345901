package config

import "github.com/vlsk3104/voice-transcriber-app/internal/segment"

// sizeLimitBytes is the transcription service's per-request limit.
const sizeLimitBytes = 25 * 1024 * 1024

// Default returns the initial configuration. Tokens and API keys are
// left empty; they come from the configure wizard or the environment.
func Default() *Config {
	return &Config{
		Transcription: TranscriptionConfig{
			Provider: "openai",
			Model:    "whisper-1",
			Language: "",
		},
		Pipeline: PipelineConfig{
			ScratchDir:     "",
			SizeLimitBytes: sizeLimitBytes,
			SegmentSeconds: segment.DefaultSegmentSeconds,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    ":9090",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}
