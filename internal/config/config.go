package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/vlsk3104/voice-transcriber-app/internal/pipeline"
	"github.com/vlsk3104/voice-transcriber-app/internal/transcriber"
)

type Config struct {
	Slack         SlackConfig         `toml:"slack"`
	Transcription TranscriptionConfig `toml:"transcription"`
	Pipeline      PipelineConfig      `toml:"pipeline"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Logging       LoggingConfig       `toml:"logging"`
}

type SlackConfig struct {
	BotToken string `toml:"bot_token"`
	AppToken string `toml:"app_token"`
}

type TranscriptionConfig struct {
	Provider string `toml:"provider"`
	APIKey   string `toml:"api_key"`
	Model    string `toml:"model"`
	Language string `toml:"language"`
}

type PipelineConfig struct {
	ScratchDir     string `toml:"scratch_dir"`
	SizeLimitBytes int64  `toml:"size_limit_bytes"`
	SegmentSeconds int    `toml:"segment_seconds"`
}

type MetricsConfig struct {
	Enabled bool   `toml:"enabled"`
	Addr    string `toml:"addr"`
}

type LoggingConfig struct {
	Level string `toml:"level"`
}

// BotToken returns the configured bot token, falling back to the
// SLACK_BOT_TOKEN environment variable.
func (c *Config) BotToken() string {
	if c.Slack.BotToken != "" {
		return c.Slack.BotToken
	}
	return os.Getenv("SLACK_BOT_TOKEN")
}

// AppToken returns the configured app-level token, falling back to the
// SLACK_APP_TOKEN environment variable.
func (c *Config) AppToken() string {
	if c.Slack.AppToken != "" {
		return c.Slack.AppToken
	}
	return os.Getenv("SLACK_APP_TOKEN")
}

func (c *Config) ToTranscriberConfig() transcriber.Config {
	cfg := transcriber.Config{
		Provider: c.Transcription.Provider,
		APIKey:   c.Transcription.APIKey,
		Model:    c.Transcription.Model,
		Language: c.Transcription.Language,
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
	}
	return cfg
}

func (c *Config) ToPipelineConfig() pipeline.Config {
	return pipeline.Config{
		SizeLimit:      c.Pipeline.SizeLimitBytes,
		SegmentSeconds: c.Pipeline.SegmentSeconds,
	}
}

func (c *Config) LogLevel() zerolog.Level {
	if lvl, err := zerolog.ParseLevel(c.Logging.Level); err == nil && c.Logging.Level != "" {
		return lvl
	}
	return zerolog.InfoLevel
}

func (c *Config) Validate() error {
	// Slack
	if c.BotToken() == "" {
		return fmt.Errorf("slack bot token required: not found in config (slack.bot_token) or environment variable (SLACK_BOT_TOKEN)")
	}
	if !strings.HasPrefix(c.BotToken(), "xoxb-") {
		return fmt.Errorf("invalid slack.bot_token: must start with xoxb-")
	}
	if c.AppToken() == "" {
		return fmt.Errorf("slack app token required: not found in config (slack.app_token) or environment variable (SLACK_APP_TOKEN)")
	}
	if !strings.HasPrefix(c.AppToken(), "xapp-") {
		return fmt.Errorf("invalid slack.app_token: must start with xapp-")
	}

	// Transcription
	if c.Transcription.Provider == "" {
		return fmt.Errorf("invalid transcription.provider: empty")
	}
	if c.Transcription.Provider == "openai" {
		apiKey := c.Transcription.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("OPENAI_API_KEY")
		}
		if apiKey == "" {
			return fmt.Errorf("OpenAI API key required: not found in config (transcription.api_key) or environment variable (OPENAI_API_KEY)")
		}
	}
	if c.Transcription.Model == "" {
		return fmt.Errorf("invalid transcription.model: empty")
	}

	// Pipeline
	if c.Pipeline.SizeLimitBytes <= 0 {
		return fmt.Errorf("invalid pipeline.size_limit_bytes: %d", c.Pipeline.SizeLimitBytes)
	}
	if c.Pipeline.SegmentSeconds <= 0 {
		return fmt.Errorf("invalid pipeline.segment_seconds: %d", c.Pipeline.SegmentSeconds)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Addr == "" {
		return fmt.Errorf("invalid metrics.addr: empty while metrics.enabled is true")
	}

	// Logging
	if c.Logging.Level != "" {
		if _, err := zerolog.ParseLevel(c.Logging.Level); err != nil {
			return fmt.Errorf("invalid logging.level: %s", c.Logging.Level)
		}
	}

	return nil
}
