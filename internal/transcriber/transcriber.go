package transcriber

import (
	"context"
	"fmt"
)

// Transcriber submits a single audio file to a speech-to-text service
// and returns the raw text. The file may be a whole asset or one
// segment; the transcriber does not care which.
type Transcriber interface {
	Transcribe(ctx context.Context, path string) (string, error)
}

// Error reports a failed transcription and identifies which file
// failed so the caller can report the unit.
type Error struct {
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("transcribe %s: %v", e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Config selects and configures the transcription backend.
// Credentials are passed in explicitly; adapters never read ambient
// process state.
type Config struct {
	Provider string
	APIKey   string
	Model    string
	Language string
	BaseURL  string
}

func DefaultConfig() Config {
	return Config{
		Provider: "openai",
		Model:    "whisper-1",
	}
}

// New creates a transcriber for the configured provider.
func New(cfg Config) (Transcriber, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key required")
		}
		if cfg.Model == "" {
			cfg.Model = "whisper-1"
		}
		return NewOpenAIAdapter(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider: %s", cfg.Provider)
	}
}
