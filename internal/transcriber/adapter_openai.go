package transcriber

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements Transcriber against the OpenAI Whisper API.
type OpenAIAdapter struct {
	client *openai.Client
	config Config
}

func NewOpenAIAdapter(config Config) *OpenAIAdapter {
	cc := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		cc.BaseURL = config.BaseURL
	}
	return &OpenAIAdapter{
		client: openai.NewClientWithConfig(cc),
		config: config,
	}
}

// Transcribe streams the file at path to the transcription endpoint
// and returns the plain text response. No retry: segmentation already
// bounds per-call size, and the caller treats any failure as fatal for
// the whole run.
func (a *OpenAIAdapter) Transcribe(ctx context.Context, path string) (string, error) {
	req := openai.AudioRequest{
		Model:    a.config.Model,
		FilePath: path,
		Language: a.config.Language,
	}

	start := time.Now()
	resp, err := a.client.CreateTranscription(ctx, req)
	if err != nil {
		return "", &Error{Path: path, Err: err}
	}

	log.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("transcription complete")
	return resp.Text, nil
}
