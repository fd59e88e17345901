package notify

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

// Notifier delivers user-visible outcomes of a pipeline run back to
// the requester. Failure notices stay generic: internal paths and
// stack detail never leave the process.
type Notifier interface {
	TranscriptReady(channel, fileName, transcript string)
	Failure(channel, fileName string)
	Info(channel, msg string)
}

// Poster is the narrow slice of the chat client the Slack notifier
// needs.
type Poster interface {
	PostMessage(channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack posts results into the originating channel.
type Slack struct {
	poster Poster
	log    zerolog.Logger
}

func NewSlack(poster Poster, log zerolog.Logger) *Slack {
	return &Slack{poster: poster, log: log.With().Str("component", "notify").Logger()}
}

func (s *Slack) TranscriptReady(channel, fileName, transcript string) {
	text := fmt.Sprintf("Transcription of *%s*:\n%s", fileName, transcript)
	s.post(channel, text)
}

func (s *Slack) Failure(channel, fileName string) {
	s.post(channel, fmt.Sprintf("Sorry, transcribing %s failed. Please try again.", fileName))
}

func (s *Slack) Info(channel, msg string) {
	s.post(channel, msg)
}

func (s *Slack) post(channel, text string) {
	if _, _, err := s.poster.PostMessage(channel, slack.MsgOptionText(text, false)); err != nil {
		s.log.Error().Err(err).Str("channel", channel).Msg("failed to post message")
	}
}

// Log writes outcomes to the operational log instead of a channel.
// Useful for local runs without chat credentials.
type Log struct {
	Logger zerolog.Logger
}

func (l Log) TranscriptReady(channel, fileName, transcript string) {
	l.Logger.Info().Str("channel", channel).Str("file", fileName).Msg(transcript)
}

func (l Log) Failure(channel, fileName string) {
	l.Logger.Error().Str("channel", channel).Str("file", fileName).Msg("transcription failed")
}

func (l Log) Info(channel, msg string) {
	l.Logger.Info().Str("channel", channel).Msg(msg)
}

// Nop discards everything. Useful in unit tests.
type Nop struct{}

func (Nop) TranscriptReady(channel, fileName, transcript string) {}
func (Nop) Failure(channel, fileName string)                     {}
func (Nop) Info(channel, msg string)                             {}
