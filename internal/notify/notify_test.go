package notify

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
)

type recordingPoster struct {
	channels []string
	err      error
}

func (p *recordingPoster) PostMessage(channelID string, options ...slack.MsgOption) (string, string, error) {
	p.channels = append(p.channels, channelID)
	return channelID, "ts", p.err
}

func TestSlackNotifier(t *testing.T) {
	poster := &recordingPoster{}
	n := NewSlack(poster, zerolog.Nop())

	n.TranscriptReady("C123", "standup.m4a", "hello world")
	n.Failure("C123", "standup.m4a")
	n.Info("C456", "no audio files attached")

	want := []string{"C123", "C123", "C456"}
	if len(poster.channels) != len(want) {
		t.Fatalf("posted %d messages, want %d", len(poster.channels), len(want))
	}
	for i, ch := range want {
		if poster.channels[i] != ch {
			t.Errorf("message %d went to %s, want %s", i, poster.channels[i], ch)
		}
	}
}

func TestSlackNotifier_PostErrorIsSwallowed(t *testing.T) {
	poster := &recordingPoster{err: errors.New("channel archived")}
	n := NewSlack(poster, zerolog.Nop())

	// Posting failures are logged, never panic or propagate.
	n.TranscriptReady("C123", "a.mp3", "text")
	n.Failure("C123", "a.mp3")
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := Log{Logger: zerolog.New(&buf)}

	n.TranscriptReady("C123", "standup.m4a", "hello world")
	if out := buf.String(); !strings.Contains(out, "hello world") || !strings.Contains(out, "standup.m4a") {
		t.Errorf("log output missing transcript fields: %s", out)
	}

	buf.Reset()
	n.Failure("C123", "standup.m4a")
	if out := buf.String(); !strings.Contains(out, "transcription failed") {
		t.Errorf("log output missing failure message: %s", out)
	}
}

func TestNopNotifier(t *testing.T) {
	n := Nop{}
	n.TranscriptReady("", "", "")
	n.Failure("", "")
	n.Info("", "")
}
