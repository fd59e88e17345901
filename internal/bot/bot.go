package bot

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"github.com/vlsk3104/voice-transcriber-app/internal/asset"
	"github.com/vlsk3104/voice-transcriber-app/internal/notify"
)

// Runner executes one transcription pipeline run.
type Runner interface {
	Run(ctx context.Context, a asset.SourceAsset) (string, error)
}

// FileInfoGetter is the narrow slice of the chat client the bot needs
// to resolve a shared file id into a descriptor.
type FileInfoGetter interface {
	GetFileInfoContext(ctx context.Context, fileID string, count, page int) (*slack.File, []slack.Comment, *slack.Paging, error)
}

// Bot subscribes to file-share events over Socket Mode and runs one
// pipeline per shared audio file. Runs for distinct files proceed
// concurrently and share no mutable state.
type Bot struct {
	socket   *socketmode.Client
	files    FileInfoGetter
	runner   Runner
	notifier notify.Notifier
	log      zerolog.Logger
}

func New(api *slack.Client, runner Runner, notifier notify.Notifier, log zerolog.Logger) *Bot {
	return &Bot{
		socket:   socketmode.New(api),
		files:    api,
		runner:   runner,
		notifier: notifier,
		log:      log.With().Str("component", "bot").Logger(),
	}
}

// Run drives the Socket Mode connection until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	go func() {
		if err := b.socket.RunContext(ctx); err != nil && ctx.Err() == nil {
			b.log.Error().Err(err).Msg("socket mode connection ended")
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-b.socket.Events:
			if !ok {
				return nil
			}
			switch evt.Type {
			case socketmode.EventTypeConnected:
				b.log.Info().Msg("connected to slack")
			case socketmode.EventTypeConnectionError:
				b.log.Warn().Msg("slack connection error, retrying")
			case socketmode.EventTypeEventsAPI:
				apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
				if !ok {
					continue
				}
				if evt.Request != nil {
					b.socket.Ack(*evt.Request)
				}
				b.dispatch(ctx, apiEvent)
			}
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, evt slackevents.EventsAPIEvent) {
	if evt.Type != slackevents.CallbackEvent {
		return
	}
	switch ev := evt.InnerEvent.Data.(type) {
	case *slackevents.FileSharedEvent:
		go b.handleFileShared(ctx, ev.ChannelID, ev.FileID)
	}
}

// handleFileShared resolves the file descriptor, filters non-audio,
// and runs the pipeline. The requester always gets exactly one
// message: the transcript, a generic failure notice, or an
// informational note for non-audio files.
func (b *Bot) handleFileShared(ctx context.Context, channel, fileID string) {
	file, _, _, err := b.files.GetFileInfoContext(ctx, fileID, 0, 0)
	if err != nil {
		b.log.Error().Err(err).Str("file", fileID).Msg("failed to resolve file info")
		b.notifier.Failure(channel, fileID)
		return
	}

	a := assetFromFile(file)
	if !a.IsAudio() {
		b.log.Debug().Str("file", fileID).Str("mimetype", a.Mimetype).Msg("ignoring non-audio file")
		b.notifier.Info(channel, "That doesn't look like an audio file, so there is nothing to transcribe.")
		return
	}

	b.log.Info().Str("file", a.ID).Str("name", a.Name).Msg("starting transcription run")
	transcript, err := b.runner.Run(ctx, a)
	if err != nil {
		b.log.Error().Err(err).Str("file", a.ID).Msg("pipeline run failed")
		b.notifier.Failure(channel, a.Name)
		return
	}
	b.notifier.TranscriptReady(channel, a.Name, transcript)
}

// assetFromFile maps the external file schema onto the fields the core
// reads, and nothing else.
func assetFromFile(f *slack.File) asset.SourceAsset {
	return asset.SourceAsset{
		ID:       f.ID,
		Name:     f.Name,
		URL:      f.URLPrivateDownload,
		Mimetype: f.Mimetype,
		Filetype: f.Filetype,
		Size:     int64(f.Size),
	}
}
