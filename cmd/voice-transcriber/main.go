package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/slack-go/slack"
	"github.com/spf13/cobra"

	"github.com/vlsk3104/voice-transcriber-app/internal/asset"
	"github.com/vlsk3104/voice-transcriber-app/internal/bot"
	"github.com/vlsk3104/voice-transcriber-app/internal/config"
	"github.com/vlsk3104/voice-transcriber-app/internal/deps"
	"github.com/vlsk3104/voice-transcriber-app/internal/fetch"
	"github.com/vlsk3104/voice-transcriber-app/internal/metrics"
	"github.com/vlsk3104/voice-transcriber-app/internal/notify"
	"github.com/vlsk3104/voice-transcriber-app/internal/pipeline"
	"github.com/vlsk3104/voice-transcriber-app/internal/segment"
	"github.com/vlsk3104/voice-transcriber-app/internal/transcriber"
	"github.com/vlsk3104/voice-transcriber-app/internal/workspace"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "voice-transcriber",
	Short: "Slack bot that transcribes shared audio files",
}

func init() {
	rootCmd.AddCommand(
		serveCmd(),
		configureCmd(),
		checkCmd(),
		versionCmd(),
	)
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	mgr, err := config.NewManager(logger)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	cfg := mgr.GetConfig()
	logger = logger.Level(cfg.LogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := mgr.StartWatching(ctx); err != nil {
		logger.Warn().Err(err).Msg("config hot-reload unavailable")
	}
	defer mgr.Stop()

	for _, st := range []struct {
		name   string
		status deps.Status
	}{
		{"ffmpeg", deps.CheckFFmpeg()},
		{"ffprobe", deps.CheckFFprobe()},
	} {
		if !st.status.Installed {
			logger.Warn().Str("binary", st.name).Msg("not found in PATH; files over the size limit will fail to split")
		}
	}

	api := slack.New(cfg.BotToken(), slack.OptionAppLevelToken(cfg.AppToken()))
	notifier := notify.NewSlack(api, logger)

	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, logger); err != nil {
				logger.Error().Err(err).Msg("metrics listener failed")
			}
		}()
	}

	runner := &reloadingRunner{mgr: mgr, log: logger}
	b := bot.New(api, runner, notifier, logger)

	logger.Info().Str("version", version).Msg("voice-transcriber starting")
	return b.Run(ctx)
}

// reloadingRunner builds the pipeline from the current configuration
// on every run, so a hot-reloaded config applies to the next run while
// in-flight runs keep the config they started with.
type reloadingRunner struct {
	mgr *config.Manager
	log zerolog.Logger
}

func (r *reloadingRunner) Run(ctx context.Context, a asset.SourceAsset) (string, error) {
	cfg := r.mgr.GetConfig()

	tr, err := transcriber.New(cfg.ToTranscriberConfig())
	if err != nil {
		return "", err
	}

	p := pipeline.New(
		fetch.New(cfg.BotToken(), r.log),
		segment.NewSplitter(r.log),
		tr,
		workspace.NewManager(cfg.Pipeline.ScratchDir, r.log),
		cfg.ToPipelineConfig(),
		r.log,
	)
	return p.Run(ctx, a)
}

func checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check external dependencies and configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			ok := true

			for _, c := range []struct {
				name   string
				status deps.Status
			}{
				{"ffmpeg", deps.CheckFFmpeg()},
				{"ffprobe", deps.CheckFFprobe()},
			} {
				if c.status.Installed {
					fmt.Printf("  [x] %s (%s)\n", c.name, c.status.Path)
				} else {
					fmt.Printf("  [ ] %s: not found in PATH\n", c.name)
					ok = false
				}
			}

			cfg, err := config.Load()
			if err != nil {
				fmt.Printf("  [ ] config: %v\n", err)
				ok = false
			} else if err := cfg.Validate(); err != nil {
				fmt.Printf("  [ ] config: %v\n", err)
				ok = false
			} else {
				fmt.Println("  [x] config")
			}

			if !ok {
				return fmt.Errorf("some checks failed")
			}
			return nil
		},
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	}
}
