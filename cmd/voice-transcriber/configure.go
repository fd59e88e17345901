package main

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/vlsk3104/voice-transcriber-app/internal/config"
)

func configureCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Interactive configuration setup",
		Long: `Interactive configuration for voice-transcriber.
This will guide you through setting up:
- Slack bot and app-level tokens
- OpenAI API key and transcription model
- Metrics exposure`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure()
		},
	}
}

func accentColor() lipgloss.Color {
	if termenv.HasDarkBackground() {
		return lipgloss.Color("12")
	}
	return lipgloss.Color("4")
}

func runConfigure() error {
	cfg, err := config.Load()
	if errors.Is(err, config.ErrConfigNotFound) {
		cfg = config.Default()
	} else if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Slack bot token").
				Description("Starts with xoxb- (OAuth & Permissions page)").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Slack.BotToken),
			huh.NewInput().
				Title("Slack app-level token").
				Description("Starts with xapp-, needs connections:write").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Slack.AppToken),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("OpenAI API key").
				Description("Leave empty to use the OPENAI_API_KEY environment variable").
				EchoMode(huh.EchoModePassword).
				Value(&cfg.Transcription.APIKey),
			huh.NewSelect[string]().
				Title("Transcription model").
				Options(
					huh.NewOption("whisper-1", "whisper-1"),
					huh.NewOption("gpt-4o-transcribe", "gpt-4o-transcribe"),
					huh.NewOption("gpt-4o-mini-transcribe", "gpt-4o-mini-transcribe"),
				).
				Value(&cfg.Transcription.Model),
			huh.NewInput().
				Title("Language").
				Description("ISO-639-1 code, empty for auto-detect").
				Value(&cfg.Transcription.Language),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Expose Prometheus metrics?").
				Value(&cfg.Metrics.Enabled),
			huh.NewInput().
				Title("Metrics listen address").
				Value(&cfg.Metrics.Addr),
		),
	)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			fmt.Println("Configuration cancelled.")
			return nil
		}
		return fmt.Errorf("configuration wizard error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
		fmt.Println(errStyle.Render(fmt.Sprintf("Configuration validation failed: %v", err)))
		return err
	}

	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	okStyle := lipgloss.NewStyle().Foreground(accentColor()).Bold(true)
	fmt.Println()
	fmt.Println(okStyle.Render("Configuration saved successfully!"))

	configPath, _ := config.GetConfigPath()
	fmt.Printf("Config file location: %s\n", configPath)
	fmt.Println("Start the bot with: voice-transcriber serve")
	return nil
}
