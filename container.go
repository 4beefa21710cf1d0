package main

import (
	"fmt"
	"log"
	"os"

	"github.com/grutapig/ytcomments/comments"
	"github.com/grutapig/ytcomments/youtubeapi"
	"go.uber.org/dig"
)

const PROGRESS_EVERY_ROWS = 100

func ProvideYouTubeAPI(config *Config) (*youtubeapi.YouTubeAPIService, error) {
	return youtubeapi.NewYouTubeAPIService(config.YouTubeAPIKey, config.YouTubeAPIBaseURL, config.ProxyDSN)
}

func ProvideCommentSource(api *youtubeapi.YouTubeAPIService, config *Config) *YouTubeCommentSource {
	return NewYouTubeCommentSource(api, config.PageSize)
}

func ProvideLoggingService(config *Config) (*LoggingService, error) {
	return NewLoggingService(config.LoggingDBPath)
}

func ProvideCSVExporter() *CSVExporter {
	return NewCSVExporter()
}

func ProvideNotificationFormatter() *NotificationFormatter {
	return NewNotificationFormatter()
}

func ProvideProgressSink() comments.ProgressSink {
	return NewConsoleProgress(os.Stdout, PROGRESS_EVERY_ROWS)
}

// ProvideNotifier falls back to a no-op notifier when Telegram is not configured or unreachable.
func ProvideNotifier(config *Config, formatter *NotificationFormatter) Notifier {
	if !config.TelegramEnabled() {
		return NopNotifier{}
	}
	notifier, err := NewTelegramNotifier(config.TelegramAPIKey, config.TelegramAPIEndpoint, config.ProxyDSN, config.TelegramAdminChatID, formatter)
	if err != nil {
		log.Printf("Warning: Telegram notifications disabled: %v", err)
		return NopNotifier{}
	}
	return notifier
}

func BuildContainer(opts *CLIOptions) (*dig.Container, error) {
	container := dig.New()

	if err := container.Provide(func() *CLIOptions { return opts }); err != nil {
		return nil, fmt.Errorf("failed to provide cli options: %w", err)
	}

	if err := container.Provide(ProvideConfig); err != nil {
		return nil, fmt.Errorf("failed to provide config: %w", err)
	}

	if err := container.Provide(ProvideYouTubeAPI); err != nil {
		return nil, fmt.Errorf("failed to provide YouTube API: %w", err)
	}

	if err := container.Provide(ProvideCommentSource); err != nil {
		return nil, fmt.Errorf("failed to provide comment source: %w", err)
	}

	if err := container.Provide(ProvideLoggingService); err != nil {
		return nil, fmt.Errorf("failed to provide logging service: %w", err)
	}

	if err := container.Provide(ProvideCSVExporter); err != nil {
		return nil, fmt.Errorf("failed to provide csv exporter: %w", err)
	}

	if err := container.Provide(ProvideNotificationFormatter); err != nil {
		return nil, fmt.Errorf("failed to provide notification formatter: %w", err)
	}

	if err := container.Provide(ProvideProgressSink); err != nil {
		return nil, fmt.Errorf("failed to provide progress sink: %w", err)
	}

	if err := container.Provide(ProvideNotifier); err != nil {
		return nil, fmt.Errorf("failed to provide notifier: %w", err)
	}

	if err := container.Provide(NewApplication); err != nil {
		return nil, fmt.Errorf("failed to provide application: %w", err)
	}

	return container, nil
}
