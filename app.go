package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/grutapig/ytcomments/comments"
)

type Application struct {
	config         *Config
	source         *YouTubeCommentSource
	loggingService *LoggingService
	exporter       *CSVExporter
	formatter      *NotificationFormatter
	progress       comments.ProgressSink
	notifier       Notifier
}

func NewApplication(
	config *Config,
	source *YouTubeCommentSource,
	loggingService *LoggingService,
	exporter *CSVExporter,
	formatter *NotificationFormatter,
	progress comments.ProgressSink,
	notifier Notifier,
) (*Application, error) {
	return &Application{
		config:         config,
		source:         source,
		loggingService: loggingService,
		exporter:       exporter,
		formatter:      formatter,
		progress:       progress,
		notifier:       notifier,
	}, nil
}

func (app *Application) Initialize() error {
	log.Println("Logging service initialized successfully")

	if err := app.loggingService.CleanupOldLogs(app.config.LogRetentionDays); err != nil {
		log.Printf("Warning: Failed to cleanup old logs: %v", err)
	}
	return nil
}

// Run downloads every comment of the configured video and writes them to the output CSV.
// The summary is returned even when the run fails, unless the locator itself is invalid.
func (app *Application) Run(ctx context.Context) (*RunSummary, error) {
	started := time.Now()

	videoID, err := comments.ParseVideoID(app.config.VideoLocator)
	if err != nil {
		return nil, err
	}

	runUUID := uuid.New().String()
	log.Printf("🚀 Starting comment download for video %s (run %s)", videoID, runUUID)
	if err := app.loggingService.StartRun(runUUID, videoID, app.config.OutputFile); err != nil {
		log.Printf("Warning: Failed to log run start: %v", err)
	}

	aggregator := comments.NewAggregator(app.source, app.source, app.source,
		comments.WithPageObserver(func(ev comments.PageEvent) {
			log.Printf("📄 Page %d: %d threads, %d rows, next=%t (%v)", ev.Number, ev.Threads, ev.Rows, ev.HasNext, ev.Duration.Round(time.Millisecond))
			if err := app.loggingService.LogPageFetch(runUUID, ev); err != nil {
				log.Printf("Warning: Failed to log page %d: %v", ev.Number, err)
			}
		}))

	outcome, err := aggregator.Run(ctx, videoID, app.progress)
	if err == nil {
		if exportErr := app.exporter.Export(app.config.OutputFile, outcome.Rows); exportErr != nil {
			err = fmt.Errorf("failed to write %s: %w", app.config.OutputFile, exportErr)
			outcome = nil
		}
	}

	if logErr := app.loggingService.FinishRun(runUUID, outcome, err); logErr != nil {
		log.Printf("Warning: Failed to log run result: %v", logErr)
	}

	summary := &RunSummary{
		RunUUID:    runUUID,
		VideoID:    videoID,
		OutputFile: app.config.OutputFile,
		Outcome:    outcome,
		Err:        err,
		Elapsed:    time.Since(started),
	}
	app.notifier.NotifyRun(*summary)

	return summary, err
}

func (app *Application) Shutdown() {
	log.Println("Shutting down application...")

	if err := app.loggingService.Close(); err != nil {
		log.Printf("Warning: Failed to close logging service: %v", err)
	}

	log.Println("Application shutdown completed")
}
