package main

import (
	"fmt"
	"io"
	"log"
	"time"

	"github.com/grutapig/ytcomments/comments"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type LoggingService struct {
	db *gorm.DB
}

// NewLoggingService creates a new logging service instance
func NewLoggingService(dbPath string) (*LoggingService, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to logging database: %w", err)
	}

	service := &LoggingService{
		db: db,
	}

	// Run migrations
	if err := service.runMigrations(); err != nil {
		return nil, fmt.Errorf("failed to run logging migrations: %w", err)
	}

	return service, nil
}

// runMigrations runs database migrations for logging tables
func (s *LoggingService) runMigrations() error {
	return s.db.AutoMigrate(
		&ScrapeRunModel{},
		&PageFetchLogModel{},
	)
}

// Run Logging Methods

// StartRun records the beginning of an aggregation run
func (s *LoggingService) StartRun(runUUID, videoID, outputFile string) error {
	run := ScrapeRunModel{
		RunUUID:    runUUID,
		VideoID:    videoID,
		Status:     RUN_STATUS_STARTED,
		FinalState: comments.StateOraclePending.String(),
		OutputFile: outputFile,
		StartedAt:  time.Now(),
	}
	return s.db.Create(&run).Error
}

// LogPageFetch records one merged page
func (s *LoggingService) LogPageFetch(runUUID string, ev comments.PageEvent) error {
	pageLog := PageFetchLogModel{
		RunUUID:    runUUID,
		VideoID:    ev.VideoID,
		PageNumber: ev.Number,
		Cursor:     ev.Cursor,
		Threads:    ev.Threads,
		Rows:       ev.Rows,
		HasNext:    ev.HasNext,
		Drift:      ev.Drift,
		FetchTime:  int(ev.Duration.Milliseconds()),
	}
	return s.db.Create(&pageLog).Error
}

// FinishRun stores the terminal state of a run. Exactly one of outcome and runErr is expected.
func (s *LoggingService) FinishRun(runUUID string, outcome *comments.Outcome, runErr error) error {
	var run ScrapeRunModel
	if err := s.db.Where("run_uuid = ?", runUUID).First(&run).Error; err != nil {
		return fmt.Errorf("failed to find run %s: %w", runUUID, err)
	}

	now := time.Now()
	updates := map[string]interface{}{
		"finished_at": &now,
		"total_time":  int(now.Sub(run.StartedAt).Milliseconds()),
	}

	if runErr != nil {
		updates["status"] = RUN_STATUS_FAILED
		updates["final_state"] = comments.StateFailed.String()
		updates["error_message"] = runErr.Error()
	} else if outcome != nil {
		updates["status"] = RUN_STATUS_DONE
		updates["final_state"] = outcome.State.String()
		updates["end_reason"] = outcome.EndReason.String()
		updates["rows_scraped"] = outcome.Progress.Scraped
		updates["expected_total"] = outcome.Progress.Total
		updates["pages_fetched"] = outcome.Pages
	}

	return s.db.Model(&ScrapeRunModel{}).Where("run_uuid = ?", runUUID).Updates(updates).Error
}

// GetRun returns the run record for a specific UUID
func (s *LoggingService) GetRun(runUUID string) (*ScrapeRunModel, error) {
	var run ScrapeRunModel
	err := s.db.Where("run_uuid = ?", runUUID).First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// GetRecentRuns returns the latest runs, newest first
func (s *LoggingService) GetRecentRuns(limit int) ([]ScrapeRunModel, error) {
	var runs []ScrapeRunModel
	err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}

// GetPageFetches returns the page log of a run in fetch order
func (s *LoggingService) GetPageFetches(runUUID string) ([]PageFetchLogModel, error) {
	var pages []PageFetchLogModel
	err := s.db.Where("run_uuid = ?", runUUID).Order("page_number ASC").Find(&pages).Error
	return pages, err
}

// Cleanup Methods

// CleanupOldLogs removes logs older than specified days
func (s *LoggingService) CleanupOldLogs(days int) error {
	if days <= 0 {
		return nil
	}
	cutoffDate := time.Now().AddDate(0, 0, -days)

	log.Printf("🧹 Cleaning up logging database records older than %d days (before %s)", days, cutoffDate.Format("2006-01-02"))

	result := s.db.Where("created_at < ?", cutoffDate).Delete(&PageFetchLogModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup page fetch logs: %w", result.Error)
	}
	log.Printf("🧹 Cleaned up %d page fetch log records", result.RowsAffected)

	result = s.db.Where("created_at < ?", cutoffDate).Delete(&ScrapeRunModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to cleanup scrape runs: %w", result.Error)
	}
	log.Printf("🧹 Cleaned up %d scrape run records", result.RowsAffected)

	return nil
}

func (s *LoggingService) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ShowRunHistory prints the latest runs of the log database at dbPath.
func ShowRunHistory(w io.Writer, dbPath string, limit int, formatter *NotificationFormatter) error {
	service, err := NewLoggingService(dbPath)
	if err != nil {
		return err
	}
	defer service.Close()

	runs, err := service.GetRecentRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to load run history: %w", err)
	}
	_, err = io.WriteString(w, formatter.FormatRunHistory(runs))
	return err
}
