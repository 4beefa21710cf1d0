package main

import (
	"time"
)

// ScrapeRunModel tracks one aggregation run from start to its terminal state
type ScrapeRunModel struct {
	ID            uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	RunUUID       string     `gorm:"column:run_uuid;uniqueIndex" json:"run_uuid"`
	VideoID       string     `gorm:"column:video_id;index" json:"video_id"`
	Status        string     `gorm:"column:status;index" json:"status"` // "started", "done", "failed"
	FinalState    string     `gorm:"column:final_state" json:"final_state"`
	EndReason     string     `gorm:"column:end_reason" json:"end_reason,omitempty"`
	RowsScraped   int        `gorm:"column:rows_scraped" json:"rows_scraped"`
	ExpectedTotal int        `gorm:"column:expected_total" json:"expected_total"`
	PagesFetched  int        `gorm:"column:pages_fetched" json:"pages_fetched"`
	OutputFile    string     `gorm:"column:output_file" json:"output_file"`
	ErrorMessage  string     `gorm:"column:error_message" json:"error_message,omitempty"`
	StartedAt     time.Time  `gorm:"column:started_at;index" json:"started_at"`
	FinishedAt    *time.Time `gorm:"column:finished_at" json:"finished_at,omitempty"`
	TotalTime     int        `gorm:"column:total_time" json:"total_time"` // milliseconds
	CreatedAt     time.Time  `gorm:"column:created_at;index" json:"created_at"`
}

func (ScrapeRunModel) TableName() string {
	return "scrape_runs"
}

// PageFetchLogModel tracks every page merged during a run
type PageFetchLogModel struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	RunUUID    string    `gorm:"column:run_uuid;index" json:"run_uuid"`
	VideoID    string    `gorm:"column:video_id;index" json:"video_id"`
	PageNumber int       `gorm:"column:page_number" json:"page_number"`
	Cursor     string    `gorm:"column:page_cursor" json:"cursor"`
	Threads    int       `gorm:"column:threads" json:"threads"`
	Rows       int       `gorm:"column:row_count" json:"rows"`
	HasNext    bool      `gorm:"column:has_next" json:"has_next"`
	Drift      bool      `gorm:"column:drift" json:"drift"`
	FetchTime  int       `gorm:"column:fetch_time" json:"fetch_time"` // milliseconds
	CreatedAt  time.Time `gorm:"column:created_at;index" json:"created_at"`
}

func (PageFetchLogModel) TableName() string {
	return "page_fetch_logs"
}

// Run status constants
const (
	RUN_STATUS_STARTED = "started"
	RUN_STATUS_DONE    = "done"
	RUN_STATUS_FAILED  = "failed"
)
