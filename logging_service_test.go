package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/grutapig/ytcomments/comments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoggingService(t *testing.T) *LoggingService {
	t.Helper()
	service, err := NewLoggingService(filepath.Join(t.TempDir(), "logs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })
	return service
}

func TestLoggingService_SuccessfulRun(t *testing.T) {
	service := newTestLoggingService(t)
	runUUID := uuid.New().String()

	require.NoError(t, service.StartRun(runUUID, testVideoID, "out.csv"))
	run, err := service.GetRun(runUUID)
	require.NoError(t, err)
	assert.Equal(t, RUN_STATUS_STARTED, run.Status)
	assert.Equal(t, "ORACLE_PENDING", run.FinalState)
	assert.Nil(t, run.FinishedAt)

	require.NoError(t, service.LogPageFetch(runUUID, comments.PageEvent{VideoID: testVideoID, Number: 2, Cursor: "c2", Threads: 1, Rows: 1, Duration: 5 * time.Millisecond}))
	require.NoError(t, service.LogPageFetch(runUUID, comments.PageEvent{VideoID: testVideoID, Number: 1, Threads: 2, Rows: 4, HasNext: true}))

	outcome := &comments.Outcome{
		VideoID:   testVideoID,
		Progress:  comments.Progress{Scraped: 5, Total: 6},
		Pages:     2,
		EndReason: comments.EndOfData,
		State:     comments.StateDone,
	}
	require.NoError(t, service.FinishRun(runUUID, outcome, nil))

	run, err = service.GetRun(runUUID)
	require.NoError(t, err)
	assert.Equal(t, RUN_STATUS_DONE, run.Status)
	assert.Equal(t, "DONE", run.FinalState)
	assert.Equal(t, "end_of_data", run.EndReason)
	assert.Equal(t, 5, run.RowsScraped)
	assert.Equal(t, 6, run.ExpectedTotal)
	assert.Equal(t, 2, run.PagesFetched)
	assert.NotNil(t, run.FinishedAt)

	pages, err := service.GetPageFetches(runUUID)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, 1, pages[0].PageNumber)
	assert.True(t, pages[0].HasNext)
	assert.Equal(t, 4, pages[0].Rows)
	assert.Equal(t, "c2", pages[1].Cursor)
	assert.Equal(t, 5, pages[1].FetchTime)
}

func TestLoggingService_FailedRun(t *testing.T) {
	service := newTestLoggingService(t)
	runUUID := uuid.New().String()

	require.NoError(t, service.StartRun(runUUID, testVideoID, "out.csv"))
	require.NoError(t, service.FinishRun(runUUID, nil, errors.New("boom")))

	run, err := service.GetRun(runUUID)
	require.NoError(t, err)
	assert.Equal(t, RUN_STATUS_FAILED, run.Status)
	assert.Equal(t, "FAILED", run.FinalState)
	assert.Equal(t, "boom", run.ErrorMessage)
}

func TestLoggingService_FinishUnknownRun(t *testing.T) {
	service := newTestLoggingService(t)
	assert.Error(t, service.FinishRun("missing", nil, errors.New("boom")))
}

func TestLoggingService_RecentRunsAndCleanup(t *testing.T) {
	service := newTestLoggingService(t)

	oldUUID := uuid.New().String()
	newUUID := uuid.New().String()
	require.NoError(t, service.StartRun(oldUUID, "old", ""))
	require.NoError(t, service.StartRun(newUUID, "new", ""))
	require.NoError(t, service.LogPageFetch(oldUUID, comments.PageEvent{VideoID: "old", Number: 1}))

	old := time.Now().AddDate(0, 0, -40)
	require.NoError(t, service.db.Model(&ScrapeRunModel{}).Where("run_uuid = ?", oldUUID).
		Updates(map[string]interface{}{"created_at": old, "started_at": old}).Error)
	require.NoError(t, service.db.Model(&PageFetchLogModel{}).Where("run_uuid = ?", oldUUID).
		Update("created_at", old).Error)

	runs, err := service.GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, newUUID, runs[0].RunUUID)

	require.NoError(t, service.CleanupOldLogs(0))
	runs, err = service.GetRecentRuns(10)
	require.NoError(t, err)
	assert.Len(t, runs, 2)

	require.NoError(t, service.CleanupOldLogs(30))
	runs, err = service.GetRecentRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, newUUID, runs[0].RunUUID)

	pages, err := service.GetPageFetches(oldUUID)
	require.NoError(t, err)
	assert.Empty(t, pages)
}

func TestShowRunHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "logs.db")
	service, err := NewLoggingService(dbPath)
	require.NoError(t, err)
	runUUID := uuid.New().String()
	require.NoError(t, service.StartRun(runUUID, testVideoID, "out.csv"))
	require.NoError(t, service.FinishRun(runUUID, nil, errors.New("boom")))
	require.NoError(t, service.Close())

	var buf bytes.Buffer
	require.NoError(t, ShowRunHistory(&buf, dbPath, 5, NewNotificationFormatter()))
	assert.Contains(t, buf.String(), "Last 1 runs")
	assert.Contains(t, buf.String(), testVideoID+" failed")
	assert.Contains(t, buf.String(), "error: boom")
}
