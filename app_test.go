package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/grutapig/ytcomments/comments"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	summaries []RunSummary
}

func (n *recordingNotifier) NotifyRun(summary RunSummary) {
	n.summaries = append(n.summaries, summary)
}

// buildTestApp wires the application through the container against a fake API.
func buildTestApp(t *testing.T, locator string) (*fakeYouTube, *Application, *recordingNotifier) {
	t.Helper()
	fake, server := newFakeYouTube(t)
	dir := t.TempDir()

	clearConfigEnv(t)
	t.Setenv(ENV_YOUTUBE_API_BASE_URL, server.URL)
	t.Setenv(ENV_LOGGING_DATABASE_PATH, filepath.Join(dir, "logs.db"))

	container, err := BuildContainer(&CLIOptions{
		APIKey:     "test-key",
		Video:      locator,
		OutputFile: filepath.Join(dir, "out.csv"),
	})
	require.NoError(t, err)

	var app *Application
	require.NoError(t, container.Invoke(func(a *Application) { app = a }))
	require.NoError(t, app.Initialize())
	t.Cleanup(app.Shutdown)

	notifier := &recordingNotifier{}
	app.notifier = notifier
	return fake, app, notifier
}

func TestApplication_RunWritesCSV(t *testing.T) {
	fake, app, notifier := buildTestApp(t, "https://www.youtube.com/watch?v="+testVideoID)
	fake.onVideos(http.StatusOK, videosBody(5))
	fake.onThreads("", listBody("page-2",
		threadItem("t1", "alice", "first", 4, 2),
		threadItem("t2", "bob", "second", 0, 0),
	))
	fake.onReplies("t1", "", listBody("", replyItem("t1.a", "carol", "reply a"), replyItem("t1.b", "dave", "reply b")))
	fake.onThreads("page-2", listBody("", threadItem("t3", "erin", "third", 1, 0)))

	summary, err := app.Run(context.Background())
	require.NoError(t, err)
	require.NotNil(t, summary.Outcome)
	assert.Equal(t, comments.StateDone, summary.Outcome.State)
	assert.Equal(t, comments.Progress{Scraped: 5, Total: 5}, summary.Outcome.Progress)

	rows, err := ReadCommentsCSV(app.config.OutputFile)
	require.NoError(t, err)
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	assert.Equal(t, []string{"t1", "t1.a", "t1.b", "t2", "t3"}, ids)
	assert.Equal(t, "alice", rows[0].Author)
	assert.Equal(t, "UCalice", rows[0].AuthorChannelID)

	run, err := app.loggingService.GetRun(summary.RunUUID)
	require.NoError(t, err)
	assert.Equal(t, RUN_STATUS_DONE, run.Status)
	assert.Equal(t, 5, run.RowsScraped)
	assert.Equal(t, 2, run.PagesFetched)

	pages, err := app.loggingService.GetPageFetches(summary.RunUUID)
	require.NoError(t, err)
	require.Len(t, pages, 2)
	assert.Equal(t, "page-2", pages[1].Cursor)

	require.Len(t, notifier.summaries, 1)
	assert.NoError(t, notifier.summaries[0].Err)
}

func TestApplication_RunInvalidCredential(t *testing.T) {
	fake, app, notifier := buildTestApp(t, "https://youtu.be/"+testVideoID)
	fake.onVideos(http.StatusBadRequest, apiErrorBody(400, "keyInvalid", "API key not valid. Please pass a valid API key."))

	summary, err := app.Run(context.Background())
	var credErr *comments.CredentialError
	require.True(t, errors.As(err, &credErr))
	assert.Equal(t, comments.MessageInvalidCredential, comments.UserMessage(err))
	assert.Nil(t, summary.Outcome)

	_, statErr := os.Stat(app.config.OutputFile)
	assert.True(t, os.IsNotExist(statErr))
	assert.Equal(t, []string{routeKey("/videos", "", "")}, fake.requestPaths())

	run, err := app.loggingService.GetRun(summary.RunUUID)
	require.NoError(t, err)
	assert.Equal(t, RUN_STATUS_FAILED, run.Status)
	require.Len(t, notifier.summaries, 1)
}

func TestApplication_RunProtocolDrift(t *testing.T) {
	fake, app, _ := buildTestApp(t, testVideoID)
	fake.onVideos(http.StatusOK, videosBody(10))
	fake.onThreads("", listBody("page-2", threadItem("t1", "alice", "first", 0, 0)))
	fake.onThreads("page-2", `{"nextPageToken":{"broken":true},"items":[`+threadItem("t2", "bob", "second", 0, 0)+`]}`)

	summary, err := app.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, comments.EndProtocolDrift, summary.Outcome.EndReason)
	assert.Equal(t, 2, summary.Outcome.Progress.Scraped)

	rows, err := ReadCommentsCSV(app.config.OutputFile)
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	run, err := app.loggingService.GetRun(summary.RunUUID)
	require.NoError(t, err)
	assert.Equal(t, "protocol_drift", run.EndReason)
}

func TestApplication_RunInvalidLocator(t *testing.T) {
	fake, app, notifier := buildTestApp(t, "not a url")

	summary, err := app.Run(context.Background())
	assert.Nil(t, summary)
	assert.Equal(t, comments.MessageInvalidLocator, comments.UserMessage(err))
	assert.Empty(t, fake.requestPaths())
	assert.Empty(t, notifier.summaries)
}
