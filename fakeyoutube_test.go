package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

const testVideoID = "dQw4w9WgXcQ"

type fakeResponse struct {
	Status int
	Body   string
}

// fakeYouTube serves canned responses keyed by path, parentId and pageToken.
type fakeYouTube struct {
	t         *testing.T
	mu        sync.Mutex
	responses map[string]fakeResponse
	requests  []string
}

func newFakeYouTube(t *testing.T) (*fakeYouTube, *httptest.Server) {
	t.Helper()
	f := &fakeYouTube{t: t, responses: make(map[string]fakeResponse)}
	server := httptest.NewServer(f)
	t.Cleanup(server.Close)
	return f, server
}

func routeKey(path, parentID, pageToken string) string {
	return path + "|" + parentID + "|" + pageToken
}

func (f *fakeYouTube) on(path, parentID, pageToken string, status int, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[routeKey(path, parentID, pageToken)] = fakeResponse{Status: status, Body: body}
}

func (f *fakeYouTube) onVideos(status int, body string) {
	f.on("/videos", "", "", status, body)
}

func (f *fakeYouTube) onThreads(pageToken string, body string) {
	f.on("/commentThreads", "", pageToken, http.StatusOK, body)
}

func (f *fakeYouTube) onReplies(parentID, pageToken string, body string) {
	f.on("/comments", parentID, pageToken, http.StatusOK, body)
}

func (f *fakeYouTube) requestPaths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requests...)
}

func (f *fakeYouTube) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	key := routeKey(r.URL.Path, q.Get("parentId"), q.Get("pageToken"))

	f.mu.Lock()
	f.requests = append(f.requests, key)
	resp, ok := f.responses[key]
	f.mu.Unlock()

	if !ok {
		f.t.Errorf("unexpected request %s", key)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.Status)
	fmt.Fprint(w, resp.Body)
}

func videosBody(commentCount int) string {
	return fmt.Sprintf(`{"items":[{"id":%q,"statistics":{"viewCount":"100","likeCount":"10","commentCount":"%d"}}]}`, testVideoID, commentCount)
}

func listBody(nextPageToken string, items ...string) string {
	token := ""
	if nextPageToken != "" {
		token = fmt.Sprintf(`"nextPageToken":%q,`, nextPageToken)
	}
	return fmt.Sprintf(`{%s"items":[%s]}`, token, strings.Join(items, ","))
}

func threadItem(id, author, text string, likes, replyCount int) string {
	return fmt.Sprintf(`{"id":%q,"snippet":{"videoId":%q,"topLevelComment":{"id":%q,"snippet":{"authorDisplayName":%q,"textDisplay":%q,"likeCount":%d,"publishedAt":"2024-01-01T00:00:00Z","authorChannelId":{"value":"UC%s"}}},"totalReplyCount":%d}}`,
		id, testVideoID, id, author, text, likes, author, replyCount)
}

func replyItem(id, author, text string) string {
	return fmt.Sprintf(`{"id":%q,"snippet":{"authorDisplayName":%q,"textDisplay":%q,"likeCount":1,"publishedAt":"2024-01-02T00:00:00Z"}}`, id, author, text)
}

func apiErrorBody(code int, reason, message string) string {
	return fmt.Sprintf(`{"error":{"code":%d,"message":%q,"errors":[{"message":%q,"domain":"global","reason":%q}]}}`, code, message, message, reason)
}
