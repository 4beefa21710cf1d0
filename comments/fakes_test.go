package comments

import (
	"context"
	"fmt"
)

type fakeFetcher struct {
	pages   map[string]*Page
	errs    map[string]error
	cursors []string
}

func (f *fakeFetcher) FetchPage(_ context.Context, _ string, cursor string) (*Page, error) {
	f.cursors = append(f.cursors, cursor)
	if err, ok := f.errs[cursor]; ok {
		return f.pages[cursor], err
	}
	page, ok := f.pages[cursor]
	if !ok {
		return nil, fmt.Errorf("no page for cursor %q", cursor)
	}
	return page, nil
}

type fakeReplies struct {
	replies map[string][]Comment
	err     error
	calls   []string
}

func (f *fakeReplies) ResolveReplies(_ context.Context, parentID string) ([]Comment, error) {
	f.calls = append(f.calls, parentID)
	if f.err != nil {
		return nil, f.err
	}
	return f.replies[parentID], nil
}

type fakeOracle struct {
	total int
	err   error
	calls int
}

func (f *fakeOracle) TotalCount(context.Context, string) (int, error) {
	f.calls++
	return f.total, f.err
}

type recordingSink struct {
	reports []Progress
}

func (s *recordingSink) Report(p Progress) {
	s.reports = append(s.reports, p)
}

func comment(id string) Comment {
	return Comment{
		ID:          id,
		AuthorName:  "author-" + id,
		Text:        "text of " + id,
		LikeCount:   1,
		PublishedAt: "2023-01-02T03:04:05Z",
	}
}

func thread(id string, replies bool) ThreadRecord {
	return ThreadRecord{ID: id, TopLevel: comment(id), HasReplies: replies}
}

func rowIDs(rows []CommentRow) []string {
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
