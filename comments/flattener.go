package comments

import (
	"context"
	"log"
)

// Flattener converts pages of nested thread records into flat rows.
type Flattener struct {
	replies ReplyResolver
	sink    ProgressSink
}

// NewFlattener returns a Flattener. A nil sink discards progress reports.
func NewFlattener(replies ReplyResolver, sink ProgressSink) *Flattener {
	if sink == nil {
		sink = nopSink{}
	}
	return &Flattener{
		replies: replies,
		sink:    sink,
	}
}

// FlattenPage emits each top-level comment followed immediately by its replies,
// reporting progress once per emitted row.
func (f *Flattener) FlattenPage(ctx context.Context, page *Page, progress Progress) ([]CommentRow, Progress, error) {
	if page == nil {
		return nil, progress, nil
	}

	rows := make([]CommentRow, 0, len(page.Threads))
	for _, thread := range page.Threads {
		rows = append(rows, rowFromComment(thread.TopLevel))
		progress.Scraped++
		f.sink.Report(progress)

		if !thread.HasReplies {
			continue
		}

		// inline replies are capped by the API, always resolve the full list
		replies, err := f.replies.ResolveReplies(ctx, thread.ID)
		if err != nil {
			return nil, progress, &FetchError{Op: "resolve replies for " + thread.ID, Err: err}
		}
		if len(replies) == 0 {
			log.Printf("Flattener: thread %s flagged with replies but none returned", thread.ID)
		} else if len(replies) < len(thread.InlineReplies) {
			log.Printf("Flattener: thread %s resolved %d replies, fewer than the %d delivered inline", thread.ID, len(replies), len(thread.InlineReplies))
		}
		for _, reply := range replies {
			rows = append(rows, rowFromComment(reply))
			progress.Scraped++
			f.sink.Report(progress)
		}
	}

	return rows, progress, nil
}
