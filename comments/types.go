package comments

import (
	"context"
	"math"
	"strings"
)

// Comment is a single comment as delivered by the API, either a thread's
// top-level comment or one of its replies.
type Comment struct {
	ID               string
	AuthorName       string
	Text             string
	LikeCount        int
	PublishedAt      string
	AuthorChannelURL string
	AuthorChannelID  string
	CanRate          bool
	ViewerRating     string
	UpdatedAt        string
}

// ThreadRecord is one top-level comment plus the indicator of whether replies exist.
// InlineReplies holds whatever the page response carried inline; it is not trusted
// to be complete.
type ThreadRecord struct {
	ID            string
	TopLevel      Comment
	HasReplies    bool
	InlineReplies []Comment
}

// Page is a batch of thread records. An empty NextCursor marks the terminal page.
type Page struct {
	Threads    []ThreadRecord
	NextCursor string
}

// CommentRow is one flattened dataset row.
type CommentRow struct {
	Author           string
	Text             string
	LikeCount        int
	ID               string
	PublishDate      string
	AuthorChannelURL string
	AuthorChannelID  string
	CanRate          bool
	ViewerRating     string
	UpdatedAt        string
}

// NormalizeLineBreaks rewrites CRLF pairs as LF. CSV readers fold a quoted CRLF
// into LF, so rows carry LF only to read back unchanged.
func NormalizeLineBreaks(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

func rowFromComment(c Comment) CommentRow {
	likes := c.LikeCount
	if likes < 0 {
		likes = 0
	}
	return CommentRow{
		Author:           c.AuthorName,
		Text:             NormalizeLineBreaks(c.Text),
		LikeCount:        likes,
		ID:               c.ID,
		PublishDate:      c.PublishedAt,
		AuthorChannelURL: c.AuthorChannelURL,
		AuthorChannelID:  c.AuthorChannelID,
		CanRate:          c.CanRate,
		ViewerRating:     c.ViewerRating,
		UpdatedAt:        c.UpdatedAt,
	}
}

// Progress is the pair (scraped count, expected total).
type Progress struct {
	Scraped int
	Total   int
}

// Fraction returns Scraped/Total rounded to two decimal places, or 0 when the
// total is unknown.
func (p Progress) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	return math.Round(float64(p.Scraped)/float64(p.Total)*100) / 100
}

// PageFetcher returns one page of thread records for a video.
type PageFetcher interface {
	FetchPage(ctx context.Context, videoID, cursor string) (*Page, error)
}

// ReplyResolver returns the full ordered reply list for a parent comment.
type ReplyResolver interface {
	ResolveReplies(ctx context.Context, parentID string) ([]Comment, error)
}

// TotalCountOracle reports the expected number of comments for a video.
type TotalCountOracle interface {
	TotalCount(ctx context.Context, videoID string) (int, error)
}

// ProgressSink receives a report after every appended row.
type ProgressSink interface {
	Report(p Progress)
}

// ProgressFunc adapts a plain function to ProgressSink.
type ProgressFunc func(p Progress)

func (f ProgressFunc) Report(p Progress) { f(p) }

type nopSink struct{}

func (nopSink) Report(Progress) {}
