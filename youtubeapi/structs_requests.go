package youtubeapi

const (
	DefaultBaseURL     = "https://www.googleapis.com/youtube/v3"
	MaxPageSize        = 100
	TextFormatPlain    = "plainText"
	PartThreads        = "snippet,replies"
	PartSnippet        = "snippet"
	PartStatistics     = "statistics"
	FieldNextPageToken = "nextPageToken"
	FieldItems         = "items"
)

type CommentThreadsRequest struct {
	VideoID    string
	PageToken  string
	MaxResults int
}

type CommentsRequest struct {
	ParentID   string
	PageToken  string
	MaxResults int
}

type VideoStatisticsRequest struct {
	VideoID string
}

func clampPageSize(n int) int {
	return min(MaxPageSize, max(1, n))
}
