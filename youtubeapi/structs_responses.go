package youtubeapi

type APIResponse struct {
	StatusCode int                 `json:"status_code"`
	Headers    map[string][]string `json:"headers"`
	RawBody    []byte              `json:"raw_body"`
}

type PageInfo struct {
	TotalResults   int `json:"totalResults"`
	ResultsPerPage int `json:"resultsPerPage"`
}

type CommentSnippet struct {
	VideoID               string `json:"videoId"`
	ParentID              string `json:"parentId,omitempty"`
	AuthorDisplayName     string `json:"authorDisplayName"`
	AuthorProfileImageURL string `json:"authorProfileImageUrl"`
	AuthorChannelURL      string `json:"authorChannelUrl"`
	AuthorChannelID       struct {
		Value string `json:"value"`
	} `json:"authorChannelId"`
	TextDisplay  string `json:"textDisplay"`
	TextOriginal string `json:"textOriginal"`
	CanRate      bool   `json:"canRate"`
	ViewerRating string `json:"viewerRating"`
	LikeCount    int    `json:"likeCount"`
	PublishedAt  string `json:"publishedAt"`
	UpdatedAt    string `json:"updatedAt"`
}

type Comment struct {
	Kind    string         `json:"kind"`
	ID      string         `json:"id"`
	Snippet CommentSnippet `json:"snippet"`
}

type CommentThread struct {
	Kind    string `json:"kind"`
	ID      string `json:"id"`
	Snippet struct {
		VideoID         string  `json:"videoId"`
		TopLevelComment Comment `json:"topLevelComment"`
		CanReply        bool    `json:"canReply"`
		TotalReplyCount int     `json:"totalReplyCount"`
		IsPublic        bool    `json:"isPublic"`
	} `json:"snippet"`
	Replies *struct {
		Comments []Comment `json:"comments"`
	} `json:"replies,omitempty"`
}

// HasReplies reports whether the thread indicates replies, inlined or not.
func (t CommentThread) HasReplies() bool {
	return t.Snippet.TotalReplyCount > 0 || t.Replies != nil
}

type CommentThreadsResponse struct {
	Kind          string          `json:"kind"`
	NextPageToken string          `json:"nextPageToken,omitempty"`
	PageInfo      PageInfo        `json:"pageInfo"`
	Items         []CommentThread `json:"items"`
}

type CommentsResponse struct {
	Kind          string    `json:"kind"`
	NextPageToken string    `json:"nextPageToken,omitempty"`
	PageInfo      PageInfo  `json:"pageInfo"`
	Items         []Comment `json:"items"`
}

type VideoStatistics struct {
	ViewCount    int64 `json:"viewCount,string"`
	LikeCount    int64 `json:"likeCount,string"`
	CommentCount int64 `json:"commentCount,string"`
}

type Video struct {
	Kind       string          `json:"kind"`
	ID         string          `json:"id"`
	Statistics VideoStatistics `json:"statistics"`
}

type VideosResponse struct {
	Kind     string   `json:"kind"`
	PageInfo PageInfo `json:"pageInfo"`
	Items    []Video  `json:"items"`
}
