package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/grutapig/ytcomments/comments"
	"github.com/grutapig/ytcomments/youtubeapi"
)

// YouTubeCommentSource implements the page fetcher, reply resolver and
// total-count oracle on top of the YouTube Data API.
type YouTubeCommentSource struct {
	api      *youtubeapi.YouTubeAPIService
	pageSize int
}

func NewYouTubeCommentSource(api *youtubeapi.YouTubeAPIService, pageSize int) *YouTubeCommentSource {
	return &YouTubeCommentSource{
		api:      api,
		pageSize: pageSize,
	}
}

func (s *YouTubeCommentSource) TotalCount(ctx context.Context, videoID string) (int, error) {
	resp, err := s.api.GetVideoStatistics(ctx, youtubeapi.VideoStatisticsRequest{VideoID: videoID})
	if err != nil {
		return 0, mapAPIError(err, videoID)
	}
	if len(resp.Items) == 0 {
		return 0, &comments.ResourceNotFoundError{VideoID: videoID}
	}
	return int(resp.Items[0].Statistics.CommentCount), nil
}

func (s *YouTubeCommentSource) FetchPage(ctx context.Context, videoID, cursor string) (*comments.Page, error) {
	resp, err := s.api.GetCommentThreads(ctx, youtubeapi.CommentThreadsRequest{
		VideoID:    videoID,
		PageToken:  cursor,
		MaxResults: s.pageSize,
	})
	var fieldErr *youtubeapi.FieldError
	if err != nil && !errors.As(err, &fieldErr) {
		return nil, mapAPIError(err, videoID)
	}

	page := &comments.Page{
		Threads:    make([]comments.ThreadRecord, 0, len(resp.Items)),
		NextCursor: resp.NextPageToken,
	}
	for _, item := range resp.Items {
		thread := comments.ThreadRecord{
			ID:         item.ID,
			TopLevel:   convertComment(item.Snippet.TopLevelComment),
			HasReplies: item.HasReplies(),
		}
		if item.Replies != nil {
			for _, reply := range item.Replies.Comments {
				thread.InlineReplies = append(thread.InlineReplies, convertComment(reply))
			}
		}
		page.Threads = append(page.Threads, thread)
	}

	if fieldErr != nil {
		return page, &comments.ProtocolDriftError{Field: fieldErr.Field, Detail: fieldErr.Detail}
	}
	return page, nil
}

// ResolveReplies follows the comments.list cursor until the reply list is complete.
func (s *YouTubeCommentSource) ResolveReplies(ctx context.Context, parentID string) ([]comments.Comment, error) {
	var replies []comments.Comment
	pageToken := ""
	pageCount := 0

	for {
		pageCount++
		resp, err := s.api.GetComments(ctx, youtubeapi.CommentsRequest{
			ParentID:   parentID,
			PageToken:  pageToken,
			MaxResults: s.pageSize,
		})
		var fieldErr *youtubeapi.FieldError
		if err != nil && !errors.As(err, &fieldErr) {
			return nil, mapAPIError(err, parentID)
		}

		for _, item := range resp.Items {
			replies = append(replies, convertComment(item))
		}

		if fieldErr != nil {
			log.Printf("YouTubeCommentSource: replies of %s page %d: %v, keeping %d replies", parentID, pageCount, fieldErr, len(replies))
			break
		}
		if resp.NextPageToken == "" {
			break
		}
		pageToken = resp.NextPageToken
	}

	return replies, nil
}

func convertComment(c youtubeapi.Comment) comments.Comment {
	return comments.Comment{
		ID:               c.ID,
		AuthorName:       c.Snippet.AuthorDisplayName,
		Text:             c.Snippet.TextDisplay,
		LikeCount:        c.Snippet.LikeCount,
		PublishedAt:      c.Snippet.PublishedAt,
		AuthorChannelURL: c.Snippet.AuthorChannelURL,
		AuthorChannelID:  c.Snippet.AuthorChannelID.Value,
		CanRate:          c.Snippet.CanRate,
		ViewerRating:     c.Snippet.ViewerRating,
		UpdatedAt:        c.Snippet.UpdatedAt,
	}
}

// mapAPIError converts API errors into the comments error taxonomy.
func mapAPIError(err error, resourceID string) error {
	var apiErr *youtubeapi.APIError
	if !errors.As(err, &apiErr) {
		return err
	}
	switch {
	case apiErr.IsCredential():
		reason := apiErr.Reason
		if apiErr.DetailReason != "" {
			reason = apiErr.DetailReason
		}
		return &comments.CredentialError{Reason: reason, Err: apiErr}
	case apiErr.IsNotFound():
		return &comments.ResourceNotFoundError{VideoID: resourceID, Err: apiErr}
	}
	return fmt.Errorf("youtube api: %w", apiErr)
}
