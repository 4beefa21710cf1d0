package youtubeapi

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

type YouTubeAPIService struct {
	apiKey     string
	baseUrl    string
	httpClient *http.Client
}

func NewYouTubeAPIService(apiKey string, baseUrl string, proxyDSN string) (*YouTubeAPIService, error) {
	transport := &http.Transport{}
	if proxyDSN != "" {
		proxyURL, err := url.Parse(proxyDSN)
		if err != nil {
			return nil, fmt.Errorf("error parse proxy dsn: %w", err)
		}

		transport = &http.Transport{
			Proxy: http.ProxyURL(proxyURL),
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: false,
			},
		}
	}
	if baseUrl == "" {
		baseUrl = DefaultBaseURL
	}

	return &YouTubeAPIService{
		apiKey:  apiKey,
		baseUrl: strings.TrimRight(baseUrl, "/"),
		httpClient: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}, nil
}

func (s *YouTubeAPIService) makeRequest(ctx context.Context, uri string, params map[string]string) (*APIResponse, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", uri, nil)
	if err != nil {
		return nil, fmt.Errorf("error create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	q := req.URL.Query()
	for key, value := range params {
		if value != "" {
			q.Add(key, value)
		}
	}
	q.Set("key", s.apiKey)

	req.URL.RawQuery = q.Encode()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error read response: %w", err)
	}

	return &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		RawBody:    bodyBytes,
	}, nil
}

// GetCommentThreads calls commentThreads.list. A *FieldError is returned together
// with the decoded response when a pagination field is missing or malformed.
func (s *YouTubeAPIService) GetCommentThreads(ctx context.Context, req CommentThreadsRequest) (*CommentThreadsResponse, error) {
	uri := s.baseUrl + "/commentThreads"

	params := map[string]string{
		"part":       PartThreads,
		"videoId":    req.VideoID,
		"maxResults": strconv.Itoa(clampPageSize(req.MaxResults)),
		"textFormat": TextFormatPlain,
		"pageToken":  req.PageToken,
	}

	response, err := s.makeRequest(ctx, uri, params)
	if err != nil {
		return nil, fmt.Errorf("error comment threads: %w", err)
	}
	if response.StatusCode != 200 {
		return nil, parseAPIError(response)
	}

	body, fieldErr := checkPaginationFields(response.RawBody)
	threadsResponse := CommentThreadsResponse{}
	if err := json.Unmarshal(body, &threadsResponse); err != nil {
		return nil, fmt.Errorf("error decode comment threads: %w", err)
	}
	if fieldErr != nil {
		return &threadsResponse, fieldErr
	}
	return &threadsResponse, nil
}

// GetComments calls comments.list for the replies of one parent comment.
func (s *YouTubeAPIService) GetComments(ctx context.Context, req CommentsRequest) (*CommentsResponse, error) {
	uri := s.baseUrl + "/comments"

	params := map[string]string{
		"part":       PartSnippet,
		"parentId":   req.ParentID,
		"maxResults": strconv.Itoa(clampPageSize(req.MaxResults)),
		"textFormat": TextFormatPlain,
		"pageToken":  req.PageToken,
	}

	response, err := s.makeRequest(ctx, uri, params)
	if err != nil {
		return nil, fmt.Errorf("error comments: %w", err)
	}
	if response.StatusCode != 200 {
		return nil, parseAPIError(response)
	}

	body, fieldErr := checkPaginationFields(response.RawBody)
	commentsResponse := CommentsResponse{}
	if err := json.Unmarshal(body, &commentsResponse); err != nil {
		return nil, fmt.Errorf("error decode comments: %w", err)
	}
	if fieldErr != nil {
		return &commentsResponse, fieldErr
	}
	return &commentsResponse, nil
}

// GetVideoStatistics calls videos.list with part=statistics.
func (s *YouTubeAPIService) GetVideoStatistics(ctx context.Context, req VideoStatisticsRequest) (*VideosResponse, error) {
	uri := s.baseUrl + "/videos"

	params := map[string]string{
		"part": PartStatistics,
		"id":   req.VideoID,
	}

	response, err := s.makeRequest(ctx, uri, params)
	if err != nil {
		return nil, fmt.Errorf("error video statistics: %w", err)
	}
	if response.StatusCode != 200 {
		return nil, parseAPIError(response)
	}

	videosResponse := VideosResponse{}
	if err := json.Unmarshal(response.RawBody, &videosResponse); err != nil {
		return nil, fmt.Errorf("error decode video statistics: %w", err)
	}
	return &videosResponse, nil
}
