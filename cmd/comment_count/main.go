package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/grutapig/ytcomments/comments"
	"github.com/grutapig/ytcomments/youtubeapi"
	"github.com/joho/godotenv"
)

// comment_count prints the statistics the API reports for each video given on the command line.
func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <video url or id>...\n", os.Args[0])
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		fmt.Printf("⚠️ .env not loaded: %v\n", err)
	}
	api, err := youtubeapi.NewYouTubeAPIService(os.Getenv(youtubeapi.ENV_YOUTUBE_API_KEY), os.Getenv(youtubeapi.ENV_YOUTUBE_API_BASE_URL), os.Getenv(youtubeapi.ENV_PROXY_DSN))
	panicErr(err)

	failed := 0
	for _, locator := range os.Args[1:] {
		if err := printStatistics(api, locator); err != nil {
			fmt.Printf("❌ %s: %v\n", locator, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func printStatistics(api *youtubeapi.YouTubeAPIService, locator string) error {
	videoID, err := comments.ParseVideoID(locator)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	resp, err := api.GetVideoStatistics(ctx, youtubeapi.VideoStatisticsRequest{VideoID: videoID})
	if err != nil {
		return err
	}
	if len(resp.Items) == 0 {
		return errors.New(comments.MessageVideoNotFound)
	}

	stats := resp.Items[0].Statistics
	fmt.Printf("📊 %s\n", videoID)
	fmt.Printf("   - Comments: %d\n", stats.CommentCount)
	fmt.Printf("   - Views: %d\n", stats.ViewCount)
	fmt.Printf("   - Likes: %d\n", stats.LikeCount)
	return nil
}

func panicErr(err error) {
	if err != nil {
		panic(err)
	}
}
