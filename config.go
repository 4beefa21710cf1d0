package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/grutapig/ytcomments/youtubeapi"
)

const ENV_YOUTUBE_API_KEY = youtubeapi.ENV_YOUTUBE_API_KEY
const ENV_YOUTUBE_API_BASE_URL = youtubeapi.ENV_YOUTUBE_API_BASE_URL
const ENV_PROXY_DSN = youtubeapi.ENV_PROXY_DSN
const ENV_VIDEO = "video"
const ENV_OUTPUT_FILE = "output_file"
const ENV_PAGE_SIZE = "page_size"
const ENV_LOGGING_DATABASE_PATH = "logging_database_path"
const ENV_LOG_RETENTION_DAYS = "log_retention_days"
const ENV_TELEGRAM_API_KEY = "telegram_api_key"
const ENV_TELEGRAM_API_ENDPOINT = "telegram_api_endpoint"
const ENV_TELEGRAM_ADMIN_CHAT_ID = "tg_admin_chat_id"

const DEFAULT_OUTPUT_FILE = "youtube_comments.csv"
const DEFAULT_LOGGING_DATABASE_PATH = "scrape_logs.db"
const DEFAULT_PAGE_SIZE = youtubeapi.MaxPageSize
const DEFAULT_LOG_RETENTION_DAYS = 30

type Config struct {
	YouTubeAPIKey       string
	YouTubeAPIBaseURL   string
	ProxyDSN            string
	VideoLocator        string
	OutputFile          string
	PageSize            int
	LoggingDBPath       string
	LogRetentionDays    int
	TelegramAPIKey      string
	TelegramAPIEndpoint string
	TelegramAdminChatID int64
}

// CLIOptions carries command line values; non-empty fields win over the environment.
type CLIOptions struct {
	APIKey     string
	Video      string
	OutputFile string
}

func ProvideConfig(opts *CLIOptions) (*Config, error) {
	if opts == nil {
		opts = &CLIOptions{}
	}

	apiKey := firstNonEmpty(opts.APIKey, os.Getenv(ENV_YOUTUBE_API_KEY))
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key should be set with -key or .env: %s", ENV_YOUTUBE_API_KEY)
	}

	pageSize, err := intFromEnv(ENV_PAGE_SIZE, DEFAULT_PAGE_SIZE)
	if err != nil {
		return nil, err
	}
	retention, err := intFromEnv(ENV_LOG_RETENTION_DAYS, DEFAULT_LOG_RETENTION_DAYS)
	if err != nil {
		return nil, err
	}

	var chatID int64
	if raw := strings.TrimSpace(os.Getenv(ENV_TELEGRAM_ADMIN_CHAT_ID)); raw != "" {
		chatID, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s: %w", ENV_TELEGRAM_ADMIN_CHAT_ID, err)
		}
	}

	return &Config{
		YouTubeAPIKey:       apiKey,
		YouTubeAPIBaseURL:   firstNonEmpty(os.Getenv(ENV_YOUTUBE_API_BASE_URL), youtubeapi.DefaultBaseURL),
		ProxyDSN:            os.Getenv(ENV_PROXY_DSN),
		VideoLocator:        firstNonEmpty(opts.Video, os.Getenv(ENV_VIDEO)),
		OutputFile:          firstNonEmpty(opts.OutputFile, os.Getenv(ENV_OUTPUT_FILE), DEFAULT_OUTPUT_FILE),
		PageSize:            pageSize,
		LoggingDBPath:       firstNonEmpty(os.Getenv(ENV_LOGGING_DATABASE_PATH), DEFAULT_LOGGING_DATABASE_PATH),
		LogRetentionDays:    retention,
		TelegramAPIKey:      os.Getenv(ENV_TELEGRAM_API_KEY),
		TelegramAPIEndpoint: os.Getenv(ENV_TELEGRAM_API_ENDPOINT),
		TelegramAdminChatID: chatID,
	}, nil
}

// TelegramEnabled reports whether both the bot key and the target chat are configured.
func (c *Config) TelegramEnabled() bool {
	return c.TelegramAPIKey != "" && c.TelegramAdminChatID != 0
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func intFromEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
