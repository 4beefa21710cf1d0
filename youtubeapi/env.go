package youtubeapi

const ENV_YOUTUBE_API_KEY = "youtube_api_key"
const ENV_YOUTUBE_API_BASE_URL = "youtube_api_base_url"
const ENV_PROXY_DSN = "proxy_dsn"
