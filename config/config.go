package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// GetPublicBaseURL is the public prefix rewritten into every playlist,
// e.g. https://cdn.example.com/hls-automated
func GetPublicBaseURL() (string, error) {
	key := "HLSBOT_PUBLIC_BASE_URL"
	value, exists := os.LookupEnv(key)
	if exists {
		return value, nil
	}
	return "", fmt.Errorf("please set %s", key)
}

func GetCatalogEndpoint() (string, error) {
	key := "HLSBOT_CATALOG_ENDPOINT"
	value, exists := os.LookupEnv(key)
	if exists {
		return value, nil
	}
	return "", fmt.Errorf("please set %s", key)
}

func GetImageEndpoint() (string, error) {
	key := "HLSBOT_IMAGE_ENDPOINT"
	value, exists := os.LookupEnv(key)
	if exists {
		return value, nil
	}
	return "", fmt.Errorf("please set %s", key)
}

func GetThreadsCount() (int, error) {
	key := "HLSBOT_THREADS_COUNT"
	value, exists := os.LookupEnv(key)
	if !exists {
		return 0, fmt.Errorf("please set %s", key)
	}
	threads, err := strconv.Atoi(value)
	if err != nil || threads < 1 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, value)
	}
	return threads, nil
}

// defaults to an hls-automated directory one level above the working dir
func GetStagingDir() string {
	value, exists := os.LookupEnv("HLSBOT_STAGING_DIR")
	if exists {
		return value
	}
	return filepath.Join("..", "hls-automated")
}

func GetDownloadDir() string {
	value, exists := os.LookupEnv("HLSBOT_DOWNLOAD_DIR")
	if exists {
		return value
	}
	return "downloaded_files"
}

func GetRcloneRemote() string {
	value, exists := os.LookupEnv("HLSBOT_RCLONE_REMOTE")
	if exists {
		return value
	}
	return "od:public/hls-automated"
}

func GetListenAddr() string {
	value, exists := os.LookupEnv("HLSBOT_LISTEN_ADDR")
	if exists {
		return value
	}
	return ":8080"
}

// empty means the HTTP surface is the only way to submit jobs
func GetTelegramToken() string {
	return os.Getenv("HLSBOT_TELEGRAM_TOKEN")
}

func GetTelegramAPIURL() string {
	value, exists := os.LookupEnv("HLSBOT_TELEGRAM_API_URL")
	if exists {
		return value
	}
	return "https://api.telegram.org"
}

// empty disables translation entirely
func GetTranslateEndpoint() string {
	return os.Getenv("HLSBOT_TRANSLATE_ENDPOINT")
}

// GetKeepStaging returns how long finished job directories stay on local
// disk before the cleanup pass removes them.
func GetKeepStaging() time.Duration {
	key := "HLSBOT_KEEP_STAGING_HOURS"
	if value, exists := os.LookupEnv(key); exists {
		if hours, err := strconv.Atoi(value); err == nil && hours > 0 {
			return time.Duration(hours) * time.Hour
		}
	}
	return 72 * time.Hour
}

func GetLogLevel() string {
	value, exists := os.LookupEnv("HLSBOT_LOG_LEVEL")
	if exists {
		return value
	}
	return "debug"
}

// Validate fails fast on anything required at startup, so a missing
// endpoint can never silently produce malformed URLs later.
func Validate() error {
	if _, err := GetPublicBaseURL(); err != nil {
		return err
	}
	if _, err := GetCatalogEndpoint(); err != nil {
		return err
	}
	if _, err := GetImageEndpoint(); err != nil {
		return err
	}
	if _, err := GetThreadsCount(); err != nil {
		return err
	}
	return nil
}
