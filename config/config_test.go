package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("HLSBOT_PUBLIC_BASE_URL", "https://cdn.example/hls-automated")
	t.Setenv("HLSBOT_CATALOG_ENDPOINT", "https://catalog.example/api/videos")
	t.Setenv("HLSBOT_IMAGE_ENDPOINT", "https://img.example/upload")
	t.Setenv("HLSBOT_THREADS_COUNT", "4")
}

func TestValidate(t *testing.T) {
	setRequired(t)
	assert.NoError(t, Validate())
}

func TestValidate_MissingVar(t *testing.T) {
	setRequired(t)
	// t.Setenv registered the restore; unset for real to simulate absence
	require.NoError(t, os.Unsetenv("HLSBOT_CATALOG_ENDPOINT"))
	assert.Error(t, Validate())
}

func TestGetThreadsCount(t *testing.T) {
	t.Setenv("HLSBOT_THREADS_COUNT", "8")
	threads, err := GetThreadsCount()
	require.NoError(t, err)
	assert.Equal(t, 8, threads)

	t.Setenv("HLSBOT_THREADS_COUNT", "zero")
	_, err = GetThreadsCount()
	assert.Error(t, err)

	t.Setenv("HLSBOT_THREADS_COUNT", "-2")
	_, err = GetThreadsCount()
	assert.Error(t, err)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, ":8080", GetListenAddr())
	assert.Equal(t, "od:public/hls-automated", GetRcloneRemote())
	assert.Equal(t, 72*time.Hour, GetKeepStaging())

	t.Setenv("HLSBOT_KEEP_STAGING_HOURS", "12")
	assert.Equal(t, 12*time.Hour, GetKeepStaging())
}
