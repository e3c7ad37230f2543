package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"golang.org/x/sys/unix"

	"hlsbot/config"
	"hlsbot/ffmpeg"
	"hlsbot/rclone"
)

// getFreeSpace returns the free space in bytes for the filesystem
// containing the given directory
func getFreeSpace(dir string) (uint64, error) {
	var stat unix.Statfs_t
	err := unix.Statfs(dir, &stat)
	if err != nil {
		return 0, fmt.Errorf("error getting filesystem stats: %v", err)
	}
	return stat.Bavail * uint64(stat.Bsize), nil
}

// getDirectorySize calculates the total size of a directory in bytes
func getDirectorySize(dir string) (int64, error) {
	var size int64
	err := filepath.Walk(dir, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("error walking directory: %v", err)
	}
	return size, nil
}

func StatusGet(c echo.Context) error {

	ffmpegStdout, _, err := ffmpeg.Ffmpeg("-version")
	if err != nil {
		log.Errorln(err)
	}
	rcloneVersion, err := rclone.Version()
	if err != nil {
		log.Errorln(err)
	}

	staging := config.GetStagingDir()
	free, err := getFreeSpace(staging)
	if err != nil {
		log.Errorln(err)
	}
	used, err := getDirectorySize(staging)
	if err != nil {
		log.Errorln(err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"ffmpeg":      string(ffmpegStdout),
		"rclone":      rcloneVersion,
		"staging_dir": staging,
		"free_mib":    fmt.Sprintf("%.2f", float64(free)/1024/1024),
		"used_mib":    fmt.Sprintf("%.2f", float64(used)/1024/1024),
	})
}
