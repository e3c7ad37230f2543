package ffmpeg

import (
	"bytes"
	"encoding/json"
	"errors"
	"os/exec"
	"strconv"
	"strings"
)

// runs ffprobe with the provided args and returns (stdout, stderr, error)
func Ffprobe(args ...string) ([]byte, []byte, error) {
	ffprobe := "ffprobe"
	log.Infoln(ffprobe, strings.Join(args, " "))
	cmd := exec.Command(ffprobe, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if err != nil {
		log.Errorf("ffprobe error: %v", err)
		log.Errorln("stderr:", stderr.String())
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

type probeOutput struct {
	Streams []struct {
		Width  int `json:"width"`
		Height int `json:"height"`
	} `json:"streams"`
}

// Dimensions returns the pixel width and height of the first video stream.
func Dimensions(path string) (int, int, error) {
	stdout, _, err := Ffprobe("-v", "error", "-select_streams", "v:0",
		"-show_entries", "stream=width,height", "-of", "json", path)
	if err != nil {
		return 0, 0, err
	}

	var out probeOutput
	if err := json.Unmarshal(stdout, &out); err != nil {
		log.Errorln("failed to parse ffprobe output:", err)
		return 0, 0, err
	}
	if len(out.Streams) == 0 {
		return 0, 0, errors.New("no video stream found")
	}
	return out.Streams[0].Width, out.Streams[0].Height, nil
}

// DurationSeconds returns the length in seconds of the media file at path.
func DurationSeconds(path string) (float64, error) {
	stdout, _, err := Ffprobe("-v", "error", "-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1", path)
	if err != nil {
		return 0, err
	}

	result, err := strconv.ParseFloat(strings.TrimSpace(string(stdout)), 64)
	if err != nil {
		log.Errorln("failed to parse ffprobe duration:", err)
		return 0, err
	}
	return result, nil
}
