package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"hlsbot/progress"
)

// runs ffmpeg with the provided args and returns (stdout, stderr, error)
func Ffmpeg(args ...string) ([]byte, []byte, error) {
	ffmpeg := "ffmpeg"
	log.Infoln(ffmpeg, strings.Join(args, " "))
	cmd := exec.Command(ffmpeg, args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()

	if err != nil {
		log.Errorf("ffmpeg error: %v", err)
		log.Errorln("stderr:", stderr.String())
	}
	return stdout.Bytes(), stderr.Bytes(), err
}

// EncodeHLS transcodes src into a segmented playlist at playlistPath with
// its segment files alongside it. height 0 keeps the source resolution;
// otherwise the output is scaled to that height with the width computed to
// preserve aspect ratio at even-pixel granularity. Every segment is
// retained (VOD playlist, no sliding window). Progress percentages parsed
// from the encoder's stderr are delivered to onProgress as they change.
// Cancelling ctx kills the encoder and unblocks the drain.
func EncodeHLS(ctx context.Context, src, playlistPath string, height, threads int, onProgress func(pct int)) error {
	args := []string{"-i", src, "-c:v", "h264", "-c:a", "aac"}
	if height > 0 {
		args = append(args, "-vf", fmt.Sprintf("scale=-2:%d", height))
	}
	args = append(args,
		"-hls_time", "10",
		"-hls_list_size", "0",
		"-threads", strconv.Itoa(threads),
		playlistPath)

	log.Infoln("ffmpeg", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, "ffmpeg", args...)
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	if err := progress.Drain(stderr, &progress.TimeRatio{}, onProgress); err != nil {
		log.Errorf("reading ffmpeg output: %v", err)
	}
	return cmd.Wait()
}

// ExtractFrame writes the single frame at `at` seconds of src to dst.
func ExtractFrame(src string, at float64, dst string) error {
	_, stderr, err := Ffmpeg("-ss", fmt.Sprintf("%f", at), "-i", src, "-frames:v", "1", dst)
	if err != nil {
		return fmt.Errorf("extract frame: %v: %s", err, stderr)
	}
	return nil
}
