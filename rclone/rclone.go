package rclone

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"hlsbot/progress"
)

var (
	reportInterval = 2 * time.Second
	rcloneBin      = "rclone"
)

// Uploader pushes local trees to a fixed rclone remote.
type Uploader struct {
	Remote string
}

// Version returns rclone's version banner.
func Version() (string, error) {
	out, err := exec.Command(rcloneBin, "version").Output()
	return strings.TrimSpace(string(out)), err
}

// Upload copies dir to the remote. Percentages are parsed from the tool's
// combined output by the foreground drain; a background reporter delivers
// the latest value to notify every interval until the copy finishes, then
// stops within one interval. Any failure to launch or run the tool is
// reported through notify and returned as false rather than an error the
// caller has to unwind.
func (u Uploader) Upload(ctx context.Context, dir string, notify func(text string)) bool {
	notify("Starting upload...")

	args := []string{"copy", dir, u.Remote, "--verbose", "--progress"}
	log.Infoln("rclone", strings.Join(args, " "))
	cmd := exec.CommandContext(ctx, rcloneBin, args...)

	// rclone splits its chatter across stdout and stderr; merge them so
	// one drain sees everything.
	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		pw.Close()
		pr.Close()
		log.Errorf("rclone error: %v", err)
		notify(fmt.Sprintf("Upload failed: %v", err))
		return false
	}

	tracker := &progress.Tracker{}
	go report(tracker, notify)

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
		pw.Close()
	}()

	if err := progress.Drain(pr, progress.Percent{}, tracker.Set); err != nil {
		log.Errorf("reading rclone output: %v", err)
	}

	err := <-waitErr
	tracker.Finish()
	if err != nil {
		log.Errorf("rclone error: %v", err)
		notify(fmt.Sprintf("Upload failed: %v", err))
		return false
	}

	notify("Upload completed successfully!")
	return true
}

// report runs in the background while the copy is in flight. It polls the
// shared tracker instead of reacting to every output line, which bounds
// the message-edit rate no matter how chatty the tool is.
func report(tracker *progress.Tracker, notify func(text string)) {
	ticker := time.NewTicker(reportInterval)
	defer ticker.Stop()
	for range ticker.C {
		if tracker.Done() {
			return
		}
		notify(fmt.Sprintf("Uploading to server... %d%%", tracker.Current()))
	}
}
