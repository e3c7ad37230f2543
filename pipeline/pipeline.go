package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/k0kubun/pp/v3"

	"hlsbot/ffmpeg"
	"hlsbot/notify"
	"hlsbot/playlists"
	"hlsbot/preview"
	"hlsbot/publish"
	"hlsbot/rclone"
	"hlsbot/slug"
	"hlsbot/translate"
)

// Processor runs the transcode-and-publish sequence for one job at a
// time. The encoder, rewriter, and uploader all touch the job's staging
// directory, so they run in strict order; different jobs have disjoint
// slug-named directories.
type Processor struct {
	Notifier   notify.Notifier
	Translator translate.Translator
	Uploader   rclone.Uploader

	StagingDir      string // parent of the per-job slug directories
	PublicBaseURL   string
	CatalogEndpoint string
	ImageEndpoint   string
	Threads         int
	Policy          Policy
}

const timestampFormat = "2006-01-02 15:04:05"

// Process drives a job through every stage: translate the title and
// caption, derive the slug, encode each rendition with live progress,
// extract a preview frame, publish the catalog record, rewrite the
// playlists to public URLs, and push the staging tree to remote storage.
// Most stages report failure and keep going; see Policy and the per-stage
// comments for the exceptions.
func (p *Processor) Process(ctx context.Context, job *Job) error {
	src, name, err := fixLeadingDash(job.Source)
	if err != nil {
		return err
	}
	job.Source, job.Name = src, name

	title := strings.TrimSuffix(name, filepath.Ext(name))
	translatedTitle, err := p.Translator.Translate(title)
	if err != nil {
		log.Errorf("translate title: %v", err)
		translatedTitle = title
	}

	caption := job.Caption
	translatedCaption := translatedTitle
	if caption == "" {
		caption = translatedTitle
	} else {
		translatedCaption, err = p.Translator.Translate(caption)
		if err != nil {
			log.Errorf("translate caption: %v", err)
			translatedCaption = caption
		}
	}

	job.Slug = slug.Make(translatedTitle)
	job.OutputDir = filepath.Join(p.StagingDir, job.Slug)
	if err := os.MkdirAll(job.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create job directory: %w", err)
	}

	// informational only; encoding parameters do not depend on it
	if width, height, err := ffmpeg.Dimensions(src); err == nil {
		log.Infof("source %s is %dx%d", name, width, height)
	}

	job.Renditions = defaultRenditions()
	for i := range job.Renditions {
		r := &job.Renditions[i]
		p.send(job, startText(r))
		r.Done = p.encodeRendition(ctx, job, r)
		if !r.Done && !p.Policy.ContinueOnRenditionFailure {
			return fmt.Errorf("rendition %s failed", r.Label)
		}
	}

	previewURL, err := preview.Extract(src, p.ImageEndpoint)
	if err != nil {
		// the catalog record simply carries no preview
		log.Errorf("preview: %v", err)
		p.send(job, fmt.Sprintf("Preview upload failed: %v", err))
	}
	job.PreviewURL = previewURL

	if seconds, err := ffmpeg.DurationSeconds(src); err == nil {
		job.Length = formatLength(seconds)
	}

	rec := p.buildRecord(job, translatedCaption, caption)
	log.Debugln(pp.Sprint(rec))

	if err := publish.Submit(p.CatalogEndpoint, rec); err != nil {
		p.send(job, fmt.Sprintf("Error processing %s: %v", name, err))
	} else {
		p.send(job, fmt.Sprintf("Processed %s: %d", name, http.StatusOK))
	}

	// all renditions exist by now; a second run would be a no-op since
	// rewritten lines no longer look like bare segment names
	if err := playlists.RewriteTree(job.OutputDir, p.PublicBaseURL, job.Slug); err != nil {
		return fmt.Errorf("rewrite playlists: %w", err)
	}

	// rclone copy is incremental, so pushing the whole staging parent
	// re-syncs this job and skips everything already uploaded
	if !p.Uploader.Upload(ctx, p.StagingDir, p.statusLine(job)) {
		return fmt.Errorf("upload failed for %s", job.Slug)
	}

	p.send(job, "Video processing and upload completed!")
	return nil
}

func startText(r *Rendition) string {
	if r.Height == 0 {
		return "Starting original resolution conversion..."
	}
	return fmt.Sprintf("Starting %s conversion...", r.Label)
}

// encodeRendition runs one ffmpeg invocation, keeping a single status
// message updated as percentages arrive. A non-zero exit is reported and
// returned as false; partial progress already reported stands.
func (p *Processor) encodeRendition(ctx context.Context, job *Job, r *Rendition) bool {
	update := p.statusLine(job)
	update("Starting encoding: 0%")

	playlist := filepath.Join(job.OutputDir, r.Playlist)
	err := ffmpeg.EncodeHLS(ctx, job.Source, playlist, r.Height, p.Threads, func(pct int) {
		update(fmt.Sprintf("[%s] Encoding progress: %d%%", time.Now().Format(timestampFormat), pct))
	})
	if err != nil {
		log.Errorf("encode %s: %v", r.Label, err)
		update(fmt.Sprintf("[%s] Encoding failed: %v", time.Now().Format(timestampFormat), err))
		return false
	}

	update(fmt.Sprintf("[%s] Encoding completed!", time.Now().Format(timestampFormat)))
	return true
}

func (p *Processor) buildRecord(job *Job, title, caption string) publish.Record {
	rec := publish.Record{
		Title:           title,
		Description:     publish.Clean(caption),
		Slug:            job.Slug,
		PreviewImageURL: job.PreviewURL,
		Length:          job.Length,
	}
	for _, r := range job.Renditions {
		if !r.Done && !p.Policy.IncludeFailedRenditionURLs {
			continue
		}
		url := fmt.Sprintf("%s/%s/%s", p.PublicBaseURL, job.Slug, r.Playlist)
		switch r.Label {
		case "720p":
			rec.VideoURL720p = url
		case "original":
			rec.VideoURL1080p = url
		}
	}
	return rec
}

func (p *Processor) notifier(job *Job) notify.Notifier {
	if job.Notify != nil {
		return job.Notify
	}
	return p.Notifier
}

// send posts a standalone status message.
func (p *Processor) send(job *Job, text string) {
	if _, err := p.notifier(job).Send(job.ChatID, text); err != nil {
		log.Errorf("notify: %v", err)
	}
}

// statusLine returns a func that sends one message on first use and edits
// that same message in place afterwards. Notifier errors never stall the
// pipeline. The func is safe to call from multiple goroutines; the
// uploader invokes it from both its drain and its background reporter.
func (p *Processor) statusLine(job *Job) func(text string) {
	n := p.notifier(job)
	var mu sync.Mutex
	var messageID int
	var sent bool
	return func(text string) {
		mu.Lock()
		defer mu.Unlock()
		if !sent {
			id, err := n.Send(job.ChatID, text)
			if err != nil {
				log.Errorf("notify: %v", err)
				return
			}
			messageID, sent = id, true
			return
		}
		if err := n.Edit(job.ChatID, messageID, text); err != nil {
			log.Errorf("notify: %v", err)
		}
	}
}

// formatLength renders whole seconds as MM:SS.
func formatLength(seconds float64) string {
	s := int(seconds)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}

// ffmpeg would treat a file name starting with '-' as a flag, so such
// sources are renamed before anything touches them.
func fixLeadingDash(path string) (string, string, error) {
	name := filepath.Base(path)
	if !strings.HasPrefix(name, "-") {
		return path, name, nil
	}
	trimmed := strings.TrimLeft(name, "-")
	if trimmed == "" {
		trimmed = "video"
	}
	newPath := filepath.Join(filepath.Dir(path), trimmed)
	if err := os.Rename(path, newPath); err != nil {
		return "", "", err
	}
	return newPath, trimmed, nil
}
