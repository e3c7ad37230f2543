package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	Init(logrus.New())
	os.Exit(m.Run())
}

// fakeNotifier records every Send and Edit in order.
type fakeNotifier struct {
	nextID int
	lines  []string
}

func (f *fakeNotifier) Send(chatID int64, text string) (int, error) {
	f.nextID++
	f.lines = append(f.lines, fmt.Sprintf("send#%d: %s", f.nextID, text))
	return f.nextID, nil
}

func (f *fakeNotifier) Edit(chatID int64, messageID int, text string) error {
	f.lines = append(f.lines, fmt.Sprintf("edit#%d: %s", messageID, text))
	return nil
}

func TestStatusLine_SendThenEdit(t *testing.T) {
	n := &fakeNotifier{}
	p := &Processor{Notifier: n}
	update := p.statusLine(&Job{ChatID: 42})

	update("Starting encoding: 0%")
	update("Encoding progress: 10%")
	update("Encoding progress: 55%")

	require.Len(t, n.lines, 3)
	assert.Equal(t, "send#1: Starting encoding: 0%", n.lines[0])
	assert.Equal(t, "edit#1: Encoding progress: 10%", n.lines[1])
	assert.Equal(t, "edit#1: Encoding progress: 55%", n.lines[2])
}

func TestStatusLine_IndependentMessages(t *testing.T) {
	n := &fakeNotifier{}
	p := &Processor{Notifier: n}
	job := &Job{ChatID: 42}

	first := p.statusLine(job)
	second := p.statusLine(job)
	first("a")
	second("b")
	second("c")

	assert.Equal(t, []string{"send#1: a", "send#2: b", "edit#2: c"}, n.lines)
}

// flakyNotifier fails the first sendErrs Send calls, then behaves.
type flakyNotifier struct {
	mu       sync.Mutex
	sendErrs int
	nextID   int
	edits    int
}

func (f *flakyNotifier) Send(chatID int64, text string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.sendErrs > 0 {
		f.sendErrs--
		return 0, fmt.Errorf("notifier unavailable")
	}
	f.nextID++
	return f.nextID, nil
}

func (f *flakyNotifier) Edit(chatID int64, messageID int, text string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.edits++
	return nil
}

func TestStatusLine_ConcurrentAfterSendFailure(t *testing.T) {
	n := &flakyNotifier{sendErrs: 1}
	p := &Processor{Notifier: n}
	update := p.statusLine(&Job{ChatID: 42})

	// the uploader calls the same line from its drain and its reporter
	var wg sync.WaitGroup
	for g := 0; g < 2; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pct := 0; pct < 50; pct++ {
				update(fmt.Sprintf("Uploading to server... %d%%", pct))
			}
		}()
	}
	wg.Wait()

	n.mu.Lock()
	defer n.mu.Unlock()
	assert.Equal(t, 1, n.nextID, "exactly one message after the failed send")
	assert.Equal(t, 98, n.edits)
}

func TestBuildRecord_IncludesFailedRenditions(t *testing.T) {
	p := &Processor{
		PublicBaseURL: "https://cdn.example",
		Policy:        DefaultPolicy(),
	}
	job := &Job{
		Slug:       "my-video-2023",
		PreviewURL: "https://img.example/abc.png",
		Length:     "03:25",
		Renditions: []Rendition{
			{Label: "original", Playlist: "original.m3u8", Done: true},
			{Label: "720p", Height: 720, Playlist: "720p.m3u8", Done: false},
		},
	}

	rec := p.buildRecord(job, "My Video! (2023)", "a caption")
	assert.Equal(t, "My Video! (2023)", rec.Title)
	assert.Equal(t, "a caption", rec.Description)
	assert.Equal(t, "my-video-2023", rec.Slug)
	assert.Equal(t, "https://cdn.example/my-video-2023/original.m3u8", rec.VideoURL1080p)
	assert.Equal(t, "https://cdn.example/my-video-2023/720p.m3u8", rec.VideoURL720p)
	assert.Equal(t, "03:25", rec.Length)
}

func TestBuildRecord_OmitsFailedRenditions(t *testing.T) {
	p := &Processor{
		PublicBaseURL: "https://cdn.example",
		Policy: Policy{
			ContinueOnRenditionFailure: true,
			IncludeFailedRenditionURLs: false,
		},
	}
	job := &Job{
		Slug: "my-video-2023",
		Renditions: []Rendition{
			{Label: "original", Playlist: "original.m3u8", Done: true},
			{Label: "720p", Playlist: "720p.m3u8", Done: false},
		},
	}

	rec := p.buildRecord(job, "title", "caption")
	assert.Equal(t, "https://cdn.example/my-video-2023/original.m3u8", rec.VideoURL1080p)
	assert.Empty(t, rec.VideoURL720p)
}

func TestBuildRecord_SanitizesDescription(t *testing.T) {
	p := &Processor{Policy: DefaultPolicy()}
	rec := p.buildRecord(&Job{}, "title", "   \t ")
	assert.Equal(t, "No description", rec.Description)
}

func TestFormatLength(t *testing.T) {
	assert.Equal(t, "00:00", formatLength(0))
	assert.Equal(t, "00:59", formatLength(59.9))
	assert.Equal(t, "03:25", formatLength(205))
	assert.Equal(t, "60:00", formatLength(3600))
}

func TestFixLeadingDash(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "-video.mp4")
	require.NoError(t, os.WriteFile(src, []byte("x"), 0o644))

	path, name, err := fixLeadingDash(src)
	require.NoError(t, err)
	assert.Equal(t, "video.mp4", name)
	assert.Equal(t, filepath.Join(dir, "video.mp4"), path)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestFixLeadingDash_NoDash(t *testing.T) {
	path, name, err := fixLeadingDash("/tmp/whatever/video.mp4")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/whatever/video.mp4", path)
	assert.Equal(t, "video.mp4", name)
}

func TestStartText(t *testing.T) {
	rs := defaultRenditions()
	assert.Equal(t, "Starting original resolution conversion...", startText(&rs[0]))
	assert.Equal(t, "Starting 720p conversion...", startText(&rs[1]))
}

func TestDefaultRenditions(t *testing.T) {
	rs := defaultRenditions()
	require.Len(t, rs, 2)
	assert.Equal(t, 0, rs[0].Height)
	assert.Equal(t, "original.m3u8", rs[0].Playlist)
	assert.Equal(t, 720, rs[1].Height)
	assert.Equal(t, "720p.m3u8", rs[1].Playlist)
}
