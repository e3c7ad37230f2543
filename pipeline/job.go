package pipeline

import "hlsbot/notify"

// Rendition is one encoded quality variant of the source video. Height 0
// keeps the source resolution. Every rendition uses 10-second segments
// and an unbounded (VOD) playlist.
type Rendition struct {
	Label    string
	Height   int
	Playlist string // playlist file name inside the job directory
	Done     bool   // encoder exited zero
}

// Job is one end-to-end transcode-and-publish request. It lives only for
// the duration of the run; the staging directory on disk is the durable
// artifact.
type Job struct {
	ID      string
	ChatID  int64
	Source  string // path to the downloaded video file
	Name    string // original display name, usually the file name
	Caption string // optional caller-supplied caption

	// set as stages complete
	Slug       string
	OutputDir  string
	Renditions []Rendition
	PreviewURL string
	Length     string // MM:SS

	// Notify overrides the processor's default notifier for this job.
	Notify notify.Notifier
}

// Policy names the pipeline's failure posture explicitly instead of
// leaving it to fallthrough.
type Policy struct {
	// ContinueOnRenditionFailure keeps the job moving to the next stage
	// when one rendition exits non-zero. The failure is still reported.
	ContinueOnRenditionFailure bool
	// IncludeFailedRenditionURLs still lists a failed rendition's URL in
	// the catalog record.
	IncludeFailedRenditionURLs bool
}

func DefaultPolicy() Policy {
	return Policy{
		ContinueOnRenditionFailure: true,
		IncludeFailedRenditionURLs: true,
	}
}

func defaultRenditions() []Rendition {
	return []Rendition{
		{Label: "original", Height: 0, Playlist: "original.m3u8"},
		{Label: "720p", Height: 720, Playlist: "720p.m3u8"},
	}
}
