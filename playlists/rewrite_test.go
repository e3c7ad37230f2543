package playlists

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXTINF:10.0,
seg001.ts
#EXTINF:10.0,
seg002.ts
#EXT-X-ENDLIST
`

func TestRewrite(t *testing.T) {
	got := Rewrite(sample, "https://cdn.example", "my-video-2023")

	want := `#EXTM3U
#EXT-X-VERSION:3
#EXT-X-TARGETDURATION:10
#EXTINF:10.0,
https://cdn.example/my-video-2023/seg001.ts
#EXTINF:10.0,
https://cdn.example/my-video-2023/seg002.ts
#EXT-X-ENDLIST
`
	assert.Equal(t, want, got)
}

func TestRewrite_Idempotent(t *testing.T) {
	once := Rewrite(sample, "https://cdn.example", "my-video-2023")
	twice := Rewrite(once, "https://cdn.example", "my-video-2023")
	assert.Equal(t, once, twice)
}

func TestRewrite_LeavesNonSegmentLinesAlone(t *testing.T) {
	content := "#EXTM3U\n\n#EXTINF:10.0,\nnot a segment\nseg.mp4\n"
	assert.Equal(t, content, Rewrite(content, "https://cdn.example", "s"))
}

func TestRewrite_IgnoresPathedNames(t *testing.T) {
	content := "sub/seg001.ts\n"
	assert.Equal(t, content, Rewrite(content, "https://cdn.example", "s"))
}

func TestRewriteTree(t *testing.T) {
	dir := t.TempDir()
	jobDir := filepath.Join(dir, "my-video-2023")
	require.NoError(t, os.MkdirAll(jobDir, 0o755))

	playlist := filepath.Join(jobDir, "original.m3u8")
	require.NoError(t, os.WriteFile(playlist, []byte("#EXTM3U\nseg001.ts\n"), 0o644))

	segment := filepath.Join(jobDir, "seg001.ts")
	require.NoError(t, os.WriteFile(segment, []byte("binary"), 0o644))

	require.NoError(t, RewriteTree(dir, "https://cdn.example", "my-video-2023"))

	got, err := os.ReadFile(playlist)
	require.NoError(t, err)
	assert.Equal(t, "#EXTM3U\nhttps://cdn.example/my-video-2023/seg001.ts\n", string(got))

	// non-playlist files are untouched
	seg, err := os.ReadFile(segment)
	require.NoError(t, err)
	assert.Equal(t, "binary", string(seg))
}
