package playlists

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	playlistExt = ".m3u8"
	segmentExt  = ".ts"
)

// segmentLine reports whether a playlist line is a bare segment filename:
// the entire line is "name.ts" with no path separators or scheme. Lines
// already rewritten to URL form contain ':' and '/' and never match again,
// so rewriting is idempotent.
func segmentLine(line string) bool {
	if !strings.HasSuffix(line, segmentExt) {
		return false
	}
	return !strings.ContainsAny(line, "/:\\ \t")
}

// Rewrite replaces every bare segment-filename line of a playlist with
// {baseURL}/{slug}/{filename}. Directives, blank lines, and anything else
// pass through byte-identical. The slug is an explicit parameter rather
// than something re-derived from the on-disk path.
func Rewrite(content, baseURL, slug string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if segmentLine(line) {
			lines[i] = fmt.Sprintf("%s/%s/%s", baseURL, slug, line)
		}
	}
	return strings.Join(lines, "\n")
}

// RewriteTree visits every playlist file under root and rewrites it in
// place.
func RewriteTree(root, baseURL, slug string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() || !strings.HasSuffix(info.Name(), playlistExt) {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rewritten := Rewrite(string(content), baseURL, slug)
		return os.WriteFile(path, []byte(rewritten), info.Mode().Perm())
	})
}
