package main

import (
	"os"
	"path/filepath"
	"time"

	"hlsbot/config"
)

// cleanupStaging removes job directories whose content has not changed for
// longer than the keep window, bounding local disk use. The remote copy is
// the published artifact; anything removed here stays available there.
func cleanupStaging() {
	log.Debugln("cleanupStaging...")

	dir := config.GetStagingDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		log.Errorln("cleanup:", err)
		return
	}

	cutoff := time.Now().Add(-config.GetKeepStaging())
	removed := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || info.ModTime().After(cutoff) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(dir, entry.Name())); err != nil {
			log.Errorln("cleanup:", err)
			continue
		}
		removed++
	}
	if removed > 0 {
		log.Infof("cleaned up %d staging directories", removed)
	}
}
