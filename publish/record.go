package publish

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// Record is the metadata document the catalog service accepts.
type Record struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	Slug            string `json:"slug"`
	PreviewImageURL string `json:"preview_image_url"`
	VideoURL720p    string `json:"video_url_720p"`
	VideoURL1080p   string `json:"video_url_1080p"`
	Length          string `json:"length"`
}

// Submit posts the record to the catalog endpoint. Anything but a 200
// comes back as an error carrying the response body for diagnostics; the
// caller reports it and moves on, there is no retry.
func Submit(endpoint string, rec Record) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	resp, err := http.Post(endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("catalog returned %d. %s", resp.StatusCode, body)
	}
	return nil
}
