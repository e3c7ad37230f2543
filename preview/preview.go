package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"hlsbot/ffmpeg"
)

var removeRetryDelay = time.Second

// Extract grabs one frame at a uniformly random timestamp of src, posts it
// to the image host, and returns the hosted URL. The temporary frame file
// is removed best-effort.
func Extract(src, endpoint string) (string, error) {
	length, err := ffmpeg.DurationSeconds(src)
	if err != nil {
		return "", err
	}

	at := rand.Float64() * length
	tmp := filepath.Join(os.TempDir(), uuid.Must(uuid.NewV7()).String()+".png")
	if err := ffmpeg.ExtractFrame(src, at, tmp); err != nil {
		return "", err
	}
	defer removeTemp(tmp)

	return uploadImage(tmp, endpoint)
}

// uploadImage posts the file as the multipart "image" field and returns
// the "url" field of the host's JSON response.
func uploadImage(path, endpoint string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", filepath.Base(path))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	resp, err := http.Post(endpoint, writer.FormDataContentType(), &body)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("image host returned %d: %s", resp.StatusCode, b)
	}

	var out struct {
		URL string `json:"url"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.URL, nil
}

// removeTemp deletes the frame file, retrying once in case something
// still holds it open. Cleanup is not load-bearing, so the second failure
// is only logged.
func removeTemp(path string) {
	if os.Remove(path) == nil {
		return
	}
	time.Sleep(removeRetryDelay)
	if err := os.Remove(path); err != nil {
		log.Warnf("could not remove temporary file %s: %v", path, err)
	}
}
