package translate

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/abadojack/whatlanggo"
)

// Translator turns foreign-language text into English.
type Translator interface {
	Translate(text string) (string, error)
}

// Client posts to a LibreTranslate-compatible endpoint. An empty endpoint
// disables translation and passes text through unchanged, so the rest of
// the pipeline never has to care.
type Client struct {
	Endpoint string
}

func (c Client) Translate(text string) (string, error) {
	if c.Endpoint == "" || text == "" {
		return text, nil
	}

	// skip the round-trip when the text is already English
	info := whatlanggo.Detect(text)
	if info.Lang == whatlanggo.Eng && info.IsReliable() {
		return text, nil
	}

	payload, err := json.Marshal(map[string]string{
		"q":      text,
		"source": "auto",
		"target": "en",
	})
	if err != nil {
		return "", err
	}

	resp, err := http.Post(c.Endpoint, "application/json", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("translator returned %d: %s", resp.StatusCode, body)
	}

	var out struct {
		TranslatedText string `json:"translatedText"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	return out.TranslatedText, nil
}
