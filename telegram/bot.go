package telegram

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Bot is a minimal Bot API client covering what the pipeline needs:
// sending and editing status messages, long-polling for updates, and
// downloading incoming video files. APIURL is overridable to point at a
// local bot-api server.
type Bot struct {
	Token  string
	APIURL string
	client *http.Client
}

func New(token, apiURL string) *Bot {
	return &Bot{
		Token:  token,
		APIURL: apiURL,
		// long polls hold the connection open for up to 30s
		client: &http.Client{Timeout: 50 * time.Second},
	}
}

type Chat struct {
	ID int64 `json:"id"`
}

type Video struct {
	FileID   string `json:"file_id"`
	FileName string `json:"file_name"`
}

type Message struct {
	MessageID int    `json:"message_id"`
	Chat      Chat   `json:"chat"`
	Text      string `json:"text"`
	Caption   string `json:"caption"`
	Video     *Video `json:"video"`
}

type Update struct {
	UpdateID int      `json:"update_id"`
	Message  *Message `json:"message"`
}

type apiResponse struct {
	OK          bool            `json:"ok"`
	Result      json.RawMessage `json:"result"`
	Description string          `json:"description"`
}

func (b *Bot) call(method string, params url.Values) (json.RawMessage, error) {
	endpoint := fmt.Sprintf("%s/bot%s/%s", b.APIURL, b.Token, method)
	resp, err := b.client.PostForm(endpoint, params)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var out apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%s: %w", method, err)
	}
	if !out.OK {
		return nil, fmt.Errorf("%s: %s", method, out.Description)
	}
	return out.Result, nil
}

func (b *Bot) SendMessage(chatID int64, text string) (Message, error) {
	result, err := b.call("sendMessage", url.Values{
		"chat_id": {strconv.FormatInt(chatID, 10)},
		"text":    {text},
	})
	if err != nil {
		return Message{}, err
	}
	var msg Message
	err = json.Unmarshal(result, &msg)
	return msg, err
}

func (b *Bot) EditMessageText(chatID int64, messageID int, text string) error {
	_, err := b.call("editMessageText", url.Values{
		"chat_id":    {strconv.FormatInt(chatID, 10)},
		"message_id": {strconv.Itoa(messageID)},
		"text":       {text},
	})
	return err
}

// GetUpdates long-polls for up to timeout seconds.
func (b *Bot) GetUpdates(offset, timeout int) ([]Update, error) {
	result, err := b.call("getUpdates", url.Values{
		"offset":  {strconv.Itoa(offset)},
		"timeout": {strconv.Itoa(timeout)},
	})
	if err != nil {
		return nil, err
	}
	var updates []Update
	err = json.Unmarshal(result, &updates)
	return updates, err
}

// GetFilePath resolves a file_id to the server-side file path used for
// downloads.
func (b *Bot) GetFilePath(fileID string) (string, error) {
	result, err := b.call("getFile", url.Values{
		"file_id": {fileID},
	})
	if err != nil {
		return "", err
	}
	var file struct {
		FilePath string `json:"file_path"`
	}
	if err := json.Unmarshal(result, &file); err != nil {
		return "", err
	}
	return file.FilePath, nil
}

// DownloadFile fetches the file at filePath into dst, creating parent
// directories as needed.
func (b *Bot) DownloadFile(filePath, dst string) error {
	endpoint := fmt.Sprintf("%s/file/bot%s/%s", b.APIURL, b.Token, filePath)
	resp, err := b.client.Get(endpoint)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("file download returned %d", resp.StatusCode)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()
	_, err = io.Copy(out, resp.Body)
	return err
}

// Send and Edit implement notify.Notifier.

func (b *Bot) Send(chatID int64, text string) (int, error) {
	msg, err := b.SendMessage(chatID, text)
	return msg.MessageID, err
}

func (b *Bot) Edit(chatID int64, messageID int, text string) error {
	return b.EditMessageText(chatID, messageID, text)
}
