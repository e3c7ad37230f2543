package telegram

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"
)

const pollTimeout = 30 // seconds

// Poller long-polls getUpdates and turns incoming video messages into
// pipeline jobs via Submit. Non-video messages are acknowledged and
// dropped.
type Poller struct {
	Bot         *Bot
	DownloadDir string
	Submit      func(srcPath, name, caption string, chatID int64)
}

func (p *Poller) Run(ctx context.Context) error {
	offset := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := p.Bot.GetUpdates(offset, pollTimeout)
		if err != nil {
			log.Errorf("getUpdates: %v", err)
			time.Sleep(2 * time.Second)
			continue
		}

		for _, u := range updates {
			offset = u.UpdateID + 1
			if u.Message == nil {
				continue
			}
			p.handleMessage(u.Message)
		}
	}
}

func (p *Poller) handleMessage(msg *Message) {
	if msg.Video == nil {
		if msg.Text != "" {
			log.Infof("chat %d: ignoring text message", msg.Chat.ID)
		}
		return
	}

	name := msg.Video.FileName
	if name == "" {
		name = "video.mp4"
	}

	filePath, err := p.Bot.GetFilePath(msg.Video.FileID)
	if err != nil {
		log.Errorf("getFile: %v", err)
		p.reply(msg.Chat.ID, fmt.Sprintf("Error downloading file: %v", err))
		return
	}

	dst := filepath.Join(p.DownloadDir, strconv.Itoa(msg.MessageID), name)
	if err := p.Bot.DownloadFile(filePath, dst); err != nil {
		log.Errorf("download: %v", err)
		p.reply(msg.Chat.ID, fmt.Sprintf("Error downloading file: %v", err))
		return
	}

	p.reply(msg.Chat.ID, fmt.Sprintf("Video saved to: %s", dst))
	p.Submit(dst, name, msg.Caption, msg.Chat.ID)
}

func (p *Poller) reply(chatID int64, text string) {
	if _, err := p.Bot.SendMessage(chatID, text); err != nil {
		log.Errorf("sendMessage: %v", err)
	}
}
