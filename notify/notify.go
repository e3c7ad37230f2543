package notify

import "github.com/sirupsen/logrus"

// Notifier delivers job status text to whoever asked for the job. Send
// returns a message handle that Edit can later rewrite in place, which
// keeps a progress readout on a single message instead of flooding the
// conversation.
type Notifier interface {
	Send(chatID int64, text string) (messageID int, err error)
	Edit(chatID int64, messageID int, text string) error
}

// Log is a Notifier that only writes to the log. It backs jobs submitted
// over HTTP, where nobody is waiting in a chat.
type Log struct {
	Logger *logrus.Logger
}

func (l Log) Send(chatID int64, text string) (int, error) {
	l.Logger.Infof("[chat %d] %s", chatID, text)
	return 0, nil
}

func (l Log) Edit(chatID int64, messageID int, text string) error {
	l.Logger.Infof("[chat %d] %s", chatID, text)
	return nil
}
