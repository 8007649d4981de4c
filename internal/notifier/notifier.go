package notifier

import (
	"time"

	"github.com/pfrederiksen/sharif-course-watch/internal/telegram"
)

// Notifier delivers a rendered change report: an optional header message
// followed by one block per affected department.
type Notifier interface {
	Notify(header string, blocks []string) error
}

// messagePause keeps consecutive sends under the Bot API flood limits.
const messagePause = 500 * time.Millisecond

// TelegramNotifier delivers reports to a Telegram channel.
type TelegramNotifier struct {
	client *telegram.Client
}

// NewTelegram creates a Telegram-backed notifier.
func NewTelegram(client *telegram.Client) *TelegramNotifier {
	return &TelegramNotifier{client: client}
}

// Notify sends the header in Markdown mode, then each block in HTML mode,
// pausing between messages.
func (n *TelegramNotifier) Notify(header string, blocks []string) error {
	if header != "" {
		if err := n.client.SendMarkdown(header); err != nil {
			return err
		}
		time.Sleep(messagePause)
	}
	for _, block := range blocks {
		if err := n.client.SendMessage(block); err != nil {
			return err
		}
		time.Sleep(messagePause)
	}
	return nil
}
