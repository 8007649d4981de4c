package telegram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPIBaseURL = "https://api.telegram.org/bot"
	timeout           = 10 * time.Second

	// MaxMessageLength is a safe margin below Telegram's 4096-character
	// hard limit; longer messages are split at line boundaries.
	MaxMessageLength = 4000
)

// Client represents a Telegram Bot API client bound to one chat.
type Client struct {
	botToken   string
	chatID     string
	apiBase    string
	httpClient *http.Client
}

// NewClient creates a new Telegram client.
func NewClient(botToken, chatID string) (*Client, error) {
	if botToken == "" {
		return nil, fmt.Errorf("bot token is required")
	}
	if chatID == "" {
		return nil, fmt.Errorf("chat ID is required")
	}

	return &Client{
		botToken: botToken,
		chatID:   chatID,
		apiBase:  defaultAPIBaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// SendMessage sends a text message in HTML mode, splitting it into
// line-boundary chunks when it exceeds the length ceiling.
func (c *Client) SendMessage(text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}
	for _, chunk := range SplitMessage(text, MaxMessageLength) {
		if err := c.send(chunk, "HTML"); err != nil {
			return err
		}
	}
	return nil
}

// SendMarkdown sends a single MarkdownV2 message.
func (c *Client) SendMarkdown(text string) error {
	if text == "" {
		return fmt.Errorf("message text is required")
	}
	return c.send(text, "MarkdownV2")
}

func (c *Client) send(text, parseMode string) error {
	url := fmt.Sprintf("%s%s/sendMessage", c.apiBase, c.botToken)

	payload := map[string]interface{}{
		"chat_id":    c.chatID,
		"text":       text,
		"parse_mode": parseMode,
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling payload: %w", err)
	}

	req, err := http.NewRequest("POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram API error (status %d): %s", resp.StatusCode, string(body))
	}

	var result struct {
		OK          bool   `json:"ok"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	if !result.OK {
		return fmt.Errorf("telegram API error: %s", result.Description)
	}

	return nil
}

// SplitMessage splits text into chunks of at most limit characters,
// breaking at the last line boundary inside the window and never mid-line
// unless a single line exceeds the limit. Leading newlines are dropped
// from each continuation chunk.
func SplitMessage(text string, limit int) []string {
	var chunks []string
	runes := []rune(text)
	for len(runes) > 0 {
		if len(runes) <= limit {
			chunks = append(chunks, string(runes))
			break
		}
		pos := -1
		for i := limit - 1; i >= 0; i-- {
			if runes[i] == '\n' {
				pos = i
				break
			}
		}
		if pos == -1 {
			pos = limit
		}
		chunks = append(chunks, string(runes[:pos]))
		runes = runes[pos:]
		for len(runes) > 0 && runes[0] == '\n' {
			runes = runes[1:]
		}
	}
	return chunks
}
