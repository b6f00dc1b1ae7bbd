package messenger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"storefront/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultTelegramAPIURL = "https://api.telegram.org"

type telegramMessenger struct {
	endpoint   string
	chatID     string
	httpClient *http.Client
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	ErrorCode   int    `json:"error_code,omitempty"`
	Description string `json:"description,omitempty"`
}

// NewTelegramMessenger sends through the Bot API sendMessage method.
func NewTelegramMessenger(apiURL, botToken, chatID string, timeout time.Duration) (service.Messenger, error) {
	if botToken == "" || chatID == "" {
		return nil, errors.New("telegram bot token and chat id are required")
	}
	if apiURL == "" {
		apiURL = defaultTelegramAPIURL
	}

	return &telegramMessenger{
		endpoint:   fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(apiURL, "/"), botToken),
		chatID:     chatID,
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// SendBatch posts one message per line, in order, and stops at the first failure.
func (m *telegramMessenger) SendBatch(ctx context.Context, messages []string) error {
	for idx, text := range messages {
		if err := m.send(ctx, text); err != nil {
			return errors.Wrapf(err, "failed to send message %d of %d", idx+1, len(messages))
		}
	}

	return nil
}

func (m *telegramMessenger) send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{ChatID: m.chatID, Text: text})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		// The URL embeds the bot token; keep it out of the error.
		return errors.New("telegram request failed")
	}
	defer resp.Body.Close()

	var result sendMessageResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return errors.Errorf("telegram returned status %d with unreadable body", resp.StatusCode)
	}
	if !result.OK {
		return errors.Errorf("telegram rejected message: %d %s", result.ErrorCode, result.Description)
	}

	return nil
}
