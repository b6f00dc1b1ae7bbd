package messenger

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"

	"firebase.google.com/go/v4/messaging"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTelegramMessenger_SendBatchInOrder(t *testing.T) {
	var got []sendMessageRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/botTOKEN/sendMessage", r.URL.Path)

		var req sendMessageRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got = append(got, req)

		_, _ = w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	m, err := NewTelegramMessenger(server.URL+"/", "TOKEN", "-100", time.Second)
	require.NoError(t, err)

	require.NoError(t, m.SendBatch(context.Background(), []string{"header", "line 1"}))
	assert.Equal(t, []sendMessageRequest{
		{ChatID: "-100", Text: "header"},
		{ChatID: "-100", Text: "line 1"},
	}, got)
}

func TestTelegramMessenger_StopsAtFirstFailure(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":429,"description":"Too Many Requests"}`))
	}))
	defer server.Close()

	m, err := NewTelegramMessenger(server.URL, "TOKEN", "-100", time.Second)
	require.NoError(t, err)

	err = m.SendBatch(context.Background(), []string{"header", "line 1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Too Many Requests")
	assert.Equal(t, 1, calls)
}

func TestTelegramMessenger_TransportErrorHidesToken(t *testing.T) {
	m, err := NewTelegramMessenger("http://127.0.0.1:1", "SECRET", "-100", 100*time.Millisecond)
	require.NoError(t, err)

	err = m.SendBatch(context.Background(), []string{"header"})
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "SECRET")
}

func TestNewTelegramMessenger_RequiresCredentials(t *testing.T) {
	_, err := NewTelegramMessenger("", "", "-100", time.Second)
	assert.Error(t, err)
}

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, message *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, message)

	return "projects/p/messages/1", nil
}

func TestFirebaseMessenger_SendBatch(t *testing.T) {
	sender := &fakeSender{}
	m := &firebaseMessenger{client: sender, topic: "orders"}

	require.NoError(t, m.SendBatch(context.Background(), []string{"header", "line 1"}))
	require.Len(t, sender.sent, 2)
	assert.Equal(t, "orders", sender.sent[0].Topic)
	assert.Equal(t, "header", sender.sent[0].Notification.Body)
	assert.Equal(t, "1", sender.sent[1].Data["index"])
	assert.Equal(t, "2", sender.sent[1].Data["total"])

	failing := &firebaseMessenger{client: &fakeSender{err: errors.New("unavailable")}, topic: "orders"}
	assert.Error(t, failing.SendBatch(context.Background(), []string{"header"}))
}

func TestLogMessenger(t *testing.T) {
	m := NewLogMessenger(newDiscardLogger())
	assert.NoError(t, m.SendBatch(context.Background(), []string{"header"}))
}

func TestNew_SelectsProvider(t *testing.T) {
	tests := []struct {
		name     string
		notifier *config.NotifierConfig
		wantErr  bool
		wantType any
	}{
		{name: "defaults to log", notifier: nil, wantType: &logMessenger{}},
		{name: "explicit log", notifier: &config.NotifierConfig{Provider: "log"}, wantType: &logMessenger{}},
		{
			name: "telegram",
			notifier: &config.NotifierConfig{
				Provider: "telegram",
				Telegram: &config.TelegramConfig{BotToken: "t", ChatID: "c"},
			},
			wantType: &telegramMessenger{},
		},
		{name: "telegram without section", notifier: &config.NotifierConfig{Provider: "telegram"}, wantErr: true},
		{name: "firebase without section", notifier: &config.NotifierConfig{Provider: "firebase"}, wantErr: true},
		{name: "unknown", notifier: &config.NotifierConfig{Provider: "pager"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := New(Params{
				Ctx:    context.Background(),
				Config: &config.Config{Notifier: tt.notifier},
				Logger: newDiscardLogger(),
			})
			if tt.wantErr {
				assert.Error(t, err)

				return
			}
			require.NoError(t, err)
			assert.IsType(t, tt.wantType, m)
		})
	}
}
