package handlers

import (
	"context"
	"sync"

	"github.com/filelinkbot/filelink/internal/telegram"
)

type sentMessage struct {
	chatID    int64
	text      string
	parseMode string
}

type webhookSet struct {
	url    string
	secret string
}

// fakeBotAPI records every call so tests can assert both results and that
// upstream was (not) invoked.
type fakeBotAPI struct {
	mu sync.Mutex

	file       telegram.File
	getFileErr error
	getFileIDs []string

	sendErr error
	sent    []sentMessage

	setWebhookErr error
	webhookSets   []webhookSet

	deleteErr   error
	deleteCalls int

	info    telegram.WebhookInfo
	infoErr error

	downloadBase string
}

func (f *fakeBotAPI) GetFile(_ context.Context, fileID string) (telegram.File, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getFileIDs = append(f.getFileIDs, fileID)
	if f.getFileErr != nil {
		return telegram.File{}, f.getFileErr
	}
	return f.file, nil
}

func (f *fakeBotAPI) SendMessage(_ context.Context, chatID int64, text, parseMode string) (telegram.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{chatID: chatID, text: text, parseMode: parseMode})
	if f.sendErr != nil {
		return telegram.Message{}, f.sendErr
	}
	return telegram.Message{MessageID: 1}, nil
}

func (f *fakeBotAPI) SetWebhook(_ context.Context, url, secretToken string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.webhookSets = append(f.webhookSets, webhookSet{url: url, secret: secretToken})
	return f.setWebhookErr
}

func (f *fakeBotAPI) DeleteWebhook(_ context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeBotAPI) GetWebhookInfo(_ context.Context) (telegram.WebhookInfo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.infoErr != nil {
		return telegram.WebhookInfo{}, f.infoErr
	}
	return f.info, nil
}

func (f *fakeBotAPI) FileDownloadURL(filePath string) string {
	base := f.downloadBase
	if base == "" {
		base = "https://api.telegram.org/file/bottest-token"
	}
	return base + "/" + filePath
}

func (f *fakeBotAPI) upstreamCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.getFileIDs) + len(f.sent) + len(f.webhookSets) + f.deleteCalls
}

func (f *fakeBotAPI) sentMessages() []sentMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]sentMessage, len(f.sent))
	copy(out, f.sent)
	return out
}
