package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/filelinkbot/filelink/internal/config"
)

func TestDebugReportsPresenceOnly(t *testing.T) {
	t.Parallel()

	h := NewDebugHandler(nil, config.TelegramConfig{
		BotToken:    "123456:super-secret-token",
		SecretToken: "hook-secret",
		WorkerURL:   "https://files.example.com",
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	rec := httptest.NewRecorder()
	if err := h.Handle(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	raw := rec.Body.String()
	if strings.Contains(raw, "super-secret-token") || strings.Contains(raw, "hook-secret") {
		t.Fatalf("raw secrets must not be exposed: %s", raw)
	}

	var body struct {
		Status string `json:"status"`
		Env    struct {
			BotTokenSet    string `json:"bot_token_set"`
			SecretTokenSet string `json:"secret_token_set"`
			WorkerURL      string `json:"worker_url"`
		} `json:"env"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Env.BotTokenSet != "true" || body.Env.SecretTokenSet != "true" {
		t.Fatalf("unexpected env: %#v", body.Env)
	}
	if body.Env.WorkerURL != "https://files.example.com" {
		t.Fatalf("unexpected worker url: %q", body.Env.WorkerURL)
	}
}

func TestDebugWithNothingConfigured(t *testing.T) {
	t.Parallel()

	h := NewDebugHandler(nil, config.TelegramConfig{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/debug", nil)
	rec := httptest.NewRecorder()
	if err := h.Handle(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var body struct {
		Env struct {
			BotTokenSet    string `json:"bot_token_set"`
			SecretTokenSet string `json:"secret_token_set"`
			WorkerURL      string `json:"worker_url"`
		} `json:"env"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Env.BotTokenSet != "false" || body.Env.SecretTokenSet != "false" || body.Env.WorkerURL != "" {
		t.Fatalf("unexpected env: %#v", body.Env)
	}
}
