package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/services"
)

type fakeChatService struct {
	result  *models.ChatResult
	err     error
	lastReq models.ChatRequest

	regenModel       string
	regenPersonality string
	deletedIndex     int
	cleared          bool
}

func (f *fakeChatService) Chat(ctx context.Context, sessionID string, req models.ChatRequest) (*models.ChatResult, error) {
	f.lastReq = req
	return f.result, f.err
}

func (f *fakeChatService) Regenerate(ctx context.Context, sessionID, model, personality string) (*models.ChatResult, error) {
	f.regenModel = model
	f.regenPersonality = personality
	return f.result, f.err
}

func (f *fakeChatService) DeleteMessage(ctx context.Context, sessionID string, index int) error {
	f.deletedIndex = index
	return f.err
}

func (f *fakeChatService) Clear(ctx context.Context, sessionID string) error {
	f.cleared = true
	return f.err
}

func newChatHandler(service services.ChatService) *ChatHandler {
	return NewChatHandler(service, middleware.NewSessionManager("test-secret"))
}

func multipartBody(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatal(err)
		}
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestChatEndpoint(t *testing.T) {
	t.Run("defaults mode and model", func(t *testing.T) {
		service := &fakeChatService{result: &models.ChatResult{Response: "hai", Mode: "text", Model: "gemini"}}
		handler := newChatHandler(service)

		buf, contentType := multipartBody(t, map[string]string{"message": "halo"})
		req := httptest.NewRequest(http.MethodPost, "/api/chat", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Chat(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
		}
		if service.lastReq.Mode != "text" || service.lastReq.Model != "gemini" {
			t.Errorf("request = %+v", service.lastReq)
		}
		if !strings.Contains(rec.Body.String(), `"response":"hai"`) {
			t.Errorf("body = %s", rec.Body.String())
		}
	})

	t.Run("validation errors map to 400", func(t *testing.T) {
		service := &fakeChatService{err: &services.ValidationError{Message: "Pesan tidak boleh kosong"}}
		handler := newChatHandler(service)

		buf, contentType := multipartBody(t, map[string]string{"message": ""})
		req := httptest.NewRequest(http.MethodPost, "/api/chat", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Chat(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("status = %d", rec.Code)
		}
		if body := decodeBody(t, rec); body["error"] != "Pesan tidak boleh kosong" {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("internal errors are sanitized to 500", func(t *testing.T) {
		service := &fakeChatService{err: errors.New("dial tcp: lookup db: no such host")}
		handler := newChatHandler(service)

		buf, contentType := multipartBody(t, map[string]string{"message": "halo"})
		req := httptest.NewRequest(http.MethodPost, "/api/chat", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Chat(rec, req)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
		body := decodeBody(t, rec)
		if strings.Contains(body["error"], "no such host") {
			t.Errorf("raw error leaked: %v", body)
		}
		if !strings.Contains(body["error"], "Tidak bisa terhubung") {
			t.Errorf("body = %v", body)
		}
	})

	t.Run("mints a chat session cookie", func(t *testing.T) {
		service := &fakeChatService{result: &models.ChatResult{Response: "ok"}}
		handler := newChatHandler(service)

		buf, contentType := multipartBody(t, map[string]string{"message": "halo"})
		req := httptest.NewRequest(http.MethodPost, "/api/chat", buf)
		req.Header.Set("Content-Type", contentType)
		rec := httptest.NewRecorder()

		handler.Chat(rec, req)

		if len(rec.Result().Cookies()) == 0 {
			t.Error("no session cookie set")
		}
	})
}

func TestRegenerateEndpoint(t *testing.T) {
	service := &fakeChatService{result: &models.ChatResult{Response: "ulang", Model: "groq"}}
	handler := newChatHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/regenerate",
		strings.NewReader(`{"personality":"santai","model":"groq"}`))
	rec := httptest.NewRecorder()

	handler.Regenerate(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if service.regenModel != "groq" || service.regenPersonality != "santai" {
		t.Errorf("model=%q personality=%q", service.regenModel, service.regenPersonality)
	}
	body := decodeBody(t, rec)
	if body["response"] != "ulang" || body["model"] != "groq" {
		t.Errorf("body = %v", body)
	}
}

func TestClearEndpoint(t *testing.T) {
	service := &fakeChatService{}
	handler := newChatHandler(service)

	req := httptest.NewRequest(http.MethodPost, "/api/clear", nil)
	rec := httptest.NewRecorder()

	handler.Clear(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !service.cleared {
		t.Error("Clear not called")
	}
	body := decodeBody(t, rec)
	if body["message"] != "Chat dan file berhasil dihapus" || body["cleared_at"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestDeleteMessageEndpoint(t *testing.T) {
	t.Run("forwards the index", func(t *testing.T) {
		service := &fakeChatService{deletedIndex: -99}
		handler := newChatHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/api/delete-message", strings.NewReader(`{"index":2}`))
		rec := httptest.NewRecorder()

		handler.DeleteMessage(rec, req)

		if rec.Code != http.StatusOK || service.deletedIndex != 2 {
			t.Errorf("status=%d index=%d", rec.Code, service.deletedIndex)
		}
	})

	t.Run("missing index becomes -1", func(t *testing.T) {
		service := &fakeChatService{err: &services.ValidationError{Message: "Index tidak valid"}}
		handler := newChatHandler(service)

		req := httptest.NewRequest(http.MethodPost, "/api/delete-message", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()

		handler.DeleteMessage(rec, req)

		if service.deletedIndex != -1 {
			t.Errorf("index = %d", service.deletedIndex)
		}
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d", rec.Code)
		}
	})
}
