package services

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/TimCalavera/calavera-web/internal/clients"
	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/parser"
	"github.com/TimCalavera/calavera-web/internal/repositories"
	"github.com/TimCalavera/calavera-web/internal/storage"
)

const (
	maxMessageLength = 5000
	maxHistoryTurns  = 10
	maxFileTextChars = 8000
)

// ValidationError marks a request the caller got wrong; its message is shown
// to the user as-is and the request never reaches a provider.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

var imageExtensions = map[string]bool{
	"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true,
}

var fileExtensions = map[string]bool{
	"pdf": true, "docx": true, "doc": true, "txt": true,
}

type ChatService interface {
	Chat(ctx context.Context, sessionID string, req models.ChatRequest) (*models.ChatResult, error)
	Regenerate(ctx context.Context, sessionID, model, personality string) (*models.ChatResult, error)
	DeleteMessage(ctx context.Context, sessionID string, index int) error
	Clear(ctx context.Context, sessionID string) error
}

type chatService struct {
	chatClients map[string]clients.ChatClient
	searchCli   clients.SearchClient
	historyRepo repositories.ChatHistoryRepository
	uploads     *storage.UploadStore
}

func NewChatService(
	chatClients map[string]clients.ChatClient,
	searchCli clients.SearchClient,
	historyRepo repositories.ChatHistoryRepository,
	uploads *storage.UploadStore,
) ChatService {
	return &chatService{
		chatClients: chatClients,
		searchCli:   searchCli,
		historyRepo: historyRepo,
		uploads:     uploads,
	}
}

func (s *chatService) Chat(ctx context.Context, sessionID string, req models.ChatRequest) (*models.ChatResult, error) {
	client, ok := s.chatClients[req.Model]
	if !ok {
		return nil, newValidationError("⚠️ Model tidak valid.")
	}

	if req.Mode != "image" && req.Mode != "file" && strings.TrimSpace(req.Message) == "" {
		return nil, newValidationError("Pesan tidak boleh kosong")
	}
	if utf8.RuneCountInString(req.Message) > maxMessageLength {
		return nil, newValidationError("⚠️ Pesan terlalu panjang! Maksimal 5000 karakter.")
	}

	log.Printf("💬 Chat request: model=%s mode=%s len=%d", req.Model, req.Mode, len(req.Message))

	switch req.Mode {
	case "search":
		return s.chatSearch(ctx, sessionID, req)
	case "image":
		return s.chatImage(ctx, sessionID, client, req)
	case "file":
		return s.chatFile(ctx, sessionID, client, req)
	default:
		return s.chatText(ctx, sessionID, client, req)
	}
}

func (s *chatService) chatText(ctx context.Context, sessionID string, client clients.ChatClient, req models.ChatRequest) (*models.ChatResult, error) {
	history, err := s.historyRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	answer, err := client.GenerateText(ctx, req.Message, req.Personality, history)
	if err != nil {
		answer = clients.Sanitize(err.Error())
	}

	history = append(history,
		models.ChatTurn{Role: models.RoleUser, Kind: models.TurnText, Content: req.Message},
		models.ChatTurn{Role: models.RoleAssistant, Kind: models.TurnText, Content: answer},
	)
	if err := s.saveHistory(ctx, sessionID, history); err != nil {
		return nil, err
	}

	return &models.ChatResult{Response: answer, Mode: "text", Model: req.Model}, nil
}

// chatSearch answers straight from web results; no language model involved.
func (s *chatService) chatSearch(ctx context.Context, sessionID string, req models.ChatRequest) (*models.ChatResult, error) {
	result, err := s.searchCli.Search(ctx, req.Message, 0)
	answer := s.searchCli.FormatResults(result, err)

	history, err := s.historyRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history = append(history,
		models.ChatTurn{Role: models.RoleUser, Kind: models.TurnSearch, Content: req.Message},
		models.ChatTurn{Role: models.RoleAssistant, Kind: models.TurnSearch, Content: answer},
	)
	if err := s.saveHistory(ctx, sessionID, history); err != nil {
		return nil, err
	}

	return &models.ChatResult{Response: answer, Mode: "search"}, nil
}

func (s *chatService) chatImage(ctx context.Context, sessionID string, client clients.ChatClient, req models.ChatRequest) (*models.ChatResult, error) {
	if !client.SupportsVision() {
		return nil, newValidationError("⚠️ DeepSeek tidak mendukung analisis gambar. Silakan gunakan model Gemini, Llama, atau Mistral.")
	}
	if req.Image == nil {
		return nil, newValidationError("🖼️ Tidak ada gambar yang diupload")
	}
	if len(req.Image.Data) == 0 {
		return nil, newValidationError("🖼️ File gambar kosong")
	}
	ext := lowerExt(req.Image.Filename)
	if !imageExtensions[ext] {
		return nil, newValidationError("🖼️ Format gambar tidak didukung. Gunakan JPG, PNG, atau GIF")
	}

	_, imageURL, err := s.uploads.SaveChatUpload(sessionID, "chat", req.Image.Filename, req.Image.Data)
	if err != nil {
		return nil, err
	}

	prompt := strings.TrimSpace(req.Message)
	if prompt == "" {
		prompt = "Jelaskan apa yang ada di gambar ini"
	}

	answer, err := client.AnalyzeImage(ctx, req.Image.Data, prompt, req.Personality)
	if err != nil {
		answer = clients.Sanitize(err.Error())
	}

	history, err := s.historyRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	history = append(history,
		models.ChatTurn{Role: models.RoleUser, Kind: models.TurnImage, Content: prompt, ImageURL: imageURL},
		models.ChatTurn{Role: models.RoleAssistant, Kind: models.TurnImage, Content: answer},
	)
	if err := s.saveHistory(ctx, sessionID, history); err != nil {
		return nil, err
	}

	return &models.ChatResult{Response: answer, Mode: "image", Model: req.Model, ImageURL: imageURL}, nil
}

func (s *chatService) chatFile(ctx context.Context, sessionID string, client clients.ChatClient, req models.ChatRequest) (*models.ChatResult, error) {
	if req.File == nil {
		return nil, newValidationError("📄 Tidak ada file yang diupload")
	}
	if len(req.File.Data) == 0 {
		return nil, newValidationError("📄 File kosong")
	}
	ext := lowerExt(req.File.Filename)
	if !fileExtensions[ext] {
		return nil, newValidationError("📄 Format file tidak didukung. Gunakan PDF, DOCX, atau TXT")
	}

	path, _, err := s.uploads.SaveChatUpload(sessionID, "doc", req.File.Filename, req.File.Data)
	if err != nil {
		return nil, err
	}
	defer s.uploads.RemoveFile(path)

	text := parser.Parse(path, ext)
	if parser.IsWarning(text) {
		return nil, newValidationError(text)
	}
	if utf8.RuneCountInString(text) > maxFileTextChars {
		runes := []rune(text)
		text = string(runes[:maxFileTextChars]) + "\n\n... (teks dipotong karena terlalu panjang)"
	}

	question := strings.TrimSpace(req.Message)
	var prompt string
	if question != "" {
		prompt = fmt.Sprintf("File: %s\n\nIsi File:\n%s\n\n---\n\nPertanyaan User: %s\n\nJawab pertanyaan user berdasarkan isi file di atas.",
			req.File.Filename, text, question)
	} else {
		prompt = fmt.Sprintf("File: %s\n\nIsi File:\n%s\n\n---\n\nBuatkan ringkasan singkat dari isi file ini.",
			req.File.Filename, text)
	}

	history, err := s.historyRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	answer, err := client.GenerateText(ctx, prompt, req.Personality, history)
	if err != nil {
		answer = clients.Sanitize(err.Error())
	}

	shown := question
	if shown == "" {
		shown = "Analisis file"
	}

	history = append(history,
		models.ChatTurn{Role: models.RoleUser, Kind: models.TurnFile, Content: shown, Filename: req.File.Filename},
		models.ChatTurn{Role: models.RoleAssistant, Kind: models.TurnFile, Content: answer},
	)
	if err := s.saveHistory(ctx, sessionID, history); err != nil {
		return nil, err
	}

	return &models.ChatResult{Response: answer, Mode: "file", Model: req.Model, Filename: req.File.Filename}, nil
}

// Regenerate redoes the assistant's last answer using the conversation as it
// stood before the last user turn.
func (s *chatService) Regenerate(ctx context.Context, sessionID, model, personality string) (*models.ChatResult, error) {
	client, ok := s.chatClients[model]
	if !ok {
		return nil, newValidationError("⚠️ Model tidak valid.")
	}

	history, err := s.historyRepo.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(history) < 2 {
		return nil, newValidationError("Tidak ada pesan untuk di-regenerate")
	}

	if history[len(history)-1].Role == models.RoleAssistant {
		history = history[:len(history)-1]
	}

	lastUser := -1
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == models.RoleUser {
			lastUser = i
			break
		}
	}
	if lastUser == -1 {
		return nil, newValidationError("Tidak ditemukan pesan terakhir")
	}

	userTurn := history[lastUser]
	answer, err := client.GenerateText(ctx, userTurn.Content, personality, history[:lastUser])
	if err != nil {
		answer = clients.Sanitize(err.Error())
	}

	history = append(history, models.ChatTurn{Role: models.RoleAssistant, Kind: models.TurnText, Content: answer})
	if err := s.saveHistory(ctx, sessionID, history); err != nil {
		return nil, err
	}

	return &models.ChatResult{Response: answer, Mode: "text", Model: model}, nil
}

// DeleteMessage removes the turn at index plus the assistant turn that
// directly follows it, so a question and its answer go together.
func (s *chatService) DeleteMessage(ctx context.Context, sessionID string, index int) error {
	history, err := s.historyRepo.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(history) {
		return newValidationError("Index tidak valid")
	}

	end := index + 1
	if end < len(history) && history[end].Role == models.RoleAssistant {
		end++
	}
	history = append(history[:index], history[end:]...)

	return s.historyRepo.Save(ctx, sessionID, history)
}

// Clear drops the conversation and every file uploaded during it.
func (s *chatService) Clear(ctx context.Context, sessionID string) error {
	if err := s.historyRepo.Clear(ctx, sessionID); err != nil {
		return err
	}
	return s.uploads.ClearChat(sessionID)
}

func (s *chatService) saveHistory(ctx context.Context, sessionID string, history []models.ChatTurn) error {
	if len(history) > maxHistoryTurns {
		history = history[len(history)-maxHistoryTurns:]
	}
	return s.historyRepo.Save(ctx, sessionID, history)
}

func lowerExt(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}
