package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/TimCalavera/calavera-web/internal/api/middleware"
	"github.com/TimCalavera/calavera-web/internal/clients"
	"github.com/TimCalavera/calavera-web/internal/models"
	"github.com/TimCalavera/calavera-web/internal/services"
	"github.com/TimCalavera/calavera-web/internal/utils"
)

const maxChatUploadBytes = 16 << 20

// ChatHandler is the JSON API behind the chatbot page.
type ChatHandler struct {
	chatService services.ChatService
	sessions    *middleware.SessionManager
}

func NewChatHandler(chatService services.ChatService, sessions *middleware.SessionManager) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		sessions:    sessions,
	}
}

func (h *ChatHandler) writeChatError(w http.ResponseWriter, err error) {
	var vErr *services.ValidationError
	if errors.As(err, &vErr) {
		utils.WriteJSONResponse(w, http.StatusBadRequest, map[string]string{"error": vErr.Message})
		return
	}
	log.Printf("chat: %v", err)
	utils.WriteJSONResponse(w, http.StatusInternalServerError, map[string]string{"error": clients.Sanitize(err.Error())})
}

func formUpload(r *http.Request, field string) (*models.ChatUpload, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &models.ChatUpload{Filename: header.Filename, Data: data}, nil
}

// Chat accepts the multipart chat form: message, personality, mode, model,
// plus an optional image or file attachment depending on the mode.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxChatUploadBytes); err != nil {
		// Plain form posts without attachments are fine too.
		if err := r.ParseForm(); err != nil {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad request")
			return
		}
	}

	sessionID, err := h.sessions.ChatSessionID(w, r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	req := models.ChatRequest{
		Message:     r.FormValue("message"),
		Personality: r.FormValue("personality"),
		Mode:        r.FormValue("mode"),
		Model:       r.FormValue("model"),
	}
	if req.Mode == "" {
		req.Mode = "text"
	}
	if req.Model == "" {
		req.Model = "gemini"
	}

	if req.Image, err = formUpload(r, "image"); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad request")
		return
	}
	if req.File, err = formUpload(r, "file"); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Bad request")
		return
	}

	result, err := h.chatService.Chat(r.Context(), sessionID, req)
	if err != nil {
		h.writeChatError(w, err)
		return
	}
	utils.WriteJSONResponse(w, http.StatusOK, result)
}

func (h *ChatHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Personality string `json:"personality"`
		Model       string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if body.Model == "" {
		body.Model = "gemini"
	}

	sessionID, err := h.sessions.ChatSessionID(w, r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result, err := h.chatService.Regenerate(r.Context(), sessionID, body.Model, body.Personality)
	if err != nil {
		h.writeChatError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"response": result.Response,
		"model":    result.Model,
	})
}

func (h *ChatHandler) Clear(w http.ResponseWriter, r *http.Request) {
	sessionID, err := h.sessions.ChatSessionID(w, r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.chatService.Clear(r.Context(), sessionID); err != nil {
		h.writeChatError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{
		"message":    "Chat dan file berhasil dihapus",
		"cleared_at": time.Now().Format("2006-01-02 15:04:05"),
	})
}

func (h *ChatHandler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Index *int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	index := -1
	if body.Index != nil {
		index = *body.Index
	}

	sessionID, err := h.sessions.ChatSessionID(w, r)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := h.chatService.DeleteMessage(r.Context(), sessionID, index); err != nil {
		h.writeChatError(w, err)
		return
	}

	utils.WriteJSONResponse(w, http.StatusOK, map[string]string{"message": "Pesan berhasil dihapus"})
}
