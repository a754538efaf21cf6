package clients

import (
	"encoding/json"
	"fmt"

	"github.com/TimCalavera/calavera-web/internal/models"
)

// Shared wire shapes for the OpenAI-compatible chat/completions providers
// (Groq, DeepSeek, OpenRouter). Content is either a plain string or, for
// vision requests, an array of typed parts.

type ChatCompletionRequest struct {
	Model       string                  `json:"model"`
	Messages    []ChatCompletionMessage `json:"messages"`
	Temperature float64                 `json:"temperature"`
	MaxTokens   int                     `json:"max_tokens"`
	TopP        float64                 `json:"top_p,omitempty"`
	Stream      bool                    `json:"stream"`
}

type ChatCompletionMessage struct {
	Role    string      `json:"role"`
	Content interface{} `json:"content"`
}

type ChatContentPart struct {
	Type     string        `json:"type"`
	Text     string        `json:"text,omitempty"`
	ImageURL *ChatImageURL `json:"image_url,omitempty"`
}

type ChatImageURL struct {
	URL string `json:"url"`
}

type ChatCompletionResponse struct {
	Choices []ChatCompletionChoice `json:"choices"`
	Error   *ChatCompletionError   `json:"error,omitempty"`
}

type ChatCompletionChoice struct {
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
}

type ChatCompletionError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
	Code    json.Number `json:"code"`
}

// buildChatMessages assembles system instruction, trimmed history and the new
// prompt in the OpenAI-style messages order.
func buildChatMessages(prompt, personality string, history []models.ChatTurn) []ChatCompletionMessage {
	messages := []ChatCompletionMessage{
		{Role: "system", Content: buildSystemInstruction(personality)},
	}

	for _, turn := range chatWindow(history) {
		messages = append(messages, ChatCompletionMessage{
			Role:    turn.Role,
			Content: turn.Content,
		})
	}

	messages = append(messages, ChatCompletionMessage{
		Role:    "user",
		Content: prompt,
	})

	return messages
}

// classifyStatusError converts a non-200 chat/completions response to a typed
// error whose message keeps the provider name and status for the sanitizer.
func classifyStatusError(provider string, statusCode int, body []byte) error {
	detail := ""
	var errorResponse ChatCompletionResponse
	if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error != nil {
		detail = ": " + errorResponse.Error.Message
	}
	message := fmt.Sprintf("%s API error (status %d)%s", provider, statusCode, detail)

	switch {
	case statusCode == 401 || statusCode == 403:
		return NewInvalidAPIKeyError(message)
	case statusCode == 429:
		return NewRateLimitError(message)
	case statusCode >= 500:
		return NewServerError(message)
	default:
		return NewGeneralError(message)
	}
}
