package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/TimCalavera/calavera-web/internal/models"
)

// deepseekClient is text-only; SupportsVision returns false and the
// orchestrator rejects image requests before any call is made.
type deepseekClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewDeepSeekClient() ChatClient {
	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	if apiKey == "" {
		fmt.Printf("⚠️ DEEPSEEK_API_KEY not found in environment variables\n")
	}

	return &deepseekClient{
		apiKey:  apiKey,
		model:   "deepseek-chat",
		baseURL: "https://api.deepseek.com/v1/chat/completions",
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *deepseekClient) SupportsVision() bool {
	return false
}

func (c *deepseekClient) GenerateText(ctx context.Context, prompt, personality string, history []models.ChatTurn) (string, error) {
	if c.apiKey == "" {
		return "", NewInvalidAPIKeyError("DeepSeek API key not configured")
	}

	request := ChatCompletionRequest{
		Model:       c.model,
		Messages:    buildChatMessages(prompt, personality, history),
		Temperature: 0.7,
		MaxTokens:   2048,
		Stream:      false,
	}

	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", NewTimeoutError(fmt.Sprintf("failed to send request: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatusError("DeepSeek", resp.StatusCode, body)
	}

	var response ChatCompletionResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(response.Choices) == 0 {
		return sanitizeFallback, nil
	}

	return response.Choices[0].Message.Content, nil
}

func (c *deepseekClient) AnalyzeImage(ctx context.Context, image []byte, prompt, personality string) (string, error) {
	return "", NewGeneralError("DeepSeek tidak mendukung analisis gambar")
}
