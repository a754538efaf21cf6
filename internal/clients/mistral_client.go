package clients

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/TimCalavera/calavera-web/internal/models"
)

// mistralClient talks to Mistral through the OpenRouter gateway, which uses
// the OpenAI wire format plus attribution headers.
type mistralClient struct {
	apiKey       string
	model        string
	baseURL      string
	referer      string
	title        string
	textClient   *http.Client
	visionClient *http.Client
}

func NewMistralClient() ChatClient {
	apiKey := os.Getenv("MISTRAL_API_KEY")
	if apiKey == "" {
		fmt.Printf("⚠️ MISTRAL_API_KEY not found in environment variables\n")
	}

	return &mistralClient{
		apiKey:       apiKey,
		model:        "mistralai/mistral-small-3.2-24b-instruct:free",
		baseURL:      "https://openrouter.ai/api/v1/chat/completions",
		referer:      "https://calavera-class.com",
		title:        "Calavera AI",
		textClient:   &http.Client{Timeout: 30 * time.Second},
		visionClient: &http.Client{Timeout: 45 * time.Second},
	}
}

func (c *mistralClient) SupportsVision() bool {
	return true
}

func (c *mistralClient) GenerateText(ctx context.Context, prompt, personality string, history []models.ChatTurn) (string, error) {
	if c.apiKey == "" {
		return "", NewInvalidAPIKeyError("Mistral API key not configured")
	}

	request := ChatCompletionRequest{
		Model:       c.model,
		Messages:    buildChatMessages(prompt, personality, history),
		Temperature: 0.7,
		MaxTokens:   2048,
	}

	return c.send(ctx, c.textClient, request)
}

func (c *mistralClient) AnalyzeImage(ctx context.Context, image []byte, prompt, personality string) (string, error) {
	if c.apiKey == "" {
		return "", NewInvalidAPIKeyError("Mistral API key not configured")
	}

	if prompt == "" {
		prompt = "Jelaskan apa yang ada di gambar ini"
	}
	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	request := ChatCompletionRequest{
		Model: c.model,
		Messages: []ChatCompletionMessage{
			{Role: "system", Content: buildSystemInstruction(personality)},
			{
				Role: "user",
				Content: []ChatContentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &ChatImageURL{URL: imageURL}},
				},
			},
		},
		Temperature: 0.4,
		MaxTokens:   2048,
	}

	return c.send(ctx, c.visionClient, request)
}

func (c *mistralClient) send(ctx context.Context, client *http.Client, request ChatCompletionRequest) (string, error) {
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
	req.Header.Set("HTTP-Referer", c.referer)
	req.Header.Set("X-Title", c.title)

	resp, err := client.Do(req)
	if err != nil {
		return "", NewTimeoutError(fmt.Sprintf("failed to send request: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", classifyStatusError("Mistral", resp.StatusCode, body)
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
