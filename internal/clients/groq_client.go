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

type groqClient struct {
	apiKey       string
	textModel    string
	visionModel  string
	baseURL      string
	textClient   *http.Client
	visionClient *http.Client
}

func NewGroqClient() ChatClient {
	apiKey := os.Getenv("GROQ_API_KEY")
	if apiKey == "" {
		fmt.Printf("⚠️ GROQ_API_KEY not found in environment variables\n")
	}

	return &groqClient{
		apiKey:       apiKey,
		textModel:    "llama-3.3-70b-versatile",
		visionModel:  "meta-llama/llama-4-scout-17b-16e-instruct",
		baseURL:      "https://api.groq.com/openai/v1/chat/completions",
		textClient:   &http.Client{Timeout: 30 * time.Second},
		visionClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *groqClient) SupportsVision() bool {
	return true
}

func (c *groqClient) GenerateText(ctx context.Context, prompt, personality string, history []models.ChatTurn) (string, error) {
	if c.apiKey == "" {
		return "", NewInvalidAPIKeyError("Groq API key not configured")
	}

	request := ChatCompletionRequest{
		Model:       c.textModel,
		Messages:    buildChatMessages(prompt, personality, history),
		Temperature: 0.7,
		MaxTokens:   2048,
		TopP:        1,
		Stream:      false,
	}

	return c.send(ctx, c.textClient, request)
}

func (c *groqClient) AnalyzeImage(ctx context.Context, image []byte, prompt, personality string) (string, error) {
	if c.apiKey == "" {
		return "", NewInvalidAPIKeyError("Groq API key not configured")
	}

	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(image)

	request := ChatCompletionRequest{
		Model: c.visionModel,
		Messages: []ChatCompletionMessage{
			{Role: "system", Content: buildVisionInstruction(personality)},
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
		TopP:        1,
		Stream:      false,
	}

	return c.send(ctx, c.visionClient, request)
}

func (c *groqClient) send(ctx context.Context, client *http.Client, request ChatCompletionRequest) (string, error) {
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
		return "", classifyStatusError("Groq", resp.StatusCode, body)
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
