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

type geminiClient struct {
	apiKey       string
	textModel    string
	visionModel  string
	baseURL      string
	textClient   *http.Client
	visionClient *http.Client
}

type GeminiRequest struct {
	SystemInstruction *GeminiContent         `json:"system_instruction,omitempty"`
	Contents          []GeminiContent        `json:"contents"`
	GenerationConfig  GeminiGenerationConfig `json:"generationConfig"`
}

type GeminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []GeminiPart `json:"parts"`
}

type GeminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *GeminiInlineData `json:"inline_data,omitempty"`
}

type GeminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type GeminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type GeminiResponse struct {
	Candidates []GeminiCandidate `json:"candidates"`
	Error      *GeminiError      `json:"error,omitempty"`
}

type GeminiCandidate struct {
	Content      GeminiContent `json:"content"`
	FinishReason string        `json:"finishReason"`
}

type GeminiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

func NewGeminiClient() ChatClient {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		fmt.Printf("⚠️ GEMINI_API_KEY not found in environment variables\n")
	}

	return &geminiClient{
		apiKey:       apiKey,
		textModel:    "gemini-2.5-flash",
		visionModel:  "gemini-2.5-flash",
		baseURL:      "https://generativelanguage.googleapis.com/v1beta/models",
		textClient:   &http.Client{Timeout: 30 * time.Second},
		visionClient: &http.Client{Timeout: 45 * time.Second},
	}
}

func (c *geminiClient) SupportsVision() bool {
	return true
}

// buildContents converts the trimmed history plus the new prompt into the
// Gemini contents array. Gemini names the assistant role "model".
func (c *geminiClient) buildContents(prompt string, history []models.ChatTurn) []GeminiContent {
	var contents []GeminiContent

	for _, turn := range chatWindow(history) {
		role := turn.Role
		if role == models.RoleAssistant {
			role = "model"
		}
		contents = append(contents, GeminiContent{
			Role:  role,
			Parts: []GeminiPart{{Text: turn.Content}},
		})
	}

	contents = append(contents, GeminiContent{
		Role:  "user",
		Parts: []GeminiPart{{Text: prompt}},
	})

	return contents
}

func (c *geminiClient) GenerateText(ctx context.Context, prompt, personality string, history []models.ChatTurn) (string, error) {
	if c.apiKey == "" {
		return "", NewInvalidAPIKeyError("Gemini API key not configured")
	}

	request := GeminiRequest{
		SystemInstruction: &GeminiContent{
			Parts: []GeminiPart{{Text: buildSystemInstruction(personality)}},
		},
		Contents: c.buildContents(prompt, history),
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     0.7,
			TopK:            40,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	}

	return c.send(ctx, c.textClient, c.textModel, request)
}

func (c *geminiClient) AnalyzeImage(ctx context.Context, image []byte, prompt, personality string) (string, error) {
	if c.apiKey == "" {
		return "", NewInvalidAPIKeyError("Gemini API key not configured")
	}

	request := GeminiRequest{
		SystemInstruction: &GeminiContent{
			Parts: []GeminiPart{{Text: buildVisionInstruction(personality)}},
		},
		Contents: []GeminiContent{
			{
				Role: "user",
				Parts: []GeminiPart{
					{Text: prompt},
					{InlineData: &GeminiInlineData{
						MimeType: "image/jpeg",
						Data:     base64.StdEncoding.EncodeToString(image),
					}},
				},
			},
		},
		GenerationConfig: GeminiGenerationConfig{
			Temperature:     0.4,
			TopK:            32,
			TopP:            0.95,
			MaxOutputTokens: 2048,
		},
	}

	return c.send(ctx, c.visionClient, c.visionModel, request)
}

func (c *geminiClient) send(ctx context.Context, client *http.Client, model string, request GeminiRequest) (string, error) {
	jsonData, err := json.Marshal(request)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent?key=%s", c.baseURL, model, c.apiKey)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

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
		var errorResponse GeminiResponse
		if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error != nil {
			switch errorResponse.Error.Code {
			case 401, 403:
				return "", NewInvalidAPIKeyError(fmt.Sprintf("Gemini API error (status %d): %s", errorResponse.Error.Code, errorResponse.Error.Message))
			case 429:
				return "", NewRateLimitError(fmt.Sprintf("Gemini API error (status 429): %s", errorResponse.Error.Message))
			case 500, 502, 503:
				return "", NewServerError(fmt.Sprintf("Gemini API error (status %d): %s", errorResponse.Error.Code, errorResponse.Error.Message))
			default:
				return "", NewGeneralError(fmt.Sprintf("Gemini API error (status %d): %s", errorResponse.Error.Code, errorResponse.Error.Message))
			}
		}
		return "", NewGeneralError(fmt.Sprintf("Gemini API error (status %d)", resp.StatusCode))
	}

	var response GeminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}

	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return sanitizeFallback, nil
	}

	return response.Candidates[0].Content.Parts[0].Text, nil
}
