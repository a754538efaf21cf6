package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	searchResultLimit = 5
	snippetLimit      = 200
	noResultsMessage  = "🔍 Tidak ada hasil yang ditemukan untuk pencarian kamu."
)

type langSearchClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

type langSearchRequest struct {
	Query      string `json:"query"`
	NumResults int    `json:"num_results"`
}

func NewLangSearchClient() SearchClient {
	apiKey := os.Getenv("LANGSEARCH_API_KEY")
	if apiKey == "" {
		fmt.Printf("⚠️ LANGSEARCH_API_KEY not found in environment variables\n")
	}

	return &langSearchClient{
		apiKey:  apiKey,
		baseURL: "https://api.langsearch.com/v1/web-search",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *langSearchClient) Search(ctx context.Context, query string, numResults int) (*SearchResult, error) {
	if c.apiKey == "" {
		return nil, NewInvalidAPIKeyError("LangSearch API key not configured")
	}
	if numResults <= 0 {
		numResults = 5
	}

	jsonData, err := json.Marshal(langSearchRequest{Query: query, NumResults: numResults})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, NewTimeoutError(fmt.Sprintf("failed to send request: %v", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, classifyStatusError("LangSearch", resp.StatusCode, body)
	}

	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	return &result, nil
}

// FormatResults renders up to five results as a numbered markdown list. A
// failed search formats to its sanitized message instead.
func (c *langSearchClient) FormatResults(result *SearchResult, err error) string {
	if err != nil {
		return Sanitize(err.Error())
	}

	pages := result.Data.WebPages.Value
	if len(pages) == 0 {
		return noResultsMessage
	}
	if len(pages) > searchResultLimit {
		pages = pages[:searchResultLimit]
	}

	var sb strings.Builder
	sb.WriteString("🌐 **Hasil Pencarian:**\n\n")

	for idx, page := range pages {
		title := page.Name
		if title == "" {
			title = "Tanpa Judul"
		}
		url := page.URL
		if url == "" {
			url = "#"
		}

		sb.WriteString(fmt.Sprintf("**%d. [%s](%s)**\n", idx+1, title, url))
		if page.Snippet != "" {
			snippet := page.Snippet
			if len(snippet) > snippetLimit {
				snippet = snippet[:snippetLimit] + "..."
			}
			sb.WriteString(fmt.Sprintf("   %s\n", snippet))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
