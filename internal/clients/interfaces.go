package clients

import (
	"context"

	"github.com/TimCalavera/calavera-web/internal/models"
)

// ChatClient is the contract shared by every hosted language-model backend.
// The payload shapes differ per provider; the two operations do not.
type ChatClient interface {
	GenerateText(ctx context.Context, prompt, personality string, history []models.ChatTurn) (string, error)
	AnalyzeImage(ctx context.Context, image []byte, prompt, personality string) (string, error)
	// SupportsVision reports whether AnalyzeImage is available. Callers must
	// check it before dispatching an image request.
	SupportsVision() bool
}

// SearchClient wraps the hosted web-search API.
type SearchClient interface {
	Search(ctx context.Context, query string, numResults int) (*SearchResult, error)
	FormatResults(result *SearchResult, err error) string
}

// SearchResult mirrors the LangSearch response envelope.
type SearchResult struct {
	Data SearchData `json:"data"`
}

type SearchData struct {
	WebPages SearchWebPages `json:"webPages"`
}

type SearchWebPages struct {
	Value []SearchPage `json:"value"`
}

type SearchPage struct {
	Name    string `json:"name"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
