package models

// TurnKind tags how a chat turn was produced. Only plain text turns are fed
// back to the language model as conversation context.
type TurnKind string

const (
	TurnText   TurnKind = "text"
	TurnSearch TurnKind = "search"
	TurnImage  TurnKind = "image"
	TurnFile   TurnKind = "file"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type ChatTurn struct {
	Role     string   `json:"role"`
	Kind     TurnKind `json:"kind"`
	Content  string   `json:"content"`
	ImageURL string   `json:"image_url,omitempty"`
	Filename string   `json:"filename,omitempty"`
}

// ChatUpload carries one multipart attachment from the chat form.
type ChatUpload struct {
	Filename string
	Data     []byte
}

type ChatRequest struct {
	Message     string
	Personality string
	Mode        string
	Model       string
	Image       *ChatUpload
	File        *ChatUpload
}

type ChatResult struct {
	Response string `json:"response"`
	Mode     string `json:"mode"`
	Model    string `json:"model,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	Filename string `json:"filename,omitempty"`
}
