package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

const (
	DefaultOllamaBaseURL = "http://localhost:11434"
	DefaultOllamaModel   = "qwen2.5-coder"
)

// Ollama implements Client with a local Ollama server's native /api/chat
// endpoint. Replies are constrained to JSON, which is all the agent accepts.
type Ollama struct {
	baseURL string
	client  *http.Client
}

// NewOllama returns a Client for the server at baseURL. An empty baseURL
// means DefaultOllamaBaseURL.
func NewOllama(baseURL string) *Ollama {
	u := strings.TrimSuffix(baseURL, "/")
	if u == "" {
		u = DefaultOllamaBaseURL
	}
	return &Ollama{baseURL: u, client: http.DefaultClient}
}

type ollamaRequest struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
	Format   string    `json:"format,omitempty"`
}

type ollamaResponse struct {
	Message message `json:"message"`
}

// Complete returns the assistant reply. An empty model means DefaultOllamaModel.
func (c *Ollama) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if model == "" {
		model = DefaultOllamaModel
	}
	var out ollamaResponse
	err := postJSON(ctx, c.client, "ollama", c.baseURL+"/api/chat", "", ollamaRequest{
		Model:    model,
		Messages: messages(systemPrompt, userMessage),
		Format:   "json",
	}, &out)
	if err != nil {
		return "", err
	}
	if out.Message.Content == "" {
		return "", errors.New("ollama: empty reply")
	}
	return out.Message.Content, nil
}
