package llm

import (
	"context"
	"fmt"
	"net/http"
)

const (
	openAIBaseURL = "https://api.openai.com/v1/chat/completions"
	groqBaseURL   = "https://api.groq.com/openai/v1/chat/completions"
)

// OpenAI implements Client using the OpenAI Chat Completions API or any
// compatible endpoint (Groq uses the same wire format).
type OpenAI struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewOpenAI returns a Client that uses the OpenAI API with the given API key.
func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{name: "openai", apiKey: apiKey, baseURL: openAIBaseURL, client: http.DefaultClient}
}

// NewGroq returns a Client that uses Groq's OpenAI-compatible API with the given API key.
func NewGroq(apiKey string) *OpenAI {
	return &OpenAI{name: "groq", apiKey: apiKey, baseURL: groqBaseURL, client: http.DefaultClient}
}

// WithBaseURL points the client at another chat completions endpoint.
func (c *OpenAI) WithBaseURL(url string) *OpenAI {
	c.baseURL = url
	return c
}

// Complete sends system and user messages and returns the assistant reply.
func (c *OpenAI) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("%s: API key not set", c.name)
	}
	return chatCompletion(ctx, c.client, c.name, c.baseURL, c.apiKey, chatRequest{
		Model:    model,
		Messages: messages(systemPrompt, userMessage),
	})
}
