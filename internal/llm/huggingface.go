package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// DefaultHuggingFaceModel is the chat model used when none is given.
const DefaultHuggingFaceModel = "Qwen/Qwen2.5-Coder-32B-Instruct"

const huggingFaceBaseURL = "https://api-inference.huggingface.co/models"

// HuggingFace implements Client with the Hugging Face serverless inference chat endpoint.
type HuggingFace struct {
	token     string
	baseURL   string
	maxTokens int
	client    *http.Client
}

// NewHuggingFace returns a Client authenticated with the given access token.
func NewHuggingFace(token string) *HuggingFace {
	return &HuggingFace{token: token, baseURL: huggingFaceBaseURL, maxTokens: 500, client: http.DefaultClient}
}

// WithBaseURL replaces the models endpoint root.
func (c *HuggingFace) WithBaseURL(url string) *HuggingFace {
	c.baseURL = strings.TrimSuffix(url, "/")
	return c
}

// Complete sends the messages to {baseURL}/{model}/v1/chat/completions.
func (c *HuggingFace) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	if c.token == "" {
		return "", fmt.Errorf("huggingface: access token not set")
	}
	if model == "" {
		model = DefaultHuggingFaceModel
	}
	url := c.baseURL + "/" + model + "/v1/chat/completions"
	return chatCompletion(ctx, c.client, "huggingface", url, c.token, chatRequest{
		Model:     model,
		Messages:  messages(systemPrompt, userMessage),
		MaxTokens: c.maxTokens,
	})
}
