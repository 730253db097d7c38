package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// Client sends a prompt to an LLM and returns the reply text.
// Model is provider-specific (e.g. "gpt-4o-mini", "llama-3.3-70b-versatile").
type Client interface {
	Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error)
}

type chatRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message message `json:"message"`
	} `json:"choices"`
}

func messages(systemPrompt, userMessage string) []message {
	var out []message
	if systemPrompt != "" {
		out = append(out, message{Role: "system", Content: systemPrompt})
	}
	return append(out, message{Role: "user", Content: userMessage})
}

// chatCompletion posts an OpenAI-style chat completion request and returns the first choice.
func chatCompletion(ctx context.Context, hc *http.Client, name, url, apiKey string, reqBody chatRequest) (string, error) {
	var out chatResponse
	if err := postJSON(ctx, hc, name, url, apiKey, reqBody, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("%s: no choices in response", name)
	}
	return out.Choices[0].Message.Content, nil
}

// postJSON sends in as a JSON POST and decodes the reply into out. name
// prefixes every error so the terminal shows which provider failed. An empty
// apiKey sends no Authorization header.
func postJSON(ctx context.Context, hc *http.Client, name, url, apiKey string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s: %s", name, resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}
