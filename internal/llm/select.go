package llm

import (
	"context"
	"strings"
)

// Keys holds provider credentials, usually read from the environment.
type Keys struct {
	OpenAI      string
	Groq        string
	HuggingFace string
	OllamaURL   string
}

// Provider names a backend.
type Provider string

const (
	ProviderOpenAI      Provider = "openai"
	ProviderGroq        Provider = "groq"
	ProviderHuggingFace Provider = "huggingface"
	ProviderOllama      Provider = "ollama"
)

// ProviderFor guesses the backend for a model name and returns the model name
// the backend expects. "ollama:<model>" forces Ollama; "org/model" is a
// Hugging Face repo id; gpt-* and o1/o3/o4 models go to OpenAI; anything else to Groq.
func ProviderFor(model string) (Provider, string) {
	m := strings.TrimSpace(model)
	switch {
	case strings.HasPrefix(m, "ollama:"):
		return ProviderOllama, strings.TrimPrefix(m, "ollama:")
	case strings.Contains(m, "/"):
		return ProviderHuggingFace, m
	case strings.HasPrefix(m, "gpt-"), strings.HasPrefix(m, "o1"), strings.HasPrefix(m, "o3"), strings.HasPrefix(m, "o4"):
		return ProviderOpenAI, m
	}
	return ProviderGroq, m
}

// Router sends each request to the backend ProviderFor picks, falling back to
// any other configured backend that accepts the same model name.
type Router struct {
	keys    Keys
	clients map[Provider]Client
}

// NewRouter builds a client per provider with a credential. Ollama is always available.
func NewRouter(keys Keys) *Router {
	r := &Router{keys: keys, clients: make(map[Provider]Client)}
	if keys.OpenAI != "" {
		r.clients[ProviderOpenAI] = NewOpenAI(keys.OpenAI)
	}
	if keys.Groq != "" {
		r.clients[ProviderGroq] = NewGroq(keys.Groq)
	}
	if keys.HuggingFace != "" {
		r.clients[ProviderHuggingFace] = NewHuggingFace(keys.HuggingFace)
	}
	r.clients[ProviderOllama] = NewOllama(keys.OllamaURL)
	return r
}

// Set replaces the client for p (tests and custom endpoints).
func (r *Router) Set(p Provider, c Client) {
	r.clients[p] = c
}

// Client returns the chain for model and the model name to send.
func (r *Router) Client(model string) (Client, string) {
	p, name := ProviderFor(model)
	chain := Fallback{r.clients[p]}
	// Groq model names are also tried on OpenAI when Groq fails.
	if p == ProviderGroq {
		chain = append(chain, r.clients[ProviderOpenAI])
	}
	return chain, name
}

// Complete routes one request by model name, so a Router can stand in for a single Client.
func (r *Router) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	c, name := r.Client(model)
	return c.Complete(ctx, name, systemPrompt, userMessage)
}
