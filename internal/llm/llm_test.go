package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chatServer(t *testing.T, wantAuth, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != wantAuth {
			t.Errorf("Authorization = %q, want %q", got, wantAuth)
		}
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Content != "add a cube" {
			t.Errorf("messages = %+v", req.Messages)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": reply}}},
		})
	}))
}

func TestOpenAIComplete(t *testing.T) {
	srv := chatServer(t, "Bearer sk-test", `{"action":"add_object"}`)
	defer srv.Close()
	c := NewOpenAI("sk-test").WithBaseURL(srv.URL)
	got, err := c.Complete(context.Background(), "gpt-4o-mini", "system", "add a cube")
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"action":"add_object"}` {
		t.Errorf("reply = %q", got)
	}
}

func TestMissingKey(t *testing.T) {
	for _, c := range []Client{NewOpenAI(""), NewGroq(""), NewHuggingFace("")} {
		if _, err := c.Complete(context.Background(), "m", "s", "u"); err == nil {
			t.Errorf("%T: want error without key", c)
		}
	}
}

func TestHTTPErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "slow down", http.StatusTooManyRequests)
	}))
	defer srv.Close()
	_, err := NewGroq("k").WithBaseURL(srv.URL).Complete(context.Background(), "m", "s", "u")
	if err == nil || !strings.Contains(err.Error(), "groq: 429") {
		t.Errorf("err = %v", err)
	}
}

func TestNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()
	if _, err := NewOpenAI("k").WithBaseURL(srv.URL).Complete(context.Background(), "m", "s", "u"); err == nil {
		t.Error("want error for empty choices")
	}
}

func TestHuggingFaceURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/Qwen/Qwen2.5-Coder-32B-Instruct/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req chatRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.MaxTokens != 500 {
			t.Errorf("max_tokens = %d", req.MaxTokens)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"}}]}`))
	}))
	defer srv.Close()
	got, err := NewHuggingFace("hf_x").WithBaseURL(srv.URL+"/").Complete(context.Background(), "", "", "hello")
	if err != nil || got != "hi" {
		t.Errorf("Complete = %q, %v", got, err)
	}
}

func TestOllama(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Errorf("path = %s", r.URL.Path)
		}
		var req ollamaRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Stream || req.Model != DefaultOllamaModel || req.Format != "json" {
			t.Errorf("request = %+v", req)
		}
		w.Write([]byte(`{"message":{"role":"assistant","content":"ok"}}`))
	}))
	defer srv.Close()
	got, err := NewOllama(srv.URL+"/").Complete(context.Background(), "", "s", "u")
	if err != nil || got != "ok" {
		t.Errorf("Complete = %q, %v", got, err)
	}
}

func TestOllamaErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("ollama request carried an Authorization header")
		}
		var req ollamaRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Model == "missing" {
			http.Error(w, "model not found", http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"message":{"role":"assistant","content":""}}`))
	}))
	defer srv.Close()
	if _, err := NewOllama(srv.URL).Complete(context.Background(), "llama3", "s", "u"); err == nil || !strings.Contains(err.Error(), "empty reply") {
		t.Errorf("empty reply err = %v", err)
	}
	if _, err := NewOllama(srv.URL).Complete(context.Background(), "missing", "s", "u"); err == nil || !strings.Contains(err.Error(), "ollama: 404") {
		t.Errorf("404 err = %v", err)
	}
}

type fakeClient struct {
	reply string
	err   error
	calls int
	model string
}

func (f *fakeClient) Complete(ctx context.Context, model, systemPrompt, userMessage string) (string, error) {
	f.calls++
	f.model = model
	return f.reply, f.err
}

func TestFallback(t *testing.T) {
	bad := &fakeClient{err: errors.New("down")}
	good := &fakeClient{reply: "ok"}
	got, err := Fallback{bad, nil, good}.Complete(context.Background(), "m", "s", "u")
	if err != nil || got != "ok" || bad.calls != 1 {
		t.Errorf("Complete = %q, %v (bad calls %d)", got, err, bad.calls)
	}

	_, err = Fallback{bad, &fakeClient{err: errors.New("also down")}}.Complete(context.Background(), "m", "s", "u")
	if err == nil || !strings.Contains(err.Error(), "down") || !strings.Contains(err.Error(), "also down") {
		t.Errorf("joined err = %v", err)
	}
	if _, err := (Fallback{}).Complete(context.Background(), "m", "s", "u"); err == nil {
		t.Error("empty fallback: want error")
	}
}

func TestProviderFor(t *testing.T) {
	tests := []struct {
		model string
		p     Provider
		name  string
	}{
		{"gpt-4o-mini", ProviderOpenAI, "gpt-4o-mini"},
		{"o3-mini", ProviderOpenAI, "o3-mini"},
		{"llama-3.3-70b-versatile", ProviderGroq, "llama-3.3-70b-versatile"},
		{"Qwen/Qwen2.5-Coder-32B-Instruct", ProviderHuggingFace, "Qwen/Qwen2.5-Coder-32B-Instruct"},
		{"ollama:llama3", ProviderOllama, "llama3"},
	}
	for _, tt := range tests {
		p, name := ProviderFor(tt.model)
		if p != tt.p || name != tt.name {
			t.Errorf("ProviderFor(%q) = %s, %s", tt.model, p, name)
		}
	}
}

func TestRouter(t *testing.T) {
	r := NewRouter(Keys{})
	groq := &fakeClient{err: errors.New("groq down")}
	openai := &fakeClient{reply: "from openai"}
	r.Set(ProviderGroq, groq)
	r.Set(ProviderOpenAI, openai)

	c, name := r.Client("llama3-8b")
	got, err := c.Complete(context.Background(), name, "s", "u")
	if err != nil || got != "from openai" || groq.calls != 1 {
		t.Errorf("Complete = %q, %v", got, err)
	}

	ollama := &fakeClient{reply: "local"}
	r.Set(ProviderOllama, ollama)
	if got, err := r.Complete(context.Background(), "ollama:llama3", "s", "u"); err != nil || got != "local" || ollama.model != "llama3" {
		t.Errorf("Complete(ollama:llama3) = %q, %v, model %q", got, err, ollama.model)
	}

	c, _ = r.Client("someone/model")
	if _, err := c.Complete(context.Background(), "someone/model", "s", "u"); err == nil {
		t.Error("huggingface without token: want error")
	}
}
