package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Local models can take a while on long job descriptions.
const ollamaTimeout = 60 * time.Second

// OllamaClient completes prompts against a local Ollama /api/generate
// endpoint. Ollama's generate API takes a single prompt string, so the
// system prompt is folded into it.
type OllamaClient struct {
	URL   string
	Model string

	client *http.Client
}

func NewOllamaClient(url, model string) *OllamaClient {
	return &OllamaClient{
		URL:    url,
		Model:  model,
		client: &http.Client{Timeout: ollamaTimeout},
	}
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Format  string        `json:"format"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	NumPredict int `json:"num_predict"`
}

type ollamaResponse struct {
	Response string `json:"response"`
}

func (o *OllamaClient) Complete(ctx context.Context, system, user string, maxTokens int) (string, error) {
	if o.client == nil {
		o.client = &http.Client{Timeout: ollamaTimeout}
	}

	payload, err := json.Marshal(ollamaRequest{
		Model:   o.Model,
		Prompt:  fmt.Sprintf("System: %s\n\nUser: %s", system, user),
		Stream:  false,
		Format:  "json",
		Options: ollamaOptions{NumPredict: maxTokens},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.URL, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("http POST: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 100 {
			snippet = snippet[:100]
		}
		return "", fmt.Errorf("ollama returned %d: %s", resp.StatusCode, snippet)
	}

	var out ollamaResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("json unmarshal: %w", err)
	}

	text := strings.TrimSpace(out.Response)
	if text == "" {
		return "", fmt.Errorf("empty response from ollama")
	}

	return text, nil
}
