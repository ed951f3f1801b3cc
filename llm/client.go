// Package llm is an OpenAI-compatible client covering the two model calls
// the pipeline needs: structured extraction of search criteria from the
// user's request, and description embeddings for clustering.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Hammad1029/trend-finder/config"
)

// Client talks to an OpenAI-compatible endpoint
type Client struct {
	endpoint       string
	apiKey         string
	chatModel      string
	embeddingModel string
	client         *http.Client
}

// NewClient creates a new LLM client
func NewClient(cfg config.LLMConfig) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	return &Client{
		endpoint:       cfg.Endpoint,
		apiKey:         cfg.APIKey,
		chatModel:      cfg.ChatModel,
		embeddingModel: cfg.EmbeddingModel,
		client: &http.Client{
			Transport: transport,
			// context controls the timeout
		},
	}
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Temperature    float64         `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatJSON sends a system/user prompt pair and decodes the model's JSON
// reply into out.
func (c *Client) ChatJSON(ctx context.Context, system, user string, out interface{}) error {
	reqBody := chatRequest{
		Model: c.chatModel,
		Messages: []Message{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature:    0.1,
		ResponseFormat: &responseFormat{Type: "json_object"},
	}

	raw, err := c.post(ctx, "/chat/completions", reqBody)
	if err != nil {
		return err
	}

	var chat chatResponse
	if err := json.Unmarshal(raw, &chat); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if len(chat.Choices) == 0 {
		return fmt.Errorf("no response choices returned")
	}

	if err := json.Unmarshal([]byte(chat.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("model returned invalid JSON: %w", err)
	}
	return nil
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// Embed returns one embedding vector per input text, in input order
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	raw, err := c.post(ctx, "/embeddings", embeddingRequest{
		Model: c.embeddingModel,
		Input: texts,
	})
	if err != nil {
		return nil, err
	}

	var emb embeddingResponse
	if err := json.Unmarshal(raw, &emb); err != nil {
		return nil, fmt.Errorf("failed to decode embeddings: %w", err)
	}
	if len(emb.Data) != len(texts) {
		return nil, fmt.Errorf("expected %d embeddings, got %d", len(texts), len(emb.Data))
	}

	vectors := make([][]float64, len(texts))
	for _, d := range emb.Data {
		if d.Index < 0 || d.Index >= len(vectors) {
			return nil, fmt.Errorf("embedding index %d out of range", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}

// post sends a JSON request and returns the raw response body
func (c *Client) post(ctx context.Context, path string, body interface{}) ([]byte, error) {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.endpoint+path, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(raw))
	}
	return raw, nil
}
