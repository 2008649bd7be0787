package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const openRouterURL = "https://openrouter.ai/api/v1/chat/completions"

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatOptions tune a single call; zero values fall back to client defaults.
type ChatOptions struct {
	Model       string
	Temperature float64
	MaxTokens   int
	// Provider-specific payload (e.g. image attachments for the vision
	// model); forwarded verbatim under extra_body.
	ExtraBody map[string]any
}

type ChatResult struct {
	Content string
	Model   string
	Usage   map[string]any
}

// OpenRouterClient is a thin chat-completions wrapper. Each request is
// independent and bounded by the HTTP client timeout plus the caller's
// context.
type OpenRouterClient struct {
	client *http.Client
	apiKey string
	model  string
}

func NewOpenRouterClient() *OpenRouterClient {
	model := os.Getenv("OPENROUTER_MODEL")
	if model == "" {
		model = "perplexity/sonar-pro"
	}
	return &OpenRouterClient{
		client: &http.Client{Timeout: 30 * time.Second},
		apiKey: os.Getenv("OPENROUTER_API_KEY"),
		model:  model,
	}
}

func (c *OpenRouterClient) Chat(ctx context.Context, messages []ChatMessage, opts ChatOptions) (*ChatResult, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY not configured")
	}

	model := opts.Model
	if model == "" {
		model = c.model
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.2
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 800
	}

	payload := map[string]any{
		"model":       model,
		"messages":    messages,
		"temperature": temperature,
		"max_tokens":  maxTokens,
	}
	if opts.ExtraBody != nil {
		payload["extra_body"] = opts.ExtraBody
	}

	b, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, openRouterURL, bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("build chat request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if site := os.Getenv("SITE_URL"); site != "" {
		req.Header.Set("HTTP-Referer", site)
	}
	if name := os.Getenv("SITE_NAME"); name != "" {
		req.Header.Set("X-Title", name)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
			Message string `json:"message"`
		}
		if json.Unmarshal(respBytes, &apiErr) == nil {
			if apiErr.Error.Message != "" {
				return nil, fmt.Errorf("openrouter error (%d): %s", resp.StatusCode, apiErr.Error.Message)
			}
			if apiErr.Message != "" {
				return nil, fmt.Errorf("openrouter error (%d): %s", resp.StatusCode, apiErr.Message)
			}
		}
		preview := string(respBytes)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		return nil, fmt.Errorf("openrouter error (%d): %s", resp.StatusCode, preview)
	}

	var data struct {
		Model   string `json:"model"`
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
		Usage map[string]any `json:"usage"`
	}
	if err := json.Unmarshal(respBytes, &data); err != nil {
		return nil, fmt.Errorf("decode chat response: %w", err)
	}

	content := ""
	if len(data.Choices) > 0 {
		content = data.Choices[0].Message.Content
	}
	return &ChatResult{Content: content, Model: data.Model, Usage: data.Usage}, nil
}
