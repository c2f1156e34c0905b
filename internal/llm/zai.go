package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// zaiProvider implements Provider using the Z.AI Anthropic-compatible
// messages API.
type zaiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  http.Client
}

type zaiRequest struct {
	Model     string       `json:"model"`
	MaxTokens int          `json:"max_tokens"`
	Messages  []zaiMessage `json:"messages"`
}

type zaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type zaiResponse struct {
	ID      string `json:"id"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string    `json:"stop_reason"`
	Error      *zaiError `json:"error,omitempty"`
}

type zaiError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func (z *zaiProvider) Name() string {
	return "zai/" + z.model
}

func (z *zaiProvider) Complete(ctx context.Context, prompt string, opts CompletionOpts) (string, error) {
	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 4096
	}

	req := zaiRequest{
		Model:     z.model,
		MaxTokens: maxTokens,
		Messages:  []zaiMessage{{Role: "user", Content: prompt}},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	url := z.baseURL + "/v1/messages"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("x-api-key", z.apiKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")

	resp, err := z.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("zai API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var zaiResp zaiResponse
	if err := json.Unmarshal(respBody, &zaiResp); err != nil {
		return "", fmt.Errorf("parsing response: %w", err)
	}

	if zaiResp.Error != nil {
		return "", fmt.Errorf("zai API error: %s", zaiResp.Error.Message)
	}

	var text strings.Builder
	for _, block := range zaiResp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}
	if text.Len() == 0 {
		return "", fmt.Errorf("empty response from zai API")
	}

	return strings.TrimSpace(text.String()), nil
}
