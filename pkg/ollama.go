package pkg

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

type ollamaGenerateCall struct {
	Model   string         `json:"model"`
	Prompt  string         `json:"prompt"`
	System  string         `json:"system,omitempty"`
	Stream  bool           `json:"stream"`
	Options map[string]any `json:"options"`
}

type ollamaRawResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
	Error    string `json:"error"`
}

// OllamaGenerateRequest targets an Ollama-compatible /api/generate endpoint.
type OllamaGenerateRequest struct {
	URL         string
	Model       string
	Prompt      string
	System      string
	Temperature float64
}

type OllamaGenerateResponse struct {
	Response string `json:"response"`
	Model    string `json:"model"`
	Done     bool   `json:"done"`
}

// OllamaClient calls an Ollama server over HTTP. Timeouts are the server's
// responsibility; the client only honors the caller's context.
type OllamaClient struct {
	http *http.Client
	// When the backend runs in a container, localhost URLs coming from the
	// browser must point at the host instead.
	rewriteDockerHost bool
}

func NewOllamaClient(rewriteDockerHost bool) *OllamaClient {
	return &OllamaClient{
		http:              &http.Client{},
		rewriteDockerHost: rewriteDockerHost,
	}
}

func (slf *OllamaClient) rewriteHost(url string) string {
	if !slf.rewriteDockerHost {
		return url
	}
	url = strings.ReplaceAll(url, "localhost", "host.docker.internal")
	url = strings.ReplaceAll(url, "127.0.0.1", "host.docker.internal")
	return strings.ReplaceAll(url, "docker.host.internal", "host.docker.internal")
}

// Generate performs a non-streaming completion call. A non-2xx status, an
// empty body and a malformed body are all distinct errors; a well-formed empty
// response string is returned as-is.
func (slf *OllamaClient) Generate(ctx context.Context, request OllamaGenerateRequest) (OllamaGenerateResponse, error) {
	var result OllamaGenerateResponse

	call := ollamaGenerateCall{
		Model:  request.Model,
		Prompt: request.Prompt,
		System: request.System,
		Stream: false,
		Options: map[string]any{
			"temperature": request.Temperature,
		},
	}
	data, err := json.Marshal(call)
	if err != nil {
		return result, err
	}

	endpoint := fmt.Sprintf("%s/api/generate", strings.TrimRight(slf.rewriteHost(request.URL), "/"))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewBuffer(data))
	if err != nil {
		return result, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := slf.http.Do(req)
	if err != nil {
		return result, fmt.Errorf("cannot reach ollama at %s: %w", request.URL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return result, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var raw ollamaRawResponse
		if json.Unmarshal(body, &raw) == nil && raw.Error != "" {
			return result, fmt.Errorf("ollama: %s", raw.Error)
		}
		return result, fmt.Errorf("ollama: HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return result, fmt.Errorf("ollama: empty response body")
	}

	var raw ollamaRawResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return result, fmt.Errorf("ollama: invalid JSON response: %w", err)
	}
	if raw.Error != "" {
		return result, fmt.Errorf("ollama: %s", raw.Error)
	}

	result = OllamaGenerateResponse{
		Response: raw.Response,
		Model:    raw.Model,
		Done:     raw.Done,
	}
	return result, nil
}
