package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultOpenRouterURL = "https://openrouter.ai/api/v1"

type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	// Referer and Title are sent as the HTTP-Referer and X-Title headers
	// OpenRouter uses for attribution.
	Referer string
	Title   string
	// Timeout 0 means no client side timeout.
	Timeout time.Duration
}

// OpenAIClient talks to any OpenAI compatible chat completion endpoint,
// OpenRouter by default.
type OpenAIClient struct {
	apiKey     string
	baseURL    string
	referer    string
	title      string
	httpClient *http.Client
	log        *zap.Logger
}

func NewOpenAIClient(cfg OpenAIConfig, log *zap.Logger) *OpenAIClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultOpenRouterURL
	}
	return &OpenAIClient{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		referer:    cfg.Referer,
		title:      cfg.Title,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		log:        log,
	}
}

func (c *OpenAIClient) Name() string { return "openrouter" }

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []Message       `json:"messages"`
	Stream         bool            `json:"stream,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
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

type chatChunk struct {
	Choices []struct {
		Delta struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"delta"`
		FinishReason interface{} `json:"finish_reason"`
		Index        int         `json:"index"`
	} `json:"choices"`
}

func (c *OpenAIClient) newRequest(ctx context.Context, req CompletionRequest, stream bool) (*http.Request, error) {
	body := chatRequest{
		Model:       req.Model,
		Messages:    req.Messages,
		Stream:      stream,
		Temperature: req.Temperature,
	}
	if req.JSONResponse {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	jsonData, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	if c.referer != "" {
		httpReq.Header.Set("HTTP-Referer", c.referer)
	}
	if c.title != "" {
		httpReq.Header.Set("X-Title", c.title)
	}
	return httpReq, nil
}

func (c *OpenAIClient) do(httpReq *http.Request) (*http.Response, error) {
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpstreamError{StatusCode: resp.StatusCode, Body: string(bodyBytes)}
	}
	return resp, nil
}

// Complete sends one non streaming request. There is no retry.
func (c *OpenAIClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	httpReq, err := c.newRequest(ctx, req, false)
	if err != nil {
		return "", err
	}

	start := time.Now()
	resp, err := c.do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("failed to decode completion: %w", err)
	}
	c.log.Debug("completion finished",
		zap.String("model", req.Model),
		zap.Duration("took", time.Since(start)))

	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

func (c *OpenAIClient) Stream(ctx context.Context, req CompletionRequest) (<-chan string, <-chan error) {
	chunkChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(chunkChan)
		defer close(errChan)

		if c.apiKey == "" {
			errChan <- ErrMissingAPIKey
			return
		}

		httpReq, err := c.newRequest(ctx, req, true)
		if err != nil {
			errChan <- err
			return
		}
		resp, err := c.do(httpReq)
		if err != nil {
			errChan <- err
			return
		}
		defer resp.Body.Close()

		reader := bufio.NewReader(resp.Body)
		for {
			// The last line may arrive without a newline; it is handled
			// before the EOF ends the loop.
			line, readErr := reader.ReadString('\n')
			if readErr != nil && readErr != io.EOF {
				errChan <- fmt.Errorf("failed reading response: %w", readErr)
				return
			}

			if strings.HasPrefix(line, "data: ") {
				data := strings.TrimSpace(strings.TrimPrefix(line, "data: "))
				if data == "[DONE]" {
					return
				}

				var chunk chatChunk
				if err := json.Unmarshal([]byte(data), &chunk); err != nil {
					errChan <- fmt.Errorf("failed to unmarshal chunk: %w", err)
					return
				}
				if len(chunk.Choices) > 0 && chunk.Choices[0].Delta.Content != "" {
					select {
					case chunkChan <- chunk.Choices[0].Delta.Content:
					case <-ctx.Done():
						errChan <- ctx.Err()
						return
					}
				}
			}

			if readErr == io.EOF {
				return
			}
		}
	}()

	return chunkChan, errChan
}
