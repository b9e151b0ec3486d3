package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiClient serves completions from the Gemini API. Model names are
// passed through unchanged, so callers should configure gemini model ids.
type GeminiClient struct {
	client *genai.Client
	log    *zap.Logger
}

// NewGeminiClient does not fail on an empty key; requests then return
// ErrMissingAPIKey like the other providers.
func NewGeminiClient(ctx context.Context, apiKey string, log *zap.Logger) (*GeminiClient, error) {
	if apiKey == "" {
		return &GeminiClient{log: log}, nil
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiClient{client: client, log: log}, nil
}

func (c *GeminiClient) Name() string { return "gemini" }

// split moves system messages into the system instruction and maps the
// assistant role onto gemini's model role.
func (c *GeminiClient) split(req CompletionRequest) ([]*genai.Content, *genai.GenerateContentConfig) {
	config := &genai.GenerateContentConfig{}
	if req.JSONResponse {
		config.ResponseMIMEType = "application/json"
	}
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		config.Temperature = &t
	}

	var system string
	contents := make([]*genai.Content, 0, len(req.Messages))
	for _, m := range req.Messages {
		switch m.Role {
		case "system":
			if system != "" {
				system += "\n\n"
			}
			system += m.Content
		case "assistant":
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}
	return contents, config
}

func (c *GeminiClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	if c.client == nil {
		return "", ErrMissingAPIKey
	}
	contents, config := c.split(req)
	resp, err := c.client.Models.GenerateContent(ctx, req.Model, contents, config)
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	c.log.Debug("completion finished", zap.String("model", req.Model))
	return resp.Text(), nil
}

func (c *GeminiClient) Stream(ctx context.Context, req CompletionRequest) (<-chan string, <-chan error) {
	chunkChan := make(chan string)
	errChan := make(chan error, 1)

	go func() {
		defer close(chunkChan)
		defer close(errChan)

		if c.client == nil {
			errChan <- ErrMissingAPIKey
			return
		}
		contents, config := c.split(req)
		for resp, err := range c.client.Models.GenerateContentStream(ctx, req.Model, contents, config) {
			if err != nil {
				errChan <- fmt.Errorf("gemini stream failed: %w", err)
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			select {
			case chunkChan <- text:
			case <-ctx.Done():
				errChan <- ctx.Err()
				return
			}
		}
	}()

	return chunkChan, errChan
}
