package llm_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/llm"
	"backend/llm/llmtest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCompleteSendsJSONModeAndHeaders(t *testing.T) {
	upstream := llmtest.NewServer(`{"ok":true}`)
	defer upstream.Close()

	client := llm.NewOpenAIClient(llm.OpenAIConfig{
		APIKey:  "key",
		BaseURL: upstream.URL,
		Referer: "http://localhost:1984",
		Title:   "Automation Studio",
	}, zap.NewNop())

	out, err := client.Complete(context.Background(), llm.CompletionRequest{
		Model:        "some/model",
		Messages:     []llm.Message{{Role: "user", Content: "hi"}},
		JSONResponse: true,
		Temperature:  llm.Float(0.7),
	})
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, out)

	requests := upstream.Requests()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, "some/model", req.Model)
	require.NotNil(t, req.ResponseFormat)
	assert.Equal(t, "json_object", req.ResponseFormat.Type)
	require.NotNil(t, req.Temperature)
	assert.InDelta(t, 0.7, *req.Temperature, 1e-9)
	assert.Equal(t, "Bearer key", req.Header.Get("Authorization"))
	assert.Equal(t, "http://localhost:1984", req.Header.Get("HTTP-Referer"))
	assert.Equal(t, "Automation Studio", req.Header.Get("X-Title"))
}

func TestMissingKeyFailsBeforeRequest(t *testing.T) {
	upstream := llmtest.NewServer("unused")
	defer upstream.Close()

	client := llm.NewOpenAIClient(llm.OpenAIConfig{BaseURL: upstream.URL}, zap.NewNop())
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Model: "m"})
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)

	chunks, errs := client.Stream(context.Background(), llm.CompletionRequest{Model: "m"})
	for range chunks {
	}
	assert.ErrorIs(t, <-errs, llm.ErrMissingAPIKey)
	assert.Empty(t, upstream.Requests())

	gemini, err := llm.NewGeminiClient(context.Background(), "", zap.NewNop())
	require.NoError(t, err)
	_, err = gemini.Complete(context.Background(), llm.CompletionRequest{Model: "gemini-2.0-flash"})
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestUpstreamErrorCarriesStatus(t *testing.T) {
	upstream := llmtest.NewServer("")
	defer upstream.Close()
	upstream.SetStatus(http.StatusTooManyRequests)

	client := llm.NewOpenAIClient(llm.OpenAIConfig{APIKey: "key", BaseURL: upstream.URL}, zap.NewNop())
	_, err := client.Complete(context.Background(), llm.CompletionRequest{Model: "m"})

	var upstreamErr *llm.UpstreamError
	require.True(t, errors.As(err, &upstreamErr))
	assert.Equal(t, http.StatusTooManyRequests, upstreamErr.StatusCode)
	assert.Contains(t, upstreamErr.Body, "upstream broke")
}

func TestStreamDeliversDeltas(t *testing.T) {
	upstream := llmtest.NewServer("hello world")
	defer upstream.Close()

	client := llm.NewOpenAIClient(llm.OpenAIConfig{APIKey: "key", BaseURL: upstream.URL + "/"}, zap.NewNop())
	chunks, errs := client.Stream(context.Background(), llm.CompletionRequest{Model: "m"})

	var sb strings.Builder
	for chunk := range chunks {
		sb.WriteString(chunk)
	}
	assert.NoError(t, <-errs)
	assert.Equal(t, "hello world", sb.String())
	assert.True(t, upstream.Requests()[0].Stream)
}

func TestStreamKeepsFinalLineWithoutNewline(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"hello \"}}]}\n\n")
		io.WriteString(w, "data: {\"choices\":[{\"delta\":{\"content\":\"world\"}}]}")
	}))
	defer upstream.Close()

	client := llm.NewOpenAIClient(llm.OpenAIConfig{APIKey: "key", BaseURL: upstream.URL}, zap.NewNop())
	chunks, errs := client.Stream(context.Background(), llm.CompletionRequest{Model: "m"})

	var got []string
	for chunk := range chunks {
		got = append(got, chunk)
	}
	require.NoError(t, <-errs)
	assert.Equal(t, []string{"hello ", "world"}, got)
}

func TestNewProvider(t *testing.T) {
	p, err := llm.NewProvider(context.Background(), llm.Config{Provider: "openrouter"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "openrouter", p.Name())

	p, err = llm.NewProvider(context.Background(), llm.Config{Provider: "gemini"}, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "gemini", p.Name())

	_, err = llm.NewProvider(context.Background(), llm.Config{Provider: "carrier-pigeon"}, zap.NewNop())
	assert.Error(t, err)
}
