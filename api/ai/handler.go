package ai

import (
	"backend/llm"
)

// AIHandler proxies chat completions to the configured model provider.
// Models is the catalogue of that provider.
type AIHandler struct {
	LLM    llm.Streamer
	Model  string
	Models []llm.ModelInfo
}
