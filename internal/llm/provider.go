package llm

import (
	"context"
	"encoding/json"
)

// Provider generates one structured reply per request.
type Provider interface {
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID is the resolved model the provider sends requests to.
	ModelID() string
}

// Request is a single-turn prompt. Every content request in the game asks
// one question and expects one JSON object back.
type Request struct {
	System string
	Prompt string

	// Schema, when set, is passed to the provider's structured output mode
	// and the reply is validated against it.
	Schema *Schema

	MaxTokens   int
	Temperature float64 // 0 leaves the provider default
}

// NewRequest builds a Request for prompt answered in schema's shape.
func NewRequest(system, prompt string, schema *Schema) Request {
	return Request{System: system, Prompt: prompt, Schema: schema}
}

// Schema is a JSON Schema with the name providers file it under.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Stop reasons reported in Response.StopReason.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Response is a validated reply.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage counts the tokens of one call.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
