package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// reply is what a provider extracts from its SDK response before the
// shared checks run.
type reply struct {
	text      string
	model     string
	usage     Usage
	truncated bool
}

// finish turns a raw reply into a Response: it strips a markdown code
// fence, rejects truncated and empty replies, and validates the content
// against req.Schema.
func finish(req Request, r reply) (*Response, error) {
	content := json.RawMessage(stripFence(r.text))
	if r.truncated {
		return nil, &ErrMaxTokensExceeded{Content: content}
	}
	if len(content) == 0 {
		return nil, &ErrInvalidResponse{Err: fmt.Errorf("empty reply from %s", r.model)}
	}
	if err := validateResponse(req.Schema, content); err != nil {
		return nil, err
	}
	if r.usage.TotalTokens == 0 {
		r.usage.TotalTokens = r.usage.InputTokens + r.usage.OutputTokens
	}
	return &Response{
		Content:    content,
		Usage:      r.usage,
		Model:      r.model,
		StopReason: StopEnd,
	}, nil
}

// stripFence removes a ```json ... ``` wrapper some models put around
// structured output.
func stripFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	body := strings.TrimPrefix(text, "```")
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		body = body[nl+1:]
	} else {
		return text
	}
	body = strings.TrimSpace(body)
	if !strings.HasSuffix(body, "```") {
		return text
	}
	return strings.TrimSpace(strings.TrimSuffix(body, "```"))
}
