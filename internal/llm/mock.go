package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Err, when set, is returned as-is;
// Truncated makes the reply come back as ErrMaxTokensExceeded.
type MockResponse struct {
	Content   json.RawMessage
	Usage     Usage
	Truncated bool
	Err       error
}

// MockProvider replays scripted replies in order and records requests. An
// exhausted script answers ErrProviderUnavailable. Replies go through the
// same checks as hosted providers.
type MockProvider struct {
	mu     sync.Mutex
	script []MockResponse
	Calls  []Request
}

func NewMockProvider(script ...MockResponse) *MockProvider {
	return &MockProvider{script: script}
}

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(r MockResponse) {
	m.mu.Lock()
	m.script = append(m.script, r)
	m.mu.Unlock()
}

func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	m.Calls = append(m.Calls, req)
	if len(m.script) == 0 {
		m.mu.Unlock()
		return nil, &ErrProviderUnavailable{}
	}
	next := m.script[0]
	m.script = m.script[1:]
	m.mu.Unlock()

	if next.Err != nil {
		return nil, next.Err
	}
	return finish(req, reply{
		text:      string(next.Content),
		model:     m.ModelID(),
		usage:     next.Usage,
		truncated: next.Truncated,
	})
}

func (m *MockProvider) ModelID() string { return "mock" }

// CallCount returns how many requests were made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
