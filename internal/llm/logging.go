package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/abhisek/mathexplorer/internal/store"
)

// EventRecorder stores one row per LLM call.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every call of the wrapped provider, failed ones
// included. A recording failure is a warning, never a failed call.
type LoggingProvider struct {
	inner  Provider
	events EventRecorder
}

// WithLogging wraps p so its calls are recorded in events.
func WithLogging(p Provider, events EventRecorder) Provider {
	return &LoggingProvider{inner: p, events: events}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	ev := store.LLMRequestEventData{
		Provider:    providerName(l.inner),
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: describeRequest(req),
	}
	switch {
	case resp != nil:
		ev.Model = resp.Model
		ev.InputTokens = resp.Usage.InputTokens
		ev.OutputTokens = resp.Usage.OutputTokens
		ev.ResponseBody = string(resp.Content)
	case err != nil:
		ev.ErrorMessage = err.Error()
		ev.ResponseBody = partialContent(err)
	}

	if logErr := l.events.AppendLLMRequest(ctx, ev); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request event: %v\n", logErr)
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// describeRequest renders req the way `mathexplorer llm view` prints it.
func describeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	fmt.Fprintf(&b, "[user]\n%s\n", req.Prompt)
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "\n[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}

// partialContent returns whatever text came back with a rejected reply.
func partialContent(err error) string {
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		return string(inv.Content)
	}
	var trunc *ErrMaxTokensExceeded
	if errors.As(err, &trunc) {
		return string(trunc.Content)
	}
	return ""
}

// providerName returns the configuration name of a concrete provider.
func providerName(p Provider) string {
	switch p.(type) {
	case *AnthropicProvider:
		return ProviderAnthropic
	case *OpenRouterProvider:
		return ProviderOpenRouter
	case *OpenAIProvider:
		return ProviderOpenAI
	case *GeminiProvider:
		return ProviderGemini
	case *MockProvider:
		return ProviderMock
	default:
		return "unknown"
	}
}
