package learning

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/mathexplorer/internal/llm"
)

// Fallback is shown when no explanation could be fetched.
const Fallback = "¡Oh no! Mi cerebro de robot tuvo un cortocircuito. Intenta recargar la página."

// ErrorKind classifies why an explanation is missing.
type ErrorKind int

const (
	ErrNone ErrorKind = iota
	ErrUnavailable
	ErrInvalidResponse
	ErrTimeout
	ErrNotConfigured
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNone:
		return "none"
	case ErrUnavailable:
		return "unavailable"
	case ErrInvalidResponse:
		return "invalid response"
	case ErrTimeout:
		return "timeout"
	case ErrNotConfigured:
		return "not configured"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Result is the outcome of FetchExplanation. Text is empty unless Err is
// ErrNone.
type Result struct {
	Topic Topic
	Text  string
	Err   ErrorKind
}

// TextOr returns the explanation, or fallback when there is none.
func (r Result) TextOr(fallback string) string {
	if r.Err != ErrNone || r.Text == "" {
		return fallback
	}
	return r.Text
}

// Config holds explanation generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// DefaultConfig returns the settings used by the game.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   768,
		Temperature: 0.7,
		Timeout:     20 * time.Second,
	}
}

// Service fetches explanations for learning topics. A nil provider yields
// ErrNotConfigured results.
type Service struct {
	provider llm.Provider
	cfg      Config
}

// NewService creates a learning content service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{provider: provider, cfg: cfg}
}

type explanationOutput struct {
	Explanation string `json:"explanation"`
}

// FetchExplanation asks the provider for a lesson on topic. Failures are
// reported in Result.Err, never as an error.
func (s *Service) FetchExplanation(ctx context.Context, topic Topic) Result {
	res := Result{Topic: topic}

	prompt, ok := topicPrompts[topic]
	if !ok {
		res.Err = ErrInvalidResponse
		return res
	}
	if s == nil || s.provider == nil {
		res.Err = ErrNotConfigured
		return res
	}

	ctx = llm.WithPurpose(ctx, llm.PurposeLearning)
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	req := llm.NewRequest(systemPrompt, prompt, ExplanationSchema)
	req.MaxTokens = s.cfg.MaxTokens
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		res.Err = classify(err)
		return res
	}

	var out explanationOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		res.Err = ErrInvalidResponse
		return res
	}
	text := strings.TrimSpace(out.Explanation)
	if text == "" {
		res.Err = ErrInvalidResponse
		return res
	}

	res.Text = text
	return res
}

func classify(err error) ErrorKind {
	if errors.Is(err, llm.ErrNotConfigured) {
		return ErrNotConfigured
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	var inv *llm.ErrInvalidResponse
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &inv) || errors.As(err, &maxTok) {
		return ErrInvalidResponse
	}
	return ErrUnavailable
}
