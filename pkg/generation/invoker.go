package generation

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/Sudhikumaran/ripple-ai/pkg/logger"
)

// Invoker tries authenticators in order and returns the first text produced.
// It never retries a strategy; total failure is terminal for the request.
type Invoker struct {
	authenticators []Authenticator
	maxTokens      int
	timeout        time.Duration
	logger         *slog.Logger
}

// InvokerOption configures an Invoker.
type InvokerOption func(*Invoker)

// WithMaxTokens sets the hard token ceiling.
func WithMaxTokens(n int) InvokerOption {
	return func(i *Invoker) {
		if n > 0 {
			i.maxTokens = n
		}
	}
}

// WithAttemptTimeout bounds each strategy attempt.
func WithAttemptTimeout(d time.Duration) InvokerOption {
	return func(i *Invoker) {
		if d > 0 {
			i.timeout = d
		}
	}
}

// WithLogger sets the invoker logger.
func WithLogger(l *slog.Logger) InvokerOption {
	return func(i *Invoker) {
		if l != nil {
			i.logger = l
		}
	}
}

// NewInvoker creates an invoker over an ordered authenticator chain.
func NewInvoker(authenticators []Authenticator, opts ...InvokerOption) *Invoker {
	i := &Invoker{
		authenticators: authenticators,
		maxTokens:      DefaultMaxTokens,
		timeout:        DefaultAttemptTimeout,
		logger:         logger.Discard(),
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Budget clamps a requested token budget to the ceiling. Non-positive
// requests get the ceiling.
func (i *Invoker) Budget(requested int) int {
	if requested <= 0 {
		return i.maxTokens
	}
	return min(requested, i.maxTokens)
}

// Generate runs the chain. On total failure, including an empty chain, it
// returns *UnavailableError carrying every attempt.
func (i *Invoker) Generate(ctx context.Context, prompt string, tokenBudget int) (Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return Result{}, ErrEmptyPrompt
	}
	req := Request{Prompt: prompt, MaxTokens: i.Budget(tokenBudget)}

	var attempts []Attempt
	for _, auth := range i.authenticators {
		if !auth.Configured() {
			continue
		}

		attempt := i.attempt(ctx, auth, req)
		attempts = append(attempts, attempt)
		if attempt.Succeeded() {
			return Result{Text: attempt.Text, Strategy: attempt.Strategy, Attempts: attempts}, nil
		}

		i.logger.WarnContext(ctx, "generation strategy failed",
			logger.Strategy(string(attempt.Strategy)),
			logger.StatusCode(attempt.StatusCode),
			logger.Duration(attempt.Duration),
			logger.Error(attempt.Err),
			logger.Component("generation"),
		)
		if ctx.Err() != nil {
			break
		}
	}

	err := &UnavailableError{Attempts: attempts}
	i.logger.ErrorContext(ctx, "generation unavailable",
		logger.Attempts(len(attempts)),
		slog.Any("strategies", err.Strategies()),
		logger.Error(err),
		logger.Component("generation"),
	)
	return Result{}, err
}

func (i *Invoker) attempt(ctx context.Context, auth Authenticator, req Request) Attempt {
	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	start := time.Now()
	text, err := auth.Attempt(ctx, req)
	a := Attempt{
		Strategy: auth.Strategy(),
		Text:     text,
		Err:      err,
		Duration: time.Since(start),
	}
	if be, ok := asBackendError(err); ok {
		a.StatusCode = be.StatusCode
	}
	if err == nil && strings.TrimSpace(text) == "" {
		a.Text = ""
		a.Err = ErrEmptyCompletion
	}
	return a
}
