package generation

import "time"

// Strategy names one way of authenticating against the generation backend.
type Strategy string

const (
	StrategyServiceAccount Strategy = "service_account"
	StrategyAPIKey         Strategy = "api_key"
)

// Request is one text generation call.
type Request struct {
	Prompt    string
	MaxTokens int
}

// Attempt records the outcome of one configured strategy.
type Attempt struct {
	Strategy   Strategy
	Text       string
	StatusCode int // backend status when the backend answered, otherwise 0
	Err        error
	Duration   time.Duration
}

// Succeeded reports whether the attempt produced text.
func (a Attempt) Succeeded() bool {
	return a.Err == nil
}

// Result is a successful generation together with the attempts it took.
type Result struct {
	Text     string
	Strategy Strategy
	Attempts []Attempt
}
