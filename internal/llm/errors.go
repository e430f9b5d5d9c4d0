package llm

import (
	"encoding/json"
	"fmt"
	"time"
)

// ErrRateLimit means the generative service answered 429. RetryAfter is
// zero when the service gave no hint.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("generative service rate limited, retry in %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("generative service rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means a structured reply (a study plan) did not
// decode or did not match its schema. Field is the JSON pointer of the
// first offending value when schema validation located one.
type ErrInvalidResponse struct {
	Schema  string
	Field   string
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	what := "response"
	if e.Schema != "" {
		what = e.Schema + " response"
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s at %s: %v", what, e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s: %v", what, e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers transport failures and 5xx answers.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "generative service unavailable"
	}
	return fmt.Sprintf("generative service unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means the reply was cut at MaxTokens. Content holds
// the truncated text.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return fmt.Sprintf("generative service reply truncated at max tokens (%d bytes kept)", len(e.Content))
}
