package llm

import "errors"

var (
	// ErrDisabled indicates the LLM subsystem is not enabled.
	ErrDisabled = errors.New("llm generation disabled (set STRIDE_LLM_ENABLED=1)")

	// ErrUnavailable indicates the Ollama server is unreachable.
	ErrUnavailable = errors.New("ollama server unavailable")

	// ErrTimeout indicates the LLM request exceeded the configured timeout.
	ErrTimeout = errors.New("llm request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("llm retry attempts exhausted")
)
