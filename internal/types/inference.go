package types

import "fmt"

// Outcome classifies a single call to the inference endpoint.
type Outcome int

const (
	// OutcomeSuccess means the endpoint answered 200 with decodable text.
	OutcomeSuccess Outcome = iota
	// OutcomeUnavailable means the endpoint is loading or not configured (503).
	OutcomeUnavailable
	// OutcomeFailed covers every other status, transport errors and bad bodies.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeUnavailable:
		return "unavailable"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// InferenceResult is what an inference client hands back. Text is set only on
// success; Err is set only on failure.
type InferenceResult struct {
	Outcome    Outcome
	Text       string
	StatusCode int
	Err        error
}

func Succeeded(text string) InferenceResult {
	return InferenceResult{Outcome: OutcomeSuccess, Text: text, StatusCode: 200}
}

func Unavailable(status int) InferenceResult {
	return InferenceResult{Outcome: OutcomeUnavailable, StatusCode: status}
}

func Failed(status int, err error) InferenceResult {
	return InferenceResult{Outcome: OutcomeFailed, StatusCode: status, Err: err}
}
