package conversation

import (
	"context"
	"errors"
	"fmt"

	"github.com/xpanvictor/rehearse/pkg/assistant"
)

// UpstreamKind classifies a model failure for presentation.
type UpstreamKind string

const (
	Unreachable UpstreamKind = "unreachable"
	Refused     UpstreamKind = "refused"
	Empty       UpstreamKind = "empty"
)

// Code is the wire form used in error events.
func (k UpstreamKind) Code() string {
	return "upstream_" + string(k)
}

// UpstreamError wraps a failed model call.
type UpstreamError struct {
	Kind UpstreamKind
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("model %s: %v", e.Kind, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func classify(err error) *UpstreamError {
	if errors.Is(err, assistant.ErrEmptyResponse) {
		return &UpstreamError{Kind: Empty, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &UpstreamError{Kind: Unreachable, Err: err}
	}
	var pe *assistant.ProviderError
	if errors.As(err, &pe) && pe.Refused() {
		return &UpstreamError{Kind: Refused, Err: err}
	}
	return &UpstreamError{Kind: Unreachable, Err: err}
}
