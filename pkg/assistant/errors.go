package assistant

import (
	"errors"
	"fmt"
)

var (
	ErrEmptyResponse = errors.New("assistant returned no text")
)

// ProviderError carries the upstream status code when the provider reported
// one. StatusCode is zero for transport failures.
type ProviderError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Refused reports whether the provider rejected the request itself rather
// than being unreachable or overloaded.
func (e *ProviderError) Refused() bool {
	switch {
	case e.StatusCode == 408, e.StatusCode == 429:
		return false
	case e.StatusCode >= 400 && e.StatusCode < 500:
		return true
	}
	return false
}
