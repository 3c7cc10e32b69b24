package zeeky

import "fmt"

// ConfigurationError indicates a required credential or provider capability
// is absent. It is raised before any network attempt is made.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ProviderError indicates a remote provider call failed: a transport error,
// a non-2xx status, or a structurally unexpected response. It carries the
// originating provider's name and the underlying cause.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
