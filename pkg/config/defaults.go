// Package config defines default configuration for acquisition pacing,
// retries, and timeouts.
package config

import "time"

// PacingConfig defines the request-spacing constraints for one
// acquisition session.
type PacingConfig struct {
	// Interval is the minimum delay between any two outbound requests.
	Interval time.Duration
	// Considerate enables an extra random delay on top of Interval.
	Considerate bool
	// JitterMin/JitterMax bound the considerate-mode random delay.
	JitterMin time.Duration
	JitterMax time.Duration
}

// RetryConfig defines the bounded-backoff policy for transient faults.
type RetryConfig struct {
	// MaxTries is the total attempt bound per request, first try included.
	MaxTries uint
	// InitialBackoff is the starting backoff delay.
	InitialBackoff time.Duration
	// MaxElapsed caps the total time spent retrying one request.
	MaxElapsed time.Duration
}

// Defaults.
const (
	DefaultTimeout = 30 * time.Second
	DefaultCountry = "United States"
)

// DefaultPacingConfig returns the default request pacing values.
func DefaultPacingConfig() PacingConfig {
	return PacingConfig{
		Interval:    1 * time.Second,
		Considerate: false,
		JitterMin:   1 * time.Second,
		JitterMax:   10 * time.Second,
	}
}

// DefaultRetryConfig returns the default transient-retry values.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxTries:       3,
		InitialBackoff: 500 * time.Millisecond,
		MaxElapsed:     20 * time.Second,
	}
}
