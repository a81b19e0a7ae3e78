package rbook

import (
	"fmt"
	"strings"
	"time"

	"github.com/radiobridge/radiobridge/pkg/band"
	"github.com/radiobridge/radiobridge/pkg/config"
	"github.com/radiobridge/radiobridge/pkg/normalize"
)

// Provenance records which strategy produced a record.
type Provenance string

const (
	ProvenancePrimary  Provenance = "primary"
	ProvenanceFallback Provenance = "fallback"
)

// DetailState tracks the outcome of the per-record detail pass.
type DetailState string

const (
	// DetailNone means the detail pass was never requested for the record.
	DetailNone DetailState = ""
	// DetailComplete means the extended fields merged successfully.
	DetailComplete DetailState = "complete"
	// DetailPartialFailure means the record keeps its baseline fields but
	// the detail fetch failed; DetailError holds the reason.
	DetailPartialFailure DetailState = "partial_failure"
)

// Record is one repeater row in the unified schema both strategies
// produce.
type Record struct {
	Frequency string
	Offset    string
	Tone      string
	ToneUp    string
	ToneDown  string
	Callsign  string
	Location  string
	County    string
	State     string
	Use       string
	Status    string

	// Extended fields merged in by the detail pass.
	Detail map[string]string

	Provenance  Provenance
	DetailState DetailState
	DetailError string

	// frequencyMHz is the parsed frequency, set by normalization.
	frequencyMHz float64
	// detailURL is the per-record detail document, harvested by the
	// structural scrape.
	detailURL string
}

// Key returns the natural de-duplication key: frequency + location +
// callsign. The frequency component is canonicalized so keys agree
// across strategies regardless of how the source rendered the number
// ("146.510" and "146.510000" key identically).
func (r *Record) Key() string {
	freq := r.Frequency
	if canon, _, ok := normalize.Frequency(freq); ok {
		freq = canon
	}
	return strings.ToLower(freq + "|" + r.Location + "|" + r.Callsign)
}

// Scope describes one acquisition request.
type Scope struct {
	Country string
	State   string
	County  string
	City    string
	Bands   []string

	// Detail enables the per-record enrichment pass.
	Detail bool

	Pacing  config.PacingConfig
	Retry   config.RetryConfig
	Timeout time.Duration
}

// Validate checks the scope's structural constraints and normalizes the
// band selection in place.
func (s *Scope) Validate() error {
	if s.State == "" {
		return fmt.Errorf("scope: state is required")
	}
	if s.County != "" && s.City != "" {
		return fmt.Errorf("scope: county and city are mutually exclusive")
	}

	bands, err := band.Validate(s.Bands)
	if err != nil {
		return fmt.Errorf("scope: %w", err)
	}
	s.Bands = bands

	if s.Country == "" {
		s.Country = config.DefaultCountry
	}
	if s.Timeout <= 0 {
		s.Timeout = config.DefaultTimeout
	}
	return nil
}

// Describe renders the scope for logs and report headers.
func (s *Scope) Describe() string {
	switch {
	case s.County != "":
		return fmt.Sprintf("%s County, %s, %s", s.County, s.State, s.Country)
	case s.City != "":
		return fmt.Sprintf("%s, %s, %s", s.City, s.State, s.Country)
	default:
		return fmt.Sprintf("%s, %s", s.State, s.Country)
	}
}

// Attempt reports one strategy attempt for failure diagnostics.
type Attempt struct {
	Strategy Provenance
	Err      error
}

// Result is the outcome of one acquisition session.
type Result struct {
	SessionID  string
	Scope      Scope
	Records    []Record
	Provenance Provenance
	Attempts   []Attempt
	// Dropped counts records discarded by normalization.
	Dropped int
}

// PartialFailures counts records whose detail fetch failed.
func (r *Result) PartialFailures() int {
	n := 0
	for i := range r.Records {
		if r.Records[i].DetailState == DetailPartialFailure {
			n++
		}
	}
	return n
}
