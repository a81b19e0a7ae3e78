package radios

import (
	"regexp"
	"strings"
)

// Reason classifies a validation outcome.
type Reason string

const (
	ReasonExactMatch         Reason = "EXACT_MATCH"
	ReasonInRange            Reason = "IN_RANGE"
	ReasonOutOfRange         Reason = "OUT_OF_RANGE"
	ReasonUnrecognizedVendor Reason = "UNRECOGNIZED_VENDOR"
	ReasonMalformedVersion   Reason = "MALFORMED_VERSION"
	// ReasonNoDeclaration is returned for empty input: nothing declared,
	// nothing to reject.
	ReasonNoDeclaration Reason = "NO_DECLARATION"
)

// Outcome is the structured result of one validation. Never an error:
// malformed or unrecognized input comes back as an unsupported outcome
// with the reason set.
type Outcome struct {
	Supported bool
	Reason    Reason
	// Matched is the display form of the satisfying declaration, empty
	// when unsupported.
	Matched string
}

var separatorPattern = regexp.MustCompile(`[_\s]+`)

// Validate decides whether a declared version string is supported by the
// profile on the given axis. Pure and deterministic; identical input
// always yields an identical outcome.
//
// The input's vendor token is matched against each declaration's vendor
// prefix, longest first, so multi-word vendors ("DM 32UV CPS 2.10")
// resolve before shorter overlapping ones. The remaining token is then
// compared under the declaration's fixed kind.
func Validate(p *Profile, axis Axis, input string) Outcome {
	norm := normalizeInput(input)
	if norm == "" {
		return Outcome{Supported: true, Reason: ReasonNoDeclaration}
	}

	reason := ReasonUnrecognizedVendor
	for _, d := range byVendorLength(p.Descriptors(axis)) {
		token, ok := strings.CutPrefix(norm, d.vendor+" ")
		if !ok {
			continue
		}

		supported, r := d.matches(strings.TrimSpace(token))
		if supported {
			return Outcome{Supported: true, Reason: r, Matched: d.Display()}
		}
		if worse(reason, r) {
			reason = r
		}
	}

	return Outcome{Reason: reason}
}

func normalizeInput(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return separatorPattern.ReplaceAllString(s, " ")
}

// byVendorLength orders declarations longest vendor token first without
// disturbing the declared order among equals.
func byVendorLength(descs []VersionDescriptor) []VersionDescriptor {
	out := make([]VersionDescriptor, len(descs))
	copy(out, descs)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && len(out[j].vendor) > len(out[j-1].vendor); j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out
}

// worse reports whether candidate carries more signal than current:
// a parsed-but-rejected token beats a malformed one, which beats an
// unmatched vendor.
func worse(current, candidate Reason) bool {
	rank := func(r Reason) int {
		switch r {
		case ReasonOutOfRange:
			return 2
		case ReasonMalformedVersion:
			return 1
		default:
			return 0
		}
	}
	return rank(candidate) > rank(current)
}
