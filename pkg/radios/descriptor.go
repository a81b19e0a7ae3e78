package radios

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DescriptorKind selects the comparison semantics of a VersionDescriptor.
// The kind is fixed when the descriptor is parsed and never re-inferred
// from the input being validated.
type DescriptorKind int

const (
	// DescriptorExact matches one specific version.
	DescriptorExact DescriptorKind = iota
	// DescriptorRange matches an inclusive numeric version range.
	DescriptorRange
	// DescriptorDateRange matches an 8-digit date range, optionally
	// open-ended above.
	DescriptorDateRange
)

// VersionDescriptor is one supported-version declaration of a hardware
// profile, e.g. "Anytone_CPS_3.00_3.08" or "CHIRP_next_20240801".
// Immutable after construction.
type VersionDescriptor struct {
	raw    string
	kind   DescriptorKind
	vendor string   // normalized vendor token, e.g. "anytone cps"
	words  []string // vendor words with declared casing, for display

	exact              string
	lower, upper       []int
	lowerStr, upperStr string // bounds as declared, for display
	lowerDate          int
	upperDate          int // 0 when the range is open above
}

var versionTokenPattern = regexp.MustCompile(`^[0-9]+(\.[0-9]+)*$`)

// ParseDescriptor builds a descriptor from its underscore-separated
// declaration string. The trailing numeric tokens are the version bounds;
// everything before them is the vendor token, which may span several
// words ("DM_32UV_CPS_...").
func ParseDescriptor(raw string) (VersionDescriptor, error) {
	parts := strings.Split(strings.TrimSpace(raw), "_")

	var bounds []string
	for len(parts) > 0 && len(bounds) < 2 {
		last := parts[len(parts)-1]
		if !versionTokenPattern.MatchString(last) {
			break
		}
		bounds = append([]string{last}, bounds...)
		parts = parts[:len(parts)-1]
	}

	if len(bounds) == 0 {
		return VersionDescriptor{}, fmt.Errorf("descriptor %q has no version token", raw)
	}
	if len(parts) == 0 {
		return VersionDescriptor{}, fmt.Errorf("descriptor %q has no vendor token", raw)
	}

	d := VersionDescriptor{
		raw:    raw,
		words:  parts,
		vendor: strings.ToLower(strings.Join(parts, " ")),
	}

	switch {
	case len(bounds) == 2 && isDateToken(bounds[0]) && isDateToken(bounds[1]):
		d.kind = DescriptorDateRange
		d.lowerDate, _ = strconv.Atoi(bounds[0])
		d.upperDate, _ = strconv.Atoi(bounds[1])
	case len(bounds) == 2:
		d.kind = DescriptorRange
		d.lowerStr, d.upperStr = bounds[0], bounds[1]
		var err error
		if d.lower, err = parseComponents(bounds[0]); err != nil {
			return VersionDescriptor{}, fmt.Errorf("descriptor %q: %w", raw, err)
		}
		if d.upper, err = parseComponents(bounds[1]); err != nil {
			return VersionDescriptor{}, fmt.Errorf("descriptor %q: %w", raw, err)
		}
	case isDateToken(bounds[0]):
		d.kind = DescriptorDateRange
		d.lowerDate, _ = strconv.Atoi(bounds[0])
	default:
		d.kind = DescriptorExact
		d.exact = strings.ToLower(bounds[0])
	}

	return d, nil
}

// mustDescriptors parses static registration data. Declarations are
// compiled in, so a parse failure is a programming error.
func mustDescriptors(raws ...string) []VersionDescriptor {
	out := make([]VersionDescriptor, 0, len(raws))
	for _, raw := range raws {
		d, err := ParseDescriptor(raw)
		if err != nil {
			panic(err)
		}
		out = append(out, d)
	}
	return out
}

// Kind returns the fixed comparison kind.
func (d VersionDescriptor) Kind() DescriptorKind { return d.kind }

// Raw returns the declaration string the descriptor was built from.
func (d VersionDescriptor) Raw() string { return d.raw }

// Display renders the descriptor for listings: "Anytone-CPS 3.00-3.08",
// "DM 32UV-CPS 2.08-2.12", "CHIRP-next 20240801+".
func (d VersionDescriptor) Display() string {
	vendor := strings.Join(d.words, " ")
	if i := strings.LastIndex(vendor, " "); i >= 0 {
		vendor = vendor[:i] + "-" + vendor[i+1:]
	}

	switch d.kind {
	case DescriptorRange:
		return fmt.Sprintf("%s %s-%s", vendor, d.lowerStr, d.upperStr)
	case DescriptorDateRange:
		return fmt.Sprintf("%s %08d+", vendor, d.lowerDate)
	default:
		return fmt.Sprintf("%s %s", vendor, d.exact)
	}
}

// matches compares a normalized version token against the descriptor,
// dispatching strictly on the fixed kind.
func (d VersionDescriptor) matches(token string) (bool, Reason) {
	switch d.kind {
	case DescriptorExact:
		if token == d.exact {
			return true, ReasonExactMatch
		}
		// Trailing-zero equivalence: 1.0 equals 1.00.
		in, err := parseComponents(token)
		if err != nil {
			return false, ReasonMalformedVersion
		}
		want, err := parseComponents(d.exact)
		if err == nil && compareComponents(in, want) == 0 {
			return true, ReasonExactMatch
		}
		return false, ReasonOutOfRange

	case DescriptorRange:
		if d.echoes(token) {
			return true, ReasonExactMatch
		}
		in, err := parseComponents(token)
		if err != nil {
			return false, ReasonMalformedVersion
		}
		if compareComponents(in, d.lower) >= 0 && compareComponents(in, d.upper) <= 0 {
			return true, ReasonInRange
		}
		return false, ReasonOutOfRange

	default: // DescriptorDateRange
		if d.echoes(token) {
			return true, ReasonExactMatch
		}
		if !isDateToken(token) {
			return false, ReasonMalformedVersion
		}
		date, _ := strconv.Atoi(token)
		if date < d.lowerDate {
			return false, ReasonOutOfRange
		}
		if d.upperDate != 0 && date > d.upperDate {
			return false, ReasonOutOfRange
		}
		return true, ReasonInRange
	}
}

// echoes reports whether the token restates the descriptor's own bounds
// in lower-upper form, which callers sometimes type back verbatim.
func (d VersionDescriptor) echoes(token string) bool {
	lo, hi, ok := strings.Cut(token, "-")
	if !ok {
		return false
	}
	switch d.kind {
	case DescriptorRange:
		l, err1 := parseComponents(lo)
		u, err2 := parseComponents(hi)
		return err1 == nil && err2 == nil &&
			compareComponents(l, d.lower) == 0 && compareComponents(u, d.upper) == 0
	case DescriptorDateRange:
		if !isDateToken(lo) || !isDateToken(hi) || d.upperDate == 0 {
			return false
		}
		l, _ := strconv.Atoi(lo)
		u, _ := strconv.Atoi(hi)
		return l == d.lowerDate && u == d.upperDate
	}
	return false
}

func isDateToken(s string) bool {
	if len(s) != 8 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// parseComponents decomposes a dotted version into numeric components.
func parseComponents(s string) ([]int, error) {
	if s == "" {
		return nil, fmt.Errorf("empty version token")
	}
	parts := strings.Split(s, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("non-numeric version component %q", p)
		}
		out[i] = n
	}
	return out, nil
}

// compareComponents orders two component lists numerically, treating
// missing trailing components as zero, so 2.0 == 2.0.0 and 2.0 < 2.0.6.
func compareComponents(a, b []int) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(a) {
			av = a[i]
		}
		if i < len(b) {
			bv = b[i]
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
	}
	return 0
}

