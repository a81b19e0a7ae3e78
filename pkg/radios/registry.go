package radios

import (
	"fmt"
	"sort"
	"strings"
)

// FormatterID enumerates the supported targets. Dispatch is by this
// identifier; no reflection, no string-typed lookups past the alias
// table.
type FormatterID int

const (
	FormatterAnytone878 FormatterID = iota
	FormatterAnytone578
	FormatterDM32UV
	FormatterK5Plus
	FormatterUV5RM
)

func (id FormatterID) String() string {
	switch id {
	case FormatterAnytone878:
		return "anytone-878"
	case FormatterAnytone578:
		return "anytone-578"
	case FormatterDM32UV:
		return "baofeng-dm32uv"
	case FormatterK5Plus:
		return "baofeng-k5-plus"
	case FormatterUV5RM:
		return "baofeng-uv5rm"
	}
	return fmt.Sprintf("FormatterID(%d)", int(id))
}

// Registry holds the formatter table. Built once at startup and passed
// to whatever needs it; the contents never change afterwards.
type Registry struct {
	formatters map[FormatterID]Formatter
	aliases    map[string]FormatterID
}

// NewRegistry builds the formatter table.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: map[FormatterID]Formatter{
			FormatterAnytone878: newAnytone878(),
			FormatterAnytone578: newAnytone578(),
			FormatterDM32UV:     newDM32UV(),
			FormatterK5Plus:     newK5Plus(),
			FormatterUV5RM:      newUV5RM(),
		},
		aliases: map[string]FormatterID{
			"anytone-878": FormatterAnytone878, "878": FormatterAnytone878,
			"d878": FormatterAnytone878, "at-d878uv": FormatterAnytone878,
			"anytone-578": FormatterAnytone578, "578": FormatterAnytone578,
			"d578": FormatterAnytone578, "at-d578uv": FormatterAnytone578,
			"baofeng-dm32uv": FormatterDM32UV, "dm-32uv": FormatterDM32UV,
			"dm32uv": FormatterDM32UV,
			"baofeng-k5-plus": FormatterK5Plus, "k5-plus": FormatterK5Plus,
			"k5plus": FormatterK5Plus,
			"baofeng-uv5rm": FormatterUV5RM, "uv-5rm": FormatterUV5RM,
			"uv5rm": FormatterUV5RM,
		},
	}
	return r
}

// Get returns the formatter for an identifier.
func (r *Registry) Get(id FormatterID) (Formatter, bool) {
	f, ok := r.formatters[id]
	return f, ok
}

// Lookup resolves a user-supplied name through the alias table.
func (r *Registry) Lookup(name string) (Formatter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	id, ok := r.aliases[key]
	if !ok {
		return nil, fmt.Errorf("unknown radio %q, supported radios: %s", name, strings.Join(r.Names(), ", "))
	}
	return r.formatters[id], nil
}

// IDs returns every registered identifier in declaration order.
func (r *Registry) IDs() []FormatterID {
	ids := make([]FormatterID, 0, len(r.formatters))
	for id := range r.formatters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Names returns the canonical registry keys, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.formatters))
	for id := range r.formatters {
		names = append(names, id.String())
	}
	sort.Strings(names)
	return names
}

// Formatters returns every formatter in identifier order.
func (r *Registry) Formatters() []Formatter {
	ids := r.IDs()
	out := make([]Formatter, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.formatters[id])
	}
	return out
}
