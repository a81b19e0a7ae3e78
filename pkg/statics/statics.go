// Package statics generates fixed frequency lists that complement
// downloaded repeater data: national calling and emergency simplex
// channels, emitted in the same record schema the radio formatters
// consume.
package statics

import (
	"fmt"
	"strings"

	"github.com/radiobridge/radiobridge/pkg/normalize"
	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// DefaultLocation labels generated frequencies when the caller gives
// no location of their own.
const DefaultLocation = "National"

// entry is one fixed simplex frequency.
type entry struct {
	frequency string
	band      string
	callsign  string
	name      string
	notes     string
}

// List is one generatable frequency list.
type List struct {
	Key         string
	Name        string
	Description string
	// Bands enumerates the bands the list covers; these are the list's
	// own channel plan, independent of the repeater band filter.
	Bands []string
	// Use labels every generated record ("Calling", "Emergency").
	Use string

	entries []entry
}

// Count reports how many frequencies the list generates unfiltered.
func (l *List) Count() int { return len(l.entries) }

var lists = []List{
	{
		Key:         "national_calling",
		Name:        "National Calling Frequencies",
		Description: "National simplex calling frequencies for initial contact and emergencies",
		Bands:       []string{"2m", "1.25m", "70cm"},
		Use:         "Calling",
		entries: []entry{
			{"146.52", "2m", "CALL-2M", "National 2m Calling Frequency", "Simplex calling and emergency"},
			{"223.5", "1.25m", "CALL-1.25M", "National 1.25m Calling Frequency", "Simplex calling and emergency"},
			{"446.0", "70cm", "CALL-70CM", "National 70cm Calling Frequency", "Simplex calling and emergency"},
		},
	},
	{
		Key:         "emergency_simplex",
		Name:        "Emergency Simplex Frequencies",
		Description: "Emergency and ARES/RACES simplex frequencies",
		Bands:       []string{"2m", "70cm"},
		Use:         "Emergency",
		entries: []entry{
			{"146.49", "2m", "EMRG-2M-1", "2m Emergency Simplex", "Emergency communications"},
			{"146.58", "2m", "EMRG-2M-2", "2m ARES/RACES Simplex", "ARES/RACES emergency operations"},
			{"446.5", "70cm", "EMRG-70CM-1", "70cm Emergency Simplex", "Emergency communications"},
		},
	},
}

// Lists returns the available lists in declaration order.
func Lists() []List {
	out := make([]List, len(lists))
	copy(out, lists)
	return out
}

// Lookup finds a list by key.
func Lookup(key string) (*List, error) {
	for i := range lists {
		if lists[i].Key == key {
			return &lists[i], nil
		}
	}
	return nil, fmt.Errorf("unknown static list %q, available: %s", key, strings.Join(Keys(), ", "))
}

// Keys returns the list keys in declaration order.
func Keys() []string {
	keys := make([]string, len(lists))
	for i := range lists {
		keys[i] = lists[i].Key
	}
	return keys
}

// Records generates the list's frequencies as normalized records,
// optionally restricted to a band subset. A requested band the list
// does not cover is an error rather than a silent empty result.
func (l *List) Records(bands []string, location string) ([]rbook.Record, error) {
	for _, b := range bands {
		if !containsBand(l.Bands, b) {
			return nil, fmt.Errorf("list %s does not cover band %q, supported: %s",
				l.Key, b, strings.Join(l.Bands, ", "))
		}
	}
	if location == "" {
		location = DefaultLocation
	}

	var records []rbook.Record
	for _, e := range l.entries {
		if len(bands) > 0 && !containsBand(bands, e.band) {
			continue
		}
		freq, _, ok := normalize.Frequency(e.frequency)
		if !ok {
			return nil, fmt.Errorf("list %s carries unparseable frequency %q", l.Key, e.frequency)
		}
		records = append(records, rbook.Record{
			Frequency: freq,
			Offset:    normalize.Offset("0.0"),
			Callsign:  e.callsign,
			Location:  location,
			Use:       l.Use,
			Status:    "Simplex",
			Detail: map[string]string{
				"band":     e.band,
				"category": l.Name,
				"mode":     "FM",
				"name":     e.name,
				"notes":    e.notes,
			},
		})
	}
	return records, nil
}

// Generate concatenates the requested lists, each validated and
// band-filtered independently, preserving request order.
func Generate(keys, bands []string, location string) ([]rbook.Record, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("no static list requested, available: %s", strings.Join(Keys(), ", "))
	}

	var records []rbook.Record
	for _, key := range keys {
		list, err := Lookup(key)
		if err != nil {
			return nil, err
		}
		generated, err := list.Records(bands, location)
		if err != nil {
			return nil, err
		}
		records = append(records, generated...)
	}
	return records, nil
}

func containsBand(bands []string, want string) bool {
	for _, b := range bands {
		if strings.EqualFold(b, want) {
			return true
		}
	}
	return false
}
