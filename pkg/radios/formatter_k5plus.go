package radios

import (
	"strconv"

	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// k5plus targets the Baofeng K5 Plus analog handheld. Its firmware is
// not field-upgradable, so the firmware axis declares nothing.
type k5plus struct {
	profile *Profile
}

func newK5Plus() *k5plus {
	return &k5plus{profile: &Profile{
		Manufacturer: "Baofeng",
		Model:        "K5 Plus",
		Variant:      "Standard",
		Key:          "baofeng-k5-plus",
		CPS: mustDescriptors(
			"CHIRP_next_20240301_20250401",
			"K5_CPS_2.0.3_2.1.8",
		),
	}}
}

func (f *k5plus) Name() string        { return "Baofeng K5 Plus" }
func (f *k5plus) Description() string { return "Dual-band analog handheld" }
func (f *k5plus) Profile() *Profile   { return f.profile }

func (f *k5plus) RequiredColumns() []string { return []string{"frequency"} }

func (f *k5plus) OutputColumns() []string {
	return []string{
		"Channel", "Channel Name", "RX Frequency", "TX Frequency",
		"TX Power", "Bandwidth", "RX CTCSS/DCS", "TX CTCSS/DCS",
		"Busy Lock", "Scrambler", "Compander", "RX Only",
	}
}

func (f *k5plus) Format(records []rbook.Record, opts FormatOptions) ([][]string, error) {
	var rows [][]string
	var names []string

	channel := opts.startChannel()
	for _, rec := range records {
		if rec.Frequency == "" {
			continue
		}

		name := channelName(rec, 12, 6)
		if name == "" {
			name = fallbackName(channel)
		}
		names = append(names, name)

		up, down := toneValues(rec)
		rows = append(rows, []string{
			strconv.Itoa(channel), name,
			rec.Frequency, transmitFrequency(rec.Frequency, rec.Offset),
			"High", "Wide",
			toneOrOff(down), toneOrOff(up),
			"Off", "Off", "Off", "Off",
		})
		channel++
	}

	if len(rows) == 0 {
		return nil, ErrNoChannels
	}

	for i, name := range resolveNameConflicts(names, 12) {
		rows[i][1] = name
	}
	return rows, nil
}
