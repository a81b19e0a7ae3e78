package radios

import (
	"strconv"

	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// anytone878 targets the Anytone AT-D878UV II (Plus) handheld and its
// CPS import layout.
type anytone878 struct {
	profile *Profile
}

func newAnytone878() *anytone878 {
	return &anytone878{profile: &Profile{
		Manufacturer: "Anytone",
		Model:        "AT-D878UV II",
		Variant:      "Plus",
		Key:          "anytone-878",
		Firmware:     mustDescriptors("Anytone_FW_1.22_1.24"),
		CPS: mustDescriptors(
			"Anytone_CPS_3.00_3.08",
			"Anytone_CPS_4.00",
			"CHIRP_next_20240801_20250401",
		),
	}}
}

func (f *anytone878) Name() string        { return "Anytone AT-D878UV II (Plus)" }
func (f *anytone878) Description() string { return "Dual-band DMR/Analog handheld with GPS and Bluetooth" }
func (f *anytone878) Profile() *Profile   { return f.profile }

func (f *anytone878) RequiredColumns() []string { return []string{"frequency"} }

func (f *anytone878) OutputColumns() []string {
	return []string{
		"Channel Number", "Channel Name", "Receive Frequency", "Transmit Frequency",
		"Channel Type", "Power", "Band Width", "CTCSS/DCS Decode", "CTCSS/DCS Encode",
		"Contact", "Contact Call Type", "Radio ID", "Busy Lock/TX Permit",
		"Squelch Mode", "Optional Signal", "DTMF ID", "2Tone ID", "5Tone ID",
		"PTT ID", "Color Code", "Slot", "Scan List", "Group List", "GPS System",
	}
}

func (f *anytone878) Format(records []rbook.Record, opts FormatOptions) ([][]string, error) {
	var rows [][]string
	var names []string

	channel := opts.startChannel()
	for _, rec := range records {
		if rec.Frequency == "" {
			continue
		}

		name := channelName(rec, 16, 8)
		if name == "" {
			name = fallbackName(channel)
		}
		names = append(names, name)

		up, down := toneValues(rec)
		rows = append(rows, []string{
			strconv.Itoa(channel), name,
			rec.Frequency, transmitFrequency(rec.Frequency, rec.Offset),
			"A-Analog", "High", "25K",
			toneOrOff(down), toneOrOff(up),
			"None", "Group Call", "None", "Always", "Carrier", "Off",
			"None", "None", "None", "None", "1", "1", "None", "None", "GPS",
		})
		channel++
	}

	if len(rows) == 0 {
		return nil, ErrNoChannels
	}

	for i, name := range resolveNameConflicts(names, 16) {
		rows[i][1] = name
	}
	return rows, nil
}
