package radios

import (
	"strconv"

	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// anytone578 targets the Anytone AT-D578UV III (Plus) mobile. Same CPS
// family as the 878 with longer channel-name limits and a roaming
// column.
type anytone578 struct {
	profile *Profile
}

func newAnytone578() *anytone578 {
	return &anytone578{profile: &Profile{
		Manufacturer: "Anytone",
		Model:        "AT-D578UV III",
		Variant:      "Plus",
		Key:          "anytone-578",
		Firmware:     mustDescriptors("Anytone_FW_2.08"),
		CPS:          mustDescriptors("Anytone_CPS_1.21"),
	}}
}

func (f *anytone578) Name() string        { return "Anytone AT-D578UV III (Plus)" }
func (f *anytone578) Description() string { return "Tri-band DMR/Analog mobile with GPS and roaming" }
func (f *anytone578) Profile() *Profile   { return f.profile }

func (f *anytone578) RequiredColumns() []string { return []string{"frequency"} }

func (f *anytone578) OutputColumns() []string {
	return []string{
		"Channel Number", "Channel Name", "Receive Frequency", "Transmit Frequency",
		"Channel Type", "Power", "Band Width", "CTCSS/DCS Decode", "CTCSS/DCS Encode",
		"Contact", "Contact Call Type", "Radio ID", "Busy Lock/TX Permit",
		"Squelch Mode", "Optional Signal", "DTMF ID", "2Tone ID", "5Tone ID",
		"PTT ID", "Color Code", "Slot", "Scan List", "Group List", "GPS System",
		"Roaming",
	}
}

func (f *anytone578) Format(records []rbook.Record, opts FormatOptions) ([][]string, error) {
	var rows [][]string
	var names []string

	channel := opts.startChannel()
	for _, rec := range records {
		if rec.Frequency == "" {
			continue
		}

		name := channelName(rec, 20, 10)
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
			"Off",
		})
		channel++
	}

	if len(rows) == 0 {
		return nil, ErrNoChannels
	}

	for i, name := range resolveNameConflicts(names, 20) {
		rows[i][1] = name
	}
	return rows, nil
}
