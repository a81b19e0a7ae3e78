package radios

import (
	"strconv"
	"strings"

	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// dm32uv targets the Baofeng DM-32UV DMR handheld. Records enriched
// with a detail pass carry color code and DMR identity; analog rows get
// the analog defaults.
type dm32uv struct {
	profile *Profile
}

func newDM32UV() *dm32uv {
	return &dm32uv{profile: &Profile{
		Manufacturer: "Baofeng",
		Model:        "DM-32UV",
		Variant:      "v2",
		Key:          "baofeng-dm32uv",
		Firmware:     mustDescriptors("DM_32UV_FW_2.10_2.14"),
		CPS: mustDescriptors(
			"DM_32UV_CPS_2.08_2.12",
			"CHIRP_next_20240901",
		),
	}}
}

func (f *dm32uv) Name() string        { return "Baofeng DM-32UV" }
func (f *dm32uv) Description() string { return "Dual-band DMR/Analog handheld" }
func (f *dm32uv) Profile() *Profile   { return f.profile }

func (f *dm32uv) RequiredColumns() []string { return []string{"frequency"} }

func (f *dm32uv) OutputColumns() []string {
	return []string{
		"No.", "Channel Name", "Channel Type", "RX Frequency[MHz]", "TX Frequency[MHz]",
		"Power", "Band Width", "Scan List", "TX Admit", "Emergency System",
		"Squelch Level", "APRS Report Type", "Forbid TX", "APRS Receive",
		"Forbid Talkaround", "Auto Scan", "Lone Work", "Emergency Indicator",
		"Emergency ACK", "Analog APRS PTT Mode", "Digital APRS PTT Mode",
		"TX Contact", "RX Group List", "Color Code", "Time Slot", "Encryption",
		"Encryption ID", "APRS Report Channel", "Direct Dual Mode", "Private Confirm",
		"Short Data Confirm", "DMR ID", "CTC/DCS Decode", "CTC/DCS Encode",
		"Scramble", "RX Squelch Mode", "Signaling Type", "PTT ID", "VOX Function",
		"PTT ID Display",
	}
}

func (f *dm32uv) Format(records []rbook.Record, opts FormatOptions) ([][]string, error) {
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

		digital := isDMR(rec)
		channelType, bandwidth := "Analog", "25KHz"
		if digital {
			channelType, bandwidth = "Digital", "12.5KHz"
		}

		up, down := toneValues(rec)
		rows = append(rows, []string{
			strconv.Itoa(channel), name, channelType,
			rec.Frequency, transmitFrequency(rec.Frequency, rec.Offset),
			"High", bandwidth,
			"None", "Allow TX", "None", "3", "Off", "0", "0", "0", "0", "0", "0", "0", "0", "0",
			"None", "None", colorCode(rec, digital), "Slot 1", "0", "None", "1", "0", "0", "0",
			dmrID(rec), toneOrOff(down), toneOrOff(up),
			"None", "Carrier/CTC", "None", "OFF", "0", "0",
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

// FormatZones groups formatted channels into zones of at most 64
// members, the CPS import limit.
func (f *dm32uv) FormatZones(rows [][]string) ([][]string, error) {
	if len(rows) == 0 {
		return nil, ErrNoChannels
	}

	const zoneSize = 64
	var zones [][]string
	for start := 0; start < len(rows); start += zoneSize {
		end := start + zoneSize
		if end > len(rows) {
			end = len(rows)
		}
		members := make([]string, 0, end-start)
		for _, row := range rows[start:end] {
			members = append(members, row[1])
		}
		zones = append(zones, []string{
			"Zone " + strconv.Itoa(len(zones)+1),
			strings.Join(members, "|"),
		})
	}
	return zones, nil
}

// isDMR reports whether the record's extended fields identify a digital
// repeater.
func isDMR(rec rbook.Record) bool {
	return rec.Detail["color_code"] != "" || rec.Detail["dmr_id"] != ""
}

func colorCode(rec rbook.Record, digital bool) string {
	if !digital {
		return "1"
	}
	if cc := rec.Detail["color_code"]; cc != "" {
		return cc
	}
	return "1"
}

func dmrID(rec rbook.Record) string {
	if id := rec.Detail["dmr_id"]; id != "" {
		return id
	}
	return "None"
}
