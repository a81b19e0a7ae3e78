package radios

import (
	"strconv"
	"strings"

	"github.com/radiobridge/radiobridge/pkg/rbook"
)

// uv5rm targets the Baofeng UV-5RM, programmed through CHIRP's generic
// import layout.
type uv5rm struct {
	profile *Profile
}

func newUV5RM() *uv5rm {
	return &uv5rm{profile: &Profile{
		Manufacturer: "Baofeng",
		Model:        "UV-5RM",
		Variant:      "Standard",
		Key:          "baofeng-uv5rm",
		CPS: mustDescriptors(
			"CHIRP_next_20240301_20250401",
			"RT_Systems_UV5RM_1.0_2.3",
			"Baofeng_UV5RM_CPS_1.0_2.0",
			"BaoFeng_CPS_5.5_6.8",
		),
	}}
}

func (f *uv5rm) Name() string        { return "Baofeng UV-5RM" }
func (f *uv5rm) Description() string { return "Dual-band analog handheld (CHIRP import)" }
func (f *uv5rm) Profile() *Profile   { return f.profile }

func (f *uv5rm) RequiredColumns() []string { return []string{"frequency"} }

func (f *uv5rm) OutputColumns() []string {
	return []string{
		"Location", "Name", "Frequency", "Duplex", "Offset",
		"Tone", "rToneFreq", "cToneFreq", "DtcsCode", "DtcsPolarity",
		"Mode", "TStep", "Skip", "Comment",
		"URCALL", "RPT1CALL", "RPT2CALL", "DVCODE",
	}
}

func (f *uv5rm) Format(records []rbook.Record, opts FormatOptions) ([][]string, error) {
	var rows [][]string
	var names []string

	channel := opts.startChannel()
	for _, rec := range records {
		if rec.Frequency == "" {
			continue
		}

		name := channelName(rec, 8, 4)
		if name == "" {
			name = fallbackName(channel)
		}
		names = append(names, name)

		duplex, offsetMHz := chirpDuplex(rec.Offset)
		up, down := toneValues(rec)
		toneMode, rTone, cTone, dtcs := chirpTone(up, down)

		rows = append(rows, []string{
			strconv.Itoa(channel), name, rec.Frequency,
			duplex, offsetMHz,
			toneMode, rTone, cTone, dtcs, "NN",
			"FM", chirpStep(rec.Frequency), "", "",
			"", "", "", "",
		})
		channel++
	}

	if len(rows) == 0 {
		return nil, ErrNoChannels
	}

	for i, name := range resolveNameConflicts(names, 8) {
		rows[i][1] = name
	}
	return rows, nil
}

// chirpDuplex converts a signed offset into CHIRP's duplex flag and
// unsigned offset magnitude.
func chirpDuplex(offset string) (duplex, magnitude string) {
	if offset == "" || offset == "0.000000" {
		return "", "0.000000"
	}
	switch {
	case strings.HasPrefix(offset, "+"):
		return "+", offset[1:]
	case strings.HasPrefix(offset, "-"):
		return "-", offset[1:]
	}
	return "", "0.000000"
}

// chirpTone maps the directional tones onto CHIRP's tone mode columns.
// CTCSS wins over DCS; absent tones keep CHIRP's defaults.
func chirpTone(up, down string) (mode, rTone, cTone, dtcs string) {
	mode, rTone, cTone, dtcs = "None", "88.5", "88.5", "023"

	switch {
	case down != "" && isCTCSS(down):
		mode, rTone = "Tone", down
		if isCTCSS(up) {
			cTone = up
		} else {
			cTone = down
		}
	case strings.HasPrefix(down, "D") && len(down) > 1:
		mode = "DTCS"
		dtcs = strings.TrimSuffix(strings.TrimSuffix(down[1:], "N"), "I")
	}
	return mode, rTone, cTone, dtcs
}

func isCTCSS(tone string) bool {
	if tone == "" {
		return false
	}
	for _, r := range tone {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

// chirpStep picks the conventional tuning step for the band.
func chirpStep(freq string) string {
	if strings.HasPrefix(freq, "4") || strings.HasPrefix(freq, "5") {
		return "12.50"
	}
	return "5.00"
}
