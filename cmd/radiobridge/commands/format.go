package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/radiobridge/radiobridge/pkg/csvio"
	"github.com/radiobridge/radiobridge/pkg/radios"
)

var formatCmd = &cobra.Command{
	Use:   "format",
	Short: "Format a downloaded file for a radio's programming software",
	Long: `Converts a downloaded working file into the import layout of one
radio's programming software.

Declared CPS or firmware versions are checked against the radio's
supported versions; an unsupported declaration prints a warning but
does not stop the run.

Example:
  radiobridge format --input repeaters_ca.csv --radio anytone-878
  radiobridge format --input repeaters_ca.csv --radio uv-5rm --cps-version "CHIRP next 20250101"`,
	RunE: runFormat,
}

var formatFlags struct {
	input           string
	radio           string
	cpsVersion      string
	firmwareVersion string
	startChannel    int
	output          string
	zones           bool
}

func init() {
	f := formatCmd.Flags()
	f.StringVar(&formatFlags.input, "input", "", "Downloaded CSV working file (required)")
	f.StringVar(&formatFlags.radio, "radio", "", "Target radio (required, see 'radiobridge radios')")
	f.StringVar(&formatFlags.cpsVersion, "cps-version", "", "Declared programming-software version")
	f.StringVar(&formatFlags.firmwareVersion, "firmware-version", "", "Declared firmware version")
	f.IntVar(&formatFlags.startChannel, "start-channel", 1, "First channel number")
	f.StringVar(&formatFlags.output, "output", "", "Output file (default formatted_<radio>_<input>)")
	f.BoolVar(&formatFlags.zones, "zones", false, "Also write a zone file where the radio supports it")

	formatCmd.MarkFlagRequired("input")
	formatCmd.MarkFlagRequired("radio")
}

func runFormat(cmd *cobra.Command, args []string) error {
	formatter, err := registry.Lookup(formatFlags.radio)
	if err != nil {
		return err
	}

	warnUnsupported(formatter.Profile(), radios.AxisCPS, formatFlags.cpsVersion)
	warnUnsupported(formatter.Profile(), radios.AxisFirmware, formatFlags.firmwareVersion)

	doc, err := csvio.Read(formatFlags.input)
	if err != nil {
		return err
	}
	records, err := csvio.ToRecords(doc)
	if err != nil {
		return err
	}

	rows, err := formatter.Format(records, radios.FormatOptions{
		StartChannel: formatFlags.startChannel,
		CPSVersion:   formatFlags.cpsVersion,
	})
	if err != nil {
		return err
	}

	output := formatFlags.output
	if output == "" {
		output = fmt.Sprintf("formatted_%s_%s", formatter.Profile().Key, baseName(formatFlags.input))
	}

	out := &csvio.Document{Columns: formatter.OutputColumns(), Rows: rows}
	if err := csvio.Write(output, out); err != nil {
		return err
	}
	files := []string{output}

	if formatFlags.zones {
		if zf, ok := formatter.(radios.ZoneFormatter); ok {
			zoneRows, err := zf.FormatZones(rows)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to generate zone file: %v\n", err)
			} else {
				zoneOut := strings.TrimSuffix(output, ".csv") + "_zones.csv"
				zoneDoc := &csvio.Document{Columns: []string{"Zone Name", "Channel Members"}, Rows: zoneRows}
				if err := csvio.Write(zoneOut, zoneDoc); err != nil {
					return err
				}
				files = append(files, zoneOut)
			}
		} else {
			fmt.Fprintf(os.Stderr, "Warning: %s does not support zone files\n", formatter.Name())
		}
	}

	fmt.Printf("Wrote %d channels to %s\n", len(rows), strings.Join(files, ", "))
	return nil
}

// warnUnsupported surfaces validator outcomes without failing the run.
func warnUnsupported(profile *radios.Profile, axis radios.Axis, input string) {
	outcome := radios.Validate(profile, axis, input)
	if outcome.Supported {
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: %s version %q is not supported by %s (%s). Supported: %s\n",
		axis, input, profile.FullModel(), outcome.Reason, profile.SupportedVersions(axis))
}

func baseName(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	return base
}
