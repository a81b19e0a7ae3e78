package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/radiobridge/radiobridge/pkg/csvio"
	"github.com/radiobridge/radiobridge/pkg/statics"
)

var listStaticCmd = &cobra.Command{
	Use:   "list-static",
	Short: "List available static frequency lists",
	Run: func(cmd *cobra.Command, args []string) {
		nameStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00AAFF"))

		for _, list := range statics.Lists() {
			fmt.Println(nameStyle.Render(list.Key))
			fmt.Printf("  %s\n", list.Description)
			fmt.Printf("  Bands:       %s\n", strings.Join(list.Bands, ", "))
			fmt.Printf("  Frequencies: %d\n", list.Count())
			fmt.Println("")
		}
	},
}

var generateStaticCmd = &cobra.Command{
	Use:   "generate-static <list>...",
	Short: "Generate static frequency lists as a working file",
	Long: `Generates fixed frequency lists (national calling, emergency simplex)
in the same working-file layout as downloaded repeater data, so the
output feeds straight into 'radiobridge format'.

Example:
  radiobridge generate-static national_calling
  radiobridge generate-static national_calling emergency_simplex --band 2m`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerateStatic,
}

var generateStaticFlags struct {
	bands    []string
	location string
	output   string
}

func init() {
	f := generateStaticCmd.Flags()
	f.StringSliceVar(&generateStaticFlags.bands, "band", nil, "Band filter, repeatable (2m, 1.25m, 70cm)")
	f.StringVar(&generateStaticFlags.location, "location", statics.DefaultLocation, "Location label for the frequencies")
	f.StringVar(&generateStaticFlags.output, "output", "static_frequencies.csv", "Output file")
}

func runGenerateStatic(cmd *cobra.Command, args []string) error {
	records, err := statics.Generate(args, generateStaticFlags.bands, generateStaticFlags.location)
	if err != nil {
		return err
	}

	metadata := map[string]string{
		"lists":    strings.Join(args, ", "),
		"location": generateStaticFlags.location,
		"records":  strconv.Itoa(len(records)),
	}
	if len(generateStaticFlags.bands) > 0 {
		metadata["bands"] = strings.Join(generateStaticFlags.bands, ", ")
	}

	if err := csvio.Write(generateStaticFlags.output, csvio.FromRecords(records, metadata)); err != nil {
		return err
	}

	fmt.Printf("Wrote %d frequencies to %s\n", len(records), generateStaticFlags.output)
	return nil
}
